package bitstream

import (
	"bytes"
	"errors"
	"io"
	"testing"

	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
)

func testKey(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, 32)
}

func TestWriterMSBFirst(t *testing.T) {
	w := NewWriter()
	for _, bit := range []bool{true, false, true, true, false, false, true, false} {
		w.WriteBit(bit)
	}

	got := w.Bytes()
	if len(got) != 1 || got[0] != 0xB2 {
		t.Errorf("Bytes() = %x, want b2", got)
	}
}

func TestWriterPadsPartialByte(t *testing.T) {
	w := NewWriter()
	w.WriteBit(true)
	w.WriteBit(true)
	w.WriteBit(true)

	if w.Len() != 3 {
		t.Errorf("Len() = %d, want 3", w.Len())
	}
	got := w.Bytes()
	if len(got) != 1 || got[0] != 0xE0 {
		t.Errorf("Bytes() = %x, want e0", got)
	}
}

func TestReaderRoundTrip(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	r := NewReader(data)
	w := NewWriter()
	for {
		bit, err := r.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadBit failed: %v", err)
		}
		w.WriteBit(bit)
	}

	if !bytes.Equal(w.Bytes(), data) {
		t.Errorf("Round trip = %x, want %x", w.Bytes(), data)
	}
}

func TestReaderRemaining(t *testing.T) {
	r := NewReader([]byte{0x00, 0xFF})
	if r.Remaining() != 16 {
		t.Errorf("Remaining() = %d, want 16", r.Remaining())
	}
	for i := 0; i < 5; i++ {
		if _, err := r.ReadBit(); err != nil {
			t.Fatalf("ReadBit failed: %v", err)
		}
	}
	if r.Remaining() != 11 {
		t.Errorf("Remaining() after 5 reads = %d, want 11", r.Remaining())
	}
}

func TestReaderEOF(t *testing.T) {
	r := NewReader([]byte{0xFF})
	for i := 0; i < 8; i++ {
		if _, err := r.ReadBit(); err != nil {
			t.Fatalf("ReadBit %d failed: %v", i, err)
		}
	}
	if _, err := r.ReadBit(); err != io.EOF {
		t.Errorf("Expected io.EOF past end, got: %v", err)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	key := testKey(7)

	payloads := [][]byte{
		nil,
		[]byte("hello"),
		{0x00, 0xFF, 0x80, 0x7F},
		bytes.Repeat([]byte("rose"), 100),
	}

	for _, payload := range payloads {
		frame, err := Encode(payload, key, false)
		if err != nil {
			t.Fatalf("Encode(%d bytes) failed: %v", len(payload), err)
		}
		if len(frame) != HeaderSize+macSize+len(payload) {
			t.Errorf("Frame is %d bytes, want %d", len(frame), HeaderSize+macSize+len(payload))
		}

		got, err := Decode(frame, key)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("Decode = %q, want %q", got, payload)
		}
	}
}

func TestFrameCompression(t *testing.T) {
	key := testKey(1)
	payload := bytes.Repeat([]byte("abcdefgh"), 512)

	compressed, err := Encode(payload, key, true)
	if err != nil {
		t.Fatalf("Encode with compression failed: %v", err)
	}
	raw, err := Encode(payload, key, false)
	if err != nil {
		t.Fatalf("Encode without compression failed: %v", err)
	}

	if len(compressed) >= len(raw) {
		t.Errorf("Compressed frame (%d bytes) not smaller than raw (%d bytes)", len(compressed), len(raw))
	}

	h, err := ParseHeader(compressed[:HeaderSize], key)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if !h.Compressed() {
		t.Error("Compressed frame header does not report compression")
	}
	if !Compressed(compressed) {
		t.Error("Compressed(frame) = false for a compressed frame")
	}
	if Compressed(raw) {
		t.Error("Compressed(frame) = true for a raw frame")
	}

	got, err := Decode(compressed, key)
	if err != nil {
		t.Fatalf("Decode of compressed frame failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("Compressed round trip lost data")
	}
}

func TestFrameSkipsUnhelpfulCompression(t *testing.T) {
	key := testKey(2)
	// Too short for zstd to beat its own framing overhead.
	payload := []byte{0x37, 0xA1, 0x5C, 0x09, 0xEE, 0x42, 0x8B, 0x11}

	frame, err := Encode(payload, key, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	h, err := ParseHeader(frame[:HeaderSize], key)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if h.Compressed() {
		t.Error("Tiny payload was framed compressed despite no size win")
	}
	if int(h.Length) != len(payload) {
		t.Errorf("Header length = %d, want %d", h.Length, len(payload))
	}
}

func TestDecodeWrongKey(t *testing.T) {
	frame, err := Encode([]byte("secret"), testKey(3), false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err = Decode(frame, testKey(4))
	if err == nil {
		t.Fatal("Expected error decoding with wrong key, got nil")
	}
	if !errors.Is(err, rcerrors.ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got: %v", err)
	}
}

func TestDecodeTamperedHeader(t *testing.T) {
	key := testKey(5)
	frame, err := Encode([]byte("secret"), key, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Corrupt one bit of the length field.
	tampered := append([]byte(nil), frame...)
	tampered[3] ^= 0x01

	_, err = Decode(tampered, key)
	if !errors.Is(err, rcerrors.ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch for tampered header, got: %v", err)
	}
}

func TestDecodeTamperedPayload(t *testing.T) {
	key := testKey(6)
	frame, err := Encode([]byte("integrity matters"), key, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	for _, idx := range []int{HeaderSize, HeaderSize + macSize, len(frame) - 1} {
		tampered := append([]byte(nil), frame...)
		tampered[idx] ^= 0x80

		_, err = Decode(tampered, key)
		if !errors.Is(err, rcerrors.ErrChecksumMismatch) {
			t.Errorf("Byte %d: expected ErrChecksumMismatch, got: %v", idx, err)
		}
	}
}

func TestHeaderBodyBits(t *testing.T) {
	h := Header{Version: Version, Length: 5}
	if h.BodyBits() != MACBits+40 {
		t.Errorf("BodyBits() = %d, want %d", h.BodyBits(), MACBits+40)
	}
	if OverheadBits != HeaderBits+MACBits {
		t.Errorf("OverheadBits = %d, want %d", OverheadBits, HeaderBits+MACBits)
	}
}
