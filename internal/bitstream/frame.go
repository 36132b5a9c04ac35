package bitstream

import (
	"bytes"
	"crypto/hmac"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
)

// Version is the current frame format version.
const Version = 1

// flagCompressed marks a zstd-compressed payload.
const flagCompressed = 1 << 0

// Frame geometry. The prefix carries its own keyed tag so a decoder can
// reject wrong keys and foreign images before trusting the length field;
// the payload MAC validates the payload itself.
const (
	HeaderSize = 10 // version(1) flags(1) length(4) headerTag(4)
	HeaderBits = HeaderSize * 8

	macSize = 8
	MACBits = macSize * 8

	// OverheadBits is the fixed framing cost of any payload.
	OverheadBits = HeaderBits + MACBits
)

// Header is the parsed, tag-verified fixed prefix of a frame.
type Header struct {
	Version uint8
	Flags   uint8
	Length  uint32 // payload bytes following the MAC
}

// Compressed reports whether the payload was zstd-compressed.
func (h Header) Compressed() bool {
	return h.Flags&flagCompressed != 0
}

// BodyBits returns how many bits follow the header prefix: the payload
// MAC plus the payload itself. An extractor reads exactly HeaderBits +
// BodyBits and nothing more.
func (h Header) BodyBits() int {
	return MACBits + int(h.Length)*8
}

// Compressed reports whether a framed byte slice carries a compressed
// payload. Frames shorter than the flags byte report false.
func Compressed(frame []byte) bool {
	return len(frame) >= 2 && frame[1]&flagCompressed != 0
}

// Encode frames a payload: [version|flags|length|headerTag|payloadMAC|payload].
// With compress set, the payload is zstd-compressed first and the
// compressed form is framed only when it is actually smaller.
func Encode(payload, authKey []byte, compress bool) ([]byte, error) {
	data := payload
	var flags uint8
	if compress && len(payload) > 0 {
		compressed := compressZstd(payload)
		if len(compressed) < len(payload) {
			data = compressed
			flags |= flagCompressed
		}
	}

	if len(data) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload is %d bytes", rcerrors.ErrPayloadTooLarge, len(data))
	}
	length := uint32(len(data))

	tag, err := headerTag(authKey, Version, flags, length)
	if err != nil {
		return nil, err
	}
	mac, err := payloadMAC(authKey, Version, flags, length, data)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	buf.WriteByte(Version)
	buf.WriteByte(flags)
	if err := binary.Write(buf, binary.BigEndian, length); err != nil {
		return nil, fmt.Errorf("writing length prefix: %w", err)
	}
	buf.Write(tag)
	buf.Write(mac)
	buf.Write(data)

	return buf.Bytes(), nil
}

// ParseHeader verifies and parses the fixed frame prefix. A tag mismatch
// means wrong key, corrupted carrier, or an image that never carried a
// frame; all surface as ErrChecksumMismatch.
func ParseHeader(prefix, authKey []byte) (Header, error) {
	var h Header
	if len(prefix) != HeaderSize {
		return h, fmt.Errorf("frame prefix is %d bytes, expected %d", len(prefix), HeaderSize)
	}

	h.Version = prefix[0]
	h.Flags = prefix[1]
	h.Length = binary.BigEndian.Uint32(prefix[2:6])

	expected, err := headerTag(authKey, h.Version, h.Flags, h.Length)
	if err != nil {
		return h, err
	}
	if !hmac.Equal(prefix[6:10], expected) {
		return h, rcerrors.ErrChecksumMismatch
	}

	// The tag only authenticates under the current format, so an
	// unexpected version here means a frame from a newer tool.
	if h.Version != Version {
		return h, fmt.Errorf("unsupported frame version %d", h.Version)
	}

	return h, nil
}

// DecodeBody validates the payload MAC and returns the payload,
// decompressing it when the header says so. body must be exactly the
// BodyBits bits read after the prefix: [payloadMAC|payload].
func DecodeBody(h Header, body, authKey []byte) ([]byte, error) {
	if len(body) != macSize+int(h.Length) {
		return nil, fmt.Errorf("frame body is %d bytes, expected %d", len(body), macSize+int(h.Length))
	}

	mac := body[:macSize]
	data := body[macSize:]

	expected, err := payloadMAC(authKey, h.Version, h.Flags, h.Length, data)
	if err != nil {
		return nil, err
	}
	if !hmac.Equal(mac, expected) {
		return nil, rcerrors.ErrChecksumMismatch
	}

	if h.Compressed() {
		plain, err := decompressZstd(data)
		if err != nil {
			return nil, fmt.Errorf("%w: payload does not decompress", rcerrors.ErrChecksumMismatch)
		}
		return plain, nil
	}
	return data, nil
}

// Decode parses a complete frame produced by Encode.
func Decode(frame, authKey []byte) ([]byte, error) {
	if len(frame) < HeaderSize+macSize {
		return nil, fmt.Errorf("frame is %d bytes, shorter than minimum %d", len(frame), HeaderSize+macSize)
	}
	h, err := ParseHeader(frame[:HeaderSize], authKey)
	if err != nil {
		return nil, err
	}
	return DecodeBody(h, frame[HeaderSize:], authKey)
}

// headerTag is a 4-byte keyed BLAKE2b over the prefix fields.
func headerTag(authKey []byte, version, flags uint8, length uint32) ([]byte, error) {
	mac, err := blake2b.New(4, authKey)
	if err != nil {
		return nil, fmt.Errorf("building header tag: %w", err)
	}
	mac.Write([]byte{version, flags})
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], length)
	mac.Write(lenBuf[:])
	return mac.Sum(nil), nil
}

// payloadMAC is an 8-byte keyed BLAKE2b over the prefix fields and payload,
// binding the payload to its own framing.
func payloadMAC(authKey []byte, version, flags uint8, length uint32, payload []byte) ([]byte, error) {
	mac, err := blake2b.New(macSize, authKey)
	if err != nil {
		return nil, fmt.Errorf("building payload MAC: %w", err)
	}
	mac.Write([]byte{version, flags})
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], length)
	mac.Write(lenBuf[:])
	mac.Write(payload)
	return mac.Sum(nil), nil
}

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		)
		if err != nil {
			panic(err)
		}
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(err)
		}
		return dec
	},
}

func compressZstd(data []byte) []byte {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, nil)
	zstdEncPool.Put(enc)
	return out
}

func decompressZstd(data []byte) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	zstdDecPool.Put(dec)
	return out, err
}
