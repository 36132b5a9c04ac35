package workflows

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stewinjo/rosecrypt/internal/configs"
	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
	"github.com/stewinjo/rosecrypt/internal/noise"
)

// useTempSettings points config and state at temp directories so tests
// never touch the real user environment.
func useTempSettings(t *testing.T) {
	t.Helper()

	original := configs.UserRosecryptSettings
	configs.UserRosecryptSettings = &configs.UserSettings{
		ConfigDir: filepath.Join(t.TempDir(), "config", "rosecrypt"),
		StateDir:  filepath.Join(t.TempDir(), "state", "rosecrypt"),
	}
	t.Cleanup(func() {
		configs.UserRosecryptSettings = original
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	useTempSettings(t)
	outPath := filepath.Join(t.TempDir(), "carrier.png")

	encoded, err := Encode(context.Background(), EncodeOptions{
		Passphrase: "correct-horse-battery-staple",
		Payload:    []byte("hello"),
		OutputPath: outPath,
		Width:      64,
		Height:     64,
		Kind:       noise.Perlin,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if encoded.Width != 64 || encoded.Height != 64 {
		t.Errorf("Encode reported %dx%d, want 64x64", encoded.Width, encoded.Height)
	}
	if encoded.PayloadBytes != 5 {
		t.Errorf("Encode reported %d payload bytes, want 5", encoded.PayloadBytes)
	}

	decoded, err := Decode(context.Background(), DecodeOptions{
		Passphrase: "correct-horse-battery-staple",
		InputPath:  outPath,
		Kind:       noise.Perlin,
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(decoded.Payload) != "hello" {
		t.Errorf("Decoded payload = %q, want %q", decoded.Payload, "hello")
	}
	if decoded.SaltSource != SaltSourceDefault {
		t.Errorf("SaltSource = %q, want %q", decoded.SaltSource, SaltSourceDefault)
	}
}

func TestDecodeWrongPassphrase(t *testing.T) {
	useTempSettings(t)
	outPath := filepath.Join(t.TempDir(), "carrier.png")

	_, err := Encode(context.Background(), EncodeOptions{
		Passphrase: "correct-horse-battery-staple",
		Payload:    []byte("hello"),
		OutputPath: outPath,
		Width:      64,
		Height:     64,
		Kind:       noise.Perlin,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err = Decode(context.Background(), DecodeOptions{
		Passphrase: "incorrect-horse-battery-staple",
		InputPath:  outPath,
		Kind:       noise.Perlin,
	})
	if !errors.Is(err, rcerrors.ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch for a wrong passphrase, got: %v", err)
	}
}

func TestDecodeWrongNoiseKind(t *testing.T) {
	useTempSettings(t)
	outPath := filepath.Join(t.TempDir(), "carrier.png")

	_, err := Encode(context.Background(), EncodeOptions{
		Passphrase: "garden-gate",
		Payload:    []byte("kind matters"),
		OutputPath: outPath,
		Width:      48,
		Height:     48,
		Kind:       noise.Perlin,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err = Decode(context.Background(), DecodeOptions{
		Passphrase: "garden-gate",
		InputPath:  outPath,
		Kind:       noise.Simplex,
	})
	if !errors.Is(err, rcerrors.ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch for a mismatched noise kind, got: %v", err)
	}
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	useTempSettings(t)
	outPath := filepath.Join(t.TempDir(), "carrier.png")

	_, err := Encode(context.Background(), EncodeOptions{
		Passphrase: "correct-horse-battery-staple",
		Payload:    make([]byte, 10000),
		OutputPath: outPath,
		Width:      64,
		Height:     64,
		Kind:       noise.Perlin,
	})
	if !errors.Is(err, rcerrors.ErrPayloadTooLarge) {
		t.Fatalf("Expected ErrPayloadTooLarge for 10000 bytes at 64x64, got: %v", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("Failed encode still wrote an output file")
	}
}

func TestEncodeCompressedRoundTrip(t *testing.T) {
	useTempSettings(t)
	outPath := filepath.Join(t.TempDir(), "carrier.png")

	// Too large raw for 64x64, but highly compressible.
	payload := bytes.Repeat([]byte("rosecrypt "), 300)

	encoded, err := Encode(context.Background(), EncodeOptions{
		Passphrase: "correct-horse-battery-staple",
		Payload:    payload,
		OutputPath: outPath,
		Width:      64,
		Height:     64,
		Kind:       noise.Simplex,
		Compress:   true,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !encoded.Compressed {
		t.Error("Encode did not report compression for a repetitive payload")
	}

	decoded, err := Decode(context.Background(), DecodeOptions{
		Passphrase: "correct-horse-battery-staple",
		InputPath:  outPath,
		Kind:       noise.Simplex,
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded.Payload, payload) {
		t.Error("Compressed round trip lost data")
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	useTempSettings(t)
	dir := t.TempDir()

	opts := EncodeOptions{
		Passphrase: "same-key-same-pixels",
		Payload:    []byte("deterministic"),
		Width:      32,
		Height:     32,
		Kind:       noise.Perlin,
	}

	opts.OutputPath = filepath.Join(dir, "first.png")
	if _, err := Encode(context.Background(), opts); err != nil {
		t.Fatalf("First encode failed: %v", err)
	}
	opts.OutputPath = filepath.Join(dir, "second.png")
	if _, err := Encode(context.Background(), opts); err != nil {
		t.Fatalf("Second encode failed: %v", err)
	}

	first, err := os.ReadFile(filepath.Join(dir, "first.png"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "second.png"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Two encodes with identical options produced different carriers")
	}
}
