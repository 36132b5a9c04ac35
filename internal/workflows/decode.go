package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/stewinjo/rosecrypt/internal/carrier"
	"github.com/stewinjo/rosecrypt/internal/configs"
	"github.com/stewinjo/rosecrypt/internal/history"
	"github.com/stewinjo/rosecrypt/internal/keyring"
	"github.com/stewinjo/rosecrypt/internal/noise"
	"github.com/stewinjo/rosecrypt/internal/palette"
	"github.com/stewinjo/rosecrypt/internal/stego"
)

// Salt sources reported in DecodeResult.SaltSource.
const (
	SaltSourceFlag    = "flag"
	SaltSourceSidecar = "sidecar"
	SaltSourceDefault = "default"
)

// DecodeOptions configures the decode workflow.
type DecodeOptions struct {
	// Passphrase is the secret the payload was keyed to.
	Passphrase string

	// InputPath is the carrier image to read.
	InputPath string

	// OutputPath is where the payload is written. Empty or "-" skips the
	// write and leaves the payload on the result only.
	OutputPath string

	// Kind selects the noise baseline. It must match the kind used when
	// the carrier was encoded.
	Kind noise.Kind

	// SaltHex is an explicit hex-encoded salt. Empty means the salt
	// sidecar next to the carrier, falling back to the fixed default.
	SaltHex string
}

// DecodeResult contains the outcome of a decode operation.
type DecodeResult struct {
	// Payload is the recovered plaintext.
	Payload []byte

	// OutputPath is the file the payload was written to, or empty when
	// the payload was only returned.
	OutputPath string

	// Width and Height are the carrier dimensions in pixels.
	Width  int
	Height int

	// Salt is the hex-encoded salt the keys were derived from.
	Salt string

	// SaltSource says where the salt came from: flag, sidecar, or default.
	SaltSource string
}

// Decode recovers a payload from a carrier image.
//
// The carrier's noise baseline is recomputed from the derived keys, the
// frame is collected along the same key-derived walk used at encode time,
// and the payload is verified and unframed. Nothing about the carrier is
// trusted before its header tag checks out.
//
// Returns ErrUnsupportedFormat if the carrier is not a PNG or BMP.
// Returns ErrInvalidKey if the passphrase is empty.
// Returns ErrInvalidSalt if the salt cannot be parsed.
// Returns ErrChecksumMismatch for a wrong key, a tampered carrier, or an
// image that never carried a payload.
// Returns ErrCapacityExceeded if the decoded length cannot fit the image.
func Decode(ctx context.Context, opts DecodeOptions) (*DecodeResult, error) {
	start := time.Now()

	img, err := carrier.Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	salt, saltSource, err := resolveDecodeSalt(opts.SaltHex, opts.InputPath)
	if err != nil {
		return nil, err
	}

	material, err := keyring.Derive(opts.Passphrase, salt)
	if err != nil {
		return nil, err
	}

	field, err := noise.Generate(ctx, opts.Kind, material.NoiseSeed, width, height)
	if err != nil {
		return nil, err
	}

	mapper := palette.NewMapper(material.PaletteSeed)

	payload, err := stego.Extract(img, field, mapper, material)
	if err != nil {
		return nil, err
	}

	result := &DecodeResult{
		Payload:    payload,
		Width:      width,
		Height:     height,
		Salt:       salt.String(),
		SaltSource: saltSource,
	}

	if opts.OutputPath != "" && opts.OutputPath != "-" {
		if err := os.WriteFile(opts.OutputPath, payload, 0644); err != nil {
			return nil, fmt.Errorf("writing payload: %w", err)
		}
		result.OutputPath = opts.OutputPath
	}

	entry := history.NewEntry("decode")
	entry.Carrier = opts.InputPath
	entry.Width = width
	entry.Height = height
	entry.Noise = opts.Kind.String()
	entry.PayloadBytes = len(payload)
	entry.DurationMS = time.Since(start).Milliseconds()
	history.Log(entry)

	return result, nil
}

// resolveDecodeSalt picks the salt for decoding: an explicit flag wins,
// then a salt sidecar next to the carrier, then the fixed default.
func resolveDecodeSalt(saltHex, carrierPath string) (keyring.Salt, string, error) {
	if saltHex != "" {
		salt, err := keyring.ParseSalt(saltHex)
		return salt, SaltSourceFlag, err
	}

	stored, err := configs.LoadSaltFile(carrierPath)
	if err == nil {
		salt, perr := keyring.ParseSalt(stored)
		if perr != nil {
			return keyring.Salt{}, "", fmt.Errorf("salt file %s: %w", configs.SaltSidecarPath(carrierPath), perr)
		}
		return salt, SaltSourceSidecar, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return keyring.Salt{}, "", fmt.Errorf("reading salt file: %w", err)
	}

	return keyring.DefaultSalt, SaltSourceDefault, nil
}
