package workflows

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/stewinjo/rosecrypt/internal/bitstream"
	"github.com/stewinjo/rosecrypt/internal/carrier"
	"github.com/stewinjo/rosecrypt/internal/configs"
	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
	"github.com/stewinjo/rosecrypt/internal/history"
	"github.com/stewinjo/rosecrypt/internal/keyring"
	"github.com/stewinjo/rosecrypt/internal/noise"
	"github.com/stewinjo/rosecrypt/internal/palette"
	"github.com/stewinjo/rosecrypt/internal/stego"
)

// minAutoSide is the smallest side length auto-sizing will pick.
const minAutoSide = 8

// EncodeOptions configures the encode workflow.
type EncodeOptions struct {
	// Passphrase is the secret the payload is keyed to.
	Passphrase string

	// Payload is the plaintext to embed.
	Payload []byte

	// OutputPath is where the carrier image is written (.png or .bmp).
	OutputPath string

	// Width and Height set the carrier size in pixels. When both are
	// zero, the smallest square that fits the payload is used.
	Width  int
	Height int

	// Kind selects the noise baseline.
	Kind noise.Kind

	// SaltHex is an explicit hex-encoded salt. Empty means the fixed
	// default salt.
	SaltHex string

	// RandomSalt derives keys from a fresh salt and writes it to a
	// sidecar file next to the carrier.
	RandomSalt bool

	// Compress zstd-compresses the payload when that makes it smaller.
	Compress bool

	// Force overwrites an existing output file.
	Force bool
}

// EncodeResult contains the outcome of an encode operation.
type EncodeResult struct {
	// OutputPath is the carrier image that was written.
	OutputPath string

	// Width and Height are the carrier dimensions in pixels.
	Width  int
	Height int

	// PayloadBytes is the payload size before framing.
	PayloadBytes int

	// CapacityBytes is the largest payload the carrier could hold.
	CapacityBytes int

	// Compressed indicates whether the embedded frame is compressed.
	Compressed bool

	// Salt is the hex-encoded salt the keys were derived from.
	Salt string

	// SaltPath is the sidecar file holding the salt, or empty when the
	// salt is implicit.
	SaltPath string
}

// Encode renders a noise carrier and embeds the payload into it.
//
// The payload is framed (length prefix, header tag, payload MAC, optional
// zstd compression), the carrier is rendered from key-derived noise, and
// the frame is scattered across it along a key-derived walk. The carrier
// is only written once embedding has fully succeeded.
//
// Returns ErrUnsupportedFormat if the output extension is not .png or .bmp.
// Returns ErrOutputExists if the output exists and Force is not set.
// Returns ErrInvalidKey if the passphrase is empty.
// Returns ErrInvalidSalt if the salt options conflict or cannot be parsed.
// Returns ErrInvalidDimensions if an explicit size is not positive.
// Returns ErrPayloadTooLarge if the framed payload does not fit.
func Encode(ctx context.Context, opts EncodeOptions) (*EncodeResult, error) {
	start := time.Now()

	if err := carrier.CheckFormat(opts.OutputPath); err != nil {
		return nil, err
	}

	if !opts.Force {
		if _, err := os.Stat(opts.OutputPath); err == nil {
			return nil, fmt.Errorf("%w: %s (use --force to overwrite)", rcerrors.ErrOutputExists, opts.OutputPath)
		}
	}

	salt, err := resolveEncodeSalt(opts)
	if err != nil {
		return nil, err
	}

	material, err := keyring.Derive(opts.Passphrase, salt)
	if err != nil {
		return nil, err
	}

	frame, err := bitstream.Encode(opts.Payload, material.AuthKey, opts.Compress)
	if err != nil {
		return nil, err
	}

	width, height, err := resolveCarrierSize(opts.Width, opts.Height, len(frame)*8)
	if err != nil {
		return nil, err
	}

	if len(frame)*8 > stego.CapacityBits(width, height) {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte capacity of a %dx%d carrier",
			rcerrors.ErrPayloadTooLarge, len(opts.Payload),
			stego.MaxPayloadBytes(width, height), width, height)
	}

	field, err := noise.Generate(ctx, opts.Kind, material.NoiseSeed, width, height)
	if err != nil {
		return nil, err
	}

	mapper := palette.NewMapper(material.PaletteSeed)
	img := stego.Render(field, mapper)

	if err := stego.Embed(img, field, mapper, material, frame); err != nil {
		return nil, err
	}

	if err := carrier.Save(opts.OutputPath, img); err != nil {
		return nil, err
	}

	result := &EncodeResult{
		OutputPath:    opts.OutputPath,
		Width:         width,
		Height:        height,
		PayloadBytes:  len(opts.Payload),
		CapacityBytes: stego.MaxPayloadBytes(width, height),
		Compressed:    bitstream.Compressed(frame),
		Salt:          salt.String(),
	}

	if opts.RandomSalt {
		if err := configs.SaveSaltFile(opts.OutputPath, salt.String()); err != nil {
			return nil, fmt.Errorf("writing salt file: %w", err)
		}
		result.SaltPath = configs.SaltSidecarPath(opts.OutputPath)
	}

	entry := history.NewEntry("encode")
	entry.Carrier = opts.OutputPath
	entry.Width = width
	entry.Height = height
	entry.Noise = opts.Kind.String()
	entry.PayloadBytes = len(opts.Payload)
	entry.Compressed = result.Compressed
	entry.DurationMS = time.Since(start).Milliseconds()
	history.Log(entry)

	return result, nil
}

// resolveEncodeSalt picks the salt for encoding: a random salt when
// requested, an explicit salt when given, else the fixed default.
func resolveEncodeSalt(opts EncodeOptions) (keyring.Salt, error) {
	switch {
	case opts.RandomSalt && opts.SaltHex != "":
		return keyring.Salt{}, fmt.Errorf("%w: --salt and --random-salt are mutually exclusive", rcerrors.ErrInvalidSalt)
	case opts.RandomSalt:
		return keyring.RandomSalt()
	case opts.SaltHex != "":
		return keyring.ParseSalt(opts.SaltHex)
	default:
		return keyring.DefaultSalt, nil
	}
}

// resolveCarrierSize returns the carrier dimensions, picking the smallest
// square that fits frameBits when no explicit size is given.
func resolveCarrierSize(width, height, frameBits int) (int, int, error) {
	if width == 0 && height == 0 {
		side := int(math.Ceil(math.Sqrt(float64(frameBits) / 3.0)))
		if side < minAutoSide {
			side = minAutoSide
		}
		return side, side, nil
	}

	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: got %dx%d", rcerrors.ErrInvalidDimensions, width, height)
	}
	return width, height, nil
}
