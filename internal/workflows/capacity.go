package workflows

import (
	"context"
	"fmt"

	"github.com/stewinjo/rosecrypt/internal/bitstream"
	"github.com/stewinjo/rosecrypt/internal/carrier"
	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
	"github.com/stewinjo/rosecrypt/internal/stego"
)

// CapacityOptions configures the capacity workflow.
type CapacityOptions struct {
	// Width and Height are explicit carrier dimensions in pixels.
	Width  int
	Height int

	// InputPath reads the dimensions from an existing carrier instead.
	InputPath string
}

// CapacityResult contains the outcome of a capacity query.
type CapacityResult struct {
	// Width and Height are the dimensions the capacity was computed for.
	Width  int
	Height int

	// CapacityBits is the total number of embeddable bits.
	CapacityBits int

	// OverheadBits is the fixed framing cost of any payload.
	OverheadBits int

	// MaxPayloadBytes is the largest payload that fits after framing.
	MaxPayloadBytes int
}

// Capacity reports how much payload a carrier can hold.
//
// Dimensions come either from explicit Width and Height or from an
// existing carrier image, never both.
//
// Returns ErrInvalidDimensions if the dimensions are not positive or if
// both an image and explicit dimensions were given.
func Capacity(ctx context.Context, opts CapacityOptions) (*CapacityResult, error) {
	width, height := opts.Width, opts.Height

	if opts.InputPath != "" {
		if width != 0 || height != 0 {
			return nil, fmt.Errorf("%w: --in and --width/--height are mutually exclusive", rcerrors.ErrInvalidDimensions)
		}

		img, err := carrier.Load(opts.InputPath)
		if err != nil {
			return nil, err
		}
		bounds := img.Bounds()
		width, height = bounds.Dx(), bounds.Dy()
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", rcerrors.ErrInvalidDimensions, width, height)
	}

	return &CapacityResult{
		Width:           width,
		Height:          height,
		CapacityBits:    stego.CapacityBits(width, height),
		OverheadBits:    bitstream.OverheadBits,
		MaxPayloadBytes: stego.MaxPayloadBytes(width, height),
	}, nil
}
