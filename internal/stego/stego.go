package stego

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/stewinjo/rosecrypt/internal/bitstream"
	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
	"github.com/stewinjo/rosecrypt/internal/keyring"
	"github.com/stewinjo/rosecrypt/internal/noise"
	"github.com/stewinjo/rosecrypt/internal/palette"
)

// CapacityBits returns the total number of embeddable bits for a carrier:
// one bit per reserved channel per pixel. Encoder and decoder must agree
// on this relation, so both call exactly this function.
func CapacityBits(width, height int) int {
	return width * height * channelsPerPixel
}

// MaxPayloadBytes returns the largest payload that fits a carrier once
// framing overhead is paid. Zero means the carrier cannot hold even an
// empty payload's framing.
func MaxPayloadBytes(width, height int) int {
	bits := CapacityBits(width, height) - bitstream.OverheadBits
	if bits < 0 {
		return 0
	}
	return bits / 8
}

// Render paints the full baseline carrier: every pixel is the palette's
// expected color for its noise sample. An image fresh out of Render
// carries no payload.
func Render(field *noise.Field, mapper *palette.Mapper) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, field.Width, field.Height))
	for y := 0; y < field.Height; y++ {
		for x := 0; x < field.Width; x++ {
			img.SetNRGBA(x, y, mapper.ExpectedPixel(field.At(x, y)))
		}
	}
	return img
}

// Embed writes the frame's bits into keyed positions of a rendered
// carrier. Each bit moves the selected channel a full quantization step
// away from its baseline: up for 1, down for 0. The palette's reserved
// headroom guarantees neither direction clips.
//
// Fails with ErrPayloadTooLarge before touching any pixel if the frame
// does not fit.
func Embed(img *image.NRGBA, field *noise.Field, mapper *palette.Mapper, material keyring.Material, frame []byte) error {
	width, height, err := carrierDims(img, field)
	if err != nil {
		return err
	}

	frameBits := len(frame) * 8
	if capacity := CapacityBits(width, height); frameBits > capacity {
		return fmt.Errorf("%w: frame needs %d bits, carrier holds %d", rcerrors.ErrPayloadTooLarge, frameBits, capacity)
	}

	walk := newWalker(material.EmbedSeed, width, height)
	reader := bitstream.NewReader(frame)
	for {
		bit, err := reader.ReadBit()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		x, y, ch := walk.next()
		base := channelValue(mapper.ExpectedPixel(field.At(x, y)), ch)

		offset := img.PixOffset(x, y) + ch
		if bit {
			img.Pix[offset] = base + palette.Step
		} else {
			img.Pix[offset] = base - palette.Step
		}
	}
}

// Extract replays the embed walk and recovers the payload. It reads
// exactly the header bits, authenticates them, sanity-checks the claimed
// length against capacity, then reads exactly the body bits. Trailing
// positions are never visited.
func Extract(img *image.NRGBA, field *noise.Field, mapper *palette.Mapper, material keyring.Material) ([]byte, error) {
	width, height, err := carrierDims(img, field)
	if err != nil {
		return nil, err
	}

	walk := newWalker(material.EmbedSeed, width, height)

	headerBits := bitstream.NewWriter()
	for i := 0; i < bitstream.HeaderBits; i++ {
		headerBits.WriteBit(classifyBit(img, field, mapper, walk))
	}

	header, err := bitstream.ParseHeader(headerBits.Bytes(), material.AuthKey)
	if err != nil {
		return nil, err
	}

	// Validate the claimed length before allocating or reading anything
	// payload-sized.
	total := bitstream.HeaderBits + header.BodyBits()
	if capacity := CapacityBits(width, height); total > capacity {
		return nil, fmt.Errorf("%w: frame claims %d bits, carrier holds %d", rcerrors.ErrCapacityExceeded, total, capacity)
	}

	bodyBits := bitstream.NewWriter()
	for i := 0; i < header.BodyBits(); i++ {
		bodyBits.WriteBit(classifyBit(img, field, mapper, walk))
	}

	return bitstream.DecodeBody(header, bodyBits.Bytes(), material.AuthKey)
}

// classifyBit recovers one bit: the sign of the observed channel against
// its recomputed baseline. Classification never inverts color back to a
// noise value; it only decides which quantized state the channel is in.
func classifyBit(img *image.NRGBA, field *noise.Field, mapper *palette.Mapper, walk *walker) bool {
	x, y, ch := walk.next()
	expected := channelValue(mapper.ExpectedPixel(field.At(x, y)), ch)
	observed := img.Pix[img.PixOffset(x, y)+ch]
	return observed > expected
}

// carrierDims validates that the image and field agree on dimensions.
func carrierDims(img *image.NRGBA, field *noise.Field) (width, height int, err error) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return 0, 0, rcerrors.ErrInvalidDimensions
	}
	if field.Width != width || field.Height != height {
		return 0, 0, fmt.Errorf("field is %dx%d, carrier is %dx%d", field.Width, field.Height, width, height)
	}
	return width, height, nil
}

func channelValue(c color.NRGBA, channel int) uint8 {
	switch channel {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}
