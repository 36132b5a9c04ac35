// Package carrier reads and writes the image containers rosecrypt works
// with. The rest of the pipeline only ever sees an origin-anchored NRGBA
// pixel grid; container formats stop here.
package carrier

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
)

// Load decodes a PNG or BMP file into an NRGBA grid anchored at the
// origin.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening carrier: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: %s", rcerrors.ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding carrier %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// CheckFormat reports whether path has a supported carrier extension.
// Callers can use it to reject an output path before doing any pipeline
// work.
func CheckFormat(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp":
		return nil
	default:
		return fmt.Errorf("%w: %q (use .png or .bmp)", rcerrors.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Save encodes the image by file extension (.png or .bmp). The extension
// is validated before any encoding work, and the file is written in one
// shot so a failed encode leaves nothing behind.
func Save(path string, img image.Image) error {
	if err := CheckFormat(path); err != nil {
		return err
	}

	var buf bytes.Buffer

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
	case ".bmp":
		if err := bmp.Encode(&buf, img); err != nil {
			return fmt.Errorf("encoding bmp: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing carrier: %w", err)
	}
	return nil
}

// toNRGBA normalizes any decoded image to an origin-anchored NRGBA grid.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
