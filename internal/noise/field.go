package noise

import (
	"context"
	"runtime"
	"sync"

	rcerrors "github.com/stewinjo/rosecrypt/internal/errors"
)

// Field is a fully generated noise grid. Samples are stored row-major.
type Field struct {
	Width  int
	Height int

	samples []float64
}

// At returns the sample for a pixel coordinate. The caller must stay in
// bounds.
func (f *Field) At(x, y int) float64 {
	return f.samples[y*f.Width+x]
}

// Generate fills a width x height field from the sampler defined by
// (kind, seed). Rows are split into contiguous stripes and generated in
// parallel; because every cell is a pure function of (seed, x, y), the
// result is identical regardless of worker count.
func Generate(ctx context.Context, kind Kind, seed int64, width, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, rcerrors.ErrInvalidDimensions
	}

	sampler, err := NewSampler(kind, seed)
	if err != nil {
		return nil, err
	}

	field := &Field{
		Width:   width,
		Height:  height,
		samples: make([]float64, width*height),
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	rowsPerWorker := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > height {
			endRow = height
		}
		if startRow >= endRow {
			break
		}

		wg.Add(1)
		go func(startRow, endRow int) {
			defer wg.Done()
			for y := startRow; y < endRow; y++ {
				if ctx.Err() != nil {
					return
				}
				row := field.samples[y*width : (y+1)*width]
				for x := range row {
					row[x] = sampler.At(x, y)
				}
			}
		}(startRow, endRow)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return field, nil
}
