package stego

import (
	"math/rand/v2"
)

// channelsPerPixel counts the channels that carry bits: R, G, B. Alpha
// stays fully opaque and never carries data.
const channelsPerPixel = 3

// walker yields the keyed sequence of (x, y, channel) positions for one
// embed or extract operation. The sequence is a pure function of the embed
// seed and the carrier dimensions, so both sides replay it identically.
type walker struct {
	rng     *rand.Rand
	width   int
	height  int
	visited map[uint64]struct{}
}

// newWalker seeds a ChaCha8 stream with the embed seed. The generator is
// explicitly constructed, never the process-global one, so walks are
// reproducible across runs and platforms.
func newWalker(seed [32]byte, width, height int) *walker {
	return &walker{
		rng:     rand.New(rand.NewChaCha8(seed)),
		width:   width,
		height:  height,
		visited: make(map[uint64]struct{}),
	}
}

// next returns the next unvisited position, drawing until an unused one
// appears. Callers must never request more positions than CapacityBits
// provides, or next would loop forever on a fully visited carrier.
func (w *walker) next() (x, y, channel int) {
	for {
		x = w.rng.IntN(w.width)
		y = w.rng.IntN(w.height)
		channel = w.rng.IntN(channelsPerPixel)

		key := (uint64(y)*uint64(w.width)+uint64(x))*channelsPerPixel + uint64(channel)
		if _, seen := w.visited[key]; seen {
			continue
		}
		w.visited[key] = struct{}{}
		return x, y, channel
	}
}
