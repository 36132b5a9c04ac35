// Package stego embeds framed payloads into rendered noise carriers and
// extracts them again.
//
// Positions are chosen by a keyed pseudo-random walk over (x, y, channel)
// triples, seeded from the passphrase-derived embed seed. The walk never
// revisits a position within one operation, and both sides replay the
// identical sequence, which is the entire synchronization mechanism: there
// are no markers in the image.
//
// Each embedded bit displaces one channel of one pixel a full quantization
// step from its keyed baseline color. The decoder recomputes the baseline
// from the same key and classifies the sign of the difference. Anyone
// without the key can neither find the walked positions nor distinguish
// displaced channels from ordinary palette variation with certainty; this
// is concealment against casual inspection, not steganalysis resistance.
//
// Capacity is fixed by geometry: three channel-bits per pixel, minus the
// frame overhead. CapacityBits and MaxPayloadBytes publish the relation so
// callers can size carriers before encoding.
package stego
