// Package palette maps noise samples to the muted organic colors a
// rosecrypt carrier is painted with.
package palette

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Step is the quantization headroom reserved in every channel: baseline
// channel values are clamped into [Step, 255-Step] so the embedder can
// always offset a channel by a full Step in either direction without
// clipping, keeping bit classification unambiguous.
const Step = 8

// Mapper turns noise samples into baseline pixel colors for one palette
// seed. The mapping is smooth: nearby samples produce nearby colors.
type Mapper struct {
	baseHue    float64
	hueSpan    float64
	saturation float64
	lightness  float64
}

// NewMapper derives a palette from the seed. Palettes stay in a muted,
// low-saturation band so carriers read as organic texture rather than
// synthetic gradients.
func NewMapper(seed int64) *Mapper {
	u := uint64(seed)
	u ^= u >> 33
	u *= 0xff51afd7ed558ccd
	u ^= u >> 33
	u *= 0xc4ceb9fe1a85ec53
	u ^= u >> 33

	frac := func(shift uint) float64 {
		return float64((u>>shift)&0xffff) / float64(1<<16)
	}

	return &Mapper{
		baseHue:    frac(48) * 360,
		hueSpan:    30 + frac(32)*60,
		saturation: 0.25 + frac(16)*0.30,
		lightness:  0.38 + frac(0)*0.24,
	}
}

// ExpectedPixel returns the baseline color for a noise sample in [-1, 1]:
// the color a pixel has when it carries no payload bit. Alpha is always
// opaque. Every channel respects the Step headroom.
func (m *Mapper) ExpectedPixel(sample float64) color.NRGBA {
	t := (clamp(sample, -1, 1) + 1) / 2

	hue := m.baseHue + (t-0.5)*m.hueSpan
	for hue < 0 {
		hue += 360
	}
	for hue >= 360 {
		hue -= 360
	}

	sat := clamp(m.saturation+0.08*(t-0.5), 0, 1)
	light := clamp(m.lightness+0.22*(t-0.5), 0, 1)

	r, g, b := colorful.Hsl(hue, sat, light).Clamped().RGB255()

	return color.NRGBA{
		R: reserveHeadroom(r),
		G: reserveHeadroom(g),
		B: reserveHeadroom(b),
		A: 255,
	}
}

// reserveHeadroom clamps a channel into [Step, 255-Step].
func reserveHeadroom(v uint8) uint8 {
	if v < Step {
		return Step
	}
	if v > 255-Step {
		return 255 - Step
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
