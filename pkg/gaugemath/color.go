package gaugemath

import "image/color"

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

var _ color.Color = RGB{}

// ColorForPercent ramps linearly from green at 0 to red at 100. Each channel
// is clamped independently, blue is never used.
func ColorForPercent(percent int) RGB {
	p := float64(percent)
	return RGB{
		R: clamp01(1 + (p-100)/100),
		G: clamp01((100 - p) / 100),
	}
}

// RGBA implements color.Color. Alpha is always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return channel(c.R), channel(c.G), channel(c.B), 0xffff
}

func channel(v float64) uint32 {
	return uint32(clamp01(v)*0xffff + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
