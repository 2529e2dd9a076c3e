package colors

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette of the speedometer face.
var (
	Background = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	Needle     = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	Readout    = color.RGBA{0xFF, 0xA5, 0x00, 0xFF} // orange
)

// Hex formats c as #rrggbb, alpha is dropped.
func Hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Clamped().Hex()
}

// ParseHex accepts #rgb and #rrggbb, with or without the leading #.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return color.RGBA{r, g, b, 0xFF}, nil
}
