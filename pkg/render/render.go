// Package render draws a gauge offscreen with gg, for PNG export and the
// live feed server.
package render

import (
	"fmt"
	"image"
	"io"
	"strconv"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/roffe/speedometer/pkg/colors"
	"github.com/roffe/speedometer/pkg/common"
	"github.com/roffe/speedometer/pkg/gaugemath"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const defaultPixels = 300

type Options struct {
	Width, Height int
	// HideReadout skips the numeric value below the hub.
	HideReadout bool
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultPixels
	}
	if h <= 0 {
		h = defaultPixels
	}
	return w, h
}

var (
	fontsOnce           sync.Once
	regularSrc, boldSrc *text.FontSource
	fontsErr            error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularSrc, fontsErr = text.NewFontSource(goregular.TTF); fontsErr != nil {
			return
		}
		boldSrc, fontsErr = text.NewFontSource(gobold.TTF)
	})
	return fontsErr
}

// Draw renders the gauge for value onto a new context. The caller owns the
// returned context and must Close it.
func Draw(cfg gaugemath.Config, value float64, opts Options) (*gg.Context, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	w, h := opts.size()
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.Black)

	cx, cy := float64(w)/2, float64(h)/2
	s := common.Scale(float64(w), float64(h))

	for _, t := range cfg.Ticks() {
		tw, th := common.TickSize(t.Major)
		dx, dy := t.Direction()
		dc.SetColor(t.Color())
		bar(dc, cx, cy, dx, dy, (common.RimRadius-th)*s, common.RimRadius*s, tw*s)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("fill tick %d: %w", t.Index, err)
		}
	}

	dc.SetFont(regularSrc.Face(common.LabelSize * s))
	for _, l := range cfg.Labels() {
		x, y := gaugemath.PointAt(cx, cy, common.LabelRadius*s, l.Rotation)
		dc.SetColor(l.Color())
		dc.DrawStringAnchored(l.Text, x, y, 0.5, 0.5)
	}

	if !opts.HideReadout {
		dc.SetFont(boldSrc.Face(common.ReadoutSize * s))
		dc.SetColor(colors.Readout)
		dc.DrawStringAnchored(strconv.FormatFloat(value, 'f', 0, 64), cx, cy+common.ReadoutOffset*s, 0.5, 0.5)
	}

	// needle: a triangle with its base on the hub
	dx, dy := gaugemath.Direction(cfg.Angle(value))
	px, py := -dy, dx
	half := common.NeedleWidth / 2 * s
	dc.SetColor(colors.Needle)
	dc.MoveTo(cx+dx*common.NeedleLength*s, cy+dy*common.NeedleLength*s)
	dc.LineTo(cx+px*half, cy+py*half)
	dc.LineTo(cx-px*half, cy-py*half)
	dc.ClosePath()
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("fill needle: %w", err)
	}

	dc.DrawCircle(cx, cy, common.HubRadius*s)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("fill hub: %w", err)
	}
	return dc, nil
}

// bar adds a rectangle of width w along direction (dx, dy) between radius r0 and r1.
func bar(dc *gg.Context, cx, cy, dx, dy, r0, r1, w float64) {
	px, py := -dy*w/2, dx*w/2
	dc.MoveTo(cx+dx*r0+px, cy+dy*r0+py)
	dc.LineTo(cx+dx*r1+px, cy+dy*r1+py)
	dc.LineTo(cx+dx*r1-px, cy+dy*r1-py)
	dc.LineTo(cx+dx*r0-px, cy+dy*r0-py)
	dc.ClosePath()
}

func Render(cfg gaugemath.Config, value float64, opts Options) (image.Image, error) {
	dc, err := Draw(cfg, value, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Encode writes the gauge as PNG.
func Encode(w io.Writer, cfg gaugemath.Config, value float64, opts Options) error {
	dc, err := Draw(cfg, value, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func SavePNG(path string, cfg gaugemath.Config, value float64, opts Options) error {
	dc, err := Draw(cfg, value, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.SavePNG(path)
}
