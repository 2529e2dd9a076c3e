package gauge

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/speedometer/pkg/colors"
	"github.com/roffe/speedometer/pkg/common"
	"github.com/roffe/speedometer/pkg/gaugemath"
	"github.com/roffe/speedometer/pkg/widgets"
)

var _ widgets.IGauge = (*Gauge)(nil)

type Gauge struct {
	widget.BaseWidget
	displayString string

	cfg *widgets.GaugeConfig

	value float64

	face        *canvas.Rectangle
	needle      *canvas.Line
	hub         *canvas.Circle
	ticks       []*canvas.Line
	labels      []*canvas.Text
	displayText *canvas.Text
	titleText   *canvas.Text

	tickMarks  []gaugemath.TickMark
	labelMarks []gaugemath.Label

	size    fyne.Size
	minsize fyne.Size

	middle fyne.Position
	scale  float32

	fmtPrec int // precision from displayString like "%.0f", -1 when unknown
	buf     []byte
}

func New(cfg *widgets.GaugeConfig) *Gauge {
	g := &Gauge{
		cfg:           cfg,
		displayString: "%.0f",
		minsize:       fyne.NewSize(common.DesignSize, common.DesignSize),
		fmtPrec:       0,
		tickMarks:     cfg.Gauge.Ticks(),
		labelMarks:    cfg.Gauge.Labels(),
	}
	g.ExtendBaseWidget(g)

	if cfg.DisplayString != "" {
		g.displayString = cfg.DisplayString
		g.fmtPrec = parseFixedPrec(g.displayString)
	}
	if cfg.MinSize.Width > 0 && cfg.MinSize.Height > 0 {
		g.minsize = cfg.MinSize
	}

	g.face = &canvas.Rectangle{FillColor: colors.Background}
	g.hub = &canvas.Circle{FillColor: colors.Needle}
	g.needle = &canvas.Line{StrokeColor: colors.Needle, StrokeWidth: common.NeedleWidth}

	g.titleText = &canvas.Text{Text: cfg.Title, Color: color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}, TextSize: common.TitleSize}
	g.titleText.Alignment = fyne.TextAlignCenter

	g.displayText = &canvas.Text{Text: "0", Color: colors.Readout, TextSize: common.ReadoutSize}
	g.displayText.TextStyle.Bold = true
	g.displayText.Alignment = fyne.TextAlignCenter

	for _, t := range g.tickMarks {
		g.ticks = append(g.ticks, &canvas.Line{StrokeColor: t.Color()})
	}
	for _, l := range g.labelMarks {
		g.labels = append(g.labels, &canvas.Text{
			Text:      l.Text,
			Color:     l.Color(),
			TextSize:  common.LabelSize,
			Alignment: fyne.TextAlignCenter,
		})
	}
	g.setText(0)
	return g
}

func (g *Gauge) GetConfig() *widgets.GaugeConfig { return g.cfg }

func (g *Gauge) Value() float64 { return g.value }

// SetValue moves the needle. The value is not clamped, the caller owns the range.
func (g *Gauge) SetValue(value float64) {
	if value == g.value {
		return
	}
	g.value = value
	g.placeNeedle()
	g.setText(value)
	canvas.Refresh(g.needle)
	canvas.Refresh(g.displayText)
}

func (g *Gauge) setText(value float64) {
	g.buf = g.buf[:0]
	prec := g.fmtPrec
	if prec < 0 {
		prec = 0
	}
	g.buf = strconv.AppendFloat(g.buf, value, 'f', prec, 64)
	g.displayText.Text = string(g.buf)
}

// ray places line along needle angle deg between radius r0 and r1 (design units).
func (g *Gauge) ray(line *canvas.Line, deg float64, r0, r1 float32) {
	dx, dy := gaugemath.Direction(deg)
	fx, fy := float32(dx)*g.scale, float32(dy)*g.scale
	line.Position1 = fyne.NewPos(g.middle.X+fx*r0, g.middle.Y+fy*r0)
	line.Position2 = fyne.NewPos(g.middle.X+fx*r1, g.middle.Y+fy*r1)
}

func (g *Gauge) placeNeedle() {
	g.ray(g.needle, g.cfg.Gauge.Angle(g.value), 0, common.NeedleLength)
}

func (g *Gauge) CreateRenderer() fyne.WidgetRenderer { return &gaugeRenderer{Gauge: g} }

type gaugeRenderer struct {
	*Gauge
	objects []fyne.CanvasObject
}

func (r *gaugeRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space
	r.scale = float32(common.Scale(float64(space.Width), float64(space.Height)))
	r.middle = fyne.NewPos(space.Width*common.OneHalf, space.Height*common.OneHalf)
	s := r.scale

	r.face.Move(fyne.NewPos(0, 0))
	r.face.Resize(space)

	for i, t := range r.tickMarks {
		w, h := common.TickSize(t.Major)
		line := r.ticks[i]
		line.StrokeWidth = float32(w) * s
		r.ray(line, t.Rotation+90, common.RimRadius-float32(h), common.RimRadius)
	}

	labelSize := common.LabelSize * s
	box := fyne.NewSize(labelSize*3, labelSize*1.2)
	for i, l := range r.labelMarks {
		lbl := r.labels[i]
		lbl.TextSize = labelSize
		dx, dy := l.Direction()
		lbl.Resize(box)
		lbl.Move(fyne.NewPos(
			r.middle.X+float32(dx)*common.LabelRadius*s-box.Width*common.OneHalf,
			r.middle.Y+float32(dy)*common.LabelRadius*s-box.Height*common.OneHalf,
		))
	}

	r.needle.StrokeWidth = common.NeedleWidth * s
	r.placeNeedle()

	hub := common.HubRadius * s
	r.hub.Move(r.middle.SubtractXY(hub, hub))
	r.hub.Resize(fyne.NewSize(hub*2, hub*2))

	r.displayText.TextSize = common.ReadoutSize * s
	readout := fyne.NewSize(space.Width, r.displayText.TextSize*1.2)
	r.displayText.Resize(readout)
	r.displayText.Move(fyne.NewPos(0, r.middle.Y+common.ReadoutOffset*s-readout.Height*common.OneHalf))

	r.titleText.TextSize = common.TitleSize * s
	r.titleText.Resize(fyne.NewSize(space.Width, r.titleText.TextSize*1.2))
	r.titleText.Move(fyne.NewPos(0, r.middle.Y+common.LabelRadius*s*common.OneHalf+common.ReadoutOffset*s))

	for _, o := range r.Objects() {
		canvas.Refresh(o)
	}
}

func (r *gaugeRenderer) MinSize() fyne.Size { return r.minsize }

func (r *gaugeRenderer) Refresh() {
	r.placeNeedle()
	canvas.Refresh(r.needle)
	canvas.Refresh(r.displayText)
}

func (r *gaugeRenderer) Destroy() {}

func (r *gaugeRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		objs := make([]fyne.CanvasObject, 0, len(r.ticks)+len(r.labels)+5)
		objs = append(objs, r.face)
		for _, t := range r.ticks {
			objs = append(objs, t)
		}
		for _, l := range r.labels {
			objs = append(objs, l)
		}
		objs = append(objs, r.titleText, r.displayText, r.needle, r.hub)
		r.objects = objs
	}
	return r.objects
}

// parseFixedPrec parses a format like "%.0f" or "%.1f" and returns the precision, or -1 if unknown.
func parseFixedPrec(format string) int {
	if len(format) >= 4 && format[0] == '%' && format[1] == '.' && format[len(format)-1] == 'f' {
		n := 0
		has := false
		for i := 2; i < len(format)-1; i++ {
			ch := format[i]
			if ch < '0' || ch > '9' {
				return -1
			}
			has = true
			n = n*10 + int(ch-'0')
		}
		if has {
			return n
		}
	}
	return -1
}
