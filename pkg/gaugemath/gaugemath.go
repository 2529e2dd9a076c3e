// Package gaugemath maps a bounded value onto speedometer geometry: needle
// angle, tick and label placement, and the green to red ramp color.
//
// All angles are in degrees. Needle angles use a reference where 0 points
// left, 90 points up and 180 points right, measured clockwise on screen.
package gaugemath

import (
	"math"
	"strconv"
)

type TickMark struct {
	Index    int     `json:"index" yaml:"index"`
	Rotation float64 `json:"rotation" yaml:"rotation"` // 0 is straight up
	Major    bool    `json:"major" yaml:"major"`
	Percent  int     `json:"percent" yaml:"percent"`
}

// Color of the tick on the ramp.
func (t TickMark) Color() RGB { return ColorForPercent(t.Percent) }

// Direction returns the unit vector from the gauge center towards the tick.
func (t TickMark) Direction() (dx, dy float64) { return Direction(t.Rotation + 90) }

type Label struct {
	Index    int     `json:"index" yaml:"index"`
	Rotation float64 `json:"rotation" yaml:"rotation"` // same reference as the needle
	Value    int     `json:"value" yaml:"value"`
	Text     string  `json:"text" yaml:"text"`
	Percent  int     `json:"percent" yaml:"percent"`
}

func (l Label) Color() RGB { return ColorForPercent(l.Percent) }

func (l Label) Direction() (dx, dy float64) { return Direction(l.Rotation) }

// AngleForValue returns the needle angle for value. Values outside
// [0, maxValue] are extrapolated.
func AngleForValue(value float64, maxValue int, coveredArc float64) float64 {
	return (value/float64(maxValue))*coveredArc - coveredArc/2 + 90
}

// PercentOf returns the truncated position of value within [0, maxValue] in percent.
func PercentOf(value float64, maxValue int) int {
	return int(value * 100 / float64(maxValue))
}

// TickLayout places totalTicks+1 alternating major and minor marks over the arc.
func TickLayout(totalTicks int, coveredArc float64) []TickMark {
	if totalTicks <= 0 {
		return nil
	}
	startAngle := -coveredArc / 2
	stepper := coveredArc / float64(totalTicks)
	ticks := make([]TickMark, 0, totalTicks+1)
	for i := 0; i <= totalTicks; i++ {
		ticks = append(ticks, TickMark{
			Index:    i,
			Rotation: startAngle + stepper*float64(i),
			Major:    i%2 == 0,
			Percent:  (i * 100) / totalTicks,
		})
	}
	return ticks
}

// LabelLayout places tickCount+1 numeric labels, stepSplit apart, over the arc.
func LabelLayout(tickCount, stepSplit int, coveredArc float64) []Label {
	if tickCount <= 0 {
		return nil
	}
	startAngle := -coveredArc/2 + 90
	stepper := coveredArc / float64(tickCount)
	labels := make([]Label, 0, tickCount+1)
	for i := 0; i <= tickCount; i++ {
		v := stepSplit * i
		labels = append(labels, Label{
			Index:    i,
			Rotation: startAngle + stepper*float64(i),
			Value:    v,
			Text:     strconv.Itoa(v),
			Percent:  (i * 100) / tickCount,
		})
	}
	return labels
}

// Direction converts a needle angle into a screen space unit vector (y down).
func Direction(degrees float64) (dx, dy float64) {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return -c, -s
}

// PointAt returns the point radius away from (cx, cy) along degrees.
func PointAt(cx, cy, radius, degrees float64) (x, y float64) {
	dx, dy := Direction(degrees)
	return cx + dx*radius, cy + dy*radius
}
