package common

const OneHalf = 1.0 / 2.0

// Face geometry in a DesignSize x DesignSize frame. Renderers scale it by
// min(width, height) / DesignSize.
const (
	DesignSize    = 300.0
	RimRadius     = 150.0
	LabelRadius   = 110.0
	NeedleLength  = 140.0
	NeedleWidth   = 6.0
	HubRadius     = 10.0
	ReadoutOffset = 40.0
	ReadoutSize   = 40.0
	LabelSize     = 17.0
	TitleSize     = 20.0
	MajorTickW    = 5.0
	MajorTickH    = 20.0
	MinorTickW    = 3.0
	MinorTickH    = 10.0
)

// Scale returns the factor from the design frame to a w x h area.
func Scale(w, h float64) float64 {
	return min(w, h) / DesignSize
}

// TickSize returns width and height of a tick mark in the design frame.
func TickSize(major bool) (w, h float64) {
	if major {
		return MajorTickW, MajorTickH
	}
	return MinorTickW, MinorTickH
}
