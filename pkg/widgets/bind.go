package widgets

import (
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/speedometer/pkg/gaugestate"
)

// BindSlider couples s and cell both ways. Dragging sets the cell. Cell
// changes move the slider without firing OnChanged and are handed to
// onValue. Values that are no longer current when they arrive are dropped.
func BindSlider(s *widget.Slider, cell *gaugestate.Cell, onValue func(float64)) (cancel func()) {
	s.Value = cell.Value()
	s.OnChanged = func(v float64) {
		cell.Set(v)
	}
	s.Refresh()

	return cell.OnChange(func(v float64) {
		if v != cell.Value() {
			return
		}
		if onValue != nil {
			onValue(v)
		}
		if s.Value != v {
			s.Value = v
			s.Refresh()
		}
	})
}
