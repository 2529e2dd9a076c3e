package widgets

import (
	"fyne.io/fyne/v2"
)

type IGauge interface {
	fyne.Widget
	SetValue(float64)
	Value() float64
	GetConfig() *GaugeConfig
}
