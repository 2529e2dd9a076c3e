package widgets

import (
	"fyne.io/fyne/v2"
	"github.com/roffe/speedometer/pkg/gaugemath"
)

type GaugeConfig struct {
	Title         string
	DisplayString string // default "%.0f"
	MinSize       fyne.Size
	Gauge         gaugemath.Config
}
