package gaugemath

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfiguration = errors.New("invalid gauge configuration")

// Config describes the static shape of a gauge. The zero value is not usable,
// construct it with NewConfig.
type Config struct {
	CoveredArc float64 `json:"coveredArc" yaml:"coveredArc"` // degrees, (0, 360]
	MaxValue   int     `json:"maxValue" yaml:"maxValue"`
	StepSplit  int     `json:"stepSplit" yaml:"stepSplit"`
}

func NewConfig(coveredArc float64, maxValue, stepSplit int) (Config, error) {
	switch {
	case maxValue <= 0:
		return Config{}, fmt.Errorf("%w: max value %d must be positive", ErrInvalidConfiguration, maxValue)
	case stepSplit <= 0:
		return Config{}, fmt.Errorf("%w: step split %d must be positive", ErrInvalidConfiguration, stepSplit)
	case maxValue%stepSplit != 0:
		return Config{}, fmt.Errorf("%w: max value %d is not divisible by step split %d", ErrInvalidConfiguration, maxValue, stepSplit)
	case math.IsNaN(coveredArc) || coveredArc <= 0 || coveredArc > 360:
		return Config{}, fmt.Errorf("%w: covered arc %v outside (0, 360]", ErrInvalidConfiguration, coveredArc)
	}
	return Config{
		CoveredArc: coveredArc,
		MaxValue:   maxValue,
		StepSplit:  stepSplit,
	}, nil
}

// TickCount is the number of labelled steps.
func (c Config) TickCount() int { return c.MaxValue / c.StepSplit }

// TotalTicks counts major and minor slots.
func (c Config) TotalTicks() int { return c.TickCount() * 2 }

func (c Config) Angle(value float64) float64 {
	return AngleForValue(value, c.MaxValue, c.CoveredArc)
}

func (c Config) Ticks() []TickMark {
	return TickLayout(c.TotalTicks(), c.CoveredArc)
}

func (c Config) Labels() []Label {
	return LabelLayout(c.TickCount(), c.StepSplit, c.CoveredArc)
}

func (c Config) String() string {
	return fmt.Sprintf("arc=%g max=%d step=%d", c.CoveredArc, c.MaxValue, c.StepSplit)
}
