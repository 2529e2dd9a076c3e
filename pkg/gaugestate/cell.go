// Package gaugestate holds the single mutable value behind a gauge and
// announces every change on an event bus.
package gaugestate

import (
	"math"
	"sync"

	"github.com/roffe/speedometer/pkg/ebus"
	"github.com/roffe/speedometer/pkg/gaugemath"
	"github.com/roffe/speedometer/pkg/logger"
	"github.com/rs/zerolog"
)

const DefaultTopic = "gauge.value"

// Frame is everything a renderer needs for one value.
type Frame struct {
	Value   float64       `json:"value"`
	Angle   float64       `json:"angle"`
	Percent int           `json:"percent"`
	Color   gaugemath.RGB `json:"-"`
}

func NewFrame(cfg gaugemath.Config, value float64) Frame {
	p := gaugemath.PercentOf(value, cfg.MaxValue)
	return Frame{
		Value:   value,
		Angle:   cfg.Angle(value),
		Percent: p,
		Color:   gaugemath.ColorForPercent(p),
	}
}

type Cell struct {
	mu    sync.RWMutex
	value float64

	cfg   gaugemath.Config
	bus   *ebus.Bus
	topic string
	log   zerolog.Logger
}

// NewCell returns a cell holding initial, clamped into the gauge range.
func NewCell(cfg gaugemath.Config, bus *ebus.Bus, topic string, initial float64) *Cell {
	if topic == "" {
		topic = DefaultTopic
	}
	c := &Cell{
		cfg:   cfg,
		bus:   bus,
		topic: topic,
		log:   logger.With("gaugestate"),
	}
	c.Set(initial)
	return c
}

func (c *Cell) Config() gaugemath.Config { return c.cfg }

func (c *Cell) Topic() string { return c.topic }

func (c *Cell) Value() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *Cell) Frame() Frame {
	return NewFrame(c.cfg, c.Value())
}

// Set clamps v into [0, MaxValue] and stores it. NaN is ignored. The stored
// value is returned.
func (c *Cell) Set(v float64) float64 {
	if math.IsNaN(v) {
		return c.Value()
	}
	v = math.Max(0, math.Min(v, float64(c.cfg.MaxValue)))

	// publish under the lock so bus order matches store order
	c.mu.Lock()
	changed := v != c.value
	c.value = v
	err := c.bus.Publish(c.topic, v)
	c.mu.Unlock()

	if err != nil {
		c.log.Warn().Err(err).Float64("value", v).Msg("publish value")
	} else if changed {
		c.log.Debug().Float64("value", v).Msg("value changed")
	}
	return v
}

func (c *Cell) Zero() float64 { return c.Set(0) }

func (c *Cell) Max() float64 { return c.Set(float64(c.cfg.MaxValue)) }

// OnChange registers f for every stored value, starting with the current one.
func (c *Cell) OnChange(f func(float64)) (cancel func()) {
	return c.bus.SubscribeFuncOr(c.topic, c.Value(), f)
}
