package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roffe/speedometer/pkg/gaugemath"
	"gopkg.in/yaml.v3"
)

// Layout is the precomputed geometry a host caches per configuration.
type Layout struct {
	Config gaugemath.Config     `json:"config" yaml:"config"`
	Ticks  []gaugemath.TickMark `json:"ticks" yaml:"ticks"`
	Labels []gaugemath.Label    `json:"labels" yaml:"labels"`
}

func NewLayout(cfg gaugemath.Config) Layout {
	return Layout{
		Config: cfg,
		Ticks:  cfg.Ticks(),
		Labels: cfg.Labels(),
	}
}

// EncodeLayout writes the layout of cfg as yaml or json.
func EncodeLayout(w io.Writer, cfg gaugemath.Config, format string) error {
	l := NewLayout(cfg)
	switch format {
	case "", "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	default:
		return fmt.Errorf("unknown layout format %q", format)
	}
}
