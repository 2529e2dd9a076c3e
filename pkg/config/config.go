// Package config loads settings from defaults, an optional speedometer.yaml,
// SPEEDOMETER_* environment variables and command line flags, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/roffe/speedometer/pkg/gaugemath"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "SPEEDOMETER"
	EnvFile    = EnvPrefix + "_CONFIG"
	configName = "speedometer"
)

type Config struct {
	Arc   float64 `mapstructure:"arc"`
	Max   int     `mapstructure:"max"`
	Step  int     `mapstructure:"step"`
	Value float64 `mapstructure:"value"`

	Listen    string        `mapstructure:"listen"`
	Width     int           `mapstructure:"width"`
	Height    int           `mapstructure:"height"`
	Animation time.Duration `mapstructure:"animation"`
	FPS       int           `mapstructure:"fps"`
	Accent    string        `mapstructure:"accent"`
	Redline   bool          `mapstructure:"redline"`
	URL       string        `mapstructure:"url"`

	Output string `mapstructure:"output"`
	Open   bool   `mapstructure:"open"`
	Format string `mapstructure:"format"`

	Debug   bool `mapstructure:"debug"`
	Verbose bool `mapstructure:"verbose"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
	// Args holds the positional arguments left after flag parsing.
	Args []string `mapstructure:"-"`
}

// Flags returns the flag set understood by Load, useful for usage output.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Float64("arc", 225, "Covered arc of the gauge in degrees (0, 360]")
	fs.Int("max", 100, "Maximum gauge value")
	fs.Int("step", 10, "Value between two labels, must divide max")
	fs.Float64("value", 25, "Initial value")
	fs.String("listen", "", "Serve the live gauge feed on this address, e.g. :8080")
	fs.Int("width", 300, "Gauge width in pixels")
	fs.Int("height", 300, "Gauge height in pixels")
	fs.Duration("animation", 250*time.Millisecond, "Needle animation duration, 0 disables")
	fs.Int("fps", 60, "Needle animation frame rate")
	fs.String("accent", "#ffa500", "Accent color of the slider and readout")
	fs.Bool("redline", false, "Play a warning tone when the needle reaches max")
	fs.String("url", "ws://localhost:8080/ws", "Live feed to drive")
	fs.StringP("output", "o", "gauge.png", "Output file for rendered images")
	fs.Bool("open", false, "Open the rendered image with the system viewer")
	fs.String("format", "yaml", "Layout dump format, yaml or json")
	fs.Bool("debug", false, "Enable debug logging")
	fs.Bool("verbose", false, "Enable verbose logging")
	return fs
}

func Load(name string, args []string) (*Config, error) {
	fs := Flags(name)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if file := os.Getenv(EnvFile); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
		v.AddConfigPath(filepath.Join("/etc", configName))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Args = fs.Args()
	return cfg, nil
}

// Gauge validates the gauge shape.
func (c *Config) Gauge() (gaugemath.Config, error) {
	return gaugemath.NewConfig(c.Arc, c.Max, c.Step)
}
