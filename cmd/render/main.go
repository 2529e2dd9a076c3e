// Command render writes a gauge as PNG or dumps its tick and label layout.
//
//	render [flags] [png|layout]
package main

import (
	"fmt"
	"os"

	"github.com/roffe/speedometer/pkg/config"
	"github.com/roffe/speedometer/pkg/logger"
	"github.com/roffe/speedometer/pkg/render"
	"github.com/skratchdot/open-golang/open"
)

func main() {
	cfg, err := config.Load("render", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.Debug, cfg.Verbose, os.Stderr)

	gcfg, err := cfg.Gauge()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid gauge")
	}

	cmd := "png"
	if len(cfg.Args) > 0 {
		cmd = cfg.Args[0]
	}

	switch cmd {
	case "png":
		opts := render.Options{Width: cfg.Width, Height: cfg.Height}
		if err := render.SavePNG(cfg.Output, gcfg, cfg.Value, opts); err != nil {
			logger.Fatal().Err(err).Str("output", cfg.Output).Msg("render")
		}
		logger.Info().Str("output", cfg.Output).Float64("value", cfg.Value).Msg("rendered")
		if cfg.Open {
			if err := open.Start(cfg.Output); err != nil {
				logger.Error().Err(err).Msg("open viewer")
			}
		}
	case "layout":
		if err := render.EncodeLayout(os.Stdout, gcfg, cfg.Format); err != nil {
			logger.Fatal().Err(err).Msg("layout")
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q, want png or layout\n", cmd)
		config.Flags("render").PrintDefaults()
		os.Exit(2)
	}
}
