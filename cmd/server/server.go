package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roffe/speedometer/pkg/config"
	"github.com/roffe/speedometer/pkg/ebus"
	"github.com/roffe/speedometer/pkg/gaugestate"
	"github.com/roffe/speedometer/pkg/logger"
	"github.com/roffe/speedometer/pkg/render"
	"github.com/roffe/speedometer/pkg/server"
)

const defaultListen = ":8080"

func main() {
	cfg, err := config.Load("server", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.Debug, cfg.Verbose, os.Stderr)

	gcfg, err := cfg.Gauge()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid gauge")
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}

	bus := ebus.New()
	defer bus.Close()
	cell := gaugestate.NewCell(gcfg, bus, "", cfg.Value)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.New(cell, render.Options{Width: cfg.Width, Height: cfg.Height})
	if err := s.ListenAndServe(ctx, cfg.Listen); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		return
	}
	logger.Info().Msg("shutdown complete")
}
