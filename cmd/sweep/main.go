// Command sweep connects to a running live feed and swings the needle from
// zero to max and back until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roffe/speedometer/pkg/client"
	"github.com/roffe/speedometer/pkg/config"
	"github.com/roffe/speedometer/pkg/logger"
)

func main() {
	cfg, err := config.Load("sweep", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.Debug, cfg.Verbose, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.Dial(ctx, cfg.URL, client.DefaultRetry)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect")
	}
	defer c.Close()

	go func() {
		for {
			f, err := c.ReadFrame()
			if err != nil {
				if ctx.Err() == nil {
					logger.Error().Err(err).Msg("feed")
					stop()
				}
				return
			}
			logger.Debug().Float64("value", f.Value).Float64("angle", f.Angle).Str("color", f.Color).Msg("frame")
		}
	}()

	if err := sweep(ctx, c, float64(c.Layout().Config.MaxValue), cfg.FPS); err != nil {
		logger.Error().Err(err).Msg("sweep")
	}
	logger.Info().Msg("stopped")
}

func sweep(ctx context.Context, c *client.Client, top float64, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()

	// one full swing up takes two seconds
	step := top / float64(2*fps)
	v, dir := 0.0, 1.0
	for {
		select {
		case <-ctx.Done():
			return c.Zero()
		case <-t.C:
			v += dir * step
			switch {
			case v >= top:
				v, dir = top, -1
			case v <= 0:
				v, dir = 0, 1
			}
			if err := c.Set(v); err != nil {
				return err
			}
		}
	}
}
