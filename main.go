package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/roffe/speedometer/pkg/animation"
	"github.com/roffe/speedometer/pkg/colors"
	"github.com/roffe/speedometer/pkg/config"
	"github.com/roffe/speedometer/pkg/ebus"
	"github.com/roffe/speedometer/pkg/gaugestate"
	"github.com/roffe/speedometer/pkg/layout"
	"github.com/roffe/speedometer/pkg/logger"
	"github.com/roffe/speedometer/pkg/render"
	"github.com/roffe/speedometer/pkg/server"
	"github.com/roffe/speedometer/pkg/sound"
	"github.com/roffe/speedometer/pkg/theme"
	"github.com/roffe/speedometer/pkg/widgets"
	"github.com/roffe/speedometer/pkg/widgets/gauge"
)

const (
	sliderPadding = 20
	redlineFreq   = 880
	redlineTone   = 150 * time.Millisecond
	redlineVolume = 0.4
)

func main() {
	cfg, err := config.Load("speedometer", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(cfg.Debug, cfg.Verbose, os.Stderr)

	gcfg, err := cfg.Gauge()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid gauge")
	}
	accent, err := colors.ParseHex(cfg.Accent)
	if err != nil {
		logger.Warn().Err(err).Msg("using default accent")
		accent = colors.Readout
	}
	logger.Info().Stringer("gauge", gcfg).Str("config", cfg.File).Msg("starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := ebus.New()
	defer bus.Close()
	cell := gaugestate.NewCell(gcfg, bus, "", cfg.Value)

	a := app.NewWithID("com.roffe.speedometer")
	a.Settings().SetTheme(&theme.SpeedoTheme{Accent: accent})
	w := a.NewWindow("Speedometer")

	g := gauge.New(&widgets.GaugeConfig{
		Gauge:   gcfg,
		MinSize: fyne.NewSize(float32(cfg.Width), float32(cfg.Height)),
	})

	slider := widget.NewSlider(0, float64(gcfg.MaxValue))
	slider.Step = 1

	zero := widget.NewButton("Zero", func() { cell.Zero() })
	zero.Importance = widget.SuccessImportance
	maxBtn := widget.NewButton("Max", func() { cell.Max() })
	maxBtn.Importance = widget.DangerImportance

	needle := animation.New(cell.Value(), cfg.Animation)
	unbind := widgets.BindSlider(slider, cell, func(v float64) {
		needle.Retarget(v, time.Now())
	})
	defer unbind()
	go animation.Run(ctx, cfg.FPS, needle, g.SetValue)

	if cfg.Redline {
		go func() {
			if err := sound.Init(); err != nil {
				logger.Warn().Err(err).Msg("audio unavailable, redline tone disabled")
			}
		}()
		stopRedline := cell.OnChange(sound.Redline(float64(gcfg.MaxValue), cell.Value(), func() {
			if err := sound.PlayTone(redlineFreq, redlineTone, redlineVolume); err != nil {
				logger.Debug().Err(err).Msg("redline tone")
			}
		}))
		defer stopRedline()
	}

	if cfg.Listen != "" {
		srv := server.New(cell, render.Options{Width: cfg.Width, Height: cfg.Height})
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				logger.Error().Err(err).Msg("live feed server")
			}
		}()
	}

	w.SetContent(container.NewBorder(
		nil,
		container.NewVBox(
			layout.NewHPadded(sliderPadding, slider),
			container.New(&layout.Horizontal{}, zero, maxBtn),
		),
		nil,
		nil,
		layout.NewSquare(g),
	))
	w.Resize(fyne.NewSize(float32(cfg.Width)+2*sliderPadding, float32(cfg.Height)+120))
	w.ShowAndRun()
}
