package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/providers"
	"github.com/lmittmann/tint"
)

func main() {
	area := flag.String("area", "", "price area, SE1-SE4")
	window := flag.Int("window", 0, "charging window in hours")
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelWarn,
		TimeFormat: time.TimeOnly,
	}))

	cnfg := &config.AppConfig{}
	if *configPath != "" {
		var err error
		if cnfg, err = config.Load(*configPath); err != nil {
			logger.Error("failed to load config", slog.Any("error", err))
			os.Exit(1)
		}
	}
	if *area != "" {
		cnfg.EnergyPrice.Area = area
	}
	if *window > 0 {
		cnfg.Window.Hours = window
	}

	if err := hours.SetGuiTimezone(cnfg.Gui.GetTimezone()); err != nil {
		logger.Error("invalid gui timezone", slog.Any("error", err))
		os.Exit(1)
	}

	list, err := providers.FromConfig(*cnfg)
	if err != nil {
		logger.Error("invalid price providers", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := hours.Now()
	today, provider, err := providers.FetchDay(ctx, logger, list, now)
	if len(today) == 0 {
		logger.Error("no prices for today", slog.Any("error", err))
		os.Exit(1)
	}

	in := board.Input{
		Area:               cnfg.EnergyPrice.GetArea(),
		Provider:           provider,
		FetchedAt:          time.Now(),
		Today:              today,
		Now:                now,
		WindowSize:         cnfg.Window.GetHours(),
		TomorrowCutoffHour: cnfg.EnergyPrice.GetTomorrowCutoffHour(),
	}
	if now.Hour() >= in.TomorrowCutoffHour {
		in.Tomorrow, _, _ = providers.FetchDay(ctx, logger, list, hours.Tomorrow(now))
	}

	fmt.Println(render(board.Build(in)))
}
