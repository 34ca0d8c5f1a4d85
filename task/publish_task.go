package task

import (
	"log/slog"

	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/hours"
)

type ViewPublisher interface {
	Publish(v board.View) error
}

func NewPublishTask(logger *slog.Logger, publisher ViewPublisher, store *board.Store, cnfg *config.AppConfig) func() {
	return func() {
		v := store.View(hours.Now(), cnfg.Window.GetHours(), cnfg.EnergyPrice.GetTomorrowCutoffHour())
		if err := publisher.Publish(v); err != nil {
			logger.Error("publish task error", slog.Any("error", err))
			return
		}
		logger.Debug("published current prices", slog.Int("hour", v.CurrentHour))
	}
}
