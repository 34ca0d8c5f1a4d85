package task

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/pricing"
)

type notifyFunc func(title, message string) error

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

type windowNotifier struct {
	logger     *slog.Logger
	store      *board.Store
	windowSize int
	cutoff     int
	notify     notifyFunc
	now        func() time.Time
	until      hours.DateHour // end of the window last notified about
}

// NewWindowNotifyTask sends one desktop notification when the hour the
// cheap window starts has come.
func NewWindowNotifyTask(logger *slog.Logger, store *board.Store, cnfg *config.AppConfig) func() {
	n := &windowNotifier{
		logger:     logger,
		store:      store,
		windowSize: cnfg.Window.GetHours(),
		cutoff:     cnfg.EnergyPrice.GetTomorrowCutoffHour(),
		notify:     desktopNotify,
		now:        hours.Now,
	}
	return n.run
}

func (n *windowNotifier) run() {
	now := n.now()
	v := n.store.View(now, n.windowSize, n.cutoff)
	if v.Window == nil || v.Window.IsTomorrow || v.Window.StartHour != now.Hour() {
		return
	}

	dh := hours.FromTime(now)
	if !n.until.IsZero() && dh.String() < n.until.String() {
		return
	}

	title := fmt.Sprintf("Cheap electricity %s", v.Window.Label())
	message := fmt.Sprintf("The cheapest %d hours in %s start now, average %s SEK/kWh",
		v.WindowSize, v.Area, pricing.FormatPrice(v.Window.AvgPrice))

	if err := n.notify(title, message); err != nil {
		n.logger.Warn("desktop notification failed", slog.Any("error", err))
		return
	}
	n.until = dh.Add(v.WindowSize)
	n.logger.Info("cheap window notification sent", slog.String("window", v.Window.Label()))
}
