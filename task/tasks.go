package task

import (
	"context"
	"log/slog"

	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/database"
	"github.com/icodeforyou/spotprice-go/types"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron             *cron.Cron
	cnfg             *config.AppConfig
	PriceTask        func()
	PublishTask      func()
	WindowNotifyTask func()
	MaintenanceTask  func()
}

// NewTasks creates all tasks, publisher may be nil when MQTT is disabled.
func NewTasks(
	db *database.Database,
	store *board.Store,
	providers []types.PriceProvider,
	publisher ViewPublisher,
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")

	publish := func() {}
	if publisher != nil {
		publish = NewPublishTask(logger.With(slog.String("task", "publish")), publisher, store, cnfg)
	}

	fetch := NewPriceTask(logger.With(slog.String("task", "energy_price")), db, store, providers, cnfg.EnergyPrice)

	return &Tasks{
		cron: cron.New(),
		cnfg: cnfg,
		PriceTask: func() {
			fetch()
			publish()
		},
		PublishTask:      publish,
		WindowNotifyTask: NewWindowNotifyTask(logger.With(slog.String("task", "window_notify")), store, cnfg),
		MaintenanceTask:  NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.EnergyPrice.GetRunAt(), t.PriceTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("@hourly", t.PublishTask)
	if err != nil {
		panic(err)
	}
	if t.cnfg.Notify.Desktop {
		_, err = t.cron.AddFunc("0 * * * *", t.WindowNotifyTask)
		if err != nil {
			panic(err)
		}
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
