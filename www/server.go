package www

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/database"
	"github.com/icodeforyou/spotprice-go/hours"
)

type Server struct {
	logger   *slog.Logger
	config   *config.AppConfig
	store    *board.Store
	hub      *Hub
	tm       *TemplateManager
	settings *settings
	mux      *http.ServeMux
	now      func() time.Time
}

//go:embed static
var embeddedStaticDir embed.FS

func NewServer(db *database.Database, store *board.Store, priceTask func(), cnfg *config.AppConfig) (*Server, error) {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.Api.WwwDir)
	if err != nil {
		return nil, fmt.Errorf("template manager initialization error: %w", err)
	}

	s := &Server{
		logger: logger,
		config: cnfg,
		store:  store,
		hub:    NewHub(logger),
		tm:     tm,
		settings: newSettings(
			logger.With(slog.String("handler", "settings")),
			cnfg.Api.SessionSecret,
			cnfg.Window.GetHours(),
			cnfg.Window.GetMaxHours()),
		mux: http.NewServeMux(),
		now: hours.Now,
	}

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", staticFilesHandler(cnfg.Api.WwwDir)))

	s.mux.Handle("/{$}", logReqMW(NewDashboardHandler(
		logger.With(slog.String("handler", "dashboard")), s)))

	s.mux.Handle("/api/snapshot", logReqMW(NewSnapshotHandler(
		logger.With(slog.String("handler", "snapshot")), s)))

	s.mux.Handle("/api/refresh", logReqMW(NewRefreshHandler(
		logger.With(slog.String("handler", "refresh")), priceTask)))

	s.mux.Handle("/chart", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "chart")), s)))

	s.mux.Handle("/settings", logReqMW(s.settings.handler()))

	s.mux.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")), db, tm)))

	s.mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		if !s.hub.register(client) {
			client.conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	})

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// view is the dashboard view with the window size chosen by the browser.
func (s *Server) view(r *http.Request) board.View {
	return s.store.View(s.now(), s.settings.windowHours(r), s.config.EnergyPrice.GetTomorrowCutoffHour())
}

func (s *Server) realtimeFragment() ([]byte, error) {
	v := s.store.View(s.now(), s.settings.defaultHours, s.config.EnergyPrice.GetTomorrowCutoffHour())
	buf, err := s.tm.Execute("realtime.html", newRealtimeData(v))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) Run(ctx context.Context) {
	addr := fmt.Sprintf("%s:%d", s.config.Api.Address, s.config.Api.GetPort())
	s.logger.Info("starting server...", slog.String("addr", addr))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.hub.Run(ctx)

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Second * 2)
	defer ticker.Stop()

	// Keeping state to avoid spamming logs
	renderErrorState := false

	for {
		select {
		case err := <-srvErrors:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("server error", slog.Any("error", err))
			}
			return

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			err := srv.Shutdown(shutdownCtx)
			if err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			if s.hub.ClientCount() == 0 {
				continue
			}

			buf, err := s.realtimeFragment()
			if err != nil {
				if !renderErrorState {
					renderErrorState = true
					s.logger.Error("template execution failed", slog.Any("error", err))
				}
				continue
			}
			renderErrorState = false

			select {
			case s.hub.Broadcast <- buf:
			case <-ctx.Done():
			}
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
