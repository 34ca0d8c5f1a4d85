package mqtt

import (
	"context"
	"fmt"
	"log/slog"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// slogLogger lets the paho client log through slog.
type slogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

func newSlogLogger(logger *slog.Logger, level slog.Level) *slogLogger {
	return &slogLogger{logger: logger, level: level}
}

func (l *slogLogger) Println(v ...any) {
	l.print(fmt.Sprint(v...))
}

func (l *slogLogger) Printf(format string, v ...any) {
	l.print(fmt.Sprintf(format, v...))
}

func (l *slogLogger) print(msg string) {
	l.logger.Log(context.Background(), l.level, msg)
}

func bridgeLoggers(logger *slog.Logger) {
	paho.CRITICAL = newSlogLogger(logger, slog.LevelError)
	paho.ERROR = newSlogLogger(logger, slog.LevelError)
	paho.WARN = newSlogLogger(logger, slog.LevelWarn)
}
