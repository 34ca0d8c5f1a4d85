package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/icodeforyou/spotprice-go/database"
)

func TestLevelFromString(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		input    *string
		expected slog.Level
	}{
		{nil, slog.LevelInfo},
		{str("debug"), slog.LevelDebug},
		{str("INFO"), slog.LevelInfo},
		{str("Warn"), slog.LevelWarn},
		{str("error"), slog.LevelError},
		{str("verbose"), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := LevelFromString(tt.input); got != tt.expected {
			t.Errorf("LevelFromString(%v) got %v, wanted %v", tt.input, got, tt.expected)
		}
	}
}

func TestFormatAttrs(t *testing.T) {
	attrs := []slog.Attr{slog.String("module", "task"), slog.String("expr", "a=b;c")}

	if got := formatAttrs(attrs, LogAttrFormatText); got != `module=task; expr=a\=b\;c` {
		t.Errorf("text got %q", got)
	}
	if got := formatAttrs(attrs, LogAttrFormatJSON); got != `[{"module":"task"},{"expr":"a=b;c"}]` {
		t.Errorf("json got %q", got)
	}
	if got := formatAttrs(nil, LogAttrFormatJSON); got != "" {
		t.Errorf("empty got %q", got)
	}
}

func TestMultiHandlerToSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(ctx, filepath.Join(t.TempDir(), "log.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var console bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelDebug}),
		NewSQLiteHandler(db, slog.LevelInfo, LogAttrFormatText),
	)).With(slog.String("module", "test"))

	logger.Debug("only on console")
	logger.Warn("price fetch failed", slog.String("provider", "nordpool"))

	if !strings.Contains(console.String(), "only on console") {
		t.Errorf("console output missing debug record: %s", console.String())
	}

	entries, err := db.GetLogEntries(ctx, slog.LevelDebug, 1, 10)
	if err != nil {
		t.Fatalf("GetLogEntries() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d database entries, wanted 1", len(entries))
	}
	if entries[0].Message != "price fetch failed" || entries[0].Level != int(slog.LevelWarn) {
		t.Errorf("got %+v", entries[0])
	}
	if entries[0].Attrs != "module=test; provider=nordpool" {
		t.Errorf("attrs got %q", entries[0].Attrs)
	}
}
