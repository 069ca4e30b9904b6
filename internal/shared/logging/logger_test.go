package logging

import (
	"bytes"
	"context"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"err":     slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v want %v", raw, got, want)
		}
	}
}

func TestNewHonoursFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, Config{Format: "json"}).Info("hello", slog.String("k", "v"))
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected json line, got %q", buf.String())
	}

	buf.Reset()
	New(&buf, Config{Level: "warn"}).Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level, got %q", buf.String())
	}
}

func TestMaskToken(t *testing.T) {
	t.Parallel()

	if got := MaskToken("abcdefghijkl"); got != "abcd...ijkl" {
		t.Fatalf("unexpected mask %q", got)
	}
	if got := MaskToken("short"); got != "*****" {
		t.Fatalf("unexpected mask %q", got)
	}
}

func TestSetupWritesDailyFile(t *testing.T) {
	previous := slog.Default()
	previousOut := log.Writer()
	t.Cleanup(func() {
		slog.SetDefault(previous)
		log.SetOutput(previousOut)
	})

	dir := filepath.Join(t.TempDir(), "nested")
	day := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	file, _, err := Setup(Config{Directory: dir, Format: "text"}, func() time.Time { return day })
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	slog.Info("canteen gateway up")
	if err := file.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "2026-03-04.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(content), "canteen gateway up") {
		t.Fatalf("log line missing: %q", content)
	}
}

func TestRequestsKeepsRequestID(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Requests()(func(c echo.Context) error {
		if got := RequestID(c); got != "req-1" {
			t.Fatalf("unexpected request id %q", got)
		}
		return c.NoContent(http.StatusNoContent)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestDailyFileRotatesAtMidnight(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2026, time.March, 4, 23, 59, 0, 0, time.UTC)
	file, err := OpenDailyFile(dir, func() time.Time { return now })
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := file.Write([]byte("before midnight\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := file.Write([]byte("after midnight\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	first, err := os.ReadFile(filepath.Join(dir, "2026-03-04.log"))
	if err != nil || string(first) != "before midnight\n" {
		t.Fatalf("unexpected first day log %q: %v", first, err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "2026-03-05.log"))
	if err != nil || string(second) != "after midnight\n" {
		t.Fatalf("unexpected second day log %q: %v", second, err)
	}
	if _, err := file.Write([]byte("late")); err == nil {
		t.Fatal("write after close must fail")
	}
}

func TestTraceLevelBelowDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "debug"})
	logger.Log(context.Background(), LevelTrace, "frame")
	if buf.Len() != 0 {
		t.Fatalf("trace must be filtered at debug level, got %q", buf.String())
	}
	New(&buf, Config{Level: "trace"}).Log(context.Background(), LevelTrace, "frame")
	if !strings.Contains(buf.String(), "frame") {
		t.Fatalf("trace line missing: %q", buf.String())
	}
}
