package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace sits below debug for per-frame websocket and broker detail.
const LevelTrace = slog.LevelDebug - 4

// Config selects where the gateway logs and how.
type Config struct {
	// Directory receives one file per day; empty means ./logs.
	Directory string
	// Level is trace, debug, info, warn or error.
	Level string
	// Format is json or text.
	Format    string
	AddSource bool
}

// ParseLevel converts textual levels into slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return LevelTrace
	case "debug", "dbg":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w. A nil writer means stdout.
func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// DailyFile is a writer that appends to <dir>/<YYYY-MM-DD>.log and moves to a new file
// when the UTC date changes.
type DailyFile struct {
	dir  string
	now  func() time.Time
	mu   sync.Mutex
	day  string
	file *os.File
}

// OpenDailyFile creates dir when needed and opens the file for the current date.
func OpenDailyFile(dir string, now func() time.Time) (*DailyFile, error) {
	if dir == "" {
		dir = "./logs"
	}
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	d := &DailyFile{dir: dir, now: now}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.rotateLocked(now().UTC().Format("2006-01-02")); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DailyFile) rotateLocked(day string) error {
	name := filepath.Join(d.dir, day+".log")
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if d.file != nil {
		_ = d.file.Close()
	}
	d.file, d.day = file, day
	return nil
}

func (d *DailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return 0, os.ErrClosed
	}
	if day := d.now().UTC().Format("2006-01-02"); day != d.day {
		if err := d.rotateLocked(day); err != nil {
			return 0, err
		}
	}
	return d.file.Write(p)
}

func (d *DailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Setup tees stdout into a DailyFile and installs the result as the slog default and as the
// standard logger's output. The caller closes the returned file.
func Setup(cfg Config, now func() time.Time) (*DailyFile, *slog.Logger, error) {
	file, err := OpenDailyFile(cfg.Directory, now)
	if err != nil {
		return nil, nil, err
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := New(writer, cfg)
	slog.SetDefault(logger)
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")
	return file, logger, nil
}

// MaskToken keeps enough of a bearer token to correlate log lines without leaking it.
func MaskToken(token string) string {
	trimmed := strings.TrimSpace(token)
	if len(trimmed) <= 8 {
		return strings.Repeat("*", len(trimmed))
	}
	return trimmed[:4] + "..." + trimmed[len(trimmed)-4:]
}
