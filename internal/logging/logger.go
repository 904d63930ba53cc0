// Package logging provides opt-in, categorized file logging for forge's
// core packages. When Initialize has not been called, every logger is a
// silent no-op so library consumers of internal packages pay nothing by
// default.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category identifies which subsystem a log line came from.
type Category string

const (
	CategoryRunner Category = "runner"
	CategoryStore  Category = "store"
	CategoryChunk  Category = "chunk"
	CategorySearch Category = "search"
	CategoryCLI    Category = "cli"
)

// Logger writes lines to a single category's log file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	mu      sync.RWMutex
	logsDir string
	loggers = make(map[Category]*Logger)
	enabled bool
)

// Initialize turns on file logging, writing one file per category under
// dir. Call once at process startup; safe to skip entirely.
func Initialize(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if dir == "" {
		return fmt.Errorf("logging: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("logging: create dir: %w", err)
	}
	logsDir = dir
	enabled = true
	return nil
}

// Get returns (or lazily creates) the logger for category. Returns a
// no-op logger if Initialize has not been called.
func Get(category Category) *Logger {
	mu.RLock()
	if !enabled {
		mu.RUnlock()
		return &Logger{category: category}
	}
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: could not open %s: %v\n", path, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     f,
		logger:   log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

func (l *Logger) Debug(format string, args ...any) { l.printf("DEBUG", format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.printf("INFO", format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.printf("WARN", format, args...) }
func (l *Logger) Error(format string, args ...any) { l.printf("ERROR", format, args...) }

func (l *Logger) printf(level, format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// Timer measures and logs an operation's duration at Stop.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation under category.
func StartTimer(category Category, op string) *Timer {
	return &Timer{category: category, op: op, start: time.Now()}
}

// Stop logs the elapsed duration at debug level and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning instead of a debug line when elapsed
// exceeds threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}

// Close flushes and closes every open log file. Intended for clean
// process shutdown; safe to call even if Initialize was never called.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
	enabled = false
}
