// Package logging provides config-driven categorized logging for perfbench.
// Each category is a named child of one zap logger writing to stderr, so
// program output on stdout is never interleaved with log lines.
// Logging is controlled by debug_mode in the logging config - when false,
// every category logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"perfbench/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryKernel Category = "kernel" // Benchmark program execution
	CategoryTiming Category = "timing" // Data file parsing and aggregation
	CategoryRunner Category = "runner" // Timed in-process runs
	CategoryStore  Category = "store"  // SQLite result store
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	cfg     config.LoggingConfig
	loggers = make(map[Category]*zap.SugaredLogger)
)

// Initialize builds the root logger from the logging config, writing to
// stderr. It may be called again to reconfigure.
func Initialize(c config.LoggingConfig) error {
	return InitializeWithSink(c, zapcore.Lock(os.Stderr))
}

// InitializeWithSink is Initialize with an explicit destination.
func InitializeWithSink(c config.LoggingConfig, sink zapcore.WriteSyncer) error {
	level, err := zapcore.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	var logger *zap.Logger
	if c.DebugMode {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		var enc zapcore.Encoder
		switch c.Format {
		case "json":
			enc = zapcore.NewJSONEncoder(encCfg)
		case "", "console", "text":
			enc = zapcore.NewConsoleEncoder(encCfg)
		default:
			return fmt.Errorf("invalid log format %q (valid: json, console)", c.Format)
		}
		logger = zap.New(zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(level)))
	} else {
		logger = zap.NewNop()
	}

	mu.Lock()
	defer mu.Unlock()
	_ = root.Sync()
	root = logger
	cfg = c
	loggers = make(map[Category]*zap.SugaredLogger)

	return nil
}

// IsDebugMode returns whether logging is enabled at all.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.DebugMode
}

// Get returns (or creates) the logger for a category.
// Returns a no-op logger if debug mode or the category is disabled.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
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

	var l *zap.SugaredLogger
	if cfg.IsCategoryEnabled(string(category)) {
		l = root.Named(string(category)).Sugar()
	} else {
		l = zap.NewNop().Sugar()
	}
	loggers[category] = l
	return l
}

// Sync flushes buffered log entries. Call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debugf(format, args...)
}

// StoreDebug logs debug to the store category
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debugf(format, args...)
}

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration at debug level
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debugw("operation completed", "op", t.op, "elapsed", elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warnw("operation slow", "op", t.op, "elapsed", elapsed, "threshold", threshold)
	} else {
		Get(t.category).Debugw("operation completed", "op", t.op, "elapsed", elapsed)
	}
	return elapsed
}
