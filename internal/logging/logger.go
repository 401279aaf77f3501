// Package logging provides categorized structured logging for letterbox.
// Every category is a named child of one zap core. With no sink configured
// the loggers are no-ops, which is what the terminal UI wants by default
// since stdout belongs to the board.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryConfig Category = "config" // Config load/save
	CategoryInput  Category = "input"  // Keystrokes, focus, clear
	CategorySolve  Category = "solve"  // Solve round trip
	CategoryRender Category = "render" // Result rendering
)

// Options mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console, json
	// File is the sink path. "stderr" and "stdout" name the standard
	// streams; empty disables logging.
	File       string
	Categories map[string]bool
}

// Logger is a category-scoped sugared zap logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu         sync.RWMutex
	root       = zap.NewNop()
	loggers    = make(map[Category]*Logger)
	categories map[string]bool
	closeSink  func() error
)

// Initialize builds the root logger from opts. It may be called again to
// reconfigure; previously returned loggers keep their old core.
func Initialize(opts Options) error {
	l, closer, err := build(opts)
	if err != nil {
		return err
	}

	mu.Lock()
	if closeSink != nil {
		_ = closeSink()
	}
	root = l
	closeSink = closer
	categories = opts.Categories
	loggers = make(map[Category]*Logger)
	mu.Unlock()

	Boot("logging initialized (level=%s format=%s file=%s)", levelOrDefault(opts.Level), formatOrDefault(opts.Format), opts.File)
	return nil
}

// InitializeWithFallback is Initialize, except that a bad level or format
// falls back to the defaults instead of leaving logging off. The original
// error is still returned so the caller can report it.
func InitializeWithFallback(opts Options) error {
	err := Initialize(opts)
	if err == nil {
		return nil
	}
	opts.Level, opts.Format = "", ""
	if ferr := Initialize(opts); ferr != nil {
		return errors.Join(err, ferr)
	}
	return err
}

// UseLogger installs an existing zap logger as the root, for callers (and
// tests) that already own one.
func UseLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
	categories = nil
	loggers = make(map[Category]*Logger)
}

// Root returns the root zap logger.
func Root() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

func build(opts Options) (*zap.Logger, func() error, error) {
	if opts.File == "" {
		return zap.NewNop(), nil, nil
	}

	level, err := zapcore.ParseLevel(levelOrDefault(opts.Level))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch formatOrDefault(opts.Format) {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "text":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, nil, fmt.Errorf("invalid log format %q (valid: console, json)", opts.Format)
	}

	var (
		ws     zapcore.WriteSyncer
		closer func() error
	)
	switch strings.ToLower(opts.File) {
	case "stderr":
		ws = zapcore.Lock(os.Stderr)
	case "stdout":
		ws = zapcore.Lock(os.Stdout)
	default:
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		ws = zapcore.AddSync(f)
		closer = f.Close
	}

	core := zapcore.NewCore(enc, ws, level)
	return zap.New(core), closer, nil
}

func levelOrDefault(level string) string {
	if level == "" {
		return "info"
	}
	if level == "warning" {
		return "warn"
	}
	return level
}

func formatOrDefault(format string) string {
	if format == "" {
		return "console"
	}
	return format
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	if categories == nil {
		return true
	}
	enabled, exists := categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Disabled categories get a no-op logger.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}
	l := &Logger{category: category, sugar: root.Named(string(category)).Sugar()}
	loggers[category] = l
	return l
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With returns a logger carrying the given key-value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// Sync flushes the root logger. Call at shutdown.
func Sync() {
	mu.RLock()
	r := root
	mu.RUnlock()
	_ = r.Sync()
}

// CloseAll flushes and closes the sink.
func CloseAll() {
	Sync()
	mu.Lock()
	defer mu.Unlock()
	if closeSink != nil {
		_ = closeSink()
		closeSink = nil
	}
	root = zap.NewNop()
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debug(format, args...)
}

// BootError logs an error to the boot category
func BootError(format string, args ...interface{}) {
	Get(CategoryBoot).Error(format, args...)
}

// Config logs to the config category
func Config(format string, args ...interface{}) {
	Get(CategoryConfig).Info(format, args...)
}

// ConfigWarn logs a warning to the config category
func ConfigWarn(format string, args ...interface{}) {
	Get(CategoryConfig).Warn(format, args...)
}

// InputDebug logs debug to the input category
func InputDebug(format string, args ...interface{}) {
	Get(CategoryInput).Debug(format, args...)
}

// Input logs to the input category
func Input(format string, args ...interface{}) {
	Get(CategoryInput).Info(format, args...)
}

// Solve logs to the solve category
func Solve(format string, args ...interface{}) {
	Get(CategorySolve).Info(format, args...)
}

// SolveDebug logs debug to the solve category
func SolveDebug(format string, args ...interface{}) {
	Get(CategorySolve).Debug(format, args...)
}

// SolveWarn logs a warning to the solve category
func SolveWarn(format string, args ...interface{}) {
	Get(CategorySolve).Warn(format, args...)
}

// SolveError logs an error to the solve category
func SolveError(format string, args ...interface{}) {
	Get(CategorySolve).Error(format, args...)
}

// Render logs to the render category
func Render(format string, args ...interface{}) {
	Get(CategoryRender).Info(format, args...)
}

// RenderDebug logs debug to the render category
func RenderDebug(format string, args ...interface{}) {
	Get(CategoryRender).Debug(format, args...)
}

// =============================================================================
// REQUEST ID TRACING
// =============================================================================

// WithRequestID creates a request-scoped logger carrying the correlation ID
func WithRequestID(category Category, requestID string) *Logger {
	return Get(category).With("req", requestID)
}

// =============================================================================
// TIMING HELPERS
// =============================================================================

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

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
