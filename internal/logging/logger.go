// Package logging provides config-driven categorized logging for formstate.
// All categories share one zap logger; each category gets a named child.
// Logging is controlled by logging.debug_mode in the config - when false,
// every logger is a no-op.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"formstate/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config loading
	CategoryProvider Category = "provider" // Container mount, dispatch, unmount
	CategoryReducer  Category = "reducer"  // Transition function decisions
	CategoryUI       Category = "ui"       // Interactive editor
	CategoryWatch    Category = "watch"    // Record file watcher
	CategoryCLI      Category = "cli"      // Command execution
)

// Logger is a category logger with printf-style methods.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	base   = zap.NewNop()
	cfg    config.LoggingConfig
	baseMu sync.RWMutex
)

// Initialize builds the shared zap logger from the logging config.
// Calling it again replaces the previous logger.
func Initialize(c config.LoggingConfig) error {
	if !c.DebugMode {
		install(zap.NewNop(), c)
		return nil
	}

	var zc zap.Config
	if c.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := parseLevel(c.Level)
	if err != nil {
		return err
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if c.File != "" {
		zc.OutputPaths = []string{c.File}
		zc.ErrorOutputPaths = []string{c.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
	}

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	install(l, c)

	Get(CategoryBoot).Info("logging initialized (level=%s format=%s)", level, c.Format)
	return nil
}

// SetForTest installs l as the shared logger with every category enabled.
// It returns a function restoring the previous logger.
func SetForTest(l *zap.Logger) func() {
	baseMu.Lock()
	prevBase, prevCfg := base, cfg
	baseMu.Unlock()

	install(l, config.LoggingConfig{DebugMode: true})
	return func() { install(prevBase, prevCfg) }
}

func install(l *zap.Logger, c config.LoggingConfig) {
	baseMu.Lock()
	defer baseMu.Unlock()
	base = l
	cfg = c
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	baseMu.RLock()
	defer baseMu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	baseMu.RLock()
	l := base
	baseMu.RUnlock()
	return &Logger{category: category, sugar: l.Named(string(category)).Sugar()}
}

// Category returns the category this logger writes to.
func (l *Logger) Category() Category {
	return l.category
}

// With returns a child logger carrying the given fields on every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.Desugar().With(fields...).Sugar()}
}

// Zap exposes the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
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

// Sync flushes buffered entries of the shared logger.
func Sync() error {
	baseMu.RLock()
	defer baseMu.RUnlock()
	return base.Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// CLI logs to the cli category
func CLI(format string, args ...interface{}) {
	Get(CategoryCLI).Info(format, args...)
}

// CLIDebug logs debug to the cli category
func CLIDebug(format string, args ...interface{}) {
	Get(CategoryCLI).Debug(format, args...)
}
