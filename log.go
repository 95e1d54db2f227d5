package manipulate

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logOnce sync.Once
	logger  *log.Logger
)

// packageLogger returns the shared logger, creating it on first use.
func packageLogger() *log.Logger {
	logOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "manipulate",
			Level:           log.WarnLevel,
		})
	})
	return logger
}

// SetLogger replaces the package logger. Behaviors created without
// WithLogger use it.
func SetLogger(l *log.Logger) {
	logOnce.Do(func() {})
	logger = l
}

// SetLogLevel parses level ("debug", "info", "warn", "error") and applies it
// to the package logger.
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	packageLogger().SetLevel(lvl)
	return nil
}
