// Package logger provides the process-wide zap sugared logger.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const environmentProduction = "production"

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

// Init builds the shared logger once. An unknown level falls back to info;
// the production environment switches to JSON output. Later calls return the
// logger built by the first one.
func Init(level, environment string) *zap.SugaredLogger {
	once.Do(func() {
		logger = newLogger(level, environment)
	})
	return logger
}

// GetLogger returns the shared logger, initializing it with defaults when
// Init has not run.
func GetLogger() *zap.SugaredLogger {
	return Init("info", "development")
}

func newLogger(level, environment string) *zap.SugaredLogger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if environment == environmentProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return zapLogger.Sugar()
}

// Close flushes buffered log entries. Call it before the process exits.
func Close() error {
	if logger == nil {
		return nil
	}
	if err := logger.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
		return err
	}
	return nil
}
