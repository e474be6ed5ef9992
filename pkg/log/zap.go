package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process wide logger. It is a no-op until one of the Init
// functions runs, so library code and tests can log freely.
var Logger = zap.NewNop()

func InitProductionLogger(level string) error {
	return initLogger(zap.NewProductionConfig(), level)
}

func InitDevelopmentLogger(level string) error {
	return initLogger(zap.NewDevelopmentConfig(), level)
}

func initLogger(cfg zap.Config, level string) error {
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Logger = l
	return nil
}

// Named returns a child of the process logger for one component
func Named(name string) *zap.Logger {
	return Logger.Named(name)
}
