package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init builds the process-wide logger. Debug mode switches to console
// encoding at debug level.
func Init(debug bool) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		os.Exit(1)
	}
	logger = l
}

func L() *zap.Logger {
	return logger
}

func Sync() {
	_ = logger.Sync()
}
