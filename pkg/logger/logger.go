package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global zap logger, initialized once at startup.
var Log *zap.Logger

// Init builds the global logger. Debug mode uses the development
// config (console encoder, human timestamps); otherwise JSON.
func Init(debug bool) {
	var (
		l   *zap.Logger
		err error
	)

	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Log = l
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
