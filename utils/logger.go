package utils

import (
	"log"
	"sync"

	"medibook/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	baseLogger *zap.Logger
	loggerOnce sync.Once
)

// GetLogger returns the process-wide logger, building it on first use.
// Production emits JSON at the configured level; development gets a colored
// console encoder at debug.
func GetLogger() *zap.Logger {
	loggerOnce.Do(buildLogger)
	return baseLogger
}

func buildLogger() {
	var cfg zap.Config
	if IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(config.AppConfig.LogLevel))
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	baseLogger = l
}

// parseLevel maps the LOG_LEVEL config value to a zap level, defaulting to
// info on anything unrecognized.
func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
