// Package logger builds the service's zap logger from configuration.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nrfta/listview-go/internal/config"
)

// New returns a production JSON logger in "production" mode and a
// development console logger otherwise.
func New(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Mode == "production" {
		zcfg = zap.NewProductionConfig()
	}

	zcfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Encoding != "" {
		zcfg.Encoding = cfg.Encoding
	}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.MessageKey = "msg"
	zcfg.EncoderConfig.LevelKey = "level"
	zcfg.EncoderConfig.CallerKey = "caller"

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
