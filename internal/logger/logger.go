// Package logger builds the process-wide zap logger from config.
package logger

import (
	"fmt"

	"github.com/pipeforge/lead-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a structured logger. Production and json-format configs
// get the JSON encoder; everything else gets the colored console encoder.
// An unparseable level falls back to info.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// WithRequest tags a logger with the request it serves.
func WithRequest(log *zap.Logger, method, path, requestID string) *zap.Logger {
	return log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// WithUser tags a logger with the acting user.
func WithUser(log *zap.Logger, userID, displayName string) *zap.Logger {
	return log.With(
		zap.String("user_id", userID),
		zap.String("user_name", displayName),
	)
}
