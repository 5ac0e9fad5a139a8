package app

import (
	"os"

	"service-tracking/internal/config"
	"service-tracking/internal/logx"
)

const serviceName = "service-tracking"

// NewLogger builds the configured backend: slog JSON by default, zap on request.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Log.Backend == config.LogZap {
		return logx.NewZap(serviceName, level)
	}
	return logx.NewJSON(os.Stdout, level).With(logx.String("service", serviceName)), nil
}
