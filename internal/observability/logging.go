// Package observability builds the areamap logger. Layout runs write their
// warnings and unplaced sections through it, so it always goes to stderr and
// leaves stdout free for piping.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/mudmap/internal/config"
)

// preset returns the zap preset a logging.format starts from.
func preset(format string) (zap.Config, bool) {
	switch format {
	case "json":
		return zap.NewProductionConfig(), true
	case "console":
		c := zap.NewDevelopmentConfig()
		c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return c, true
	}
	return zap.Config{}, false
}

// NewLogger returns the root "mudmap" logger for cfg. Stack traces are off:
// a skipped exit or an unplaced section is reported by its fields, not by
// where in the layout code it was noticed.
//
// Precondition: cfg has passed config validation.
// Postcondition: Returns a logger writing to stderr, or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	zc, ok := preset(cfg.Format)
	if !ok {
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named("mudmap"), nil
}
