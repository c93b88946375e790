package logging

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

// NewContext returns a context carrying logger, retrievable with
// FromContext.
func NewContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx by NewContext, or a
// no-op fallback if none was stored.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return zap.NewNop().Sugar()
}

// NewLogger builds the default logger for the demo and bench binaries:
// human-readable in development, JSON otherwise.
func NewLogger(development bool) (*zap.SugaredLogger, error) {
	var (
		cfg zap.Config
	)
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
