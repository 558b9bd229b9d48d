package logging

import (
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production JSON logger writing to stderr at the given level.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid log level %q", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func Nop() *zap.Logger {
	return zap.NewNop()
}

// Diagnostic logs a recovered condition. Empty input is expected often enough
// to stay at info; everything else is a warning.
func Diagnostic(logger *zap.Logger, file string, d model.Diagnostic) {
	fields := []zap.Field{
		zap.Stringer("kind", d.Kind),
		zap.Int("track", d.Track),
		zap.Int64("tick", d.Tick),
		zap.String("file", file),
	}
	if d.Kind == model.EmptyInput {
		logger.Info(d.Message, fields...)
		return
	}
	logger.Warn(d.Message, fields...)
}
