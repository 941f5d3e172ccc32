package logger

import (
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger: the ectologger facade the rest of the
// code logs through, backed by a zap core.
func New(appName, level string, pretty bool) (ectologger.Logger, error) {
	zapLevel := zapcore.InfoLevel
	if err := zapLevel.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if pretty {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	zl, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}

	return zapadapter.NewZapEctoLogger(zl.Named(appName), nil), nil
}
