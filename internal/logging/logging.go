// Package logging builds the zap logger shared by the commands and the
// ops server.
package logging

import (
	"github.com/juju/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"itam-service/internal/config"
)

// New returns a logger writing to stderr with the configured level and
// encoding.
func New(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, errors.NewNotValid(err, "log level")
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Encoding == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	zcfg := zap.Config{
		Level:             level,
		Encoding:          cfg.Encoding,
		EncoderConfig:     encoderCfg,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Annotate(err, "building logger")
	}
	return logger, nil
}
