package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	outputStdout = "stdout"
	outputStderr = "stderr"
)

// NewLogger builds the logger for one process, named after it so that client
// and devwallet output can be told apart when interleaved. Colored levels are
// used only for console output going to a standard stream.
func NewLogger(cfg LoggingConfig, name string) (*zap.Logger, error) {
	output := cfg.OutputPath
	if output == "" {
		output = outputStdout
	}
	toStream := output == outputStdout || output == outputStderr

	var zapConfig zap.Config
	switch cfg.Format {
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		zapConfig = zap.NewDevelopmentConfig()
		if toStream {
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = []string{output}
	zapConfig.ErrorOutputPaths = []string{output}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if name != "" {
		logger = logger.Named(name)
	}
	return logger, nil
}
