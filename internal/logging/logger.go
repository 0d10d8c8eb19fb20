// Package logging builds the application logger. The TUI owns the terminal,
// so logs go to a file as JSON.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// Level resolves the log level: LOG_LEVEL wins over the configured value,
// and anything unparsable falls back to info.
func Level(configured string) zap.AtomicLevel {
	level := zap.NewAtomicLevel()
	for _, candidate := range []string{os.Getenv("LOG_LEVEL"), configured} {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" {
			continue
		}
		if err := level.UnmarshalText([]byte(candidate)); err == nil {
			return level
		}
	}
	_ = level.UnmarshalText([]byte(defaultLogLevel))
	return level
}

// New constructs a JSON logger appending to path. An empty path logs to
// stderr, which the CLI subcommands use.
func New(path, configured string) (*zap.Logger, error) {
	output := "stderr"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, err
		}
		output = path
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
	}

	cfg := zap.Config{
		Level:             Level(configured),
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{output},
		DisableStacktrace: true,
	}

	return cfg.Build()
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
