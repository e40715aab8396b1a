// Package logging builds the zap logger used across Start Board.
//
// The dashboard owns the terminal, so logs go to a file unless "stderr" is
// configured explicitly.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// StderrOutput as Config.File writes logs to stderr.
const StderrOutput = "stderr"

// Config holds logging configuration.
type Config struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `koanf:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `koanf:"format" yaml:"format"`
	// File is the log destination. Empty disables logging.
	File string `koanf:"file" yaml:"file"`
}

// Validate checks the level and format.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	switch c.Format {
	case FormatConsole, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q (expected %s or %s)", c.Format, FormatConsole, FormatJSON)
	}
}

// New creates a logger from cfg. The returned close function flushes and
// releases the output.
func New(cfg Config) (*zap.Logger, func() error, error) {
	if cfg.File == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	level, _ := zapcore.ParseLevel(cfg.Level)

	var (
		out    zapcore.WriteSyncer
		closer io.Closer
	)
	if strings.EqualFold(cfg.File, StderrOutput) {
		out = zapcore.Lock(os.Stderr)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = zapcore.AddSync(f)
		closer = f
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), out, level)
	logger := zap.New(core, zap.AddCaller()).Named("startboard")

	closeFn := func() error {
		_ = logger.Sync()
		if closer != nil {
			return closer.Close()
		}
		return nil
	}
	return logger, closeFn, nil
}

// newEncoder creates JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == FormatConsole {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}
