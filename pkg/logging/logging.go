// Package logging provides structured logging for geometry construction.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the package-wide logger. Builders log through the Debug and
// Info helpers; callers needing fields beyond that use Logger directly.
var Logger *zap.Logger

// Config controls the logger built by Initialize.
type Config struct {
	// Level is the minimum level to emit ("debug", "info", ...).
	Level string

	// Format selects "console" or "json" output.
	Format string

	// Output is "stdout", "stderr" or a file path to append to.
	Output string
}

// DefaultConfig logs info and above to stderr in console format.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// Initialize replaces the package logger. An unrecognized level falls back
// to info.
func Initialize(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if cfg.Format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	var sink zapcore.WriteSyncer
	switch cfg.Output {
	case "stdout":
		sink = zapcore.AddSync(os.Stdout)
	case "stderr":
		sink = zapcore.AddSync(os.Stderr)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		sink = zapcore.AddSync(file)
	}

	Logger = zap.New(zapcore.NewCore(enc, sink, level))
	return nil
}

// Debug logs a per-component construction event.
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// Info logs an assembly-level event.
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func init() {
	_ = Initialize(DefaultConfig())
}
