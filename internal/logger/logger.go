package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options tune NewLogger beyond the environment preset.
type Options struct {
	// Level overrides the preset level: debug, info, warn, error.
	Level string
	// Dir enables daily file output in addition to the console when non-empty.
	Dir string
	// FileName is the daily file prefix; files are named <FileName>_<YYYYMMDD>.log.
	FileName string
}

// NewLogger creates a zap logger for the given environment.
// prod uses JSON output, local/dev use colored console output.
// With opts.Dir set, every entry is also written to a daily log file.
func NewLogger(env string, opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev", "docker", "test":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if opts.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	buildOpts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}

	if opts.Dir != "" {
		file, err := NewDailyFile(opts.Dir, opts.FileName)
		if err != nil {
			return nil, fmt.Errorf("daily log file: %w", err)
		}
		fileCore := zapcore.NewCore(fileEncoder(cfg), zapcore.Lock(file), cfg.Level)
		buildOpts = append(buildOpts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}

	l, err := cfg.Build(buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

// fileEncoder mirrors the console encoding without terminal colors.
func fileEncoder(cfg zap.Config) zapcore.Encoder {
	enc := cfg.EncoderConfig
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	if cfg.Encoding == "json" {
		return zapcore.NewJSONEncoder(enc)
	}
	return zapcore.NewConsoleEncoder(enc)
}
