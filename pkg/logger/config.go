package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the configuration for the logger
type Config struct {
	Level         string `yaml:"level"          json:"level"`
	FilePath      string `yaml:"file_path"      json:"file_path"`
	Format        string `yaml:"format"         json:"format"`
	WithTrace     bool   `yaml:"with_trace"     json:"with_trace"`
	EnableConsole bool   `yaml:"enable_console" json:"enable_console"`

	// Console is where the console core writes. Defaults to os.Stderr so log
	// lines never interleave with operator status output on stdout.
	Console io.Writer `yaml:"-" json:"-"`
}

// ConfigFromViper reads the general.* logging keys.
func ConfigFromViper(v *viper.Viper) Config {
	cfg := Config{
		Level:    InfoLogLevel,
		FilePath: DefaultLogPath,
		Format:   "text",
	}
	if v == nil {
		return cfg
	}
	if v.IsSet("general.log_path") {
		cfg.FilePath = v.GetString("general.log_path")
	}
	if v.IsSet("general.log_level") {
		cfg.Level = v.GetString("general.log_level")
	}
	if v.IsSet("general.log_format") {
		cfg.Format = v.GetString("general.log_format")
	}
	if v.IsSet("general.log_with_trace") {
		cfg.WithTrace = v.GetBool("general.log_with_trace")
	}
	if v.IsSet("general.enable_console_logger") {
		cfg.EnableConsole = v.GetBool("general.enable_console_logger")
	}
	return cfg
}

// Initialize sets up the global logger with the given configuration
func Initialize(config Config) error {
	logLevel := config.Level
	if logLevel == "" {
		logLevel = InfoLogLevel
	}
	level := getZapLevel(logLevel)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core

	if config.EnableConsole {
		consoleEncoderConfig := encoderConfig
		consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoderConfig.EncodeCaller = nil
		consoleEncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("15:04:05"))
		}
		out := config.Console
		if out == nil {
			out = os.Stderr
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig),
			zapcore.AddSync(out),
			level,
		))
	}

	if config.FilePath != "" {
		var encoder zapcore.Encoder
		if config.Format == "json" {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		}

		file, err := os.OpenFile(
			config.FilePath,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			LogFilePermissions,
		)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	opts := []zap.Option{zap.AddCaller()}
	if config.WithTrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	l := zap.New(zapcore.NewTee(cores...), opts...).Named(loggerName)
	SetGlobalLogger(&Logger{Logger: l})

	return nil
}
