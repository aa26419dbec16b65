// Package logger provides structured logging using zap.
//
// One process-wide logger writes to the console and, optionally, to a
// rotating file. Subsystems take a child from For so every line carries the
// component that wrote it.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Component names handed to For.
const (
	Atlas  = "atlas"
	Assets = "assets"
	Frame  = "frame"
	GPU    = "gpu"
	Window = "window"
	Viewer = "viewer"
)

// Log is the global logger instance.
var Log *zap.Logger

// level is shared by every core so SetLevel applies to all outputs.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// FileConfig holds file logging configuration.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default file logging settings.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Options selects the outputs of Setup.
type Options struct {
	Level   string
	Console bool
	File    FileConfig // empty Path disables file output
}

// Init logs to the console at level, and to logFile when it is set.
func Init(level, logFile string) error {
	opts := Options{Level: level, Console: true}
	if logFile != "" {
		opts.File = DefaultFileConfig(logFile)
	}
	return Setup(opts)
}

// Setup replaces the global logger.
func Setup(opts Options) error {
	SetLevel(opts.Level)

	var cores []zapcore.Core
	if opts.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(true)),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}
	if opts.File.Path != "" {
		w := &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSizeMB,
			MaxBackups: opts.File.MaxBackups,
			MaxAge:     opts.File.MaxAgeDays,
			Compress:   opts.File.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(false)),
			zapcore.AddSync(w),
			level,
		))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return nil
}

// encoderConfig returns the console layout. The terminal gets colored levels
// and a short clock, files get ISO8601 times.
func encoderConfig(terminal bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}
	if terminal {
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

// SetLevel changes the level of every output. Unknown names select info.
func SetLevel(name string) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(name))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	level.SetLevel(lvl)
}

// Level returns the current level.
func Level() zapcore.Level {
	return level.Level()
}

// InitNop installs a logger that discards everything.
func InitNop() {
	Log = zap.NewNop()
}

// For returns the logger of one component. It is a no-op logger until Init
// has run.
func For(component string) *zap.Logger {
	return get().Named(component)
}

func get() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

// Sync flushes any buffered log entries.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	get().Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	get().Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	get().Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	get().Error(msg, fields...)
}
