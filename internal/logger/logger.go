// Package logger configures the viewer's zap logger: colored console output
// plus an optional rotating log file, and component loggers that carry the
// scene and frame they report on.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Sugar is the sugared form of Log.
var Sugar = Log.Sugar()

// Options selects the level and the destinations of the log.
type Options struct {
	Level   string
	Console io.Writer // nil disables console output
	File    Rotation  // empty Path disables file output
}

// Rotation bounds the log file kept next to a long-running viewer.
type Rotation struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation keeps a week of logs, three backups of at most 10 MB.
func DefaultRotation(path string) Rotation {
	return Rotation{
		Path:       path,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Init logs to stdout and, when logFile is set, to a rotating file.
func Init(level string, logFile string) error {
	opts := Options{Level: level, Console: os.Stdout}
	if logFile != "" {
		opts.File = DefaultRotation(logFile)
	}
	return Setup(opts)
}

// Setup replaces Log with a logger built from opts.
func Setup(opts Options) error {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	var cores []zapcore.Core
	if opts.Console != nil {
		enc := encoder(zapcore.TimeEncoderOfLayout("15:04:05.000"), zapcore.CapitalColorLevelEncoder)
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(opts.Console), lvl))
	}
	if opts.File.Path != "" {
		w, err := rotatingFile(opts.File)
		if err != nil {
			return err
		}
		enc := encoder(zapcore.ISO8601TimeEncoder, zapcore.CapitalLevelEncoder)
		cores = append(cores, zapcore.NewCore(enc, w, lvl))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()
	return nil
}

// encoder builds the console-style line format shared by both outputs.
func encoder(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "component",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
}

func rotatingFile(r Rotation) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   r.Path,
		MaxSize:    r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   r.Compress,
		LocalTime:  true,
	}), nil
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "":
		return zapcore.InfoLevel, nil
	case "debug", "info", "warn", "error":
		return zapcore.ParseLevel(level)
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// Named returns a component logger. fields stay attached for its lifetime,
// so a component that serves one scene tags every entry with it.
func Named(component string, fields ...zap.Field) *zap.Logger {
	return Log.Named(component).With(fields...)
}

// Scene tags entries with the scene they belong to.
func Scene(name string) zap.Field {
	return zap.String("scene", name)
}

// Frame tags entries with the number of frames submitted so far.
func Frame(n uint64) zap.Field {
	return zap.Uint64("frame", n)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
