package utils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerMu sync.Mutex
	logger   *zap.Logger
)

// LogOptions selects where and how verbosely to log.
type LogOptions struct {
	// File, when set, receives a copy of every entry next to stdout.
	File string
	// Level is debug, info, warn or error. Empty means info.
	Level string
}

// Logger returns the process logger, building it from LOG_FILE and LOG_LEVEL
// on first use.
func Logger() *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger != nil {
		return logger
	}
	l, err := NewLogger(LogOptions{File: os.Getenv("LOG_FILE"), Level: os.Getenv("LOG_LEVEL")})
	if err != nil {
		l, _ = zap.NewProduction()
	}
	logger = l
	return logger
}

// SetLogger replaces the process logger, e.g. once the config file is read.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func NewLogger(opts LogOptions) (*zap.Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	consoleCore := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)
	if opts.File == "" {
		return zap.New(consoleCore), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	fileCore := zapcore.NewCore(enc, zapcore.AddSync(f), lvl)
	return zap.New(zapcore.NewTee(fileCore, consoleCore)), nil
}

func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}
