package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultConfig is a JSON production config with ISO8601 "time" and
// capitalised "severity" keys and sampling disabled.
func DefaultConfig() zap.Config {
	logConf := zap.NewProductionConfig()
	logConf.Sampling = nil
	logConf.EncoderConfig.TimeKey = "time"
	logConf.EncoderConfig.LevelKey = "severity"
	logConf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConf.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return logConf
}

// ParseLevel accepts zap level names case-insensitively. An empty string
// means info.
func ParseLevel(l string) (zapcore.Level, error) {
	l = strings.ToLower(strings.TrimSpace(l))
	if l == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(l)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q", l)
	}
	return level, nil
}

// New builds a logger from DefaultConfig at the given level.
func New(level string) (*zap.Logger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logConf := DefaultConfig()
	logConf.Level = zap.NewAtomicLevelAt(zapLevel)
	return logConf.Build()
}
