package tlog

import (
	"fmt"
	"testing"

	"github.com/ridge/must/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// New creates a top-level logger writing to stderr
func New(config Config) *zap.Logger {
	level := zapcore.InfoLevel
	if config.Verbose {
		level = zapcore.DebugLevel
	}

	logger := must.OK1(zap.Config{
		Level: zap.NewAtomicLevelAt(level),
		// stack traces on warnings are only wanted while reading logs by eye
		Development:      config.Format == FormatText,
		Encoding:         encoding(config),
		EncoderConfig:    DefaultEncoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}.Build())

	if config.Name != "" {
		logger = logger.Named(config.Name)
	}
	return logger
}

func encoding(config Config) string {
	switch config.Format {
	case FormatJSON:
		return "json"
	case FormatText:
		return consoleEncoderName(useColor(config.Color))
	}
	panic(fmt.Errorf("unexpected log format: %s", config.Format))
}

func useColor(c Color) bool {
	switch c {
	case ColorYes:
		return true
	case ColorNo:
		return false
	case ColorAuto:
		return term.IsTerminal(unix.Stderr)
	}
	panic(fmt.Errorf("unexpected log color: %s", c))
}

// NewForTesting creates a verbose text logger named after the test
func NewForTesting(t *testing.T) *zap.Logger {
	return New(Config{
		Name:    t.Name(),
		Format:  FormatText,
		Color:   ColorAuto,
		Verbose: true,
	})
}
