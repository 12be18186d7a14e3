package tlog

import (
	"fmt"
	"sync"

	"github.com/ridge/basics/tlog/formatter"
	"github.com/ridge/must/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// The console encoder renders every entry through the JSON encoder first and
// then reformats the JSON, so text and JSON logs always carry the same data.

func init() {
	for _, color := range []bool{false, true} {
		color := color
		must.OK(zap.RegisterEncoder(consoleEncoderName(color), func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
			return newConsoleEncoder(cfg, color), nil
		}))
	}
}

func consoleEncoderName(color bool) string {
	return fmt.Sprintf("basics-console;color=%t", color)
}

type consoleEncoder struct {
	zapcore.Encoder
	color bool

	mu            sync.Mutex
	lastTimestamp string
}

// Clone implements zapcore.Encoder
func (ce *consoleEncoder) Clone() zapcore.Encoder {
	return &consoleEncoder{
		Encoder: ce.Encoder.Clone(),
		color:   ce.color,
	}
}

// EncodeEntry implements zapcore.Encoder
func (ce *consoleEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	jsonBuf, err := ce.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer jsonBuf.Free()

	ce.mu.Lock()
	defer ce.mu.Unlock()

	out, timestamp, err := formatter.JSONLogMessage(jsonBuf.Bytes(), ce.lastTimestamp, ce.color)
	if err != nil {
		return nil, err
	}
	ce.lastTimestamp = timestamp
	return out, nil
}

func newConsoleEncoder(cfg zapcore.EncoderConfig, color bool) *consoleEncoder {
	return &consoleEncoder{
		Encoder: zapcore.NewJSONEncoder(cfg),
		color:   color,
	}
}
