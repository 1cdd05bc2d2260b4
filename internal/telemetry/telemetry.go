// Package telemetry provides structured per-run logging for codec
// operations, in place of the teacher's cmd/compress "Song %d -> ..."
// printf summary lines (compress.go's main()).
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger scoped to one dan3 invocation.
type Logger struct {
	zl zerolog.Logger
}

// New returns a Logger writing to w in zerolog's console-friendly format.
// Passing nil uses os.Stderr.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return &Logger{zl: zerolog.New(console).With().Timestamp().Logger()}
}

// EncodeResult is the summary of one encode run, the structured
// equivalent of the teacher's per-song print.
type EncodeResult struct {
	InputBytes      int
	OutputBytes     int
	Regime          int
	MaxOffsetBits   int
	RLE             bool
	Fast            bool
	Elapsed         time.Duration
}

// LogEncode emits one event describing a completed encode.
func (l *Logger) LogEncode(res EncodeResult) {
	ratio := 0.0
	if res.InputBytes > 0 {
		ratio = float64(res.OutputBytes) / float64(res.InputBytes)
	}
	l.zl.Info().
		Int("input_bytes", res.InputBytes).
		Int("output_bytes", res.OutputBytes).
		Int("regime", res.Regime).
		Int("max_offset_bits", res.MaxOffsetBits).
		Bool("rle", res.RLE).
		Bool("fast", res.Fast).
		Float64("ratio", ratio).
		Dur("elapsed", res.Elapsed).
		Msg("encode complete")
}

// LogDecode emits one event describing a completed decode.
func (l *Logger) LogDecode(inputBytes, outputBytes int, elapsed time.Duration) {
	l.zl.Info().
		Int("input_bytes", inputBytes).
		Int("output_bytes", outputBytes).
		Dur("elapsed", elapsed).
		Msg("decode complete")
}

// Error logs a codec failure with its kind, mirroring the teacher's
// "verified" failure branch in main() but as a structured event.
func (l *Logger) Error(err error) {
	l.zl.Error().Err(err).Msg("codec failure")
}
