// Package trace records calls to recurrences and generators as structured
// JSON events. Tracing is opt-in: callers wrap the pure functions at the call
// site, the generators themselves never log.
package trace

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Field is a key-value pair attached to a traced call.
type Field struct {
	Key   string
	Value any
}

func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func String(key, value string) Field          { return Field{Key: key, Value: value} }

// Tracer writes one event per traced call.
type Tracer struct {
	logger  zerolog.Logger
	enabled bool
}

// New returns a Tracer writing newline-delimited JSON to w.
func New(w io.Writer) *Tracer {
	return &Tracer{
		logger:  zerolog.New(w).With().Timestamp().Logger(),
		enabled: true,
	}
}

// Nop returns a Tracer that drops everything.
func Nop() *Tracer {
	return &Tracer{logger: zerolog.Nop()}
}

// Open creates (truncating) the log file at path and returns a Tracer on it.
func Open(path string) (*Tracer, io.Closer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}

func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

func applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case []float64:
			event = event.Floats64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

// Call starts a traced call of action with the given arguments. The returned
// function finishes it, recording the error (if any) and the elapsed time.
func (t *Tracer) Call(action string, args ...Field) func(err error) {
	if !t.Enabled() {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		level, status := zerolog.InfoLevel, "succeeded"
		if err != nil {
			level, status = zerolog.ErrorLevel, "failed"
		}
		event := t.logger.WithLevel(level)
		if err != nil {
			event = event.Err(err)
		}
		event = event.Str("action_type", action).Str("action_status", status)
		applyFields(event, args).Dur("duration", time.Since(start)).Send()
	}
}

// Wrap returns a recurrence that logs every evaluation of f under name.
// A disabled tracer returns f unchanged.
func Wrap(f dynamo.Recurrence, t *Tracer, name string) dynamo.Recurrence {
	if !t.Enabled() {
		return f
	}
	return func(x, r float64) float64 {
		next := f(x, r)
		t.logger.Debug().
			Str("action_type", name).
			Float64("x", x).
			Float64("r", r).
			Float64("result", next).
			Send()
		return next
	}
}
