package predict

import (
	"log/slog"
)

// CallEvent records metadata about a single call to the prediction service.
type CallEvent struct {
	Path       string
	RequestID  string
	LatencyMs  int64
	StatusCode int
	Success    bool
	ErrorCode  string
	Err        error
}

// Observer receives events about prediction calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a structured logger.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates an Observer that logs events through l.
func NewLogObserver(l *slog.Logger) *LogObserver {
	if l == nil {
		l = slog.Default()
	}
	return &LogObserver{log: l}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"path", event.Path,
		"request_id", event.RequestID,
		"latency_ms", event.LatencyMs,
		"status_code", event.StatusCode,
	}
	if event.Success {
		o.log.Info("prediction call", attrs...)
		return
	}
	attrs = append(attrs, "error_code", event.ErrorCode, "error", event.Err)
	o.log.Warn("prediction call failed", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
