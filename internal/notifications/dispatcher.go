// Package notifications fans out task-completion events to external
// collaboration tools. Every sink is best-effort: a failure is logged and
// suppressed, and never reaches the finalize caller.
package notifications

import (
	"context"
	"log/slog"
	"time"
)

// Sink is one external notification target.
type Sink interface {
	Name() string

	Send(ctx context.Context, event Event) error
}

type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  *slog.Logger
}

func NewDispatcher(sinks []Sink, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		logger:  logger.With("component", "notifications"),
	}
}

// Dispatch attempts every sink. Each attempt gets its own deadline so one
// unreachable service cannot stall the rest, and no sink error propagates.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	for _, sink := range d.sinks {
		d.send(ctx, sink, event)
	}
}

func (d *Dispatcher) send(ctx context.Context, sink Sink, event Event) {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := sink.Send(sendCtx, event); err != nil {
		d.logger.Warn("notification sink failed",
			"sink", sink.Name(),
			"task_id", event.TaskID,
			"error", err,
		)
		return
	}

	d.logger.Info("notification sent", "sink", sink.Name(), "task_id", event.TaskID)
}
