package notify

import (
	"context"
	"time"

	"github.com/lmgveerhoek/rescan/core/reconcile"

	"go.uber.org/zap"
)

// Sink accepts the structured summary of a finished run. Implementations own
// their formatting, chunking and size limits.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string
	// Publish delivers the summary. It must honor the context deadline.
	Publish(ctx context.Context, summary *reconcile.Summary) error
}

// Dispatcher fans a run summary out to all configured sinks on a best-effort
// basis. Sink failures are logged and swallowed: notification delivery never
// affects run correctness or exit status. Dispatch is bounded by its own
// timeout and detached from the run's cancellation.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	log     *zap.Logger
}

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher(sinks []Sink, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{sinks: sinks, timeout: timeout, log: log}
}

// Dispatch delivers the summary to every sink. It returns once all sinks have
// been attempted or the dispatch timeout expired.
func (d *Dispatcher) Dispatch(ctx context.Context, summary *reconcile.Summary) {
	if len(d.sinks) == 0 {
		return
	}

	// Detach from the run's cancellation: a finished run's summary is still
	// worth delivering, bounded only by the dispatch timeout
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	for _, sink := range d.sinks {
		if err := sink.Publish(ctx, summary); err != nil {
			d.log.Error("Notification delivery failed",
				zap.String("sink", sink.Name()),
				zap.String("run_id", summary.RunID),
				zap.Error(err),
			)
			continue
		}
		d.log.Info("Notification sent",
			zap.String("sink", sink.Name()),
			zap.String("run_id", summary.RunID),
		)
	}
}
