package worker

import (
	"context"
	"log/slog"
	"time"

	"obedio-core/internal/clock"

	"github.com/cenkalti/backoff/v4"
)

type Config struct {
	Name      string
	Processor Processor
	// MaxErrorDelay caps the pause between consecutive failures. Zero
	// retries immediately.
	MaxErrorDelay time.Duration
	Clock         clock.Clock
}

// Processor handles one unit of work per call. It should block until work
// arrives or ctx is done.
type Processor interface {
	ProcessMessage(ctx context.Context) error
}

type Worker struct {
	name      string
	processor Processor
	clock     clock.Clock
	backoff   *backoff.ExponentialBackOff
}

func New(cfg Config) *Worker {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	w := &Worker{
		name:      cfg.Name,
		processor: cfg.Processor,
		clock:     cfg.Clock,
	}
	if cfg.MaxErrorDelay > 0 {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = min(50*time.Millisecond, cfg.MaxErrorDelay)
		b.MaxInterval = cfg.MaxErrorDelay
		b.MaxElapsedTime = 0
		b.Reset()
		w.backoff = b
	}
	return w
}

func (w *Worker) Name() string {
	return w.name
}

// Run calls the processor until ctx is done. Errors are logged; with a
// MaxErrorDelay set, a failing processor is paused with growing delays
// until it succeeds again.
func (w *Worker) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Worker started...", "worker", w.name)
	defer slog.InfoContext(ctx, "Worker stopped...", "worker", w.name)

	for ctx.Err() == nil {
		err := w.processor.ProcessMessage(ctx)
		if err == nil || ctx.Err() != nil {
			if w.backoff != nil {
				w.backoff.Reset()
			}
			continue
		}
		slog.ErrorContext(ctx, "Error processing message", "worker", w.name, "error", err)
		if w.backoff == nil {
			continue
		}
		wait := w.backoff.NextBackOff()
		select {
		case <-ctx.Done():
		case <-w.clock.After(wait):
		}
	}
}
