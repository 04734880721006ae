package ingestor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"obedio-core/internal/clock"
	"obedio-core/internal/metrics"
	"obedio-core/internal/model"

	"github.com/cenkalti/backoff/v4"
)

var ErrQueueFull = errors.New("retry queue full")

// job is a classified press waiting for dispatch. RequestID is fixed on
// first attempt so retries create the same request.
type job struct {
	Event     model.DeviceEvent
	Class     Classification
	RequestID string
	Attempts  int
}

// RetryQueue holds dispatches that failed on the store. Emergencies have
// their own lane and always drain first.
type RetryQueue struct {
	capacity int
	metrics  *metrics.Metrics

	mu        sync.Mutex
	emergency []job
	normal    []job
	ready     chan struct{}
}

func NewRetryQueue(capacity int, m *metrics.Metrics) *RetryQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &RetryQueue{
		capacity: capacity,
		metrics:  m,
		ready:    make(chan struct{}, 1),
	}
}

// Push enqueues j. When full, an emergency displaces the oldest normal job;
// anything else is refused.
func (q *RetryQueue) Push(j job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.emergency)+len(q.normal) >= q.capacity {
		if !j.Class.Emergency() || len(q.normal) == 0 {
			return ErrQueueFull
		}
		dropped := q.normal[0]
		q.normal = q.normal[1:]
		slog.Warn("Retry queue full, dropping oldest normal request",
			"request_id", dropped.RequestID,
			"device_id", dropped.Event.DeviceID,
		)
	}
	if j.Class.Emergency() {
		q.emergency = append(q.emergency, j)
	} else {
		q.normal = append(q.normal, j)
	}
	q.signal()
	return nil
}

// requeue puts j back at the head of its lane.
func (q *RetryQueue) requeue(j job) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if j.Class.Emergency() {
		q.emergency = append([]job{j}, q.emergency...)
	} else {
		q.normal = append([]job{j}, q.normal...)
	}
	q.signal()
}

// Must be called with q.mu held.
func (q *RetryQueue) signal() {
	q.metrics.RetryDepth(len(q.emergency) + len(q.normal))
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *RetryQueue) pop() (job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var j job
	switch {
	case len(q.emergency) > 0:
		j, q.emergency = q.emergency[0], q.emergency[1:]
	case len(q.normal) > 0:
		j, q.normal = q.normal[0], q.normal[1:]
	default:
		return job{}, false
	}
	q.metrics.RetryDepth(len(q.emergency) + len(q.normal))
	return j, true
}

// Next blocks until a job is available or ctx is done.
func (q *RetryQueue) Next(ctx context.Context) (job, bool) {
	for {
		if j, ok := q.pop(); ok {
			return j, true
		}
		select {
		case <-ctx.Done():
			return job{}, false
		case <-q.ready:
		}
	}
}

func (q *RetryQueue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.emergency) + len(q.normal)
}

type RetryConfig struct {
	Initial time.Duration
	Max     time.Duration
	Clock   clock.Clock
}

// Retrier re-dispatches queued jobs with exponential backoff. It is run by
// a worker.Worker.
type Retrier struct {
	queue    *RetryQueue
	ingestor *Ingestor
	clock    clock.Clock
	backoff  *backoff.ExponentialBackOff
}

func NewRetrier(q *RetryQueue, ing *Ingestor, cfg RetryConfig) *Retrier {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	b := backoff.NewExponentialBackOff()
	if cfg.Initial > 0 {
		b.InitialInterval = cfg.Initial
	}
	if cfg.Max > 0 {
		b.MaxInterval = cfg.Max
	}
	b.MaxElapsedTime = 0
	b.Reset()
	return &Retrier{queue: q, ingestor: ing, clock: cfg.Clock, backoff: b}
}

func (r *Retrier) ProcessMessage(ctx context.Context) error {
	j, ok := r.queue.Next(ctx)
	if !ok {
		return nil
	}
	j.Attempts++
	result, retry := r.ingestor.dispatch(ctx, j)
	if !retry {
		r.backoff.Reset()
		r.ingestor.recordRetry(ctx, result, j)
		return nil
	}

	r.queue.requeue(j)
	wait := r.backoff.NextBackOff()
	slog.WarnContext(ctx, "Dispatch still failing, backing off",
		"request_id", j.RequestID,
		"attempts", j.Attempts,
		"wait", wait,
		"error", result.Err,
	)
	select {
	case <-ctx.Done():
	case <-r.clock.After(wait):
	}
	return nil
}
