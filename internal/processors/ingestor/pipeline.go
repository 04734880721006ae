package ingestor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"obedio-core/internal/model"
	"obedio-core/internal/worker"

	"github.com/cespare/xxhash/v2"
)

type PipelineConfig struct {
	Shards int
	// Buffer is the per-shard queue length.
	Buffer int
}

type press struct {
	event model.DeviceEvent
	reply chan IngestResult
}

// shard serialises ingestion for the devices hashed onto it.
type shard struct {
	presses  chan press
	ingestor *Ingestor
}

func (s *shard) ProcessMessage(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case p := <-s.presses:
		res := s.ingestor.Ingest(ctx, p.event)
		if p.reply != nil {
			p.reply <- res
		}
		return nil
	}
}

// Pipeline fans presses out to a fixed set of shards keyed by device id so
// that one device is never processed concurrently with itself while
// different devices proceed in parallel.
type Pipeline struct {
	ingestor *Ingestor
	shards   []*shard
	workers  []*worker.Worker
}

func NewPipeline(ing *Ingestor, cfg PipelineConfig) *Pipeline {
	if cfg.Shards <= 0 {
		cfg.Shards = 8
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	p := &Pipeline{ingestor: ing}
	for n := range cfg.Shards {
		s := &shard{presses: make(chan press, cfg.Buffer), ingestor: ing}
		p.shards = append(p.shards, s)
		p.workers = append(p.workers, worker.New(worker.Config{
			Name:      fmt.Sprintf("ingestor-%d", n),
			Processor: s,
		}))
	}
	return p
}

// Run blocks until ctx is done and every shard worker has returned.
func (p *Pipeline) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, w := range p.workers {
		wg.Go(func() { w.Run(ctx) })
	}
	wg.Wait()
}

func (p *Pipeline) shardFor(deviceID string) *shard {
	return p.shards[xxhash.Sum64String(deviceID)%uint64(len(p.shards))]
}

// Submit queues a press without waiting for its result. A full shard
// refuses ordinary presses; emergencies wait for room until ctx is done.
func (p *Pipeline) Submit(ctx context.Context, e model.DeviceEvent) error {
	s := p.shardFor(e.DeviceID)
	select {
	case s.presses <- press{event: e}:
		return nil
	default:
	}
	if e.PressType != model.PressShake {
		p.ingestor.metrics.DeviceEvent(string(OutcomeBackpressure))
		slog.WarnContext(ctx, "Ingestion shard full, dropping press", "device_id", e.DeviceID, "sequence", e.SequenceNumber)
		return model.ErrBackpressure
	}
	select {
	case s.presses <- press{event: e}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ingest queues a press and waits for its result.
func (p *Pipeline) Ingest(ctx context.Context, e model.DeviceEvent) IngestResult {
	s := p.shardFor(e.DeviceID)
	reply := make(chan IngestResult, 1)
	select {
	case s.presses <- press{event: e, reply: reply}:
	case <-ctx.Done():
		return result(OutcomeFailed, ctx.Err())
	}
	select {
	case res := <-reply:
		return res
	case <-ctx.Done():
		return result(OutcomeFailed, ctx.Err())
	}
}
