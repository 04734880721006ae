package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"obedio-core/internal/model"
	"obedio-core/internal/worker"

	k "obedio-core/internal/kafka" // alias to avoid name conflict

	"github.com/segmentio/kafka-go"
)

var (
	ErrMarshal      = errors.New("error marshalling record")
	ErrWriteMessage = errors.New("error writing message")
)

type Config struct {
	Writer k.Writer
	// Buffer bounds how many accepted presses may wait for the broker.
	Buffer int
}

// Journal appends every accepted press to the journal topic so the
// sequence cache can be rebuilt on restart. Recording never blocks
// ingestion.
type Journal struct {
	worker *worker.Worker
	writer k.Writer
	events chan model.DeviceEvent
}

func New(cfg Config) *Journal {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 1024
	}
	j := &Journal{
		writer: cfg.Writer,
		events: make(chan model.DeviceEvent, cfg.Buffer),
	}
	j.worker = worker.New(worker.Config{
		Name:          "journal-worker",
		Processor:     j,
		MaxErrorDelay: 5 * time.Second,
	})
	return j
}

func (j *Journal) Run(ctx context.Context) {
	j.worker.Run(ctx)
}

func (j *Journal) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing journal resources...")
	j.writer.Close()
}

// Record queues e for the journal. When the buffer is full the record is
// dropped; the cache still holds the sequence in memory.
func (j *Journal) Record(ctx context.Context, e model.DeviceEvent) {
	select {
	case j.events <- e:
	default:
		slog.WarnContext(ctx, "Journal buffer full, dropping record", "device_id", e.DeviceID, "sequence", e.SequenceNumber)
	}
}

func (j *Journal) ProcessMessage(ctx context.Context) error {
	const fn = "Journal:ProcessMessage"
	var e model.DeviceEvent
	select {
	case <-ctx.Done():
		return nil
	case e = <-j.events:
	}
	out, err := json.Marshal(k.NewJournalRecord(e))
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrMarshal, err)
	}
	if err := j.writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.DeviceID), Value: out}); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	slog.DebugContext(ctx, "Journaled press", "device_id", e.DeviceID, "sequence", e.SequenceNumber)
	return nil
}
