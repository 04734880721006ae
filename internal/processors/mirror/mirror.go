package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"obedio-core/internal/broadcast"
	"obedio-core/internal/worker"

	k "obedio-core/internal/kafka"

	"github.com/segmentio/kafka-go"
)

var (
	ErrSubscriptionClosed = errors.New("subscription closed")
	ErrMarshal            = errors.New("error marshalling envelope")
	ErrWriteMessage       = errors.New("error writing message")
)

type subscriber interface {
	Subscribe(name string, filter func(broadcast.Envelope) bool) *broadcast.Subscription
}

type Config struct {
	Hub    subscriber
	Writer k.Writer
}

// Mirror copies every hub event onto a Kafka topic keyed by entity id, so
// downstream consumers see per-entity order.
type Mirror struct {
	worker *worker.Worker
	hub    subscriber
	writer k.Writer
	sub    *broadcast.Subscription
}

func New(cfg Config) *Mirror {
	m := &Mirror{
		hub:    cfg.Hub,
		writer: cfg.Writer,
	}
	m.sub = m.hub.Subscribe("kafka-mirror", nil)
	m.worker = worker.New(worker.Config{
		Name:          "mirror-worker",
		Processor:     m,
		MaxErrorDelay: 5 * time.Second,
	})
	return m
}

func (m *Mirror) Run(ctx context.Context) {
	m.worker.Run(ctx)
}

func (m *Mirror) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing mirror resources...")
	m.sub.Close()
	m.writer.Close()
}

func (m *Mirror) ProcessMessage(ctx context.Context) error {
	const fn = "Mirror:ProcessMessage"
	var env broadcast.Envelope
	select {
	case <-ctx.Done():
		return nil
	case e, ok := <-m.sub.C():
		if !ok {
			// Evicted or hub closed; a fresh subscription resumes from
			// the next published event.
			err := m.sub.Err()
			if errors.Is(err, broadcast.ErrHubClosed) {
				<-ctx.Done()
				return nil
			}
			m.sub = m.hub.Subscribe("kafka-mirror", nil)
			return fmt.Errorf("%s:%w:%w", fn, ErrSubscriptionClosed, err)
		}
		env = e
	}

	out, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrMarshal, err)
	}
	msg := kafka.Message{
		Key:   []byte(env.EntityID),
		Value: out,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(env.Event())},
		},
	}
	if err := m.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	slog.DebugContext(ctx, "Mirrored event", "event", env.Event(), "entity_id", env.EntityID, "seq", env.Seq)
	return nil
}
