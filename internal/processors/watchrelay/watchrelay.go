package watchrelay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"obedio-core/internal/broadcast"
	"obedio-core/internal/model"
	"obedio-core/internal/transport"
	"obedio-core/internal/worker"
)

var (
	ErrSubscriptionClosed = errors.New("subscription closed")
	ErrPublish            = errors.New("error publishing summary")
)

type subscriber interface {
	Subscribe(name string, filter func(broadcast.Envelope) bool) *broadcast.Subscription
}

type publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

type locations interface {
	GetLocation(ctx context.Context, id string) (model.Location, error)
}

type Config struct {
	Hub       subscriber
	Transport publisher
	Locations locations
}

// Summary is what crew watches receive for a new request.
type Summary struct {
	ID        string         `json:"id"`
	Location  string         `json:"location"`
	Guest     string         `json:"guest"`
	Priority  model.Priority `json:"priority"`
	Timestamp time.Time      `json:"timestamp"`
}

type Update struct {
	RequestID  string              `json:"requestId"`
	Status     model.RequestStatus `json:"status"`
	AssignedTo *string             `json:"assignedTo"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// Relay forwards service request events from the hub to the watch topics.
type Relay struct {
	worker    *worker.Worker
	hub       subscriber
	transport publisher
	locations locations
	sub       *broadcast.Subscription
}

func New(cfg Config) *Relay {
	r := &Relay{
		hub:       cfg.Hub,
		transport: cfg.Transport,
		locations: cfg.Locations,
	}
	r.sub = r.subscribe()
	r.worker = worker.New(worker.Config{
		Name:          "watchrelay-worker",
		Processor:     r,
		MaxErrorDelay: 5 * time.Second,
	})
	return r
}

func (r *Relay) subscribe() *broadcast.Subscription {
	return r.hub.Subscribe("watch-relay", broadcast.Only(broadcast.EntityServiceRequest))
}

func (r *Relay) Run(ctx context.Context) {
	r.worker.Run(ctx)
}

func (r *Relay) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing watch relay...")
	r.sub.Close()
}

func (r *Relay) ProcessMessage(ctx context.Context) error {
	const fn = "Relay:ProcessMessage"
	var env broadcast.Envelope
	select {
	case <-ctx.Done():
		return nil
	case e, ok := <-r.sub.C():
		if !ok {
			err := r.sub.Err()
			if errors.Is(err, broadcast.ErrHubClosed) {
				<-ctx.Done()
				return nil
			}
			r.sub = r.subscribe()
			return fmt.Errorf("%s:%w:%w", fn, ErrSubscriptionClosed, err)
		}
		env = e
	}

	req, ok := env.Payload.(model.ServiceRequest)
	if !ok {
		return nil
	}
	var topic string
	var payload any
	switch env.Kind {
	case broadcast.Created:
		topic, payload = transport.TopicServiceRequest, r.summary(ctx, req)
	case broadcast.Updated:
		topic, payload = transport.TopicServiceUpdate, Update{
			RequestID:  req.ID,
			Status:     req.Status,
			AssignedTo: req.AssignedToID,
			UpdatedAt:  req.UpdatedAt,
		}
	default:
		return nil
	}
	if err := r.transport.Publish(ctx, topic, payload); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrPublish, err)
	}
	slog.DebugContext(ctx, "Relayed request to watches", "request_id", req.ID, "topic", topic)
	return nil
}

func (r *Relay) summary(ctx context.Context, req model.ServiceRequest) Summary {
	name := req.LocationID
	if l, err := r.locations.GetLocation(ctx, req.LocationID); err == nil && l.Name != "" {
		name = l.Name
	}
	return Summary{
		ID:        req.ID,
		Location:  name,
		Guest:     req.GuestName,
		Priority:  req.Priority,
		Timestamp: req.CreatedAt,
	}
}
