package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"obedio-core/internal/devices"
	"obedio-core/internal/lifecycle"
	"obedio-core/internal/metrics"
	"obedio-core/internal/model"
)

const (
	TopicPress     = "obedio/button/+/press"
	TopicStatus    = "obedio/button/+/status"
	TopicTelemetry = "obedio/device/+/telemetry"
	TopicWatchAck  = "obedio/watch/+/acknowledge"

	TopicServiceRequest = "obedio/service/request"
	TopicServiceUpdate  = "obedio/service/update"
)

var (
	ErrUnknownTopic = errors.New("unknown topic")
	ErrParseMessage = errors.New("error parsing message")
)

// CommandTopic is where a device listens for acks and commands.
func CommandTopic(deviceID string) string {
	return "obedio/device/" + deviceID + "/command"
}

// WatchAck is sent by a crew watch when the wearer takes a request.
type WatchAck struct {
	RequestID string `json:"requestId"`
	CrewID    string `json:"crewId"`
}

type pressSink interface {
	Submit(ctx context.Context, e model.DeviceEvent) error
}

type deviceSink interface {
	Seen(ctx context.Context, e model.DeviceEvent) (model.Device, error)
	UpdateStatus(ctx context.Context, deviceID string, s devices.Status) (model.Device, error)
	RecordTelemetry(ctx context.Context, deviceID string, t devices.Telemetry) (model.Device, error)
}

type requestTransitioner interface {
	Transition(ctx context.Context, id string, a lifecycle.Action) (model.ServiceRequest, error)
}

type RouterConfig struct {
	Presses  pressSink
	Devices  deviceSink
	Requests requestTransitioner
	Metrics  *metrics.Metrics
}

// Router decodes inbound device traffic and hands it to the owning
// component.
type Router struct {
	presses  pressSink
	devices  deviceSink
	requests requestTransitioner
	metrics  *metrics.Metrics
}

func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		presses:  cfg.Presses,
		devices:  cfg.Devices,
		requests: cfg.Requests,
		metrics:  cfg.Metrics,
	}
}

// Topics lists the subscriptions the router can serve.
func (r *Router) Topics() []string {
	return []string{TopicPress, TopicStatus, TopicTelemetry, TopicWatchAck}
}

func (r *Router) Handle(ctx context.Context, topic string, payload []byte) error {
	const fn = "Router:Handle"
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[0] != "obedio" || parts[2] == "" {
		return fmt.Errorf("%s:%w: %s", fn, ErrUnknownTopic, topic)
	}
	id := parts[2]

	switch parts[1] + "/" + parts[3] {
	case "button/press":
		var e model.DeviceEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			r.metrics.DeviceEvent("invalid")
			return fmt.Errorf("%s:%w:%w", fn, ErrParseMessage, err)
		}
		if e.DeviceID == "" {
			e.DeviceID = id
		}
		if _, err := r.devices.Seen(ctx, e); err != nil {
			slog.WarnContext(ctx, "Error refreshing device", "device_id", e.DeviceID, "error", err)
		}
		return r.presses.Submit(ctx, e)

	case "button/status":
		var s devices.Status
		if err := json.Unmarshal(payload, &s); err != nil {
			return fmt.Errorf("%s:%w:%w", fn, ErrParseMessage, err)
		}
		_, err := r.devices.UpdateStatus(ctx, id, s)
		return err

	case "device/telemetry":
		var t devices.Telemetry
		if err := json.Unmarshal(payload, &t); err != nil {
			return fmt.Errorf("%s:%w:%w", fn, ErrParseMessage, err)
		}
		_, err := r.devices.RecordTelemetry(ctx, id, t)
		return err

	case "watch/acknowledge":
		var a WatchAck
		if err := json.Unmarshal(payload, &a); err != nil {
			return fmt.Errorf("%s:%w:%w", fn, ErrParseMessage, err)
		}
		if a.RequestID == "" {
			return fmt.Errorf("%s:%w: missing requestId", fn, ErrParseMessage)
		}
		crew := a.CrewID
		if crew == "" {
			crew = id
		}
		_, err := r.requests.Transition(ctx, a.RequestID, lifecycle.Action{Kind: lifecycle.Accept, CrewID: crew})
		if errors.Is(err, model.ErrInvalidTransition) {
			slog.InfoContext(ctx, "Watch acknowledged a request it cannot accept", "watch_id", id, "request_id", a.RequestID, "error", err)
			return nil
		}
		return err
	}
	return fmt.Errorf("%s:%w: %s", fn, ErrUnknownTopic, topic)
}
