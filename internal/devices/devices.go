package devices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"obedio-core/internal/broadcast"
	"obedio-core/internal/clock"
	"obedio-core/internal/lock"
	"obedio-core/internal/model"
)

var (
	ErrInvalidDevice = errors.New("invalid device")
	ErrLoadDevice    = errors.New("error loading device")
	ErrSaveDevice    = errors.New("error saving device")
)

// Status is the payload of a device status report. Nil fields keep the
// stored value.
type Status struct {
	Online          *bool   `json:"online"`
	Battery         *int    `json:"battery"`
	RSSI            *int    `json:"rssi"`
	FirmwareVersion string  `json:"firmwareVersion"`
	LocationID      *string `json:"locationId"`
}

type Telemetry struct {
	Battery *int `json:"battery"`
	RSSI    *int `json:"rssi"`
}

type store interface {
	GetDevice(ctx context.Context, id string) (model.Device, error)
	UpsertDevice(ctx context.Context, d model.Device) error
	ListDevices(ctx context.Context) ([]model.Device, error)
}

type publisher interface {
	Publish(entity broadcast.Entity, kind broadcast.Kind, payload broadcast.Identified) broadcast.Envelope
}

type Config struct {
	Store store
	Hub   publisher
	Clock clock.Clock
}

// Registry keeps the last known state of every button and watch. Nothing
// here ever creates a service request.
type Registry struct {
	store store
	hub   publisher
	clock clock.Clock
	locks *lock.Keyed
}

func New(cfg Config) *Registry {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	return &Registry{
		store: cfg.Store,
		hub:   cfg.Hub,
		clock: cfg.Clock,
		locks: lock.NewKeyed(),
	}
}

func (r *Registry) UpdateStatus(ctx context.Context, deviceID string, s Status) (model.Device, error) {
	return r.update(ctx, "Registry:UpdateStatus", deviceID, func(d *model.Device) {
		d.Online = true
		if s.Online != nil {
			d.Online = *s.Online
		}
		if s.Battery != nil {
			d.Battery = s.Battery
		}
		if s.RSSI != nil {
			d.RSSI = s.RSSI
		}
		if s.FirmwareVersion != "" {
			d.FirmwareVersion = s.FirmwareVersion
		}
		if s.LocationID != nil {
			d.LocationID = s.LocationID
		}
	})
}

func (r *Registry) RecordTelemetry(ctx context.Context, deviceID string, t Telemetry) (model.Device, error) {
	return r.update(ctx, "Registry:RecordTelemetry", deviceID, func(d *model.Device) {
		d.Online = true
		if t.Battery != nil {
			d.Battery = t.Battery
		}
		if t.RSSI != nil {
			d.RSSI = t.RSSI
		}
	})
}

// Seen refreshes a device from a button press.
func (r *Registry) Seen(ctx context.Context, e model.DeviceEvent) (model.Device, error) {
	return r.update(ctx, "Registry:Seen", e.DeviceID, func(d *model.Device) {
		d.Online = true
		d.Battery = &e.Battery
		d.RSSI = &e.RSSI
		if e.FirmwareVersion != "" {
			d.FirmwareVersion = e.FirmwareVersion
		}
		if d.LocationID == nil {
			d.LocationID = model.StringPtr(e.LocationID)
		}
	})
}

func (r *Registry) update(ctx context.Context, fn, deviceID string, apply func(*model.Device)) (model.Device, error) {
	if deviceID == "" {
		return model.Device{}, fmt.Errorf("%s:%w: missing device id", fn, ErrInvalidDevice)
	}
	unlock := r.locks.Lock(deviceID)
	defer unlock()

	d, err := r.store.GetDevice(ctx, deviceID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		slog.InfoContext(ctx, "Registering new device", "device_id", deviceID)
		d = model.Device{DeviceID: deviceID}
	case err != nil:
		return model.Device{}, fmt.Errorf("%s:%w:%w", fn, ErrLoadDevice, err)
	}

	apply(&d)
	d.LastSeen = r.clock.Now()
	if err := r.store.UpsertDevice(ctx, d); err != nil {
		return model.Device{}, fmt.Errorf("%s:%w:%w", fn, ErrSaveDevice, err)
	}
	r.hub.Publish(broadcast.EntityDevice, broadcast.Updated, d)
	return d, nil
}

func (r *Registry) List(ctx context.Context) ([]model.Device, error) {
	return r.store.ListDevices(ctx)
}
