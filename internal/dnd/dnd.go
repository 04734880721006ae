package dnd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"obedio-core/internal/broadcast"
	"obedio-core/internal/clock"
	"obedio-core/internal/lock"
	"obedio-core/internal/metrics"
	"obedio-core/internal/model"

	"github.com/google/uuid"
)

var (
	ErrUpdateLocation = errors.New("error updating location dnd")
	ErrUpdateGuest    = errors.New("error updating guest dnd")
	ErrLoadState      = errors.New("error loading dnd state")
)

type store interface {
	GetLocation(ctx context.Context, id string) (model.Location, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
	SetLocationDND(ctx context.Context, id string, status bool) (model.Location, error)
	GetGuest(ctx context.Context, id string) (model.Guest, error)
	ListGuests(ctx context.Context) ([]model.Guest, error)
	SetGuestDND(ctx context.Context, id string, status bool) (model.Guest, error)
	AppendActivity(ctx context.Context, e model.ActivityEntry) error
}

type publisher interface {
	Publish(entity broadcast.Entity, kind broadcast.Kind, payload broadcast.Identified) broadcast.Envelope
}

type Config struct {
	Store   store
	Hub     publisher
	Clock   clock.Clock
	Locks   *lock.Keyed
	Metrics *metrics.Metrics
}

type Engine struct {
	store   store
	hub     publisher
	clock   clock.Clock
	locks   *lock.Keyed
	metrics *metrics.Metrics
}

func New(cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Locks == nil {
		cfg.Locks = lock.NewKeyed()
	}
	return &Engine{
		store:   cfg.Store,
		hub:     cfg.Hub,
		clock:   cfg.Clock,
		locks:   cfg.Locks,
		metrics: cfg.Metrics,
	}
}

// ToggleResult reports what a toggle actually changed. Success with
// LocationUpdated but not GuestUpdated never happens; that combination is
// a divergence and carries model.ErrConsistencyDivergence.
type ToggleResult struct {
	Success         bool            `json:"success"`
	LocationUpdated bool            `json:"locationUpdated"`
	GuestUpdated    bool            `json:"guestUpdated"`
	NewStatus       bool            `json:"newStatus"`
	Location        *model.Location `json:"location,omitempty"`
	Guest           *model.Guest    `json:"guest,omitempty"`
	Message         string          `json:"message,omitempty"`
	Err             error           `json:"-"`
}

// Divergent is true when the location changed but the guest did not.
func (r ToggleResult) Divergent() bool {
	return r.LocationUpdated && !r.GuestUpdated && errors.Is(r.Err, model.ErrConsistencyDivergence)
}

// lockPair serializes every write touching the location or the guest.
// The location key is always taken first.
func (e *Engine) lockPair(locationID string, guestID *string) func() {
	unlockLocation := e.locks.Lock("location:" + locationID)
	if guestID == nil {
		return unlockLocation
	}
	unlockGuest := e.locks.Lock("guest:" + *guestID)
	return func() {
		unlockGuest()
		unlockLocation()
	}
}

// ToggleDND sets the flag on the location and, when guestID is given, on
// the guest, as one logical operation.
func (e *Engine) ToggleDND(ctx context.Context, locationID string, status bool, guestID *string) ToggleResult {
	unlock := e.lockPair(locationID, guestID)
	defer unlock()
	return e.setDND(ctx, locationID, status, guestID)
}

// FlipDND inverts the location's current flag. The read shares the write's
// lock, so concurrent flips alternate instead of landing on the same value.
func (e *Engine) FlipDND(ctx context.Context, locationID string, guestID *string) ToggleResult {
	const fn = "Engine:FlipDND"
	unlock := e.lockPair(locationID, guestID)
	defer unlock()

	location, err := e.store.GetLocation(ctx, locationID)
	if err != nil {
		slog.ErrorContext(ctx, "DND flip failed", "location_id", locationID, "error", err)
		return ToggleResult{
			Err:     fmt.Errorf("%s:%w:%w", fn, ErrLoadState, err),
			Message: "location read failed",
		}
	}
	return e.setDND(ctx, locationID, !location.DoNotDisturb, guestID)
}

// Must be called with the pair lock held.
func (e *Engine) setDND(ctx context.Context, locationID string, status bool, guestID *string) ToggleResult {
	const fn = "Engine:setDND"
	result := ToggleResult{NewStatus: status}

	location, err := e.store.SetLocationDND(ctx, locationID, status)
	if err != nil {
		result.Err = fmt.Errorf("%s:%w:%w", fn, ErrUpdateLocation, err)
		result.Message = "location update failed"
		slog.ErrorContext(ctx, "DND toggle failed", "location_id", locationID, "error", err)
		return result
	}
	result.LocationUpdated = true
	result.Location = &location
	e.hub.Publish(broadcast.EntityLocation, broadcast.Updated, location)

	if guestID != nil {
		guest, err := e.store.SetGuestDND(ctx, *guestID, status)
		if err != nil {
			result.Err = fmt.Errorf("%s:%w:%w:%w", fn, model.ErrConsistencyDivergence, ErrUpdateGuest, err)
			result.Message = "location updated but guest update failed"
			e.metrics.DNDDivergence()
			slog.WarnContext(ctx, "DND divergence after partial toggle",
				"location_id", locationID,
				"guest_id", *guestID,
				"status", status,
				"error", err,
			)
		} else {
			result.GuestUpdated = true
			result.Guest = &guest
			e.hub.Publish(broadcast.EntityGuest, broadcast.Updated, guest)
		}
	}
	result.Success = result.Err == nil

	e.logActivity(ctx, result, locationID, guestID)
	slog.InfoContext(ctx, "DND toggled",
		"location_id", locationID,
		"status", status,
		"location_updated", result.LocationUpdated,
		"guest_updated", result.GuestUpdated,
	)
	return result
}

func (e *Engine) logActivity(ctx context.Context, result ToggleResult, locationID string, guestID *string) {
	action := "dnd_off"
	verb := "deactivated"
	if result.NewStatus {
		action = "dnd_on"
		verb = "activated"
	}
	name := locationID
	if result.Location != nil && result.Location.Name != "" {
		name = result.Location.Name
	}
	details := fmt.Sprintf("DND %s for %s", verb, name)
	if result.Guest != nil {
		details += " (" + result.Guest.DisplayName() + ")"
	}
	entry := model.ActivityEntry{
		ID:         uuid.NewString(),
		Type:       "dnd",
		Action:     action,
		LocationID: model.StringPtr(locationID),
		GuestID:    guestID,
		Details:    details,
		Metadata: map[string]string{
			"location_updated": strconv.FormatBool(result.LocationUpdated),
			"guest_updated":    strconv.FormatBool(result.GuestUpdated),
		},
		At: e.clock.Now(),
	}
	if err := e.store.AppendActivity(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "Error appending activity", "action", action, "error", err)
	}
}
