package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"obedio-core/internal/broadcast"
	"obedio-core/internal/clock"
	"obedio-core/internal/lock"
	"obedio-core/internal/metrics"
	"obedio-core/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest = errors.New("invalid service request")
	ErrCreate         = errors.New("error creating service request")
	ErrLoad           = errors.New("error loading service request")
	ErrUpdate         = errors.New("error updating service request")
)

type ActionKind string

const (
	Accept   ActionKind = "accept"
	Delegate ActionKind = "delegate"
	Complete ActionKind = "complete"
	Cancel   ActionKind = "cancel"
)

// Action is a crew transition. CrewID is required for accept and delegate.
type Action struct {
	Kind   ActionKind `json:"action"`
	CrewID string     `json:"crewId,omitempty"`
	Note   string     `json:"note,omitempty"`
}

type CreateParams struct {
	// ID is optional; retries pass the id of the first attempt.
	ID              string
	LocationID      string
	Guest           *model.Guest
	RequestType     model.RequestType
	Priority        model.Priority
	Notes           string
	VoiceTranscript string
	AudioURL        string
	Safety          *model.MedicalSafety
}

type store interface {
	CreateServiceRequest(ctx context.Context, r model.ServiceRequest) error
	GetServiceRequest(ctx context.Context, id string) (model.ServiceRequest, error)
	UpdateServiceRequest(ctx context.Context, r model.ServiceRequest) error
	ListServiceRequests(ctx context.Context) ([]model.ServiceRequest, error)
	AppendActivity(ctx context.Context, e model.ActivityEntry) error
}

type publisher interface {
	Publish(entity broadcast.Entity, kind broadcast.Kind, payload broadcast.Identified) broadcast.Envelope
}

type Config struct {
	Store   store
	Hub     publisher
	Clock   clock.Clock
	Metrics *metrics.Metrics
}

type Manager struct {
	store   store
	hub     publisher
	clock   clock.Clock
	locks   *lock.Keyed
	metrics *metrics.Metrics
}

func New(cfg Config) *Manager {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	return &Manager{
		store:   cfg.Store,
		hub:     cfg.Hub,
		clock:   cfg.Clock,
		locks:   lock.NewKeyed(),
		metrics: cfg.Metrics,
	}
}

func validType(t model.RequestType) bool {
	return t == model.RequestCall || t == model.RequestService || t == model.RequestEmergency
}

func validPriority(p model.Priority) bool {
	return p == model.PriorityNormal || p == model.PriorityUrgent || p == model.PriorityEmergency
}

func (m *Manager) Create(ctx context.Context, p CreateParams) (model.ServiceRequest, error) {
	const fn = "Manager:Create"
	if p.Priority == "" {
		p.Priority = model.PriorityNormal
	}
	if p.LocationID == "" || !validType(p.RequestType) || !validPriority(p.Priority) {
		return model.ServiceRequest{}, fmt.Errorf("%s:%w: location=%q type=%q priority=%q",
			fn, ErrInvalidRequest, p.LocationID, p.RequestType, p.Priority)
	}

	now := m.clock.Now()
	r := model.ServiceRequest{
		ID:              p.ID,
		LocationID:      p.LocationID,
		GuestName:       "Guest",
		RequestType:     p.RequestType,
		Priority:        p.Priority,
		Status:          model.StatusPending,
		Notes:           p.Notes,
		VoiceTranscript: p.VoiceTranscript,
		AudioURL:        p.AudioURL,
		Safety:          p.Safety,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if p.Guest != nil {
		r.GuestID = model.StringPtr(p.Guest.ID)
		r.GuestName = p.Guest.DisplayName()
		if r.Safety == nil && r.Priority == model.PriorityEmergency {
			r.Safety = p.Guest.Safety()
		}
	}

	// Held until created is published so no update can overtake it.
	unlock := m.locks.Lock(r.ID)
	if err := m.store.CreateServiceRequest(ctx, r); err != nil {
		unlock()
		return model.ServiceRequest{}, fmt.Errorf("%s:%w:%w", fn, ErrCreate, err)
	}
	m.metrics.ServiceRequestCreated(string(r.Priority))
	m.hub.Publish(broadcast.EntityServiceRequest, broadcast.Created, r)
	unlock()

	m.logActivity(ctx, r, "created", fmt.Sprintf("%s %s request from %s", r.Priority, r.RequestType, r.GuestName), nil)
	slog.InfoContext(ctx, "Service request created",
		"request_id", r.ID,
		"location_id", r.LocationID,
		"priority", r.Priority,
		"request_type", r.RequestType,
	)
	return r, nil
}

// Transition applies a crew action. Requests in a terminal state never
// move again.
func (m *Manager) Transition(ctx context.Context, id string, a Action) (model.ServiceRequest, error) {
	const fn = "Manager:Transition"
	unlock := m.locks.Lock(id)
	defer unlock()

	r, err := m.store.GetServiceRequest(ctx, id)
	if err != nil {
		return model.ServiceRequest{}, fmt.Errorf("%s:%w:%w", fn, ErrLoad, err)
	}
	if r.Status.Terminal() {
		return model.ServiceRequest{}, fmt.Errorf("%s:%w: request %s is %s", fn, model.ErrInvalidTransition, id, r.Status)
	}

	now := m.clock.Now()
	metadata := map[string]string{"from": string(r.Status)}
	var details string

	switch a.Kind {
	case Accept:
		if r.Status != model.StatusPending {
			return model.ServiceRequest{}, fmt.Errorf("%s:%w: cannot accept a %s request", fn, model.ErrInvalidTransition, r.Status)
		}
		if a.CrewID == "" {
			return model.ServiceRequest{}, fmt.Errorf("%s:%w: crew id required", fn, ErrInvalidRequest)
		}
		r.Status = model.StatusAccepted
		r.AssignedToID = model.StringPtr(a.CrewID)
		r.AcceptedAt = &now
		metadata["response_time_ms"] = fmt.Sprint(now.Sub(r.CreatedAt).Milliseconds())
		details = fmt.Sprintf("Accepted by %s", a.CrewID)
	case Delegate:
		if r.Status != model.StatusAccepted {
			return model.ServiceRequest{}, fmt.Errorf("%s:%w: cannot delegate a %s request", fn, model.ErrInvalidTransition, r.Status)
		}
		if a.CrewID == "" {
			return model.ServiceRequest{}, fmt.Errorf("%s:%w: crew id required", fn, ErrInvalidRequest)
		}
		if r.AssignedToID != nil {
			metadata["previous_assignee"] = *r.AssignedToID
		}
		r.AssignedToID = model.StringPtr(a.CrewID)
		details = fmt.Sprintf("Delegated to %s", a.CrewID)
	case Complete:
		if r.Status != model.StatusAccepted {
			return model.ServiceRequest{}, fmt.Errorf("%s:%w: cannot complete a %s request", fn, model.ErrInvalidTransition, r.Status)
		}
		r.Status = model.StatusCompleted
		r.CompletedAt = &now
		if a.Note != "" {
			r.Notes = appendNote(r.Notes, a.Note)
		}
		details = "Completed"
	case Cancel:
		r.Status = model.StatusCancelled
		if a.Note != "" {
			r.Notes = appendNote(r.Notes, a.Note)
		}
		details = "Cancelled"
	default:
		return model.ServiceRequest{}, fmt.Errorf("%s:%w: unknown action %q", fn, ErrInvalidRequest, a.Kind)
	}
	r.UpdatedAt = now

	if err := m.store.UpdateServiceRequest(ctx, r); err != nil {
		return model.ServiceRequest{}, fmt.Errorf("%s:%w:%w", fn, ErrUpdate, err)
	}
	m.hub.Publish(broadcast.EntityServiceRequest, broadcast.Updated, r)
	m.logActivity(ctx, r, string(a.Kind), details, metadata)
	slog.InfoContext(ctx, "Service request transitioned",
		"request_id", r.ID,
		"action", a.Kind,
		"status", r.Status,
	)
	return r, nil
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return notes + "\n" + note
}

func (m *Manager) logActivity(ctx context.Context, r model.ServiceRequest, action, details string, metadata map[string]string) {
	entry := model.ActivityEntry{
		ID:         uuid.NewString(),
		Type:       "service_request",
		Action:     action,
		LocationID: model.StringPtr(r.LocationID),
		GuestID:    r.GuestID,
		RequestID:  model.StringPtr(r.ID),
		Details:    details,
		Metadata:   metadata,
		At:         m.clock.Now(),
	}
	if err := m.store.AppendActivity(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "Error appending activity", "request_id", r.ID, "action", action, "error", err)
	}
}

func (m *Manager) Get(ctx context.Context, id string) (model.ServiceRequest, error) {
	const fn = "Manager:Get"
	r, err := m.store.GetServiceRequest(ctx, id)
	if err != nil {
		return model.ServiceRequest{}, fmt.Errorf("%s:%w:%w", fn, ErrLoad, err)
	}
	return r, nil
}

// Queue returns requests in display order. Closed requests are left out
// unless includeClosed is set.
func (m *Manager) Queue(ctx context.Context, includeClosed bool) ([]model.ServiceRequest, error) {
	const fn = "Manager:Queue"
	all, err := m.store.ListServiceRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrLoad, err)
	}
	out := make([]model.ServiceRequest, 0, len(all))
	for _, r := range all {
		if !includeClosed && r.Status.Terminal() {
			continue
		}
		out = append(out, r)
	}
	Order(out)
	return out, nil
}

// Order sorts in place: emergency, then urgent, then normal, oldest first
// inside each band.
func Order(requests []model.ServiceRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		ri, rj := requests[i].Priority.Rank(), requests[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
}

// ParseAction accepts the path form of an action name.
func ParseAction(s string) (ActionKind, bool) {
	switch k := ActionKind(strings.ToLower(s)); k {
	case Accept, Delegate, Complete, Cancel:
		return k, true
	}
	return "", false
}
