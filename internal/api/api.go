package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"obedio-core/internal/broadcast"
	"obedio-core/internal/clock"
	"obedio-core/internal/dnd"
	"obedio-core/internal/lifecycle"
	"obedio-core/internal/model"
	"obedio-core/internal/processors/ingestor"

	"github.com/go-chi/chi/v5"
)

type repository interface {
	PutLocation(ctx context.Context, l model.Location) (bool, error)
	GetLocation(ctx context.Context, id string) (model.Location, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
	PutGuest(ctx context.Context, g model.Guest) (bool, error)
	GetGuest(ctx context.Context, id string) (model.Guest, error)
	DeleteGuest(ctx context.Context, id string) (model.Guest, error)
	ListGuests(ctx context.Context) ([]model.Guest, error)
	ListDevices(ctx context.Context) ([]model.Device, error)
	ListActivity(ctx context.Context, limit int) ([]model.ActivityEntry, error)
}

type dndEngine interface {
	ToggleDND(ctx context.Context, locationID string, status bool, guestID *string) dnd.ToggleResult
	Validate(ctx context.Context) ([]dnd.Issue, error)
	Repair(ctx context.Context, issues []dnd.Issue) dnd.RepairResult
}

type requestManager interface {
	Create(ctx context.Context, p lifecycle.CreateParams) (model.ServiceRequest, error)
	Transition(ctx context.Context, id string, a lifecycle.Action) (model.ServiceRequest, error)
	Get(ctx context.Context, id string) (model.ServiceRequest, error)
	Queue(ctx context.Context, includeClosed bool) ([]model.ServiceRequest, error)
}

type eventIngestor interface {
	Ingest(ctx context.Context, e model.DeviceEvent) ingestor.IngestResult
}

type guestResolver interface {
	ResolveGuest(ctx context.Context, locationID string) (*model.Guest, error)
}

type hub interface {
	Publish(entity broadcast.Entity, kind broadcast.Kind, payload broadcast.Identified) broadcast.Envelope
	Subscribe(name string, filter func(broadcast.Envelope) bool) *broadcast.Subscription
}

type pinger interface {
	Ping(ctx context.Context) error
}

const DefaultHeartbeat = 15 * time.Second

type Config struct {
	Repo     repository
	DND      dndEngine
	Requests requestManager
	Ingestor eventIngestor
	Resolver guestResolver
	Hub      hub
	Clock    clock.Clock
	// Metrics serves /metrics; nil disables the route.
	Metrics http.Handler
	// Health is pinged by /healthz when set.
	Health pinger
	// Heartbeat is the SSE keep-alive interval.
	Heartbeat time.Duration
}

type API struct {
	repo      repository
	dnd       dndEngine
	requests  requestManager
	ingestor  eventIngestor
	resolver  guestResolver
	hub       hub
	clock     clock.Clock
	metrics   http.Handler
	health    pinger
	heartbeat time.Duration
}

func New(cfg Config) *API {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = DefaultHeartbeat
	}
	return &API{
		repo:      cfg.Repo,
		dnd:       cfg.DND,
		requests:  cfg.Requests,
		ingestor:  cfg.Ingestor,
		resolver:  cfg.Resolver,
		hub:       cfg.Hub,
		clock:     cfg.Clock,
		metrics:   cfg.Metrics,
		health:    cfg.Health,
		heartbeat: cfg.Heartbeat,
	}
}

// statusFor maps the error taxonomy onto HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, lifecycle.ErrInvalidRequest), errors.Is(err, model.ErrInvalidEvent):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrStoreUnavailable), errors.Is(err, model.ErrBackpressure):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	if a.health != nil {
		if err := a.health.Ping(r.Context()); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (a *API) ToggleDND(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "id")
	var req ToggleDNDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	guestID := req.GuestID
	if guestID == nil && req.ResolveGuest {
		g, err := a.resolver.ResolveGuest(r.Context(), locationID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if g != nil {
			guestID = &g.ID
		}
	}

	result := a.dnd.ToggleDND(r.Context(), locationID, req.Status, guestID)
	if !result.LocationUpdated {
		err := result.Err
		if err == nil {
			err = errors.New(result.Message)
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) GetIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := a.dnd.Validate(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GetIssuesResponse{Issues: issues})
}

func (a *API) Repair(w http.ResponseWriter, r *http.Request) {
	issues, err := a.dnd.Validate(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	result := a.dnd.Repair(r.Context(), issues)
	writeJSON(w, http.StatusOK, RepairResponse{Issues: issues, Result: result})
}

func (a *API) CreateServiceRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var guest *model.Guest
	if req.GuestID != nil {
		g, err := a.repo.GetGuest(r.Context(), *req.GuestID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		guest = &g
	} else if req.LocationID != "" {
		g, err := a.resolver.ResolveGuest(r.Context(), req.LocationID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		guest = g
	}

	created, err := a.requests.Create(r.Context(), lifecycle.CreateParams{
		ID:              req.ID,
		LocationID:      req.LocationID,
		Guest:           guest,
		RequestType:     req.RequestType,
		Priority:        req.Priority,
		Notes:           req.Notes,
		VoiceTranscript: req.VoiceTranscript,
		AudioURL:        req.AudioURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) GetServiceRequests(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	requests, err := a.requests.Queue(r.Context(), all)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GetServiceRequestsResponse{Requests: requests})
}

func (a *API) GetServiceRequest(w http.ResponseWriter, r *http.Request) {
	req, err := a.requests.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (a *API) TransitionServiceRequest(w http.ResponseWriter, r *http.Request) {
	kind, ok := lifecycle.ParseAction(chi.URLParam(r, "action"))
	if !ok {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	var body TransitionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	updated, err := a.requests.Transition(r.Context(), chi.URLParam(r, "id"), lifecycle.Action{
		Kind:   kind,
		CrewID: body.CrewID,
		Note:   body.Note,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) IngestDeviceEvent(w http.ResponseWriter, r *http.Request) {
	var e model.DeviceEvent
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	result := a.ingestor.Ingest(r.Context(), e)

	status := http.StatusOK
	switch result.Outcome {
	case ingestor.OutcomeAccepted:
		if result.RequestID != "" {
			status = http.StatusCreated
		}
	case ingestor.OutcomeDeferred:
		status = http.StatusAccepted
	case ingestor.OutcomeInvalid:
		status = http.StatusBadRequest
	case ingestor.OutcomeBackpressure:
		status = http.StatusTooManyRequests
	case ingestor.OutcomeFailed:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}
