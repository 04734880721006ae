package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"obedio-core/internal/model"
)

// Store is the in-process record store used when no database is
// configured, and by tests. Guests keep insertion order so resolver ties
// break the same way as on Postgres.
type Store struct {
	mu         sync.RWMutex
	locations  map[string]model.Location
	guests     map[string]model.Guest
	guestOrder []string
	requests   map[string]model.ServiceRequest
	devices    map[string]model.Device
	activity   []model.ActivityEntry
}

func New() *Store {
	return &Store{
		locations: make(map[string]model.Location),
		guests:    make(map[string]model.Guest),
		requests:  make(map[string]model.ServiceRequest),
		devices:   make(map[string]model.Device),
	}
}

func notFound(fn, kind, id string) error {
	return fmt.Errorf("%s:%w: %s %s", fn, model.ErrNotFound, kind, id)
}

func (s *Store) PutLocation(_ context.Context, l model.Location) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.locations[l.ID]
	s.locations[l.ID] = l
	return !exists, nil
}

func (s *Store) GetLocation(_ context.Context, id string) (model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.locations[id]
	if !ok {
		return model.Location{}, notFound("Store:GetLocation", "location", id)
	}
	return l, nil
}

func (s *Store) ListLocations(_ context.Context) ([]model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Location, 0, len(s.locations))
	for _, l := range s.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SetLocationDND(_ context.Context, id string, status bool) (model.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locations[id]
	if !ok {
		return model.Location{}, notFound("Store:SetLocationDND", "location", id)
	}
	l.DoNotDisturb = status
	s.locations[id] = l
	return l, nil
}

func cloneGuest(g model.Guest) model.Guest {
	g.Allergies = slices.Clone(g.Allergies)
	g.MedicalConditions = slices.Clone(g.MedicalConditions)
	return g
}

func (s *Store) PutGuest(_ context.Context, g model.Guest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.guests[g.ID]
	if !exists {
		s.guestOrder = append(s.guestOrder, g.ID)
	}
	s.guests[g.ID] = cloneGuest(g)
	return !exists, nil
}

func (s *Store) GetGuest(_ context.Context, id string) (model.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guests[id]
	if !ok {
		return model.Guest{}, notFound("Store:GetGuest", "guest", id)
	}
	return cloneGuest(g), nil
}

func (s *Store) DeleteGuest(_ context.Context, id string) (model.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guests[id]
	if !ok {
		return model.Guest{}, notFound("Store:DeleteGuest", "guest", id)
	}
	delete(s.guests, id)
	s.guestOrder = slices.DeleteFunc(s.guestOrder, func(gid string) bool { return gid == id })
	return g, nil
}

func (s *Store) ListGuests(_ context.Context) ([]model.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Guest, 0, len(s.guestOrder))
	for _, id := range s.guestOrder {
		out = append(out, cloneGuest(s.guests[id]))
	}
	return out, nil
}

func (s *Store) ListGuestsByLocation(_ context.Context, locationID string) ([]model.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Guest{}
	for _, id := range s.guestOrder {
		g := s.guests[id]
		if g.LocationID != nil && *g.LocationID == locationID {
			out = append(out, cloneGuest(g))
		}
	}
	return out, nil
}

func (s *Store) SetGuestDND(_ context.Context, id string, status bool) (model.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guests[id]
	if !ok {
		return model.Guest{}, notFound("Store:SetGuestDND", "guest", id)
	}
	g.DoNotDisturb = status
	s.guests[id] = g
	return cloneGuest(g), nil
}

func (s *Store) CreateServiceRequest(_ context.Context, r model.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID] = r
	return nil
}

func (s *Store) GetServiceRequest(_ context.Context, id string) (model.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return model.ServiceRequest{}, notFound("Store:GetServiceRequest", "service request", id)
	}
	return r, nil
}

func (s *Store) UpdateServiceRequest(_ context.Context, r model.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[r.ID]; !ok {
		return notFound("Store:UpdateServiceRequest", "service request", r.ID)
	}
	s.requests[r.ID] = r
	return nil
}

func (s *Store) ListServiceRequests(_ context.Context) ([]model.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ServiceRequest, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpsertDevice(_ context.Context, d model.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[d.DeviceID] = d
	return nil
}

func (s *Store) GetDevice(_ context.Context, id string) (model.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.devices[id]
	if !ok {
		return model.Device{}, notFound("Store:GetDevice", "device", id)
	}
	return d, nil
}

func (s *Store) ListDevices(_ context.Context) ([]model.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Device, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out, nil
}

func (s *Store) AppendActivity(_ context.Context, e model.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = append(s.activity, e)
	return nil
}

// ListActivity returns the newest entries first.
func (s *Store) ListActivity(_ context.Context, limit int) ([]model.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.activity)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]model.ActivityEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.activity[i])
	}
	return out, nil
}
