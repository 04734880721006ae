package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"obedio-core/internal/broadcast"
	"obedio-core/internal/model"

	"github.com/go-chi/chi/v5"
)

func (a *API) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := a.repo.ListLocations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GetLocationsResponse{Locations: locations})
}

func (a *API) GetLocation(w http.ResponseWriter, r *http.Request) {
	l, err := a.repo.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// PutLocation upserts everything except the DND flag, which only the DND
// engine may change.
func (a *API) PutLocation(w http.ResponseWriter, r *http.Request) {
	var l model.Location
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	l.ID = chi.URLParam(r, "id")
	if l.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	existing, err := a.repo.GetLocation(r.Context(), l.ID)
	switch {
	case err == nil:
		l.DoNotDisturb = existing.DoNotDisturb
	case errors.Is(err, model.ErrNotFound):
		l.DoNotDisturb = false
	default:
		writeError(w, r, err)
		return
	}

	created, err := a.repo.PutLocation(r.Context(), l)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.hub.Publish(broadcast.EntityLocation, broadcast.Updated, l)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, l)
}

func (a *API) GetGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := a.repo.ListGuests(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GetGuestsResponse{Guests: guests})
}

func (a *API) GetGuest(w http.ResponseWriter, r *http.Request) {
	g, err := a.repo.GetGuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// PutGuest keeps the stored DND flag and creation time of an existing guest.
func (a *API) PutGuest(w http.ResponseWriter, r *http.Request) {
	var g model.Guest
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	g.ID = chi.URLParam(r, "id")
	if g.Type == "" {
		g.Type = model.GuestRegular
	}
	if g.Status == "" {
		g.Status = model.GuestExpected
	}

	existing, err := a.repo.GetGuest(r.Context(), g.ID)
	switch {
	case err == nil:
		g.DoNotDisturb = existing.DoNotDisturb
		g.CreatedAt = existing.CreatedAt
	case errors.Is(err, model.ErrNotFound):
		g.DoNotDisturb = false
		g.CreatedAt = a.clock.Now()
	default:
		writeError(w, r, err)
		return
	}

	created, err := a.repo.PutGuest(r.Context(), g)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status, kind := http.StatusOK, broadcast.Updated
	if created {
		status, kind = http.StatusCreated, broadcast.Created
	}
	a.hub.Publish(broadcast.EntityGuest, kind, g)
	writeJSON(w, status, g)
}

func (a *API) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	g, err := a.repo.DeleteGuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.hub.Publish(broadcast.EntityGuest, broadcast.Deleted, g)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) GetDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := a.repo.ListDevices(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GetDevicesResponse{Devices: devices})
}

func (a *API) GetActivity(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	entries, err := a.repo.ListActivity(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GetActivityResponse{Activity: entries})
}
