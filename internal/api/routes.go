package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.Healthz)
	if a.metrics != nil {
		r.Method(http.MethodGet, "/metrics", a.metrics)
	}
	r.Get("/events", a.Events)

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", a.GetLocations)
		r.Get("/{id}", a.GetLocation)
		r.Put("/{id}", a.PutLocation)
		r.Post("/{id}/dnd", a.ToggleDND)
	})
	r.Route("/guests", func(r chi.Router) {
		r.Get("/", a.GetGuests)
		r.Get("/{id}", a.GetGuest)
		r.Put("/{id}", a.PutGuest)
		r.Delete("/{id}", a.DeleteGuest)
	})
	r.Route("/dnd", func(r chi.Router) {
		r.Get("/issues", a.GetIssues)
		r.Post("/repair", a.Repair)
	})
	r.Route("/service-requests", func(r chi.Router) {
		r.Get("/", a.GetServiceRequests)
		r.Post("/", a.CreateServiceRequest)
		r.Get("/{id}", a.GetServiceRequest)
		r.Post("/{id}/{action}", a.TransitionServiceRequest)
	})
	r.Post("/device-events", a.IngestDeviceEvent)
	r.Get("/devices", a.GetDevices)
	r.Get("/activity", a.GetActivity)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.DebugContext(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
