package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"obedio-core/internal/broadcast"

	"github.com/go-chi/chi/v5/middleware"
)

// Events streams hub envelopes as server-sent events. ?entity= narrows the
// stream, e.g. ?entity=servicerequest,location.
func (a *API) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	var filter func(broadcast.Envelope) bool
	if q := r.URL.Query().Get("entity"); q != "" {
		var entities []broadcast.Entity
		for _, e := range strings.Split(q, ",") {
			entities = append(entities, broadcast.Entity(strings.TrimSpace(e)))
		}
		filter = broadcast.Only(entities...)
	}

	name := "sse:" + middleware.GetReqID(r.Context())
	sub := a.hub.Subscribe(name, filter)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	slog.InfoContext(r.Context(), "Event stream opened", "subscriber", name)

	ticker := time.NewTicker(a.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case env, ok := <-sub.C():
			if !ok {
				reason := "stream closed"
				if err := sub.Err(); err != nil {
					reason = err.Error()
				}
				slog.WarnContext(r.Context(), "Event stream ended", "subscriber", name, "reason", reason)
				fmt.Fprintf(w, "event: error\ndata: %q\n\n", reason)
				flusher.Flush()
				return
			}
			data, err := json.Marshal(env)
			if err != nil {
				slog.ErrorContext(r.Context(), "Failed to marshal envelope", "seq", env.Seq, "error", err)
				continue
			}
			fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", env.Seq, env.Event(), data)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
