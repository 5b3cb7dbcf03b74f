package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	domainView "github.com/cmlabs-hris/attendance-dashboard/internal/domain/view"
	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-dashboard/internal/view"
)

type DashboardHandler interface {
	// Page renders the dashboard shell with the session's current regions
	Page(w http.ResponseWriter, r *http.Request)
	// Stream pushes region, chart, section, filter and flash events
	Stream(w http.ResponseWriter, r *http.Request)
	// Region returns the current content of one region
	Region(w http.ResponseWriter, r *http.Request)
	// SwitchSection activates one top-level section
	SwitchSection(w http.ResponseWriter, r *http.Request)
	// ActivityDetail returns the detail popup of a feed entry
	ActivityDetail(w http.ResponseWriter, r *http.Request)
	// State returns the session's view state
	State(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	sessions  *view.Sessions
	hub       *sse.Hub
	keepalive time.Duration
}

func NewDashboardHandler(sessions *view.Sessions, hub *sse.Hub) DashboardHandler {
	return &dashboardHandlerImpl{sessions: sessions, hub: hub, keepalive: 30 * time.Second}
}

// controllerFor returns the controller of the request's session. A new
// session gets its initial load before the handler goes on.
func controllerFor(sessions *view.Sessions, r *http.Request) *view.Controller {
	c, created := sessions.GetOrCreate(middleware.SessionID(r.Context()))
	if created {
		c.Load(r.Context())
	}
	return c
}

// Page handles GET /dashboard
func (h *dashboardHandlerImpl) Page(w http.ResponseWriter, r *http.Request) {
	c := controllerFor(h.sessions, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Page(w); err != nil {
		slog.Error("Failed to render dashboard page", "session_id", c.ID(), "error", err)
	}
}

// Stream handles GET /ui/stream
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// an evicted session comes back here when the browser reconnects
	c := controllerFor(h.sessions, r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(c.ID())
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()
	c.Resync()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode stream event", "session_id", c.ID(), "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			c.Touch()
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

type RegionResponse struct {
	Region domainView.RegionID `json:"region"`
	HTML   string              `json:"html"`
}

// Region handles GET /ui/regions/{region}
func (h *dashboardHandlerImpl) Region(w http.ResponseWriter, r *http.Request) {
	id := domainView.RegionID(chi.URLParam(r, "region"))

	html, err := controllerFor(h.sessions, r).Region(id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, RegionResponse{Region: id, HTML: string(html)})
}

// SwitchSection handles POST /ui/sections/{section}
func (h *dashboardHandlerImpl) SwitchSection(w http.ResponseWriter, r *http.Request) {
	section := domainView.Section(chi.URLParam(r, "section"))

	c := controllerFor(h.sessions, r)
	if err := c.SwitchSection(section); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c.Snapshot())
}

// ActivityDetail handles GET /ui/activities/{id}
func (h *dashboardHandlerImpl) ActivityDetail(w http.ResponseWriter, r *http.Request) {
	html, ok := controllerFor(h.sessions, r).ActivityDetail(chi.URLParam(r, "id"))
	if !ok {
		response.NotFound(w, "Activity not found")
		return
	}

	response.Success(w, map[string]string{"html": string(html)})
}

// State handles GET /api/v1/view/state
func (h *dashboardHandlerImpl) State(w http.ResponseWriter, r *http.Request) {
	response.Success(w, controllerFor(h.sessions, r).Snapshot())
}
