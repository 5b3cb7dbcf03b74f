package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domainView "github.com/cmlabs-hris/attendance-dashboard/internal/domain/view"
	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-dashboard/internal/view"
)

type AlertHandler interface {
	// Filter changes the alert filter; only the form fields present are changed
	Filter(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	View(w http.ResponseWriter, r *http.Request)
	GenerateSamples(w http.ResponseWriter, r *http.Request)
}

type alertHandlerImpl struct {
	sessions *view.Sessions
}

func NewAlertHandler(sessions *view.Sessions) AlertHandler {
	return &alertHandlerImpl{sessions: sessions}
}

func formField(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok {
		return nil
	}
	v := ""
	if len(values) > 0 {
		v = values[0]
	}
	return &v
}

// Filter handles POST /ui/alerts/filter
func (h *alertHandlerImpl) Filter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form body", nil)
		return
	}

	c := controllerFor(h.sessions, r)
	err := c.SetAlertFilter(r.Context(), view.FilterChange{
		Severity:   formField(r, "severity"),
		TimeWindow: formField(r, "time_filter"),
		EmployeeID: formField(r, "employee_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c.Snapshot().AlertFilter)
}

// Resolve handles POST /ui/alerts/{alertID}/resolve
func (h *alertHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form body", nil)
		return
	}
	confirmed, _ := strconv.ParseBool(r.PostFormValue("confirm"))
	if !confirmed {
		response.HandleError(w, domainView.ErrNotConfirmed)
		return
	}

	alertID := chi.URLParam(r, "alertID")
	msg, err := controllerFor(h.sessions, r).ResolveAlert(r.Context(), alertID, confirmed)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, msg, map[string]string{"alert_id": alertID})
}

// View handles GET /ui/alerts/{alertID}
func (h *alertHandlerImpl) View(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "alertID")
	msg := controllerFor(h.sessions, r).ViewAlert(alertID)

	response.SuccessWithMessage(w, msg, map[string]string{"alert_id": alertID})
}

// GenerateSamples handles POST /ui/alerts/samples
func (h *alertHandlerImpl) GenerateSamples(w http.ResponseWriter, r *http.Request) {
	result, err := controllerFor(h.sessions, r).GenerateSampleAlerts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sample alerts generated", result)
}
