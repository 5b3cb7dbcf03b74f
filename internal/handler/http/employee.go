package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-dashboard/internal/view"
)

type EmployeeHandler interface {
	Search(w http.ResponseWriter, r *http.Request)
	Details(w http.ResponseWriter, r *http.Request)
	Attendance(w http.ResponseWriter, r *http.Request)
	Alerts(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	sessions *view.Sessions
}

func NewEmployeeHandler(sessions *view.Sessions) EmployeeHandler {
	return &employeeHandlerImpl{sessions: sessions}
}

func employeeIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "employeeID")
	if !validator.IsValidEmployeeID(id) {
		return "", employee.ErrInvalidEmployeeID
	}
	return id, nil
}

// Search handles POST /ui/employees/search
func (h *employeeHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form body", nil)
		return
	}

	req := employee.SearchEmployeeRequest{Query: r.PostFormValue("q")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	c := controllerFor(h.sessions, r)
	if err := c.SearchEmployees(r.Context(), req.Query); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c.Snapshot().Drilldown)
}

// Details handles POST /ui/employees/{employeeID}
func (h *employeeHandlerImpl) Details(w http.ResponseWriter, r *http.Request) {
	id, err := employeeIDParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	c := controllerFor(h.sessions, r)
	if err := c.ViewEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c.Snapshot().Drilldown)
}

// Attendance handles POST /ui/employees/{employeeID}/attendance
func (h *employeeHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	id, err := employeeIDParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	c := controllerFor(h.sessions, r)
	if err := c.ViewAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c.Snapshot().Drilldown)
}

// Alerts handles POST /ui/employees/{employeeID}/alerts
func (h *employeeHandlerImpl) Alerts(w http.ResponseWriter, r *http.Request) {
	id, err := employeeIDParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	c := controllerFor(h.sessions, r)
	if err := c.ViewEmployeeAlerts(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c.Snapshot().AlertFilter)
}
