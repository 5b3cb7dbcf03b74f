package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/report"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/view"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// View errors
	case errors.Is(err, view.ErrUnknownSection):
		BadRequest(w, "Unknown section", nil)
	case errors.Is(err, view.ErrUnknownRegion):
		NotFound(w, "Unknown region")
	case errors.Is(err, view.ErrNotConfirmed):
		BadRequest(w, "Confirmation required", map[string]string{"confirm": "must be true"})

	// Employee domain errors
	case errors.Is(err, employee.ErrEmptySearchQuery):
		BadRequest(w, "Search query is required", map[string]string{"q": "is required"})
	case errors.Is(err, employee.ErrInvalidEmployeeID):
		BadRequest(w, "Invalid employee id", nil)
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance records not found")

	// Alert domain errors
	case errors.Is(err, alert.ErrAlertNotFound):
		NotFound(w, "Alert not found")
	case errors.Is(err, alert.ErrNoEmployees):
		Conflict(w, "No employees found to generate alerts for")
	case errors.Is(err, alert.ErrResolveFailed):
		BadGateway(w, "Error resolving alert. Please try again.")
	case errors.Is(err, alert.ErrSampleGenerationFailed):
		BadGateway(w, "Error generating sample alerts")

	// Dashboard and report errors
	case errors.Is(err, dashboard.ErrStatsUnavailable), errors.Is(err, dashboard.ErrActivitiesUnavailable):
		BadGateway(w, err.Error())
	case errors.Is(err, report.ErrUnknownReportType):
		NotFound(w, "Unknown report type")

	// Default
	default:
		BadGateway(w, "The attendance backend could not be reached")
	}
}
