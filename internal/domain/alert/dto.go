package alert

import (
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/validator"
)

// Filter is the alert query in effect for the alerts view.
type Filter struct {
	Severity   Severity
	TimeWindow TimeWindow
	EmployeeID string
}

// DefaultFilter is what the alerts view starts with.
func DefaultFilter() Filter {
	return Filter{Severity: SeverityNone, TimeWindow: TimeWindowAll}
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.TimeWindow == "" {
		f.TimeWindow = TimeWindowAll
	}
	if !f.Severity.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "severity",
			Message: "severity must be one of low, medium, high, critical",
		})
	}
	if !f.TimeWindow.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "time_filter",
			Message: "time_filter must be one of all, today, week, month",
		})
	}
	if f.EmployeeID != "" && !validator.IsValidEmployeeID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListAlertResponse is the payload of GET /api/dashboard/alerts
type ListAlertResponse struct {
	Alerts []Alert `json:"alerts"`
}

// CreateAlertRequest is the body of POST /api/dashboard/create-alert
type CreateAlertRequest struct {
	EmployeeID  string   `json:"employee_id"`
	AlertType   string   `json:"alert_type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Timestamp   string   `json:"timestamp"`
}

// SampleAlertType pairs an alert type with the severity it is generated at.
type SampleAlertType struct {
	Type     string
	Severity Severity
}

// SampleAlertTypes is the catalog the sample generator draws from.
var SampleAlertTypes = []SampleAlertType{
	{Type: "Excessive Break", Severity: SeverityMedium},
	{Type: "Late Check-in", Severity: SeverityLow},
	{Type: "Early Departure", Severity: SeverityMedium},
	{Type: "Multiple Check-ins", Severity: SeverityLow},
	{Type: "Missing Check-out", Severity: SeverityHigh},
	{Type: "Unauthorized Access", Severity: SeverityCritical},
}

const (
	// SampleEmployeeCount is how many employees from the directory get sample alerts
	SampleEmployeeCount = 3
	// SampleAlertsPerEmployee is how many alerts each of them gets
	SampleAlertsPerEmployee = 2
)

// GenerateSamplesResponse reports how many create calls were issued.
type GenerateSamplesResponse struct {
	Created int `json:"created"`
}
