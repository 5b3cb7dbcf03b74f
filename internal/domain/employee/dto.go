package employee

import (
	"strings"

	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/validator"
)

type SearchEmployeeRequest struct {
	Query string
}

// Validate trims the query in place and rejects blank input.
func (r *SearchEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Query = strings.TrimSpace(r.Query)
	if validator.IsEmpty(r.Query) {
		errs = append(errs, validator.ValidationError{
			Field:   "q",
			Message: "search query is required",
		})
	}
	if len(r.Query) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "q",
			Message: "search query must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListEmployeeResponse is the payload of GET /api/employees and /api/employees/search
type ListEmployeeResponse struct {
	Employees []Employee `json:"employees"`
}

// EmployeeResponse is the payload of GET /api/employees/{id}
type EmployeeResponse struct {
	Employee *Employee `json:"employee"`
}
