package attendance

import (
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/validator"
)

// GetAttendanceRequest scopes the lookup to one employee.
type GetAttendanceRequest struct {
	EmployeeID string
}

func (r *GetAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
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
