package employee

import (
	"context"
)

// EmployeeService defines the employee directory operations used by the dashboard
type EmployeeService interface {
	// SearchEmployees matches name, id, department or position. A blank query never reaches the backend.
	SearchEmployees(ctx context.Context, req SearchEmployeeRequest) ([]Employee, error)

	// GetEmployee retrieves a single employee by employee_id
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
}
