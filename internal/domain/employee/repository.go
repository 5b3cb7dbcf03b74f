package employee

import "context"

type EmployeeRepository interface {
	Search(ctx context.Context, query string) ([]Employee, error)
	GetByID(ctx context.Context, employeeID string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
}
