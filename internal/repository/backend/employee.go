package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/apiclient"
)

type employeeRepositoryImpl struct {
	client *apiclient.Client
}

func NewEmployeeRepository(client *apiclient.Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// Search calls GET /api/employees/search?q=
func (r *employeeRepositoryImpl) Search(ctx context.Context, query string) ([]employee.Employee, error) {
	var resp employee.ListEmployeeResponse
	if err := r.client.Get(ctx, "/api/employees/search", url.Values{"q": {query}}, &resp); err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	return resp.Employees, nil
}

// GetByID calls GET /api/employees/{id}
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, employeeID string) (employee.Employee, error) {
	var resp employee.EmployeeResponse
	if err := r.client.Get(ctx, "/api/employees/"+url.PathEscape(employeeID), nil, &resp); err != nil {
		if apiclient.IsNotFound(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if resp.Employee == nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return *resp.Employee, nil
}

// List calls GET /api/employees
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	var resp employee.ListEmployeeResponse
	if err := r.client.Get(ctx, "/api/employees", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return resp.Employees, nil
}
