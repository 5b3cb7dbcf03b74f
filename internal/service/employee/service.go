package employee

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

// SearchEmployees implements employee.EmployeeService
func (s *EmployeeServiceImpl) SearchEmployees(ctx context.Context, req employee.SearchEmployeeRequest) ([]employee.Employee, error) {
	if validator.IsEmpty(req.Query) {
		return nil, employee.ErrEmptySearchQuery
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.Search(ctx, strings.TrimSpace(req.Query))
	if err != nil {
		slog.Error("Employee search failed", "query", req.Query, "error", err)
		return nil, err
	}
	return employees, nil
}

// GetEmployee implements employee.EmployeeService
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	if !validator.IsValidEmployeeID(employeeID) {
		return employee.Employee{}, employee.ErrInvalidEmployeeID
	}
	return s.employeeRepo.GetByID(ctx, employeeID)
}
