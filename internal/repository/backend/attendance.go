package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/apiclient"
)

type attendanceRepositoryImpl struct {
	client *apiclient.Client
}

func NewAttendanceRepository(client *apiclient.Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

// GetByEmployeeID calls GET /api/attendance/{employeeId}
func (r *attendanceRepositoryImpl) GetByEmployeeID(ctx context.Context, req attendance.GetAttendanceRequest) (*attendance.EmployeeAttendance, error) {
	var resp attendance.EmployeeAttendance
	if err := r.client.Get(ctx, "/api/attendance/"+url.PathEscape(req.EmployeeID), nil, &resp); err != nil {
		if apiclient.IsNotFound(err) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get attendance records: %w", err)
	}
	return &resp, nil
}
