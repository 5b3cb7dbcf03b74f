package attendance

import "context"

type AttendanceRepository interface {
	GetByEmployeeID(ctx context.Context, req GetAttendanceRequest) (*EmployeeAttendance, error)
}
