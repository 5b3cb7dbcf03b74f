package attendance

import "context"

type AttendanceService interface {
	// GetEmployeeAttendance returns the employee and their records, newest first
	GetEmployeeAttendance(ctx context.Context, req GetAttendanceRequest) (*EmployeeAttendance, error)
}
