package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/attendance"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{attendanceRepo: attendanceRepo}
}

// GetEmployeeAttendance implements attendance.AttendanceService
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, req attendance.GetAttendanceRequest) (*attendance.EmployeeAttendance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.attendanceRepo.GetByEmployeeID(ctx, req)
}
