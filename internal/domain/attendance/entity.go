package attendance

import "github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"

// Record is one day of attendance for an employee.
type Record struct {
	Date       string   `json:"date"`
	TimeIn     *string  `json:"time_in"`
	TimeOut    *string  `json:"time_out"`
	TotalHours *float64 `json:"total_hours"`
	Breaks     []Break  `json:"breaks"`
	IsAnomaly  bool     `json:"is_anomaly"`
}

type Break struct {
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
	Duration  *float64 `json:"duration"` // minutes
}

// EmployeeAttendance is the payload of GET /api/attendance/{employeeId}
type EmployeeAttendance struct {
	Employee *employee.Employee `json:"employee"`
	Records  []Record           `json:"records"`
}
