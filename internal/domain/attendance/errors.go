package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance records not found")
)
