package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Alert ids are backend row ids
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Employee IDs as issued by the attendance backend, e.g. "EMP001"
var employeeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,10}$`)

func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(id)
}

// backendTimeLayout is how the attendance backend serializes timestamps.
const backendTimeLayout = "2006-01-02 15:04:05"

// IsValidDateTime checks if a string is a valid timestamp.
// Accepts "2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00" and "2024-01-15 10:30:00".
// The last form carries no zone and is read in loc.
func IsValidDateTime(dateTimeStr string, loc *time.Location) (time.Time, bool) {
	// Try RFC3339 format (ISO8601 with timezone)
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	// Try RFC3339Nano format (with nanoseconds)
	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	if loc == nil {
		loc = time.Local
	}
	t, err = time.ParseInLocation(backendTimeLayout, dateTimeStr, loc)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}
