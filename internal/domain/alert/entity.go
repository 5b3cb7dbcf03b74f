package alert

import (
	"time"

	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/utils"
)

type Severity string

const (
	SeverityNone     Severity = ""
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityNone, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type TimeWindow string

const (
	TimeWindowAll   TimeWindow = "all"
	TimeWindowToday TimeWindow = "today"
	TimeWindowWeek  TimeWindow = "week"
	TimeWindowMonth TimeWindow = "month"
)

func (w TimeWindow) IsValid() bool {
	switch w {
	case TimeWindowAll, TimeWindowToday, TimeWindowWeek, TimeWindowMonth:
		return true
	}
	return false
}

// Contains reports whether ts falls inside the window ending at now.
// "week" and "month" are rolling 7 and 30 day windows, "today" is the calendar day of now in loc.
// An unparseable timestamp only matches "all".
func (w TimeWindow) Contains(ts utils.Timestamp, now time.Time, loc *time.Location) bool {
	if w == TimeWindowAll || w == "" {
		return true
	}
	if !ts.Valid() {
		return false
	}
	switch w {
	case TimeWindowToday:
		return utils.IsSameDay(ts.Time, now, loc)
	case TimeWindowWeek:
		return !ts.Time.Before(now.AddDate(0, 0, -7))
	case TimeWindowMonth:
		return !ts.Time.Before(now.AddDate(0, 0, -30))
	}
	return false
}

// Alert is a flagged anomaly on an employee's attendance.
type Alert struct {
	ID           utils.ID        `json:"id"`
	Timestamp    utils.Timestamp `json:"timestamp"`
	EmployeeID   utils.ID        `json:"employee_id"`
	EmployeeName *string         `json:"employee_name"`
	AlertType    string          `json:"alert_type"`
	Description  string          `json:"description"`
	Severity     Severity        `json:"severity"`
	IsResolved   bool            `json:"is_resolved"`
}
