package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/utils"
)

// Stats is the summary payload refreshed on every poll tick.
// Counters are pointers so an absent field can be told apart from zero.
type Stats struct {
	TotalEmployees  *int64           `json:"total_employees"`
	PresentToday    *int64           `json:"present_today"`
	OnBreak         *int64           `json:"on_break"`
	AlertsToday     *int64           `json:"alerts_today"`
	AttendanceTrend *AttendanceTrend `json:"attendance_trend"`
	AlertTypes      AlertTypes       `json:"alert_types"`
}

// AttendanceTrend is the per-day present count, oldest first.
type AttendanceTrend struct {
	Dates   []string `json:"dates"`
	Present []int64  `json:"present"`
}

// AlertTypeCount is one slice of the alert distribution chart
type AlertTypeCount struct {
	Label string
	Count int64
}

// AlertTypes keeps the label order of the JSON object it was decoded from.
type AlertTypes []AlertTypeCount

func (a *AlertTypes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("alert_types: expected object")
	}

	out := AlertTypes{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, _ := keyTok.(string)

		var count *int64
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("alert_types[%s]: %w", label, err)
		}
		item := AlertTypeCount{Label: label}
		if count != nil {
			item.Count = *count
		}
		out = append(out, item)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}

type ActivityType string

const (
	ActivityCheckIn  ActivityType = "check-in"
	ActivityCheckOut ActivityType = "check-out"
	ActivityBreak    ActivityType = "break"
	ActivityAlert    ActivityType = "alert"
	ActivityDefault  ActivityType = "default"
)

// Normalize maps anything outside the known set to ActivityDefault.
func (t ActivityType) Normalize() ActivityType {
	switch t {
	case ActivityCheckIn, ActivityCheckOut, ActivityBreak, ActivityAlert:
		return t
	default:
		return ActivityDefault
	}
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID           utils.ID        `json:"id"`
	Time         utils.Timestamp `json:"time"`
	Type         ActivityType    `json:"type"`
	Description  string          `json:"description"`
	EmployeeName *string         `json:"employee_name"`
	Department   *string         `json:"department"`
	Details      map[string]any  `json:"details"`
}
