package report

import "time"

type Type string

const (
	TypeAttendance Type = "attendance"
	TypeAnomaly    Type = "anomaly"
	TypeHours      Type = "hours"
)

// Report is a generated report. Bodies are placeholders until the backend exposes report data.
type Report struct {
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Body        string    `json:"body"`
}
