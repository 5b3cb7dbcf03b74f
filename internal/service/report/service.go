package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/report"
)

type placeholder struct {
	title string
	body  string
}

var placeholders = map[report.Type]placeholder{
	report.TypeAttendance: {
		title: "Attendance Report",
		body:  "This is a placeholder for the attendance report. Detailed attendance data is not available yet.",
	},
	report.TypeAnomaly: {
		title: "Anomaly Report",
		body:  "This is a placeholder for the anomaly report. Detailed anomaly detection data is not available yet.",
	},
	report.TypeHours: {
		title: "Work Hours Report",
		body:  "This is a placeholder for the work hours report. Detailed working hours data is not available yet.",
	},
}

type ReportServiceImpl struct {
	now func() time.Time
}

func NewReportService() report.ReportService {
	return &ReportServiceImpl{now: time.Now}
}

// Generate returns the placeholder report for reportType
func (s *ReportServiceImpl) Generate(ctx context.Context, reportType report.Type) (*report.Report, error) {
	p, ok := placeholders[reportType]
	if !ok {
		return nil, report.ErrUnknownReportType
	}

	return &report.Report{
		Type:        reportType,
		Title:       p.title,
		GeneratedAt: s.now(),
		Body:        p.body,
	}, nil
}
