package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	fixed := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	svc := &ReportServiceImpl{now: func() time.Time { return fixed }}

	cases := map[report.Type]string{
		report.TypeAttendance: "Attendance Report",
		report.TypeAnomaly:    "Anomaly Report",
		report.TypeHours:      "Work Hours Report",
	}
	for typ, title := range cases {
		got, err := svc.Generate(context.Background(), typ)
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
		assert.Equal(t, fixed, got.GeneratedAt)
		assert.NotEmpty(t, got.Body)
	}

	_, err := svc.Generate(context.Background(), "payroll")
	assert.ErrorIs(t, err, report.ErrUnknownReportType)
}
