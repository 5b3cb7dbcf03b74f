package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
)

func TestChartRegistry_ReplaceOrCreate(t *testing.T) {
	var events []ChartEvent
	r := NewChartRegistry(func(ev ChartEvent) { events = append(events, ev) })

	first := r.ReplaceOrCreate("attendance-chart", AttendanceChartSpec(dashboard.AttendanceTrend{}))
	second := r.ReplaceOrCreate("attendance-chart", AttendanceChartSpec(dashboard.AttendanceTrend{Dates: []string{"d"}, Present: []int64{1}}))

	require.Len(t, events, 3)
	assert.Equal(t, ChartEvent{Action: ChartActionDestroy, Canvas: "attendance-chart", ID: first.ID}, events[1])
	assert.Equal(t, ChartActionCreate, events[2].Action)
	assert.NotEqual(t, first.ID, second.ID)

	got, ok := r.Get("attendance-chart")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, []string{"attendance-chart"}, r.Canvases())

	r.DestroyAll()
	assert.Empty(t, r.Canvases())
	assert.False(t, r.Destroy("attendance-chart"))
}

func TestAlertChartSpec_KeepsBackendOrder(t *testing.T) {
	spec := AlertChartSpec(dashboard.AlertTypes{
		{Label: "Missing Check-out", Count: 2},
		{Label: "Excessive Break", Count: 5},
	})

	assert.Equal(t, "doughnut", spec.Type)
	assert.Equal(t, []string{"Missing Check-out", "Excessive Break"}, spec.Data.Labels)
	assert.Equal(t, []int64{2, 5}, spec.Data.Datasets[0].Data)
}

func TestAttendanceChartSpec(t *testing.T) {
	spec := AttendanceChartSpec(dashboard.AttendanceTrend{})

	assert.Equal(t, "line", spec.Type)
	assert.Equal(t, "Present", spec.Data.Datasets[0].Label)
	assert.NotNil(t, spec.Data.Labels)
	assert.NotNil(t, spec.Data.Datasets[0].Data)
}
