package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/view"
)

func TestSessions_GetOrCreateAndEvict(t *testing.T) {
	h := newHarness(t)
	h.dash.stats = &dashboard.Stats{AttendanceTrend: &dashboard.AttendanceTrend{}}

	clock := testNow
	created := 0
	var evicted []string
	sessions := NewSessions(func(id string) *Controller {
		created++
		c := NewController(id, h.c.svc, h.c.render, h.pub, Config{Location: time.UTC, Now: func() time.Time { return clock }})
		return c
	}, 10*time.Minute, func(id string) { evicted = append(evicted, id) })
	sessions.now = func() time.Time { return clock }

	a, isNew := sessions.GetOrCreate("a")
	assert.True(t, isNew)
	again, isNew := sessions.GetOrCreate("a")
	assert.False(t, isNew)
	assert.Same(t, a, again)
	assert.Equal(t, 1, created)

	a.LoadStats(context.Background())
	require.Equal(t, []string{view.CanvasAttendance}, a.Snapshot().Charts)

	clock = clock.Add(5 * time.Minute)
	sessions.GetOrCreate("b")

	clock = clock.Add(6 * time.Minute)
	require.NoError(t, sessions.EvictIdle(context.Background()))

	assert.Equal(t, []string{"a"}, evicted)
	assert.Equal(t, 1, sessions.Len())
	assert.Empty(t, a.Snapshot().Charts, "evicted session must release its charts")
	_, isNew = sessions.GetOrCreate("a")
	assert.True(t, isNew, "an evicted session is recreated on its next request")
	assert.Equal(t, 3, created)
}

func TestSessions_GenerationsKeepGrowingAcrossRecreate(t *testing.T) {
	h := newHarness(t)
	h.dash.stats = &dashboard.Stats{}

	clock := testNow
	sessions := NewSessions(func(id string) *Controller {
		return NewController(id, h.c.svc, h.c.render, h.pub, Config{Location: time.UTC, Now: func() time.Time { return clock }})
	}, time.Minute, nil)
	sessions.now = func() time.Time { return clock }

	first, _ := sessions.GetOrCreate("a")
	for i := 0; i < 5; i++ {
		first.LoadStats(context.Background())
	}
	before := first.Snapshot().Regions[view.RegionStats]

	clock = clock.Add(2 * time.Minute)
	require.NoError(t, sessions.EvictIdle(context.Background()))
	require.Equal(t, 0, sessions.Len())

	second, isNew := sessions.GetOrCreate("a")
	require.True(t, isNew)
	second.LoadStats(context.Background())

	assert.Greater(t, second.Snapshot().Regions[view.RegionStats], before)
}

func TestSessions_PollTicksEverySession(t *testing.T) {
	h := newHarness(t)
	sessions := NewSessions(func(id string) *Controller {
		return NewController(id, h.c.svc, h.c.render, h.pub, Config{Location: time.UTC})
	}, time.Hour, nil)

	sessions.GetOrCreate("a")
	sessions.GetOrCreate("b")

	require.NoError(t, sessions.Poll(context.Background()))
	assert.Equal(t, 2, h.dash.statsCalls)
	assert.Equal(t, 2, h.dash.activityCalls)
}
