package cron

import (
	"context"
	"time"
)

// SessionRunner is the set of live dashboard sessions.
type SessionRunner interface {
	Poll(ctx context.Context) error
	EvictIdle(ctx context.Context) error
}

type DashboardJobs struct {
	sessions      SessionRunner
	pollInterval  time.Duration
	evictInterval time.Duration
}

func NewDashboardJobs(sessions SessionRunner, pollInterval time.Duration) *DashboardJobs {
	return &DashboardJobs{
		sessions:      sessions,
		pollInterval:  pollInterval,
		evictInterval: time.Minute,
	}
}

func (j *DashboardJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{Name: "dashboard_poll", Interval: j.pollInterval, Fn: j.sessions.Poll})
	scheduler.AddJob(Job{Name: "session_eviction", Interval: j.evictInterval, Fn: j.sessions.EvictIdle})
}
