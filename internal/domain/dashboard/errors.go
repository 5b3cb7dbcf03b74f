package dashboard

import "errors"

var (
	ErrStatsUnavailable      = errors.New("dashboard statistics unavailable")
	ErrActivitiesUnavailable = errors.New("recent activities unavailable")
)
