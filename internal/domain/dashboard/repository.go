package dashboard

import "context"

// DashboardRepository reads summary data from the attendance backend
type DashboardRepository interface {
	// GetStats calls GET /api/dashboard/stats
	GetStats(ctx context.Context) (*Stats, error)

	// GetActivities calls GET /api/dashboard/activities?limit=n
	GetActivities(ctx context.Context, limit int) (*ActivitiesResponse, error)
}
