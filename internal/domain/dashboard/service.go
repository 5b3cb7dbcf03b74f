package dashboard

import "context"

// DashboardService defines the interface for dashboard overview operations
type DashboardService interface {
	// GetStats returns the latest statistics
	GetStats(ctx context.Context) (*Stats, error)

	// GetRecentActivities returns the feed, most recent first, at most req.Limit entries
	GetRecentActivities(ctx context.Context, req ActivitiesRequest) (*ActivitiesResponse, error)
}
