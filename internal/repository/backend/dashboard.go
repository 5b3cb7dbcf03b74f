package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/apiclient"
)

type dashboardRepositoryImpl struct {
	client *apiclient.Client
}

func NewDashboardRepository(client *apiclient.Client) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{client: client}
}

// GetStats calls GET /api/dashboard/stats
func (r *dashboardRepositoryImpl) GetStats(ctx context.Context) (*dashboard.Stats, error) {
	var stats dashboard.Stats
	if err := r.client.Get(ctx, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}

// GetActivities calls GET /api/dashboard/activities?limit=n
func (r *dashboardRepositoryImpl) GetActivities(ctx context.Context, limit int) (*dashboard.ActivitiesResponse, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp dashboard.ActivitiesResponse
	if err := r.client.Get(ctx, "/api/dashboard/activities", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to get recent activities: %w", err)
	}
	return &resp, nil
}
