package dashboard

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
)

// DefaultActivityLimit is the feed length requested when the caller gives none
const DefaultActivityLimit = 15

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

// GetStats returns the latest statistics as served; absent counters stay nil
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (*dashboard.Stats, error) {
	stats, err := s.DashboardRepository.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dashboard.ErrStatsUnavailable, err)
	}
	return stats, nil
}

// GetRecentActivities returns at most req.Limit activities in server order (most recent first)
func (s *DashboardServiceImpl) GetRecentActivities(ctx context.Context, req dashboard.ActivitiesRequest) (*dashboard.ActivitiesResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	resp, err := s.GetActivities(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dashboard.ErrActivitiesUnavailable, err)
	}

	if len(resp.Activities) > limit {
		resp.Activities = resp.Activities[:limit]
	}
	return resp, nil
}
