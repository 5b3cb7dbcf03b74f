package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/apiclient"
)

// DefaultAlertsPath is the alerts route of the dashboard blueprint
const DefaultAlertsPath = "/api/dashboard/alerts"

type alertRepositoryImpl struct {
	client     *apiclient.Client
	alertsPath string
}

// NewAlertRepository reads alerts from alertsPath; the backend also serves them at /api/alerts on some deployments.
func NewAlertRepository(client *apiclient.Client, alertsPath string) alert.AlertRepository {
	if alertsPath == "" {
		alertsPath = DefaultAlertsPath
	}
	return &alertRepositoryImpl{client: client, alertsPath: strings.TrimRight(alertsPath, "/")}
}

// List calls GET {alertsPath}?employee_id=&severity=&time_filter=
func (r *alertRepositoryImpl) List(ctx context.Context, filter alert.Filter) ([]alert.Alert, error) {
	query := url.Values{}
	if filter.EmployeeID != "" {
		query.Set("employee_id", filter.EmployeeID)
	}
	if filter.Severity != alert.SeverityNone {
		query.Set("severity", string(filter.Severity))
	}
	if filter.TimeWindow != "" {
		query.Set("time_filter", string(filter.TimeWindow))
	}

	var resp alert.ListAlertResponse
	if err := r.client.Get(ctx, r.alertsPath, query, &resp); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return resp.Alerts, nil
}

// Create calls POST /api/dashboard/create-alert
func (r *alertRepositoryImpl) Create(ctx context.Context, req alert.CreateAlertRequest) error {
	if err := r.client.Post(ctx, "/api/dashboard/create-alert", req, nil); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// Resolve calls POST /api/dashboard/alerts/{id}/resolve
func (r *alertRepositoryImpl) Resolve(ctx context.Context, alertID string) error {
	if err := r.client.Post(ctx, "/api/dashboard/alerts/"+url.PathEscape(alertID)+"/resolve", nil, nil); err != nil {
		if apiclient.IsNotFound(err) {
			return alert.ErrAlertNotFound
		}
		return fmt.Errorf("failed to resolve alert: %w", err)
	}
	return nil
}
