package alert

import "context"

type AlertService interface {
	// ListAlerts returns the alerts matching filter. The time window is always applied locally.
	ListAlerts(ctx context.Context, filter Filter) ([]Alert, error)

	// ResolveAlert marks an alert resolved on the backend
	ResolveAlert(ctx context.Context, alertID string) error

	// GenerateSamples creates sample alerts for the first employees of the directory
	GenerateSamples(ctx context.Context) (*GenerateSamplesResponse, error)
}
