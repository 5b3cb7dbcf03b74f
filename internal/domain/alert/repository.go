package alert

import "context"

type AlertRepository interface {
	// List passes the filter to the backend as query parameters
	List(ctx context.Context, filter Filter) ([]Alert, error)
	Create(ctx context.Context, req CreateAlertRequest) error
	Resolve(ctx context.Context, alertID string) error
}
