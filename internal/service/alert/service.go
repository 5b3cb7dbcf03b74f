package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type AlertServiceImpl struct {
	alertRepo    alert.AlertRepository
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
	pick         func(n int) int
}

// Option customises an AlertServiceImpl
type Option func(*AlertServiceImpl)

// WithClock fixes the time source used for time windows and sample timestamps
func WithClock(now func() time.Time) Option {
	return func(s *AlertServiceImpl) { s.now = now }
}

// WithLocation sets the zone "today" is evaluated in
func WithLocation(loc *time.Location) Option {
	return func(s *AlertServiceImpl) { s.loc = loc }
}

// WithPicker replaces the random choice of sample alert types
func WithPicker(pick func(n int) int) Option {
	return func(s *AlertServiceImpl) { s.pick = pick }
}

func NewAlertService(alertRepo alert.AlertRepository, employeeRepo employee.EmployeeRepository, opts ...Option) alert.AlertService {
	s := &AlertServiceImpl{
		alertRepo:    alertRepo,
		employeeRepo: employeeRepo,
		loc:          time.Local,
		now:          time.Now,
		pick:         rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAlerts fetches with the filter forwarded to the backend, then applies severity and
// time window locally so the result does not depend on which backend route honours them.
func (s *AlertServiceImpl) ListAlerts(ctx context.Context, filter alert.Filter) ([]alert.Alert, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	alerts, err := s.alertRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]alert.Alert, 0, len(alerts))
	for _, a := range alerts {
		if filter.Severity != alert.SeverityNone && a.Severity != filter.Severity {
			continue
		}
		if !filter.TimeWindow.Contains(a.Timestamp, now, s.loc) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ResolveAlert implements alert.AlertService
func (s *AlertServiceImpl) ResolveAlert(ctx context.Context, alertID string) error {
	if !validator.IsNumeric(alertID) {
		return alert.ErrAlertNotFound
	}
	if err := s.alertRepo.Resolve(ctx, alertID); err != nil {
		slog.Error("Failed to resolve alert", "alert_id", alertID, "error", err)
		if errors.Is(err, alert.ErrAlertNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", alert.ErrResolveFailed, err)
	}
	slog.Info("Alert resolved", "alert_id", alertID)
	return nil
}

// GenerateSamples creates SampleAlertsPerEmployee alerts for each of the first
// SampleEmployeeCount employees. Every create call runs to completion; any failure
// is reported once as ErrSampleGenerationFailed.
func (s *AlertServiceImpl) GenerateSamples(ctx context.Context) (*alert.GenerateSamplesResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, alert.ErrNoEmployees
	}
	if len(employees) > alert.SampleEmployeeCount {
		employees = employees[:alert.SampleEmployeeCount]
	}

	now := s.now()
	requests := make([]alert.CreateAlertRequest, 0, len(employees)*alert.SampleAlertsPerEmployee)
	for _, emp := range employees {
		name := emp.EmployeeID
		if emp.Name != nil {
			name = *emp.Name
		}
		for i := 0; i < alert.SampleAlertsPerEmployee; i++ {
			sample := alert.SampleAlertTypes[s.pick(len(alert.SampleAlertTypes))]
			requests = append(requests, alert.CreateAlertRequest{
				EmployeeID:  emp.EmployeeID,
				AlertType:   sample.Type,
				Description: fmt.Sprintf("%s detected for %s on %s", sample.Type, name, now.In(s.loc).Format("2006-01-02")),
				Severity:    sample.Severity,
				Timestamp:   now.UTC().Format(time.RFC3339),
			})
		}
	}

	// A plain group: one failed create must not cancel the others.
	var g errgroup.Group
	for _, req := range requests {
		g.Go(func() error {
			return s.alertRepo.Create(ctx, req)
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("Sample alert generation failed", "requested", len(requests), "error", err)
		return nil, fmt.Errorf("%w: %w", alert.ErrSampleGenerationFailed, err)
	}

	slog.Info("Sample alerts generated", "count", len(requests))
	return &alert.GenerateSamplesResponse{Created: len(requests)}, nil
}
