package alert

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlertRepo struct {
	mu         sync.Mutex
	alerts     []alert.Alert
	listErr    error
	createErr  func(req alert.CreateAlertRequest) error
	resolveErr error
	created    []alert.CreateAlertRequest
	resolved   []string
	lastFilter alert.Filter
}

func (f *fakeAlertRepo) List(ctx context.Context, filter alert.Filter) ([]alert.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return f.alerts, f.listErr
}

func (f *fakeAlertRepo) Create(ctx context.Context, req alert.CreateAlertRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return f.createErr(req)
	}
	return nil
}

func (f *fakeAlertRepo) Resolve(ctx context.Context, alertID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolved = append(f.resolved, alertID)
	return f.resolveErr
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	err       error
}

func (f *fakeEmployeeRepo) Search(ctx context.Context, query string) ([]employee.Employee, error) {
	return f.employees, f.err
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, employeeID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

func strPtr(s string) *string { return &s }

var testNow = time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)

func newTestService(alerts *fakeAlertRepo, employees *fakeEmployeeRepo) alert.AlertService {
	return NewAlertService(alerts, employees,
		WithClock(func() time.Time { return testNow }),
		WithLocation(time.UTC),
		WithPicker(func(n int) int { return n - 1 }),
	)
}

func TestListAlerts_TodayFilterExcludesOlderAlert(t *testing.T) {
	repo := &fakeAlertRepo{alerts: []alert.Alert{
		{ID: "1", Severity: alert.SeverityLow, Timestamp: utils.ParseTimestamp("2024-05-18T09:00:00Z")},
		{ID: "2", Severity: alert.SeverityCritical, Timestamp: utils.ParseTimestamp("2024-05-20T09:00:00Z")},
	}}
	svc := newTestService(repo, &fakeEmployeeRepo{})

	got, err := svc.ListAlerts(context.Background(), alert.Filter{TimeWindow: alert.TimeWindowToday})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, utils.ID("2"), got[0].ID)
	assert.Equal(t, alert.TimeWindowToday, repo.lastFilter.TimeWindow)
}

func TestListAlerts_SeverityAppliedLocally(t *testing.T) {
	repo := &fakeAlertRepo{alerts: []alert.Alert{
		{ID: "1", Severity: alert.SeverityLow, Timestamp: utils.ParseTimestamp("2024-05-20T09:00:00Z")},
		{ID: "2", Severity: alert.SeverityHigh, Timestamp: utils.ParseTimestamp("2024-05-20T10:00:00Z")},
	}}
	svc := newTestService(repo, &fakeEmployeeRepo{})

	got, err := svc.ListAlerts(context.Background(), alert.Filter{Severity: alert.SeverityHigh, TimeWindow: alert.TimeWindowAll})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alert.SeverityHigh, got[0].Severity)
}

func TestListAlerts_InvalidFilter(t *testing.T) {
	repo := &fakeAlertRepo{}
	svc := newTestService(repo, &fakeEmployeeRepo{})

	_, err := svc.ListAlerts(context.Background(), alert.Filter{Severity: "severe"})
	assert.Error(t, err)
	assert.Equal(t, alert.Filter{}, repo.lastFilter, "backend must not be called")
}

func TestResolveAlert(t *testing.T) {
	repo := &fakeAlertRepo{}
	svc := newTestService(repo, &fakeEmployeeRepo{})

	require.NoError(t, svc.ResolveAlert(context.Background(), "7"))
	assert.Equal(t, []string{"7"}, repo.resolved)

	repo.resolveErr = errors.New("boom")
	err := svc.ResolveAlert(context.Background(), "8")
	assert.ErrorIs(t, err, alert.ErrResolveFailed)
}

func TestResolveAlert_RejectsNonNumericID(t *testing.T) {
	repo := &fakeAlertRepo{}
	svc := newTestService(repo, &fakeEmployeeRepo{})

	for _, id := range []string{"", "abc", "5/../6"} {
		err := svc.ResolveAlert(context.Background(), id)
		assert.ErrorIs(t, err, alert.ErrAlertNotFound, id)
	}
	assert.Empty(t, repo.resolved)
}

func TestGenerateSamples_FirstThreeEmployeesTwoEach(t *testing.T) {
	repo := &fakeAlertRepo{}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{EmployeeID: "E1", Name: strPtr("Ana")},
		{EmployeeID: "E2", Name: strPtr("Budi")},
		{EmployeeID: "E3"},
		{EmployeeID: "E4", Name: strPtr("Dewi")},
	}}
	svc := newTestService(repo, employees)

	resp, err := svc.GenerateSamples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Created)
	require.Len(t, repo.created, 6)

	perEmployee := map[string]int{}
	for _, req := range repo.created {
		perEmployee[req.EmployeeID]++
		assert.Equal(t, "Unauthorized Access", req.AlertType)
		assert.Equal(t, alert.SeverityCritical, req.Severity)
		assert.Equal(t, "2024-05-20T15:00:00Z", req.Timestamp)
	}
	assert.Equal(t, map[string]int{"E1": 2, "E2": 2, "E3": 2}, perEmployee)

	var descriptions []string
	for _, req := range repo.created {
		descriptions = append(descriptions, req.Description)
	}
	assert.Contains(t, descriptions, "Unauthorized Access detected for Ana on 2024-05-20")
	assert.Contains(t, descriptions, "Unauthorized Access detected for E3 on 2024-05-20")
}

func TestGenerateSamples_AggregateFailure(t *testing.T) {
	repo := &fakeAlertRepo{createErr: func(req alert.CreateAlertRequest) error {
		if req.EmployeeID == "E2" {
			return errors.New("backend down")
		}
		return nil
	}}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{EmployeeID: "E1"}, {EmployeeID: "E2"}, {EmployeeID: "E3"},
	}}
	svc := newTestService(repo, employees)

	_, err := svc.GenerateSamples(context.Background())
	assert.ErrorIs(t, err, alert.ErrSampleGenerationFailed)
	assert.Len(t, repo.created, 6, "every create call still runs")
}

func TestGenerateSamples_NoEmployees(t *testing.T) {
	repo := &fakeAlertRepo{}
	svc := newTestService(repo, &fakeEmployeeRepo{})

	_, err := svc.GenerateSamples(context.Background())
	assert.ErrorIs(t, err, alert.ErrNoEmployees)
	assert.Empty(t, repo.created)
}
