package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/report"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/view"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/sse"
)

// Event names pushed to the browser
const (
	EventRegion  = "region"
	EventChart   = "chart"
	EventSection = "section"
	EventFilter  = "filter"
	EventFlash   = "flash"
)

// Publisher delivers events to the open streams of a session.
type Publisher interface {
	Publish(sessionID string, event sse.Event)
}

type RegionEvent struct {
	Region     view.RegionID `json:"region"`
	Generation uint64        `json:"generation"`
	HTML       string        `json:"html"`
}

type SectionEvent struct {
	Active view.Section `json:"active"`
}

type FilterEvent struct {
	Severity   string `json:"severity"`
	TimeFilter string `json:"time_filter"`
	EmployeeID string `json:"employee_id,omitempty"`
}

type FlashEvent struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Services are the backend-facing services a Controller drives.
type Services struct {
	Dashboard  dashboard.DashboardService
	Employees  employee.EmployeeService
	Attendance attendance.AttendanceService
	Alerts     alert.AlertService
	Reports    report.ReportService
}

type Config struct {
	ActivityLimit int
	Location      *time.Location
	Now           func() time.Time
}

// Messages shown in place of region content
const (
	msgStatsError       = "Error loading statistics."
	msgActivitiesError  = "Error loading activities. Please try refreshing the page."
	msgSearchError      = "Error searching employees."
	msgDetailsNotFound  = "Employee details not found"
	msgDetailsError     = "Error loading employee details."
	msgAttendanceError  = "Error loading attendance records."
	msgAlertsError      = "An error occurred while loading alerts."
	msgAlertsErrorHint  = "Please try again later or contact support if the problem persists."
	msgSamplesFailed    = "Error generating sample alerts."
	msgSamplesNoStaff   = "No employees found to generate alerts for."
	msgSamplesLoadStaff = "Error loading employees."
	msgResolveFailed    = "Error resolving alert. Please try again."
	msgRenderFailed     = "Error rendering this view."
)

// Controller holds the view state of one dashboard session and runs its
// fetch and render units. Units run concurrently; their completions are
// applied one at a time, and only when they still hold the region's
// current generation.
type Controller struct {
	id     string
	svc    Services
	render *Renderer
	pub    Publisher
	cfg    Config

	mu     sync.Mutex
	state  *State
	charts *ChartRegistry
}

func NewController(id string, svc Services, renderer *Renderer, pub Publisher, cfg Config) *Controller {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	c := &Controller{
		id:     id,
		svc:    svc,
		render: renderer,
		pub:    pub,
		cfg:    cfg,
		state:  NewState(cfg.Now()),
	}
	c.charts = NewChartRegistry(func(ev ChartEvent) {
		c.publish(EventChart, ev)
	})
	return c
}

func (c *Controller) ID() string {
	return c.id
}

// Load runs the units of a freshly opened dashboard: stats, recent activities and alerts.
func (c *Controller) Load(ctx context.Context) {
	runAll(ctx, c.LoadStats, c.LoadActivities, c.LoadAlerts)
}

// Tick is one polling pass: stats always, plus the list of the active section.
func (c *Controller) Tick(ctx context.Context) {
	c.mu.Lock()
	active := c.state.Active
	c.mu.Unlock()

	units := []func(context.Context){c.LoadStats}
	switch active {
	case view.SectionOverview:
		units = append(units, c.LoadActivities)
	case view.SectionAlerts:
		units = append(units, c.LoadAlerts)
	}
	runAll(ctx, units...)
}

// runAll runs units concurrently and waits for all of them.
func runAll(ctx context.Context, units ...func(context.Context)) {
	var wg sync.WaitGroup
	for _, unit := range units {
		wg.Add(1)
		go func(unit func(context.Context)) {
			defer wg.Done()
			unit(ctx)
		}(unit)
	}
	wg.Wait()
}

// Touch records activity on the session.
func (c *Controller) Touch() {
	c.mu.Lock()
	c.state.LastSeen = c.cfg.Now()
	c.mu.Unlock()
}

func (c *Controller) LastSeen() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.LastSeen
}

// Close destroys the session's charts.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.charts.DestroyAll()
}

// SwitchSection makes section the only active one. Leaving the employees
// section ends the drill-down and drops its in-flight responses.
func (c *Controller) SwitchSection(section view.Section) error {
	if !section.IsValid() {
		return view.ErrUnknownSection
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Active == view.SectionEmployees && section != view.SectionEmployees {
		c.state.Drilldown = Drilldown{Step: view.DrilldownNone}
		c.state.Region(view.RegionEmployeeResults).Invalidate()
		c.state.Region(view.RegionEmployeeDetails).Invalidate()
	}
	c.state.Active = section
	c.publish(EventSection, SectionEvent{Active: section})
	return nil
}

func (c *Controller) LoadStats(ctx context.Context) {
	token := c.begin(view.RegionStats, "")
	stats, err := c.svc.Dashboard.GetStats(ctx)

	c.commit(view.RegionStats, token, func() {
		if err != nil {
			slog.Error("Error loading dashboard stats", "session_id", c.id, "error", err)
			c.setMessage(view.RegionStats, MessageView{Class: "error-message", Lines: []string{msgStatsError}})
			return
		}
		c.set(view.RegionStats, c.fragment(tmplStats, NewStatsView(stats)))
		if stats.AttendanceTrend != nil {
			c.charts.ReplaceOrCreate(view.CanvasAttendance, AttendanceChartSpec(*stats.AttendanceTrend))
		}
		if stats.AlertTypes != nil {
			c.charts.ReplaceOrCreate(view.CanvasAlerts, AlertChartSpec(stats.AlertTypes))
		}
	})
}

func (c *Controller) LoadActivities(ctx context.Context) {
	token := c.begin(view.RegionActivities, "")
	resp, err := c.svc.Dashboard.GetRecentActivities(ctx, dashboard.ActivitiesRequest{Limit: c.cfg.ActivityLimit})

	c.commit(view.RegionActivities, token, func() {
		if err != nil {
			slog.Error("Error loading recent activities", "session_id", c.id, "error", err)
			c.setMessage(view.RegionActivities, MessageView{Class: "error-message", Lines: []string{msgActivitiesError}})
			return
		}

		c.state.Activities = make(map[string]dashboard.Activity, len(resp.Activities))
		for i, a := range resp.Activities {
			c.state.Activities[activityKey(a, i)] = a
		}
		c.set(view.RegionActivities, c.fragment(tmplActivities, NewActivitiesView(resp, c.cfg.Now(), c.cfg.Location)))
	})
}

// ActivityDetail renders the detail popup of an activity from the last rendered feed.
func (c *Controller) ActivityDetail(id string) (template.HTML, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.state.Activities[id]
	if !ok {
		return "", false
	}
	return c.fragment(tmplActivityDetail, NewActivityDetailView(a)), true
}

// SearchEmployees runs a search. A blank query issues no request and leaves the results as they are.
func (c *Controller) SearchEmployees(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return employee.ErrEmptySearchQuery
	}

	token := c.begin(view.RegionEmployeeResults, "")
	results, err := c.svc.Employees.SearchEmployees(ctx, employee.SearchEmployeeRequest{Query: query})

	c.commit(view.RegionEmployeeResults, token, func() {
		c.state.Drilldown = Drilldown{Step: view.DrilldownResults, Query: query}
		if err != nil {
			slog.Error("Error searching employees", "session_id", c.id, "query", query, "error", err)
			c.setMessage(view.RegionEmployeeResults, MessageView{Class: "error-message", Lines: []string{msgSearchError}})
			return
		}
		c.set(view.RegionEmployeeResults, c.fragment(tmplEmployeeResults, NewEmployeeResultsView(results)))
	})
	return err
}

// ViewEmployee shows an employee's details. It is also the "Back to Employee Details"
// action, which always fetches again.
func (c *Controller) ViewEmployee(ctx context.Context, employeeID string) error {
	token := c.begin(view.RegionEmployeeDetails, "")
	emp, err := c.svc.Employees.GetEmployee(ctx, employeeID)

	c.commit(view.RegionEmployeeDetails, token, func() {
		c.state.Drilldown.Step = view.DrilldownDetails
		c.state.Drilldown.EmployeeID = employeeID
		switch {
		case errors.Is(err, employee.ErrEmployeeNotFound):
			c.setMessage(view.RegionEmployeeDetails, MessageView{Lines: []string{msgDetailsNotFound}})
		case err != nil:
			slog.Error("Error loading employee details", "session_id", c.id, "employee_id", employeeID, "error", err)
			c.setMessage(view.RegionEmployeeDetails, MessageView{Class: "error-message", Lines: []string{msgDetailsError}})
		default:
			c.set(view.RegionEmployeeDetails, c.fragment(tmplEmployeeDetails, NewEmployeeView(emp)))
		}
	})
	return err
}

// ViewAttendance replaces the employee details with the employee's attendance records.
func (c *Controller) ViewAttendance(ctx context.Context, employeeID string) error {
	token := c.begin(view.RegionEmployeeDetails, "")
	data, err := c.svc.Attendance.GetEmployeeAttendance(ctx, attendance.GetAttendanceRequest{EmployeeID: employeeID})

	c.commit(view.RegionEmployeeDetails, token, func() {
		c.state.Drilldown.Step = view.DrilldownAttendance
		c.state.Drilldown.EmployeeID = employeeID
		if err != nil {
			slog.Error("Error loading employee attendance", "session_id", c.id, "employee_id", employeeID, "error", err)
			c.setMessage(view.RegionEmployeeDetails, MessageView{
				Class:  "error-message",
				Lines:  []string{msgAttendanceError},
				BackTo: employeeID,
			})
			return
		}

		model := NewAttendanceView(employeeID, data)
		if model.Empty() {
			c.setMessage(view.RegionEmployeeDetails, MessageView{
				Title:  "No Attendance Records",
				Lines:  []string{"No attendance records found for this employee."},
				BackTo: employeeID,
			})
			return
		}
		c.set(view.RegionEmployeeDetails, c.fragment(tmplAttendance, model))
	})
	return err
}

// ViewEmployeeAlerts switches to the alerts section scoped to one employee,
// with severity and time window reset, and loads the list.
func (c *Controller) ViewEmployeeAlerts(ctx context.Context, employeeID string) error {
	filter := alert.Filter{Severity: alert.SeverityNone, TimeWindow: alert.TimeWindowAll, EmployeeID: employeeID}
	if err := filter.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.applyFilter(filter)
	c.mu.Unlock()

	if err := c.SwitchSection(view.SectionAlerts); err != nil {
		return err
	}
	c.LoadAlerts(ctx)
	return nil
}

// FilterChange carries the filter fields a request set; nil fields keep their value.
type FilterChange struct {
	Severity   *string
	TimeWindow *string
	EmployeeID *string
}

// SetAlertFilter changes the filter in effect and reloads the alerts.
// An invalid combination is rejected and the previous filter stays.
func (c *Controller) SetAlertFilter(ctx context.Context, change FilterChange) error {
	c.mu.Lock()
	filter := c.state.AlertFilter
	if change.Severity != nil {
		filter.Severity = alert.Severity(*change.Severity)
	}
	if change.TimeWindow != nil {
		filter.TimeWindow = alert.TimeWindow(*change.TimeWindow)
	}
	if change.EmployeeID != nil {
		filter.EmployeeID = strings.TrimSpace(*change.EmployeeID)
	}
	if err := filter.Validate(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.applyFilter(filter)
	c.mu.Unlock()

	c.LoadAlerts(ctx)
	return nil
}

func (c *Controller) applyFilter(filter alert.Filter) {
	c.state.AlertFilter = filter
	c.publish(EventFilter, FilterEvent{
		Severity:   string(filter.Severity),
		TimeFilter: string(filter.TimeWindow),
		EmployeeID: filter.EmployeeID,
	})
}

// LoadAlerts reloads the alert list with the filter in effect.
func (c *Controller) LoadAlerts(ctx context.Context) {
	// filter and token under one lock
	c.mu.Lock()
	filter := c.state.AlertFilter
	token := c.beginLocked(view.RegionAlerts, "Loading alerts...")
	c.mu.Unlock()

	alerts, err := c.svc.Alerts.ListAlerts(ctx, filter)

	c.commit(view.RegionAlerts, token, func() {
		if err != nil {
			slog.Error("Error loading alerts", "session_id", c.id, "error", err)
			c.setMessage(view.RegionAlerts, MessageView{
				Class:        "error-message",
				Lines:        []string{msgAlertsError, msgAlertsErrorHint},
				OfferSamples: true,
			})
			return
		}
		c.set(view.RegionAlerts, c.fragment(tmplAlerts, NewAlertsView(alerts, filter.EmployeeID, c.cfg.Location)))
	})
}

// ResolveAlert resolves an alert once the user confirmed it. Without
// confirmation nothing is sent. On success the list is reloaded once.
func (c *Controller) ResolveAlert(ctx context.Context, alertID string, confirmed bool) (string, error) {
	if !confirmed {
		return "", view.ErrNotConfirmed
	}

	if err := c.svc.Alerts.ResolveAlert(ctx, alertID); err != nil {
		c.flash("error", msgResolveFailed)
		return msgResolveFailed, err
	}

	msg := fmt.Sprintf("Alert ID %s has been marked as resolved.", alertID)
	c.flash("info", msg)
	c.LoadAlerts(ctx)
	return msg, nil
}

// ViewAlert is the alert detail placeholder.
func (c *Controller) ViewAlert(alertID string) string {
	return fmt.Sprintf("Viewing details for alert ID: %s", alertID)
}

// GenerateSampleAlerts creates sample alerts and reloads the list once they are all in.
func (c *Controller) GenerateSampleAlerts(ctx context.Context) (*alert.GenerateSamplesResponse, error) {
	token := c.begin(view.RegionAlerts, "Generating sample alerts...")
	resp, err := c.svc.Alerts.GenerateSamples(ctx)
	if err != nil {
		msg := msgSamplesLoadStaff
		switch {
		case errors.Is(err, alert.ErrNoEmployees):
			msg = msgSamplesNoStaff
		case errors.Is(err, alert.ErrSampleGenerationFailed):
			msg = msgSamplesFailed
		}
		c.commit(view.RegionAlerts, token, func() {
			c.setMessage(view.RegionAlerts, MessageView{Class: "error-message", Lines: []string{msg}})
		})
		return nil, err
	}

	c.LoadAlerts(ctx)
	return resp, nil
}

// GenerateReport fills the report region. An unknown type leaves it untouched.
func (c *Controller) GenerateReport(ctx context.Context, reportType report.Type) error {
	rep, err := c.svc.Reports.Generate(ctx, reportType)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Region(view.RegionReport).Begin()
	c.set(view.RegionReport, c.fragment(tmplReport, NewReportView(rep, c.cfg.Location)))
	return nil
}

// Region returns the current content of a region.
func (c *Controller) Region(id view.RegionID) (template.HTML, error) {
	if !id.IsValid() {
		return "", view.ErrUnknownRegion
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Region(id).HTML, nil
}

// Page writes the page shell with every region's current content.
func (c *Controller) Page(w io.Writer) error {
	c.mu.Lock()
	page := NewPageView(c.state)
	c.mu.Unlock()
	return c.render.Page(w, page)
}

// Resync republishes the whole view to a stream that just opened: active
// section, filter, every filled region and every live chart.
func (c *Controller) Resync() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.publish(EventSection, SectionEvent{Active: c.state.Active})
	c.publish(EventFilter, FilterEvent{
		Severity:   string(c.state.AlertFilter.Severity),
		TimeFilter: string(c.state.AlertFilter.TimeWindow),
		EmployeeID: c.state.AlertFilter.EmployeeID,
	})
	for _, id := range view.Regions {
		r := c.state.Region(id)
		if r.HTML == "" {
			continue
		}
		c.publish(EventRegion, RegionEvent{Region: id, Generation: r.Generation, HTML: string(r.HTML)})
	}
	for _, canvas := range c.charts.Canvases() {
		if inst, ok := c.charts.Get(canvas); ok {
			c.publish(EventChart, ChartEvent{Action: ChartActionCreate, Canvas: canvas, ID: inst.ID, Spec: &inst.Spec})
		}
	}
}

func (c *Controller) Snapshot() view.StateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot(c.id, c.charts.Canvases())
}

// begin hands out a new token for region and shows loading, if any, as its content.
func (c *Controller) begin(id view.RegionID, loading string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked(id, loading)
}

func (c *Controller) beginLocked(id view.RegionID, loading string) uint64 {
	token := c.state.Region(id).Begin()
	if loading != "" {
		c.set(id, c.fragment(tmplLoading, loading))
	}
	return token
}

// commit applies a completion if token is still the region's current one.
func (c *Controller) commit(id view.RegionID, token uint64, apply func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Region(id).Current(token) {
		slog.Debug("Discarding stale response", "session_id", c.id, "region", id, "token", token)
		return false
	}
	apply()
	return true
}

// set replaces a region's content. Callers hold mu.
func (c *Controller) set(id view.RegionID, html template.HTML) {
	r := c.state.Region(id)
	r.HTML = html
	c.publish(EventRegion, RegionEvent{Region: id, Generation: r.Generation, HTML: string(html)})
}

func (c *Controller) setMessage(id view.RegionID, msg MessageView) {
	c.set(id, c.fragment(tmplMessage, msg))
}

func (c *Controller) fragment(name string, data any) template.HTML {
	html, err := c.render.Fragment(name, data)
	if err != nil {
		slog.Error("Failed to render fragment", "session_id", c.id, "template", name, "error", err)
		return template.HTML(`<p class="error-message">` + msgRenderFailed + `</p>`)
	}
	return html
}

func (c *Controller) flash(level, message string) {
	c.publish(EventFlash, FlashEvent{Level: level, Message: message})
}

func (c *Controller) publish(name string, data any) {
	if c.pub == nil {
		return
	}
	c.pub.Publish(c.id, sse.Event{Event: name, Data: data})
}
