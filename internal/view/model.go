package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/report"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/utils"
)

const (
	placeholderMissing = "N/A"
	placeholderName    = "Unknown"

	displayDateTime = "2006-01-02 15:04:05"
	displayDate     = "2006-01-02"
	displayClock    = "15:04"
)

// Every view model below is fully resolved: templates print fields as they are.

type StatsView struct {
	TotalEmployees string
	PresentToday   string
	OnBreak        string
	AlertsToday    string
}

func NewStatsView(stats *dashboard.Stats) StatsView {
	if stats == nil {
		stats = &dashboard.Stats{}
	}
	return StatsView{
		TotalEmployees: count(stats.TotalEmployees),
		PresentToday:   count(stats.PresentToday),
		OnBreak:        count(stats.OnBreak),
		AlertsToday:    count(stats.AlertsToday),
	}
}

func count(v *int64) string {
	if v == nil {
		return "0"
	}
	return strconv.FormatInt(*v, 10)
}

type ActivityView struct {
	ID          string
	TypeClass   string
	Icon        string
	Time        string
	Date        string
	Description string
	Employee    string
	HasDetails  bool
}

type ActivitiesView struct {
	Items       []ActivityView
	LastUpdated string
}

func (v ActivitiesView) Empty() bool {
	return len(v.Items) == 0
}

// NewActivitiesView renders the feed. When the backend sends no last_updated, now is shown.
func NewActivitiesView(resp *dashboard.ActivitiesResponse, now time.Time, loc *time.Location) ActivitiesView {
	out := ActivitiesView{LastUpdated: now.In(loc).Format(displayDateTime)}
	if resp == nil {
		return out
	}
	if resp.LastUpdated != nil && *resp.LastUpdated != "" {
		out.LastUpdated = *resp.LastUpdated
	}
	for i, a := range resp.Activities {
		out.Items = append(out.Items, NewActivityView(a, i, loc))
	}
	return out
}

// NewActivityView renders one feed entry; index stands in for a missing id.
func NewActivityView(a dashboard.Activity, index int, loc *time.Location) ActivityView {
	typ := a.Type.Normalize()
	v := ActivityView{
		ID:          activityKey(a, index),
		TypeClass:   string(typ),
		Description: a.Description,
		HasDetails:  a.Details != nil,
	}

	switch typ {
	case dashboard.ActivityCheckIn:
		v.Icon = "→"
	case dashboard.ActivityCheckOut:
		v.Icon = "←"
	case dashboard.ActivityBreak:
		v.Icon = "⏸"
	case dashboard.ActivityAlert:
		v.Icon = "⚠"
		if sev, ok := a.Details["severity"].(string); ok && sev != "" {
			v.TypeClass = "alert " + sev
		}
	default:
		v.Icon = "•"
	}

	if a.Time.Valid() {
		v.Time = a.Time.Time.In(loc).Format(displayClock)
		v.Date = a.Time.Time.In(loc).Format(displayDate)
	} else {
		v.Time = a.Time.Raw
	}

	var parts []string
	if a.EmployeeName != nil && *a.EmployeeName != "" {
		parts = append(parts, *a.EmployeeName)
	}
	if a.Department != nil && *a.Department != "" {
		parts = append(parts, "("+*a.Department+")")
	}
	v.Employee = strings.Join(parts, " ")
	return v
}

func activityKey(a dashboard.Activity, index int) string {
	if a.ID != "" {
		return a.ID.String()
	}
	return "idx-" + strconv.Itoa(index)
}

type DetailItem struct {
	Key   string
	Value string
}

type ActivityDetailView struct {
	Description string
	Time        string
	Employee    string
	Department  string
	Details     []DetailItem
}

// NewActivityDetailView renders the popup of one activity. Detail keys are sorted and capitalised.
func NewActivityDetailView(a dashboard.Activity) ActivityDetailView {
	v := ActivityDetailView{
		Description: a.Description,
		Time:        a.Time.Raw,
		Employee:    orDefault(a.EmployeeName, placeholderName),
		Department:  orDefault(a.Department, ""),
	}
	if v.Time == "" && a.Time.Valid() {
		v.Time = a.Time.Time.Format(displayDateTime)
	}

	keys := make([]string, 0, len(a.Details))
	for k := range a.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	title := cases.Title(language.English, cases.NoLower)
	for _, k := range keys {
		v.Details = append(v.Details, DetailItem{
			Key:   title.String(strings.ReplaceAll(k, "_", " ")),
			Value: fmt.Sprint(a.Details[k]),
		})
	}
	return v
}

type EmployeeView struct {
	EmployeeID string
	Name       string
	Department string
	Position   string
	JoinDate   string
}

func NewEmployeeView(e employee.Employee) EmployeeView {
	return EmployeeView{
		EmployeeID: e.EmployeeID,
		Name:       orDefault(e.Name, placeholderName),
		Department: orDefault(e.Department, placeholderMissing),
		Position:   orDefault(e.Position, placeholderMissing),
		JoinDate:   orDefault(e.JoinDate, placeholderMissing),
	}
}

type EmployeeResultsView struct {
	Employees []EmployeeView
}

func NewEmployeeResultsView(employees []employee.Employee) EmployeeResultsView {
	out := EmployeeResultsView{}
	for _, e := range employees {
		out.Employees = append(out.Employees, NewEmployeeView(e))
	}
	return out
}

type AttendanceRowView struct {
	Date    string
	TimeIn  string
	TimeOut string
	Hours   string
	Breaks  int
	Anomaly bool
}

type AttendanceView struct {
	EmployeeID   string
	EmployeeName string
	Rows         []AttendanceRowView
}

func (v AttendanceView) Empty() bool {
	return len(v.Rows) == 0
}

// NewAttendanceView renders the attendance drill-down. employeeID is the id that was
// requested, used for the back action even when the payload has no employee.
func NewAttendanceView(employeeID string, data *attendance.EmployeeAttendance) AttendanceView {
	out := AttendanceView{EmployeeID: employeeID, EmployeeName: placeholderName}
	if data == nil {
		return out
	}
	if data.Employee != nil {
		out.EmployeeName = orDefault(data.Employee.Name, placeholderName)
	}
	for _, r := range data.Records {
		out.Rows = append(out.Rows, NewAttendanceRowView(r))
	}
	return out
}

func NewAttendanceRowView(r attendance.Record) AttendanceRowView {
	return AttendanceRowView{
		Date:    r.Date,
		TimeIn:  orDefault(r.TimeIn, placeholderMissing),
		TimeOut: orDefault(r.TimeOut, placeholderMissing),
		Hours:   hours(r.TotalHours),
		Breaks:  len(r.Breaks),
		Anomaly: r.IsAnomaly,
	}
}

func hours(v *float64) string {
	if v == nil {
		return placeholderMissing
	}
	return fmt.Sprintf("%.2f", *v)
}

type AlertRowView struct {
	ID            string
	Time          string
	Employee      string
	Type          string
	Description   string
	Severity      string
	SeverityLabel string
	Resolved      bool
}

// CanResolve is false for resolved alerts; they only offer "View".
func (v AlertRowView) CanResolve() bool {
	return !v.Resolved
}

type AlertsView struct {
	// Scope is the employee the list is narrowed to, if any
	Scope string
	Rows  []AlertRowView
}

func (v AlertsView) Empty() bool {
	return len(v.Rows) == 0
}

func NewAlertsView(alerts []alert.Alert, scope string, loc *time.Location) AlertsView {
	out := AlertsView{Scope: scope}
	for _, a := range alerts {
		out.Rows = append(out.Rows, NewAlertRowView(a, loc))
	}
	return out
}

func NewAlertRowView(a alert.Alert, loc *time.Location) AlertRowView {
	return AlertRowView{
		ID:            a.ID.String(),
		Time:          formatTimestamp(a.Timestamp, loc),
		Employee:      orDefault(a.EmployeeName, placeholderName),
		Type:          a.AlertType,
		Description:   a.Description,
		Severity:      string(a.Severity),
		SeverityLabel: cases.Upper(language.English).String(string(a.Severity)),
		Resolved:      a.IsResolved,
	}
}

type ReportView struct {
	Title       string
	GeneratedAt string
	Body        string
}

func NewReportView(r *report.Report, loc *time.Location) ReportView {
	return ReportView{
		Title:       r.Title,
		GeneratedAt: r.GeneratedAt.In(loc).Format(displayDateTime),
		Body:        r.Body,
	}
}

// MessageView is a static message region: empty states and error placeholders.
type MessageView struct {
	Class string
	Title string
	Lines []string
	// BackTo, when set, renders "Back to Employee Details" for that employee
	BackTo string
	// OfferSamples renders the sample alert generator button
	OfferSamples bool
}

func formatTimestamp(ts utils.Timestamp, loc *time.Location) string {
	if ts.Valid() {
		return ts.Time.In(loc).Format(displayDateTime)
	}
	if ts.Raw != "" {
		return ts.Raw
	}
	return placeholderMissing
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
