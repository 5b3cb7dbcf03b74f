package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the browser assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Fragment template names
const (
	tmplLoading         = "loading"
	tmplMessage         = "message"
	tmplStats           = "stats"
	tmplActivities      = "activities"
	tmplActivityDetail  = "activity-detail"
	tmplEmployeeResults = "employee-results"
	tmplEmployeeDetails = "employee-details"
	tmplAttendance      = "attendance"
	tmplAlerts          = "alerts"
	tmplReport          = "report"
	tmplPage            = "page"
)

// Renderer turns view models into HTML.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Fragment renders one named fragment.
func (r *Renderer) Fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

type NavItem struct {
	ID     view.Section
	Label  string
	Active bool
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// PageView is the page shell with the current content of every region.
type PageView struct {
	Active      view.Section
	Nav         []NavItem
	Regions     map[string]template.HTML
	Query       string
	Severities  []Option
	TimeWindows []Option
}

var sectionLabels = map[view.Section]string{
	view.SectionOverview:  "Overview",
	view.SectionEmployees: "Employees",
	view.SectionAlerts:    "Alerts",
	view.SectionReports:   "Reports",
}

// NewPageView builds the shell from the session state.
func NewPageView(s *State) PageView {
	page := PageView{
		Active:  s.Active,
		Regions: make(map[string]template.HTML, len(s.Regions)),
		Query:   s.Drilldown.Query,
	}
	for _, section := range view.Sections {
		page.Nav = append(page.Nav, NavItem{ID: section, Label: sectionLabels[section], Active: section == s.Active})
	}
	for id, region := range s.Regions {
		page.Regions[string(id)] = region.HTML
	}

	severities := []struct {
		value alert.Severity
		label string
	}{
		{alert.SeverityNone, "All Severities"},
		{alert.SeverityLow, "Low"},
		{alert.SeverityMedium, "Medium"},
		{alert.SeverityHigh, "High"},
		{alert.SeverityCritical, "Critical"},
	}
	for _, o := range severities {
		page.Severities = append(page.Severities, Option{
			Value: string(o.value), Label: o.label, Selected: o.value == s.AlertFilter.Severity,
		})
	}

	windows := []struct {
		value alert.TimeWindow
		label string
	}{
		{alert.TimeWindowAll, "All Time"},
		{alert.TimeWindowToday, "Today"},
		{alert.TimeWindowWeek, "This Week"},
		{alert.TimeWindowMonth, "This Month"},
	}
	for _, o := range windows {
		page.TimeWindows = append(page.TimeWindows, Option{
			Value: string(o.value), Label: o.label, Selected: o.value == s.AlertFilter.TimeWindow,
		})
	}
	return page
}

// Page writes the full dashboard document.
func (r *Renderer) Page(w io.Writer, page PageView) error {
	return r.tmpl.ExecuteTemplate(w, tmplPage, page)
}
