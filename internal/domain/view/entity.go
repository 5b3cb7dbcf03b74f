package view

// Section is one of the mutually exclusive top-level dashboard views.
type Section string

const (
	SectionOverview  Section = "overview"
	SectionEmployees Section = "employees"
	SectionAlerts    Section = "alerts"
	SectionReports   Section = "reports"
)

// Sections lists every section in navigation order.
var Sections = []Section{SectionOverview, SectionEmployees, SectionAlerts, SectionReports}

func (s Section) IsValid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// RegionID names a container whose content is replaced as a whole.
type RegionID string

const (
	RegionStats           RegionID = "stats"
	RegionActivities      RegionID = "recent-activities"
	RegionEmployeeResults RegionID = "employee-results"
	RegionEmployeeDetails RegionID = "employee-details"
	RegionAlerts          RegionID = "alerts-list"
	RegionReport          RegionID = "report-result"
)

// Regions lists every region.
var Regions = []RegionID{
	RegionStats,
	RegionActivities,
	RegionEmployeeResults,
	RegionEmployeeDetails,
	RegionAlerts,
	RegionReport,
}

func (r RegionID) IsValid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// DrilldownStep is where the employee drill-down currently is.
type DrilldownStep string

const (
	DrilldownNone       DrilldownStep = "none"
	DrilldownResults    DrilldownStep = "results"
	DrilldownDetails    DrilldownStep = "details"
	DrilldownAttendance DrilldownStep = "attendance"
)

// Canvas ids of the overview charts
const (
	CanvasAttendance = "attendance-chart"
	CanvasAlerts     = "alert-chart"
)
