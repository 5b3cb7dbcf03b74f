package view

// StateSnapshot is the JSON form of a session's view state.
type StateSnapshot struct {
	SessionID     string              `json:"session_id"`
	ActiveSection Section             `json:"active_section"`
	AlertFilter   AlertFilterState    `json:"alert_filter"`
	Drilldown     DrilldownState      `json:"drilldown"`
	Regions       map[RegionID]uint64 `json:"region_generations"`
	Charts        []string            `json:"charts"`
}

type AlertFilterState struct {
	Severity   string `json:"severity"`
	TimeFilter string `json:"time_filter"`
	EmployeeID string `json:"employee_id,omitempty"`
}

type DrilldownState struct {
	Step       DrilldownStep `json:"step"`
	Query      string        `json:"query,omitempty"`
	EmployeeID string        `json:"employee_id,omitempty"`
}
