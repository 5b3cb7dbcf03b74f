package view

import (
	"html/template"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/view"
)

// generations hands out region tokens for the whole process. It starts at the
// boot time in milliseconds, so tokens keep growing across controller
// recreation and server restarts and the browser never sees one go backwards.
var generations atomic.Uint64

func init() {
	generations.Store(uint64(time.Now().UnixMilli()))
}

// Region is one replace-as-a-whole container plus the generation of the
// request currently allowed to fill it.
type Region struct {
	ID         view.RegionID
	Generation uint64
	HTML       template.HTML
}

// Begin starts a new request for the region and returns its token.
// Any token handed out earlier stops being current.
func (r *Region) Begin() uint64 {
	r.Generation = generations.Add(1)
	return r.Generation
}

// Current reports whether token belongs to the latest request.
func (r *Region) Current(token uint64) bool {
	return token == r.Generation
}

// Invalidate makes every outstanding token stale without starting a request.
func (r *Region) Invalidate() {
	r.Generation = generations.Add(1)
}

// Drilldown is the position inside the employee search flow.
type Drilldown struct {
	Step       view.DrilldownStep
	Query      string
	EmployeeID string
}

// State is the full view state of one dashboard session.
// The owning Controller guards it; nothing else reads or writes it.
type State struct {
	Active      view.Section
	AlertFilter alert.Filter
	Drilldown   Drilldown
	Regions     map[view.RegionID]*Region

	// activities last rendered in the feed, for the detail popup
	Activities map[string]dashboard.Activity

	LastSeen time.Time
}

// NewState returns the state of a freshly opened dashboard: overview active,
// no alert filter, no drill-down, every region empty.
func NewState(now time.Time) *State {
	s := &State{
		Active:      view.SectionOverview,
		AlertFilter: alert.DefaultFilter(),
		Drilldown:   Drilldown{Step: view.DrilldownNone},
		Regions:     make(map[view.RegionID]*Region, len(view.Regions)),
		Activities:  make(map[string]dashboard.Activity),
		LastSeen:    now,
	}
	for _, id := range view.Regions {
		s.Regions[id] = &Region{ID: id}
	}
	return s
}

func (s *State) Region(id view.RegionID) *Region {
	return s.Regions[id]
}

// Snapshot copies the state into its JSON form.
func (s *State) Snapshot(sessionID string, charts []string) view.StateSnapshot {
	gens := make(map[view.RegionID]uint64, len(s.Regions))
	for id, r := range s.Regions {
		gens[id] = r.Generation
	}
	return view.StateSnapshot{
		SessionID:     sessionID,
		ActiveSection: s.Active,
		AlertFilter: view.AlertFilterState{
			Severity:   string(s.AlertFilter.Severity),
			TimeFilter: string(s.AlertFilter.TimeWindow),
			EmployeeID: s.AlertFilter.EmployeeID,
		},
		Drilldown: view.DrilldownState{
			Step:       s.Drilldown.Step,
			Query:      s.Drilldown.Query,
			EmployeeID: s.Drilldown.EmployeeID,
		},
		Regions: gens,
		Charts:  charts,
	}
}
