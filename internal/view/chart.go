package view

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/attendance-dashboard/internal/domain/dashboard"
)

// ChartSpec is a chart descriptor in the shape Chart.js takes as its config.
type ChartSpec struct {
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options,omitempty"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label           string  `json:"label,omitempty"`
	Data            []int64 `json:"data"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BackgroundColor any     `json:"backgroundColor,omitempty"`
	BorderWidth     int     `json:"borderWidth,omitempty"`
	Tension         float64 `json:"tension,omitempty"`
	Fill            bool    `json:"fill,omitempty"`
}

// AttendanceChartSpec builds the "Present" line chart of the attendance trend.
func AttendanceChartSpec(trend dashboard.AttendanceTrend) ChartSpec {
	return ChartSpec{
		Type: "line",
		Data: ChartData{
			Labels: nonNil(trend.Dates),
			Datasets: []ChartDataset{{
				Label:           "Present",
				Data:            nonNilInts(trend.Present),
				BorderColor:     "#3498db",
				BackgroundColor: "rgba(52, 152, 219, 0.1)",
				Tension:         0.3,
				BorderWidth:     2,
				Fill:            true,
			}},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"plugins": map[string]any{
				"legend":  map[string]any{"display": true, "position": "top"},
				"tooltip": map[string]any{"mode": "index", "intersect": false},
			},
			"scales": map[string]any{
				"y": map[string]any{"beginAtZero": true, "ticks": map[string]any{"precision": 0}},
			},
		},
	}
}

// AlertChartSpec builds the doughnut of alert counts per type, in backend order.
func AlertChartSpec(types dashboard.AlertTypes) ChartSpec {
	labels := make([]string, 0, len(types))
	counts := make([]int64, 0, len(types))
	for _, item := range types {
		labels = append(labels, item.Label)
		counts = append(counts, item.Count)
	}
	return ChartSpec{
		Type: "doughnut",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Data:            counts,
				BackgroundColor: []string{"#3498db", "#f39c12", "#e74c3c", "#c0392b"},
				BorderWidth:     1,
			}},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"plugins": map[string]any{
				"legend": map[string]any{"position": "right", "labels": map[string]any{"padding": 20}},
			},
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(s []int64) []int64 {
	if s == nil {
		return []int64{}
	}
	return s
}

// ChartInstance is one live chart bound to a canvas.
type ChartInstance struct {
	ID        string    `json:"id"`
	Canvas    string    `json:"canvas"`
	Spec      ChartSpec `json:"spec"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	ChartActionCreate  = "create"
	ChartActionDestroy = "destroy"
)

// ChartEvent tells the browser to destroy or create the chart on a canvas.
type ChartEvent struct {
	Action string     `json:"action"`
	Canvas string     `json:"canvas"`
	ID     string     `json:"id"`
	Spec   *ChartSpec `json:"spec,omitempty"`
}

// ChartRegistry owns the chart instances of one dashboard, at most one per canvas.
// It is not safe for concurrent use; the Controller serializes access.
type ChartRegistry struct {
	charts map[string]*ChartInstance
	emit   func(ChartEvent)
	now    func() time.Time
}

// NewChartRegistry creates a registry that reports every destroy and create to emit.
func NewChartRegistry(emit func(ChartEvent)) *ChartRegistry {
	if emit == nil {
		emit = func(ChartEvent) {}
	}
	return &ChartRegistry{
		charts: make(map[string]*ChartInstance),
		emit:   emit,
		now:    time.Now,
	}
}

// ReplaceOrCreate destroys the chart on canvas, if any, then creates one from spec.
func (r *ChartRegistry) ReplaceOrCreate(canvas string, spec ChartSpec) *ChartInstance {
	r.Destroy(canvas)

	inst := &ChartInstance{
		ID:        uuid.NewString(),
		Canvas:    canvas,
		Spec:      spec,
		CreatedAt: r.now(),
	}
	r.charts[canvas] = inst
	r.emit(ChartEvent{Action: ChartActionCreate, Canvas: canvas, ID: inst.ID, Spec: &inst.Spec})
	return inst
}

// Destroy removes the chart on canvas and reports whether there was one.
func (r *ChartRegistry) Destroy(canvas string) bool {
	prev, ok := r.charts[canvas]
	if !ok {
		return false
	}
	delete(r.charts, canvas)
	r.emit(ChartEvent{Action: ChartActionDestroy, Canvas: canvas, ID: prev.ID})
	return true
}

func (r *ChartRegistry) DestroyAll() {
	for _, canvas := range r.Canvases() {
		r.Destroy(canvas)
	}
}

func (r *ChartRegistry) Get(canvas string) (*ChartInstance, bool) {
	inst, ok := r.charts[canvas]
	return inst, ok
}

// Canvases lists the canvases holding a chart, sorted.
func (r *ChartRegistry) Canvases() []string {
	out := make([]string, 0, len(r.charts))
	for canvas := range r.charts {
		out = append(out, canvas)
	}
	sort.Strings(out)
	return out
}
