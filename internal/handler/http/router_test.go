package http

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-dashboard/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/apiclient"
	"github.com/cmlabs-hris/attendance-dashboard/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-dashboard/internal/repository/backend"
	alertService "github.com/cmlabs-hris/attendance-dashboard/internal/service/alert"
	attendanceService "github.com/cmlabs-hris/attendance-dashboard/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/attendance-dashboard/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/attendance-dashboard/internal/service/employee"
	reportService "github.com/cmlabs-hris/attendance-dashboard/internal/service/report"
	"github.com/cmlabs-hris/attendance-dashboard/internal/view"
)

const handlerTestSecret = "handler-test-secret-0123456789abcdef"

// fakeBackend stands in for the attendance REST backend.
type fakeBackend struct {
	mu       sync.Mutex
	searches int
	resolves []string
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	writeBody := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}

	mux.HandleFunc("GET /api/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"total_employees":42,"present_today":30,"attendance_trend":{"dates":["2024-03-01"],"present":[30]},"alert_types":{"Late Check-in":1}}`)
	})
	mux.HandleFunc("GET /api/dashboard/activities", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"activities":[]}`)
	})
	mux.HandleFunc("GET /api/dashboard/alerts", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"alerts":[{"id":5,"timestamp":"2024-03-01 08:00:00","employee_id":"E1","alert_type":"Late Check-in","description":"late","severity":"low","is_resolved":false}]}`)
	})
	mux.HandleFunc("POST /api/dashboard/alerts/{id}/resolve", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.resolves = append(f.resolves, r.PathValue("id"))
		f.mu.Unlock()
		writeBody(w, `{"success":true}`)
	})
	mux.HandleFunc("GET /api/employees/search", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.searches++
		f.mu.Unlock()
		writeBody(w, `{"employees":[{"employee_id":"E1","name":"Ann","department":"Ops","position":"Lead"}]}`)
	})
	return mux
}

func (f *fakeBackend) counts() (int, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches, append([]string(nil), f.resolves...)
}

type testApp struct {
	server   *httptest.Server
	client   *http.Client
	backend  *fakeBackend
	sessions *view.Sessions
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWith(t, time.Hour, 30*time.Second)
}

func newTestAppWith(t *testing.T, idleTimeout, keepalive time.Duration) *testApp {
	t.Helper()

	fb := &fakeBackend{}
	upstream := httptest.NewServer(fb.handler())
	t.Cleanup(upstream.Close)

	client, err := apiclient.NewClient(upstream.URL, 2*time.Second)
	require.NoError(t, err)

	employeeRepo := backend.NewEmployeeRepository(client)
	services := view.Services{
		Dashboard:  dashboardService.NewDashboardService(backend.NewDashboardRepository(client)),
		Employees:  employeeService.NewEmployeeService(employeeRepo),
		Attendance: attendanceService.NewAttendanceService(backend.NewAttendanceRepository(client)),
		Alerts:     alertService.NewAlertService(backend.NewAlertRepository(client, backend.DefaultAlertsPath), employeeRepo),
		Reports:    reportService.NewReportService(),
	}
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	hub := sse.NewHub(64)
	sessions := view.NewSessions(func(id string) *view.Controller {
		return view.NewController(id, services, renderer, hub, view.Config{ActivityLimit: 15, Location: time.UTC})
	}, idleTimeout, hub.Drop)

	dashboard := NewDashboardHandler(sessions, hub).(*dashboardHandlerImpl)
	dashboard.keepalive = keepalive

	router := NewRouter(
		RouterConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			SessionStore:   middleware.NewSessionStore(handlerTestSecret, false),
		},
		dashboard,
		NewEmployeeHandler(sessions),
		NewAlertHandler(sessions),
		NewReportHandler(sessions),
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{server: server, client: &http.Client{Jar: jar}, backend: fb, sessions: sessions}
}

type testStream struct {
	lines *bufio.Scanner
}

// openStream connects to /ui/stream and consumes the connected event.
func (a *testApp) openStream(t *testing.T) *testStream {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.server.URL+"/ui/stream", nil)
	require.NoError(t, err)
	resp, err := a.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	s := &testStream{lines: bufio.NewScanner(resp.Body)}
	require.True(t, s.lines.Scan())
	require.Equal(t, "event: connected", s.lines.Text())
	return s
}

// next returns the name and payload of the next event, or false once the stream ends.
func (s *testStream) next() (string, string, bool) {
	var name string
	for s.lines.Scan() {
		line := s.lines.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: ") && name != "":
			return name, strings.TrimPrefix(line, "data: "), true
		}
	}
	return "", "", false
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) (*http.Response, response.Response) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestDashboardPage_RendersInitialRegions(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.client.Get(app.server.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Cookies(), "first visit must issue a session cookie")

	html, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(html)
	assert.Contains(t, page, `<p id="total-employees">42</p>`)
	assert.Contains(t, page, `<p id="on-break">0</p>`)
	assert.Contains(t, page, "No recent activities")
	assert.Contains(t, page, "Late Check-in")
	assert.Contains(t, page, `<section id="overview" class="dashboard-section active">`)
}

func TestSearch_BlankQueryNeverReachesBackend(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.postForm(t, "/ui/employees/search", url.Values{"q": {"   "}})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, body.Success)
	searches, _ := app.backend.counts()
	assert.Equal(t, 0, searches)

	resp, _ = app.postForm(t, "/ui/employees/search", url.Values{"q": {"ann"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	searches, _ = app.backend.counts()
	assert.Equal(t, 1, searches)
}

func TestResolve_RequiresConfirmation(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.postForm(t, "/ui/alerts/5/resolve", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Confirmation required", body.Error.Message)
	_, resolves := app.backend.counts()
	assert.Empty(t, resolves)

	resp, body = app.postForm(t, "/ui/alerts/5/resolve", url.Values{"confirm": {"true"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alert ID 5 has been marked as resolved.", body.Message)
	_, resolves = app.backend.counts()
	assert.Equal(t, []string{"5"}, resolves)
}

func TestSwitchSection(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.postForm(t, "/ui/sections/payroll", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := app.postForm(t, "/ui/sections/alerts", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	state := body.Data.(map[string]interface{})
	assert.Equal(t, "alerts", state["active_section"])
}

func TestAlertFilter_RejectsUnknownWindow(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.postForm(t, "/ui/alerts/filter", url.Values{"time_filter": {"year"}})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, body.Error)
	assert.Contains(t, body.Error.Details, "time_filter")
}

func TestRegion(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.client.Get(app.server.URL + "/ui/regions/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data RegionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Data.HTML, "42")

	missing, err := app.client.Get(app.server.URL + "/ui/regions/sidebar")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestStream_DeliversRegionUpdates(t *testing.T) {
	app := newTestApp(t)

	page, err := app.client.Get(app.server.URL + "/dashboard")
	require.NoError(t, err)
	page.Body.Close()

	stream := app.openStream(t)

	resp, _ := app.postForm(t, "/ui/reports/hours", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	for {
		name, data, ok := stream.next()
		require.True(t, ok, "no report-result region event received")
		if name != "region" {
			continue
		}
		var ev view.RegionEvent
		require.NoError(t, json.Unmarshal([]byte(data), &ev))
		if ev.Region == "report-result" {
			assert.Contains(t, ev.HTML, "Work Hours Report")
			return
		}
	}
}

func TestStream_ConnectReplaysRegionsAndCharts(t *testing.T) {
	app := newTestApp(t)

	page, err := app.client.Get(app.server.URL + "/dashboard")
	require.NoError(t, err)
	page.Body.Close()

	stream := app.openStream(t)

	var stats string
	charts := map[string]bool{}
	for stats == "" || len(charts) < 2 {
		name, data, ok := stream.next()
		require.True(t, ok, "stream ended before the view was replayed")
		switch name {
		case "region":
			var ev view.RegionEvent
			require.NoError(t, json.Unmarshal([]byte(data), &ev))
			if ev.Region == "stats" {
				stats = ev.HTML
			}
		case "chart":
			var ev view.ChartEvent
			require.NoError(t, json.Unmarshal([]byte(data), &ev))
			assert.Equal(t, view.ChartActionCreate, ev.Action)
			charts[ev.Canvas] = true
		}
	}
	assert.Contains(t, stats, "42")
	assert.True(t, charts["attendance-chart"])
	assert.True(t, charts["alert-chart"])
}

func TestStream_KeepaliveKeepsWatchedSessionAlive(t *testing.T) {
	app := newTestAppWith(t, 150*time.Millisecond, 20*time.Millisecond)

	stream := app.openStream(t)
	go func() {
		for {
			if _, _, ok := stream.next(); !ok {
				return
			}
		}
	}()

	time.Sleep(400 * time.Millisecond)
	require.NoError(t, app.sessions.EvictIdle(context.Background()))
	assert.Equal(t, 1, app.sessions.Len(), "an open stream must keep its session")
}

func TestStream_ReconnectAfterEvictionRecreatesSession(t *testing.T) {
	app := newTestAppWith(t, 100*time.Millisecond, time.Hour)

	first := app.openStream(t)
	time.Sleep(250 * time.Millisecond)
	require.NoError(t, app.sessions.EvictIdle(context.Background()))
	require.Equal(t, 0, app.sessions.Len())

	for {
		if _, _, ok := first.next(); !ok {
			break
		}
	}

	second := app.openStream(t)
	assert.Equal(t, 1, app.sessions.Len())
	for {
		name, data, ok := second.next()
		require.True(t, ok, "recreated session sent no stats")
		if name != "region" {
			continue
		}
		var ev view.RegionEvent
		require.NoError(t, json.Unmarshal([]byte(data), &ev))
		if ev.Region == "stats" {
			assert.Contains(t, ev.HTML, "42")
			return
		}
	}
}

func TestStatic(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.client.Get(app.server.URL + "/static/dashboard.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
