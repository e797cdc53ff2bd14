package windows

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/config"
	"github.com/roffe/admindash/pkg/session"
)

var fixtures = map[string]any{
	"/api/admin/dashboard/overview": adminapi.Overview{TotalUsers: 120, TotalProjects: 45, ActiveDeployments: 7, SuccessRate: 96.5},
	"/api/admin/dashboard/analytics": map[string]any{
		"user_registrations": []map[string]any{{"_id": "2024-01-01", "count": 12}, {"_id": "2024-01-02", "count": 18}, {"_id": "2024-01-03", "count": 15}},
		"project_creations":  []map[string]any{{"_id": "2024-01-01", "count": 3}},
		"last_24h":           map[string]any{"new_users": 4, "new_projects": 2, "successful_deployments": 9, "failed_deployments": 1},
		"current":            map[string]any{"active_sessions": 11},
	},
	"/api/admin/dashboard/recent-activity": []adminapi.Activity{{Type: "user", Description: "joined", Timestamp: "2024-01-03T10:00:00Z"}},
	"/api/admin/system/health": adminapi.SystemHealth{Status: "healthy", Version: "1.2.0", Services: []adminapi.Service{
		{Name: "api", Status: "operational"}, {Name: "db", Status: "degraded"},
	}},
	"/api/admin/system/performance": adminapi.SystemPerformance{CPUUsage: 12.5, ResponseTimeAvg: 80},
	"/api/admin/system/logs": map[string]any{"logs": []adminapi.LogEntry{
		{Timestamp: "2024-01-03T10:00:00Z", Level: "INFO", Service: "api", Message: "started"},
	}},
	"/api/admin/users": adminapi.UserList{Total: 45, Users: []adminapi.User{
		{ID: "1", Name: "Ada", Email: "ada@example.com", Status: "active"},
		{ID: "2", Name: "Bob", Email: "bob@example.com", Status: "suspended"},
	}},
	"/api/admin/projects": adminapi.ProjectList{Total: 3, Projects: []adminapi.Project{
		{ID: "p1", BusinessName: "Cafe", Industry: "restaurant", Status: "active"},
		{ID: "p2", BusinessName: "Shop", Industry: "ecommerce", Status: "draft"},
		{ID: "p3", BusinessName: "Studio", Industry: "agency", Status: "active"},
	}},
	"/api/admin/deployments/a": adminapi.Deployment{
		ID: "a", ProjectName: "Cafe", Status: "success", Environment: "production", Platform: "vercel",
		Branch: "main", CommitHash: "abc1234", BuildTime: 42, Size: 3 << 20, URL: "https://cafe.example.com",
		CreatedAt: "2024-01-03T10:00:00Z",
		Logs: []adminapi.LogEntry{
			{Timestamp: "2024-01-03T10:00:00Z", Level: "INFO", Message: "build started"},
			{Timestamp: "2024-01-03T10:00:42Z", Level: "INFO", Message: "deployed"},
		},
	},
}

// requestLog counts the requests the fixture server answered by method and path.
type requestLog struct {
	mu   sync.Mutex
	hits map[string]int
}

func (l *requestLog) add(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits[key]++
}

func (l *requestLog) count(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hits[key]
}

func newEnv(t *testing.T) *Env {
	t.Helper()
	env, _ := newRecordingEnv(t)
	return env
}

// newRecordingEnv serves the fixtures for GET and answers every other method
// with a successful action result.
func newRecordingEnv(t *testing.T) (*Env, *requestLog) {
	t.Helper()
	requests := &requestLog{hits: make(map[string]int)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.add(r.Method + " " + r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodGet {
			json.NewEncoder(w).Encode(adminapi.ActionResult{Success: true})
			return
		}
		v, ok := fixtures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(v)
	}))
	t.Cleanup(srv.Close)

	store := &session.MemoryStore{}
	store.SetToken("token")
	client := adminapi.New(adminapi.WithEndpoint(srv.URL), adminapi.WithCredentials(store), adminapi.WithCacheTTL(0))
	cfg := config.Default()
	cfg.Endpoint = srv.URL
	return &Env{
		App:     test.NewTempApp(t),
		Client:  client,
		Session: session.New(client, store),
		Config:  cfg,
	}, requests
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDashboardPage(t *testing.T) {
	env := newEnv(t)
	p := NewDashboardPage(env)
	p.Refresh()
	// overall, summary and one row per service
	waitFor(t, "dashboard", func() bool { return len(p.status.Objects) == 4 })

	if got := p.users.value.Text; got != "120" {
		t.Errorf("total users = %q, want 120", got)
	}
	if got := p.successRate.value.Text; got != "96.5%" {
		t.Errorf("success rate = %q", got)
	}
	if got := p.sessions.value.Text; got != "11" {
		t.Errorf("active sessions = %q", got)
	}
	if got := p.registrations.Series().Values(); len(got) != 3 || got[1] != 18 {
		t.Errorf("registrations = %v", got)
	}
	if p.registrations.Kind() != chart.Line || p.registrations.Color() != chart.Blue {
		t.Error("registrations chart should be a blue line")
	}
	if p.creations.Kind() != chart.Bar || p.creations.Color() != chart.Green {
		t.Error("project creations chart should be green bars")
	}
	if len(p.activity.Objects) != 1 {
		t.Errorf("activity rows = %d, want 1", len(p.activity.Objects))
	}
}

func TestUsersPage(t *testing.T) {
	env := newEnv(t)
	p := NewUsersPage(env)
	p.Refresh()
	waitFor(t, "users", func() bool { return len(p.rows.Objects) == 2 })

	if got := p.bar.summary.Text; got != "Showing 1 to 20 of 45 results" {
		t.Errorf("summary = %q", got)
	}
	if !p.bar.prev.Disabled() || p.bar.next.Disabled() {
		t.Error("expected only next to be enabled on the first page")
	}

	p.status.Selected = "suspended"
	p.pager.Page = 3
	q := p.query()
	if q.Status != "suspended" || q.Skip != 40 || q.Limit != perPage {
		t.Errorf("query = %+v", q)
	}
}

func TestDeploymentsFilter(t *testing.T) {
	env := newEnv(t)
	p := NewDeploymentsPage(env)
	p.apply(&deploymentsData{
		stats: &adminapi.DeploymentStatistics{Total: 3, Successful: 2, Failed: 1},
		list: &adminapi.DeploymentList{Deployments: []adminapi.Deployment{
			{ID: "a", ProjectName: "Cafe", Environment: "production", Status: "success"},
			{ID: "b", ProjectName: "Bakery", Environment: "staging", Status: "failed"},
			{ID: "c", ProjectName: "Cafe Bar", Environment: "production", Status: "failed"},
		}},
	})

	if got := p.environment.Options; len(got) != 3 || got[0] != "All" || got[1] != "production" {
		t.Errorf("environment options = %v", got)
	}

	tests := []struct {
		name, search, env, status string
		want                      []string
	}{
		{name: "all", env: "All", status: "All", want: []string{"a", "b", "c"}},
		{name: "environment", env: "production", status: "All", want: []string{"a", "c"}},
		{name: "status", env: "All", status: "failed", want: []string{"b", "c"}},
		{name: "both", env: "production", status: "failed", want: []string{"c"}},
		{name: "search", search: "cafe", env: "All", status: "All", want: []string{"a", "c"}},
		{name: "nothing", search: "zzz", env: "All", status: "All"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.search.Text = tt.search
			p.environment.Selected = tt.env
			p.status.Selected = tt.status
			got := p.visible()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d deployments, want %d", len(got), len(tt.want))
			}
			for i, d := range got {
				if d.ID != tt.want[i] {
					t.Errorf("[%d] = %s, want %s", i, d.ID, tt.want[i])
				}
			}
		})
	}
}

func TestCheckAPIVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"", true},
		{"1.0.0", true},
		{"v1.4.2", true},
		{"2.0.0-beta.1", true},
		{"0.9.9", false},
		{"v1.0.0-rc.1", false},
		{"latest", false},
	}
	for _, tt := range tests {
		if ok, msg := checkAPIVersion(tt.version); ok != tt.ok {
			t.Errorf("checkAPIVersion(%q) = %v (%s), want %v", tt.version, ok, msg, tt.ok)
		}
	}
}

func TestSettingsConfig(t *testing.T) {
	env := newEnv(t)
	p := NewSettingsPage(env)
	p.Refresh()

	p.endpoint.SetText("https://admin.example.com/")
	p.cacheTTL.SetText("0")
	p.chartKind.SetSelected("bar")
	p.chartColor.SetSelected("purple")
	cfg, err := p.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != "https://admin.example.com" || cfg.CacheTTL != 0 {
		t.Errorf("endpoint/ttl = %q/%v", cfg.Endpoint, cfg.CacheTTL)
	}
	if cfg.DefaultChartKind != chart.Bar || cfg.DefaultChartColor != chart.Purple {
		t.Errorf("chart defaults = %v/%v", cfg.DefaultChartKind, cfg.DefaultChartColor)
	}
	if cfg.AnalyticsDays != env.Config.AnalyticsDays {
		t.Error("fields not on the form should be kept")
	}

	p.retries.SetText("lots")
	if _, err := p.Config(); err == nil {
		t.Error("expected an error for a non numeric retry count")
	}
	p.retries.SetText("3")
	p.endpoint.SetText("ftp://nope")
	if _, err := p.Config(); err == nil {
		t.Error("expected an error for a non http endpoint")
	}
}

func TestLoginRequiresFields(t *testing.T) {
	env := newEnv(t)
	lw := NewLoginWindow(env, nil)
	lw.Submit()
	if lw.errText.Text != "Email and password are required" {
		t.Errorf("error = %q", lw.errText.Text)
	}
}

func TestHelpers(t *testing.T) {
	if got := rangeDays("Last 7 days"); got != 7 {
		t.Errorf("rangeDays = %d", got)
	}
	if got := rangeDays("bogus"); got != 30 {
		t.Errorf("rangeDays fallback = %d", got)
	}
	for n, want := range map[int64]string{512: "512 B", 2048: "2.0 KB", 5 << 20: "5.0 MB"} {
		if got := humanBytes(n); got != want {
			t.Errorf("humanBytes(%d) = %q, want %q", n, got, want)
		}
	}
	if got := formatTime("not a time"); got != "not a time" {
		t.Errorf("formatTime passthrough = %q", got)
	}
	if got := titleCase("real_estate"); got != "Real estate" {
		t.Errorf("titleCase = %q", got)
	}
	a := &adminapi.Analytics{ProjectCreations: []map[string]any{{"_id": "x", "count": 2}}}
	if s := metricSeries(a, metricCreations); s.Total() != 2 {
		t.Errorf("metricSeries total = %v", s.Total())
	}
}
