package windows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/layout"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

// MinimumAPIVersion is the oldest admin API this dashboard talks to.
const MinimumAPIVersion = "1.0.0"

const systemLogLimit = 50

// autoRefreshInterval is how often the System page reloads while auto
// refresh is ticked.
var autoRefreshInterval = 30 * time.Second

// checkAPIVersion reports whether the server version is supported. An empty
// version is accepted since older servers do not send one.
func checkAPIVersion(version string) (bool, string) {
	if version == "" {
		return true, "API version not reported"
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return false, fmt.Sprintf("API version %q is not a valid version", version)
	}
	if semver.Compare(v, "v"+MinimumAPIVersion) < 0 {
		return false, fmt.Sprintf("API %s is older than the supported minimum %s", v, MinimumAPIVersion)
	}
	return true, "API " + v
}

type systemData struct {
	health *adminapi.SystemHealth
	perf   *adminapi.SystemPerformance
	logs   []adminapi.LogEntry
}

type SystemPage struct {
	env  *Env
	busy *widget.Activity

	status   *fyne.Container
	version  *widget.Label
	services *fyne.Container
	logs     *fyne.Container
	auto     *widget.Check
	ticker   *time.Ticker
	done     chan struct{}

	cpu, memory, disk, rpm, conns, latency *statCard

	content fyne.CanvasObject
}

func NewSystemPage(env *Env) *SystemPage {
	p := &SystemPage{
		env:      env,
		busy:     newActivity(),
		status:   container.NewHBox(),
		version:  widget.NewLabel(""),
		services: container.NewVBox(),
		logs:     container.NewVBox(),
		cpu:      newStatCard("CPU usage", chart.Blue),
		memory:   newStatCard("Memory usage", chart.Purple),
		disk:     newStatCard("Disk usage", chart.Yellow),
		rpm:      newStatCard("Requests / min", chart.Green),
		conns:    newStatCard("Active connections", chart.Blue),
		latency:  newStatCard("Avg response time", chart.Green),
	}
	p.auto = widget.NewCheck(fmt.Sprintf("Auto refresh (%s)", autoRefreshInterval), func(on bool) {
		if on {
			p.startAutoRefresh()
		} else {
			p.stopAutoRefresh()
		}
	})
	p.content = container.NewVScroll(container.NewVBox(
		container.NewBorder(nil, nil, container.NewHBox(heading("System Health"), p.status, p.busy), p.auto),
		p.version,
		layout.NewGrid(3, theme.Padding(), p.cpu.Container, p.memory.Container, p.disk.Container, p.rpm.Container, p.conns.Container, p.latency.Container),
		heading("Services"),
		p.services,
		widget.NewSeparator(),
		heading(fmt.Sprintf("Recent Logs (last %d)", systemLogLimit)),
		p.logs,
	))
	return p
}

func (p *SystemPage) Name() string { return "System" }

func (p *SystemPage) Content() fyne.CanvasObject { return p.content }

// Shown resumes auto refresh when the page comes back on screen.
func (p *SystemPage) Shown() {
	if p.auto.Checked {
		p.startAutoRefresh()
	}
}

// Hidden stops auto refresh until the page is shown again.
func (p *SystemPage) Hidden() {
	p.stopAutoRefresh()
}

func (p *SystemPage) startAutoRefresh() {
	if p.ticker != nil {
		return
	}
	p.ticker = time.NewTicker(autoRefreshInterval)
	p.done = make(chan struct{})
	go func(c <-chan time.Time, done <-chan struct{}) {
		for {
			select {
			case <-c:
				fyne.Do(p.Refresh)
			case <-done:
				return
			}
		}
	}(p.ticker.C, p.done)
}

func (p *SystemPage) stopAutoRefresh() {
	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	close(p.done)
	p.ticker = nil
	p.done = nil
}

func (p *SystemPage) autoRefreshing() bool {
	return p.ticker != nil
}

func (p *SystemPage) Refresh() {
	load(p.env, p.busy, func(ctx context.Context) (*systemData, error) {
		var d systemData
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			d.health, err = p.env.Client.SystemHealth(gctx)
			return err
		})
		g.Go(func() (err error) {
			d.perf, err = p.env.Client.SystemPerformance(gctx)
			return err
		})
		g.Go(func() (err error) {
			d.logs, err = p.env.Client.SystemLogs(gctx, systemLogLimit)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to load system status: %w", err)
		}
		return &d, nil
	}, p.apply)
}

func (p *SystemPage) apply(d *systemData) {
	p.status.RemoveAll()
	p.status.Add(newBadge(d.health.Status))
	p.status.Add(widget.NewLabel(fmt.Sprintf("%d/%d operational, updated %s", d.health.Operational(), len(d.health.Services), formatTime(d.health.LastUpdated))))

	ok, msg := checkAPIVersion(d.health.Version)
	if !ok {
		msg = "Warning: " + msg
	}
	p.version.SetText(msg)

	p.cpu.Set("%.1f%%", d.perf.CPUUsage)
	p.memory.Set("%.1f%%", d.perf.MemoryUsage)
	p.disk.Set("%.1f%%", d.perf.DiskUsage)
	p.rpm.Set("%.0f", d.perf.RequestsPerMinute)
	p.conns.Set("%.0f", d.perf.ActiveConnections)
	p.latency.Set("%.0f ms", d.perf.ResponseTimeAvg)

	p.services.RemoveAll()
	for _, s := range d.health.Services {
		p.services.Add(container.NewBorder(nil, nil, newBadge(s.Status), widget.NewLabel(s.Uptime), widget.NewLabel(s.Name)))
	}

	p.logs.RemoveAll()
	if len(d.logs) == 0 {
		p.logs.Add(emptyLabel("No log entries"))
	}
	for _, l := range d.logs {
		p.logs.Add(logRow(l))
	}
}
