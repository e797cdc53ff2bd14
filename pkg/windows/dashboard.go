package windows

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/layout"
	chartwidget "github.com/roffe/admindash/pkg/widgets/chart"
	"golang.org/x/sync/errgroup"
)

type dashboardData struct {
	overview  *adminapi.Overview
	analytics *adminapi.Analytics
	activity  []adminapi.Activity
	health    *adminapi.SystemHealth
}

type DashboardPage struct {
	env  *Env
	busy *widget.Activity

	users, projects, deployments, successRate                 *statCard
	newUsers, newProjects, okDeploys, failedDeploys, sessions *statCard

	registrations *chartwidget.Chart
	creations     *chartwidget.Chart

	activity *fyne.Container
	status   *fyne.Container

	content fyne.CanvasObject
}

func NewDashboardPage(env *Env) *DashboardPage {
	p := &DashboardPage{
		env:           env,
		busy:          newActivity(),
		users:         newStatCard("Total Users", chart.Blue),
		projects:      newStatCard("Total Projects", chart.Green),
		deployments:   newStatCard("Active Deployments", chart.Purple),
		successRate:   newStatCard("Success Rate", chart.Yellow),
		newUsers:      newStatCard("New users (24h)", chart.Blue),
		newProjects:   newStatCard("New projects (24h)", chart.Green),
		okDeploys:     newStatCard("Successful deployments (24h)", chart.Green),
		failedDeploys: newStatCard("Failed deployments (24h)", chart.Red),
		sessions:      newStatCard("Active sessions", chart.Purple),
		registrations: chartwidget.New(nil, chartwidget.WithTitle("User Registrations"), chartwidget.WithKind(chart.Line), chartwidget.WithColor(chart.Blue)),
		creations:     chartwidget.New(nil, chartwidget.WithTitle("Project Creations"), chartwidget.WithKind(chart.Bar), chartwidget.WithColor(chart.Green)),
		activity:      container.NewVBox(),
		status:        container.NewVBox(),
	}

	quick := layout.NewHorizontal(
		widget.NewButtonWithIcon("Manage users", theme.AccountIcon(), func() { p.navigate("Users") }),
		widget.NewButtonWithIcon("Projects", theme.FolderIcon(), func() { p.navigate("Projects") }),
		widget.NewButtonWithIcon("Knowledge base", theme.FileTextIcon(), func() { p.navigate("Knowledge Base") }),
		widget.NewButtonWithIcon("Analytics", theme.GridIcon(), func() { p.navigate("Analytics") }),
	)

	p.content = container.NewVScroll(container.NewVBox(
		container.NewHBox(heading("Overview"), p.busy),
		layout.NewGrid(4, theme.Padding(), p.users.Container, p.projects.Container, p.deployments.Container, p.successRate.Container),
		heading("Last 24 hours"),
		layout.NewGrid(5, theme.Padding(), p.newUsers.Container, p.newProjects.Container, p.okDeploys.Container, p.failedDeploys.Container, p.sessions.Container),
		layout.NewGrid(2, theme.Padding(), p.registrations, p.creations),
		layout.NewGrid(2, theme.Padding(),
			container.NewVBox(heading("Recent Activity"), p.activity),
			container.NewVBox(heading("System Status"), p.status),
		),
		heading("Quick Actions"),
		quick,
	))
	return p
}

func (p *DashboardPage) Name() string { return "Dashboard" }

func (p *DashboardPage) Content() fyne.CanvasObject { return p.content }

func (p *DashboardPage) navigate(name string) {
	if p.env.Navigate != nil {
		p.env.Navigate(name)
	}
}

func (p *DashboardPage) Refresh() {
	load(p.env, p.busy, p.fetch, p.apply)
}

func (p *DashboardPage) fetch(ctx context.Context) (*dashboardData, error) {
	var d dashboardData
	limit, days := 10, 30
	if cfg := p.env.Config; cfg != nil {
		limit, days = cfg.ActivityLimit, cfg.AnalyticsDays
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.overview, err = p.env.Client.Overview(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.analytics, err = p.env.Client.Analytics(gctx, days)
		return err
	})
	g.Go(func() (err error) {
		d.activity, err = p.env.Client.RecentActivity(gctx, limit)
		return err
	})
	g.Go(func() (err error) {
		d.health, err = p.env.Client.SystemHealth(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return &d, nil
}

func (p *DashboardPage) apply(d *dashboardData) {
	p.users.Set("%d", d.overview.TotalUsers)
	p.projects.Set("%d", d.overview.TotalProjects)
	p.deployments.Set("%d", d.overview.ActiveDeployments)
	p.successRate.Set("%.1f%%", d.overview.SuccessRate)

	a := d.analytics
	p.newUsers.Set("%d", a.Last24h.NewUsers)
	p.newProjects.Set("%d", a.Last24h.NewProjects)
	p.okDeploys.Set("%d", a.Last24h.SuccessfulDeployments)
	p.failedDeploys.Set("%d", a.Last24h.FailedDeployments)
	p.sessions.Set("%d", a.Current.ActiveSessions)

	p.registrations.SetSeries(chart.Normalize(a.UserRegistrations))
	p.creations.SetSeries(chart.Normalize(a.ProjectCreations))

	p.activity.RemoveAll()
	if len(d.activity) == 0 {
		p.activity.Add(emptyLabel("No recent activity"))
	}
	for _, act := range d.activity {
		text := act.Description
		if act.Title != "" {
			text = act.Title + ": " + text
		}
		p.activity.Add(container.NewBorder(nil, nil, newBadge(act.Type), widget.NewLabel(formatTime(act.Timestamp)), widget.NewLabel(text)))
	}

	p.status.RemoveAll()
	p.status.Add(container.NewHBox(widget.NewLabel("Overall"), newBadge(d.health.Status)))
	p.status.Add(widget.NewLabel(fmt.Sprintf("%d of %d services operational", d.health.Operational(), len(d.health.Services))))
	for _, s := range d.health.Services {
		p.status.Add(container.NewBorder(nil, nil, nil, newBadge(s.Status), widget.NewLabel(s.Name)))
	}
}
