package windows

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/layout"
	"github.com/roffe/admindash/pkg/table"
	"github.com/skratchdot/open-golang/open"
	"golang.org/x/sync/errgroup"
)

// deployments are fetched in one go and filtered locally
const deploymentFetchLimit = 500

var deploymentColumns = []float32{.26, .12, .12, .12, .16, .2}

type deploymentsData struct {
	stats *adminapi.DeploymentStatistics
	list  *adminapi.DeploymentList
}

type DeploymentsPage struct {
	env  *Env
	busy *widget.Activity

	total, successful, failed, pending *statCard

	search      *widget.Entry
	status      *widget.Select
	environment *widget.Select
	pager       *table.Pager
	bar         *pagerBar
	rows        *fyne.Container

	all     []adminapi.Deployment
	details fyne.CanvasObject

	content fyne.CanvasObject
}

func NewDeploymentsPage(env *Env) *DeploymentsPage {
	p := &DeploymentsPage{
		env:        env,
		busy:       newActivity(),
		total:      newStatCard("Total", chart.Blue),
		successful: newStatCard("Successful", chart.Green),
		failed:     newStatCard("Failed", chart.Red),
		pending:    newStatCard("Pending", chart.Yellow),
		search:     widget.NewEntry(),
		pager:      table.NewPager(perPage),
		rows:       container.NewVBox(),
	}
	p.search.PlaceHolder = "Search project or platform"
	p.search.OnChanged = func(string) { p.filter(true) }
	p.status = widget.NewSelect([]string{"All"}, func(string) { p.filter(true) })
	p.status.Selected = "All"
	p.environment = widget.NewSelect([]string{"All"}, func(string) { p.filter(true) })
	p.environment.Selected = "All"
	p.bar = newPagerBar(p.pager, func() { p.filter(false) })

	p.content = container.NewBorder(
		container.NewVBox(
			layout.NewGrid(4, theme.Padding(), p.total.Container, p.successful.Container, p.failed.Container, p.pending.Container),
			container.NewBorder(nil, nil, nil, container.NewHBox(p.environment, p.status, p.busy), p.search),
			headerRow(deploymentColumns, "Project", "Environment", "Status", "Platform", "Created", "Actions"),
		),
		p.bar,
		nil,
		nil,
		container.NewVScroll(p.rows),
	)
	return p
}

func (p *DeploymentsPage) Name() string { return "Deployments" }

func (p *DeploymentsPage) Content() fyne.CanvasObject { return p.content }

func (p *DeploymentsPage) Refresh() {
	load(p.env, p.busy, func(ctx context.Context) (*deploymentsData, error) {
		var d deploymentsData
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			d.stats, err = p.env.Client.DeploymentStatistics(gctx)
			return err
		})
		g.Go(func() (err error) {
			d.list, err = p.env.Client.Deployments(gctx, adminapi.ListQuery{Limit: deploymentFetchLimit})
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to load deployments: %w", err)
		}
		return &d, nil
	}, p.apply)
}

func (p *DeploymentsPage) apply(d *deploymentsData) {
	p.total.Set("%d", d.stats.Total)
	p.successful.Set("%d", d.stats.Successful)
	p.failed.Set("%d", d.stats.Failed)
	p.pending.Set("%d", d.stats.Pending)

	p.all = d.list.Deployments
	p.status.SetOptions(selectOptions(table.Counts(p.all, func(d adminapi.Deployment) string { return d.Status })))
	p.environment.SetOptions(selectOptions(table.Counts(p.all, func(d adminapi.Deployment) string { return d.Environment })))
	p.filter(false)
}

// selectOptions turns a tally into "All" plus the sorted keys.
func selectOptions(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return append([]string{"All"}, keys...)
}

func selected(s *widget.Select) string {
	if s.Selected == "All" {
		return ""
	}
	return s.Selected
}

func (p *DeploymentsPage) visible() []adminapi.Deployment {
	items := table.Filter(p.all, p.search.Text, func(d adminapi.Deployment) []string {
		return []string{d.ProjectName, d.Platform, d.ID}
	})
	items = table.Match(items, selected(p.environment), func(d adminapi.Deployment) string { return d.Environment })
	return table.Match(items, selected(p.status), func(d adminapi.Deployment) string { return d.Status })
}

func (p *DeploymentsPage) filter(reset bool) {
	if reset {
		p.pager.Reset()
	}
	items := p.visible()
	p.pager.SetTotal(len(items))
	p.bar.Update()

	p.rows.RemoveAll()
	for _, d := range table.Paginate(items, p.pager.Page, p.pager.PerPage) {
		p.rows.Add(p.row(d))
	}
	if len(items) == 0 {
		p.rows.Add(emptyLabel("No deployments found"))
	}
}

func (p *DeploymentsPage) row(d adminapi.Deployment) fyne.CanvasObject {
	id := d.ID
	visit := widget.NewButtonWithIcon("", theme.ComputerIcon(), func() {
		if err := open.Run(d.URL); err != nil {
			p.env.Error(fmt.Errorf("failed to open %s: %w", d.URL, err))
		}
	})
	if d.URL == "" {
		visit.Disable()
	}
	redeploy := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		p.env.Confirm("Redeploy", fmt.Sprintf("Redeploy %s to %s?", d.ProjectName, d.Environment), func() {
			mutate(p.env, p, "Redeploy", func(ctx context.Context) (*adminapi.ActionResult, error) {
				return p.env.Client.Redeploy(ctx, id)
			})
		})
	})
	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		p.env.Confirm("Delete deployment", fmt.Sprintf("Delete deployment %s?", id), func() {
			mutate(p.env, p, "Delete deployment", func(ctx context.Context) (*adminapi.ActionResult, error) {
				return p.env.Client.DeleteDeployment(ctx, id)
			})
		})
	})
	del.Importance = widget.DangerImportance
	view := widget.NewButtonWithIcon("", theme.InfoIcon(), func() {
		p.showDetails(id)
	})

	build := d.Platform
	if d.BuildTime > 0 {
		build = fmt.Sprintf("%s (%.0fs)", d.Platform, d.BuildTime)
	}
	return newRow(deploymentColumns,
		widget.NewLabelWithStyle(d.ProjectName, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(titleCase(d.Environment)),
		container.NewCenter(newBadge(d.Status)),
		widget.NewLabel(build),
		widget.NewLabel(formatTime(d.CreatedAt)),
		container.NewHBox(view, visit, redeploy, del),
	)
}

// showDetails fetches the deployment with its build logs and opens it in a
// dialog offering a redeploy.
func (p *DeploymentsPage) showDetails(id string) {
	load(p.env, p.busy, func(ctx context.Context) (*adminapi.Deployment, error) {
		return p.env.Client.Deployment(ctx, id)
	}, func(d *adminapi.Deployment) {
		p.details = deploymentDetails(d)
		if p.env.Window == nil {
			return
		}
		dlg := dialog.NewCustomConfirm("Deployment Details: "+d.ProjectName, "Redeploy", "Close", p.details, func(ok bool) {
			if !ok {
				return
			}
			mutate(p.env, p, "Redeploy", func(ctx context.Context) (*adminapi.ActionResult, error) {
				return p.env.Client.Redeploy(ctx, id)
			})
		}, p.env.Window)
		dlg.Resize(fyne.NewSize(720, 560))
		dlg.Show()
	})
}

func deploymentDetails(d *adminapi.Deployment) fyne.CanvasObject {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	buildTime := "N/A"
	if d.BuildTime > 0 {
		buildTime = fmt.Sprintf("%.0fs", d.BuildTime)
	}
	commit := widget.NewLabel(orNA(d.CommitHash))
	commit.TextStyle.Monospace = true

	fields := container.NewGridWithColumns(2,
		widget.NewLabel("Status"), newBadge(d.Status),
		widget.NewLabel("Platform"), widget.NewLabel(titleCase(orNA(d.Platform))),
		widget.NewLabel("Environment"), widget.NewLabel(titleCase(orNA(d.Environment))),
		widget.NewLabel("Branch"), widget.NewLabel(orNA(d.Branch)),
		widget.NewLabel("Commit"), commit,
		widget.NewLabel("Created"), widget.NewLabel(formatTime(d.CreatedAt)),
	)
	if d.DeployedAt != "" {
		fields.Add(widget.NewLabel("Deployed"))
		fields.Add(widget.NewLabel(formatTime(d.DeployedAt)))
	}
	fields.Add(widget.NewLabel("Build time"))
	fields.Add(widget.NewLabel(buildTime))
	fields.Add(widget.NewLabel("Size"))
	fields.Add(widget.NewLabel(deploymentSize(d.Size)))
	if d.URL != "" {
		if u, err := url.Parse(d.URL); err == nil {
			fields.Add(widget.NewLabel("URL"))
			fields.Add(widget.NewHyperlink(d.URL, u))
		}
	}

	logs := container.NewVBox()
	for _, l := range d.Logs {
		logs.Add(logRow(l))
	}
	if len(d.Logs) == 0 {
		logs.Add(emptyLabel("No build logs"))
	}
	return container.NewBorder(
		container.NewVBox(fields, widget.NewSeparator(), heading("Build Logs")),
		nil, nil, nil,
		container.NewVScroll(logs),
	)
}

func deploymentSize(v any) string {
	switch s := v.(type) {
	case nil:
		return "N/A"
	case string:
		if s == "" {
			return "N/A"
		}
		return s
	case float64:
		return humanBytes(int64(s))
	}
	return fmt.Sprint(v)
}
