package windows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/layout"
	chartwidget "github.com/roffe/admindash/pkg/widgets/chart"
	sdialog "github.com/sqweek/dialog"
)

const (
	metricRegistrations = "User registrations"
	metricCreations     = "Project creations"
	metricDeployments   = "Deployments"
)

var (
	metrics = []string{metricRegistrations, metricCreations, metricDeployments}
	ranges  = []string{"Last 7 days", "Last 30 days", "Last 90 days"}
)

func rangeDays(s string) int {
	f := strings.Fields(s)
	if len(f) == 3 {
		if n, err := strconv.Atoi(f[1]); err == nil {
			return n
		}
	}
	return 30
}

// metricSeries picks one of the analytics time series.
func metricSeries(a *adminapi.Analytics, metric string) chart.Series {
	if a == nil {
		return nil
	}
	switch metric {
	case metricCreations:
		return chart.Normalize(a.ProjectCreations)
	case metricDeployments:
		return chart.Normalize(a.Deployments)
	}
	return chart.Normalize(a.UserRegistrations)
}

// chartPanel is a chart with its own metric, kind and color controls.
type chartPanel struct {
	*fyne.Container
	env    *Env
	chart  *chartwidget.Chart
	metric *widget.Select
	total  *widget.Label
	data   *adminapi.Analytics
}

func newChartPanel(env *Env, metric string, kind chart.Kind, color chart.ColorToken) *chartPanel {
	cp := &chartPanel{
		env:   env,
		chart: chartwidget.New(nil, chartwidget.WithKind(kind), chartwidget.WithColor(color)),
		total: widget.NewLabel(""),
	}
	cp.metric = widget.NewSelect(metrics, func(string) { cp.update() })
	cp.metric.Selected = metric

	kindSelect := widget.NewSelect([]string{chart.Line.String(), chart.Bar.String()}, func(s string) {
		cp.chart.SetKind(chart.ParseKind(s))
	})
	kindSelect.Selected = kind.String()

	tokens := chart.Tokens()
	colors := make([]string, len(tokens))
	for i, t := range tokens {
		colors[i] = string(t)
	}
	colorSelect := widget.NewSelect(colors, func(s string) {
		cp.chart.SetColor(chart.ColorToken(s))
	})
	colorSelect.Selected = string(color)

	export := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), cp.export)
	copyBtn := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
		b, err := cp.chart.PNG()
		if err == nil {
			err = copyImage(b)
		}
		if err != nil {
			cp.env.Error(err)
		}
	})

	cp.Container = container.NewBorder(
		container.NewBorder(nil, nil, container.NewHBox(cp.metric, cp.total), container.NewHBox(kindSelect, colorSelect, export, copyBtn)),
		nil,
		nil,
		nil,
		layout.NewMinHeight(260, cp.chart),
	)
	return cp
}

func (cp *chartPanel) SetData(a *adminapi.Analytics) {
	cp.data = a
	cp.update()
}

func (cp *chartPanel) update() {
	s := metricSeries(cp.data, cp.metric.Selected)
	cp.total.SetText(fmt.Sprintf("Total: %.0f", s.Total()))
	cp.chart.SetSeries(s)
}

func (cp *chartPanel) export() {
	go func() {
		filename, err := sdialog.File().Filter("PNG image", "png").Title("Export chart").Save()
		if err != nil {
			if errors.Is(err, sdialog.ErrCancelled) {
				return
			}
			fyne.Do(func() { cp.env.Error(err) })
			return
		}
		if !strings.HasSuffix(strings.ToLower(filename), ".png") {
			filename += ".png"
		}
		fyne.Do(func() {
			if err := cp.save(filename); err != nil {
				cp.env.Error(err)
			}
		})
	}()
}

func (cp *chartPanel) save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := cp.chart.ExportPNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to export chart: %w", err)
	}
	return f.Close()
}

type AnalyticsPage struct {
	env  *Env
	busy *widget.Activity

	period *widget.Select

	newUsers, newProjects, okDeploys, failedDeploys *statCard
	panels                                          []*chartPanel

	content fyne.CanvasObject
}

func NewAnalyticsPage(env *Env) *AnalyticsPage {
	kind, color := chart.Line, chart.Blue
	if env.Config != nil {
		kind, color = env.Config.DefaultChartKind, env.Config.DefaultChartColor
	}
	p := &AnalyticsPage{
		env:           env,
		busy:          newActivity(),
		newUsers:      newStatCard("New users (24h)", chart.Blue),
		newProjects:   newStatCard("New projects (24h)", chart.Green),
		okDeploys:     newStatCard("Successful deployments (24h)", chart.Green),
		failedDeploys: newStatCard("Failed deployments (24h)", chart.Red),
		panels: []*chartPanel{
			newChartPanel(env, metricRegistrations, kind, color),
			newChartPanel(env, metricCreations, chart.Bar, chart.Green),
		},
	}
	p.period = widget.NewSelect(ranges, func(string) { p.Refresh() })
	p.period.Selected = ranges[1]
	if env.Config != nil {
		for _, r := range ranges {
			if rangeDays(r) == env.Config.AnalyticsDays {
				p.period.Selected = r
			}
		}
	}

	panels := container.NewVBox()
	for _, cp := range p.panels {
		panels.Add(cp.Container)
		panels.Add(widget.NewSeparator())
	}

	p.content = container.NewBorder(
		container.NewVBox(
			container.NewHBox(widget.NewLabel("Period"), p.period, p.busy),
			layout.NewGrid(4, theme.Padding(), p.newUsers.Container, p.newProjects.Container, p.okDeploys.Container, p.failedDeploys.Container),
		),
		nil,
		nil,
		nil,
		container.NewVScroll(panels),
	)
	return p
}

func (p *AnalyticsPage) Name() string { return "Analytics" }

func (p *AnalyticsPage) Content() fyne.CanvasObject { return p.content }

func (p *AnalyticsPage) Refresh() {
	days := rangeDays(p.period.Selected)
	load(p.env, p.busy, func(ctx context.Context) (*adminapi.Analytics, error) {
		return p.env.Client.Analytics(ctx, days)
	}, p.apply)
}

func (p *AnalyticsPage) apply(a *adminapi.Analytics) {
	p.newUsers.Set("%d", a.Last24h.NewUsers)
	p.newProjects.Set("%d", a.Last24h.NewProjects)
	p.okDeploys.Set("%d", a.Last24h.SuccessfulDeployments)
	p.failedDeploys.Set("%d", a.Last24h.FailedDeployments)
	for _, cp := range p.panels {
		cp.SetData(a)
	}
}
