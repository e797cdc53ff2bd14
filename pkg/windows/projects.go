package windows

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	xwidget "fyne.io/x/fyne/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/table"
	"github.com/skratchdot/open-golang/open"
)

var projectColumns = []float32{.04, .28, .14, .12, .16, .22}

var projectIndustries = []string{"All", "ecommerce", "saas", "restaurant", "agency", "startup"}

type ProjectsPage struct {
	env      *Env
	busy     *widget.Activity
	pager    *table.Pager
	bar      *pagerBar
	search   *xwidget.CompletionEntry
	status   *widget.Select
	industry *widget.Select
	sel      *selection
	rows     *fyne.Container
	names    []string

	content fyne.CanvasObject
}

func NewProjectsPage(env *Env) *ProjectsPage {
	p := &ProjectsPage{
		env:    env,
		busy:   newActivity(),
		pager:  table.NewPager(perPage),
		search: xwidget.NewCompletionEntry([]string{}),
		rows:   container.NewVBox(),
	}
	p.search.PlaceHolder = "Search projects"
	p.search.OnChanged = p.complete
	p.search.OnSubmitted = func(string) {
		p.search.HideCompletion()
		p.pager.Reset()
		p.Refresh()
	}
	p.status = widget.NewSelect([]string{"All", "active", "draft", "deployed", "archived"}, func(string) {
		p.pager.Reset()
		p.Refresh()
	})
	p.status.Selected = "All"
	p.industry = widget.NewSelect(projectIndustries, func(string) {
		p.pager.Reset()
		p.Refresh()
	})
	p.industry.Selected = "All"
	p.bar = newPagerBar(p.pager, p.Refresh)

	p.sel = newSelection(env, p, "projects")
	p.sel.Action("Delete", true, env.Client.DeleteProject).Importance = widget.DangerImportance

	p.content = container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, nil, container.NewHBox(p.industry, p.status, p.busy), p.search),
			p.sel,
			headerRow(projectColumns, "", "Project", "Industry", "Status", "Created", "Actions"),
		),
		p.bar,
		nil,
		nil,
		container.NewVScroll(p.rows),
	)
	return p
}

func (p *ProjectsPage) Name() string { return "Projects" }

func (p *ProjectsPage) Content() fyne.CanvasObject { return p.content }

// complete offers the names seen so far that contain s.
func (p *ProjectsPage) complete(s string) {
	if len(s) < 2 {
		p.search.HideCompletion()
		return
	}
	results := table.Filter(p.names, s, func(n string) []string { return []string{n} })
	if len(results) == 0 {
		p.search.HideCompletion()
		return
	}
	p.search.SetOptions(results)
	p.search.ShowCompletion()
}

func (p *ProjectsPage) query() adminapi.ListQuery {
	q := adminapi.ListQuery{Skip: p.pager.Skip(), Limit: p.pager.PerPage, Search: p.search.Text}
	if p.status.Selected != "All" {
		q.Status = p.status.Selected
	}
	if p.industry.Selected != "All" {
		q.Industry = p.industry.Selected
	}
	return q
}

func (p *ProjectsPage) Refresh() {
	q := p.query()
	load(p.env, p.busy, func(ctx context.Context) (*adminapi.ProjectList, error) {
		return p.env.Client.Projects(ctx, q)
	}, p.apply)
}

func (p *ProjectsPage) apply(list *adminapi.ProjectList) {
	p.pager.SetTotal(list.Total)
	p.bar.Update()
	p.rows.RemoveAll()
	ids := make([]string, len(list.Projects))
	for i, pr := range list.Projects {
		ids[i] = pr.ID
	}
	p.sel.Reset(ids)
	for _, pr := range list.Projects {
		p.remember(pr.BusinessName)
		p.rows.Add(p.row(pr))
	}
	if len(list.Projects) == 0 {
		p.rows.Add(emptyLabel("No projects found"))
	}
}

func (p *ProjectsPage) remember(name string) {
	if name == "" {
		return
	}
	i := sort.SearchStrings(p.names, name)
	if i < len(p.names) && p.names[i] == name {
		return
	}
	p.names = append(p.names, "")
	copy(p.names[i+1:], p.names[i:])
	p.names[i] = name
}

func (p *ProjectsPage) row(pr adminapi.Project) fyne.CanvasObject {
	id := pr.ID
	visit := widget.NewButtonWithIcon("", theme.ComputerIcon(), func() {
		if err := open.Run(pr.DeployedURL); err != nil {
			p.env.Error(fmt.Errorf("failed to open %s: %w", pr.DeployedURL, err))
		}
	})
	if strings.TrimSpace(pr.DeployedURL) == "" {
		visit.Disable()
	}
	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		p.env.Confirm("Delete project", fmt.Sprintf("Delete %q and its deployments?", pr.BusinessName), func() {
			mutate(p.env, p, "Delete project", func(ctx context.Context) (*adminapi.ActionResult, error) {
				return p.env.Client.DeleteProject(ctx, id)
			})
		})
	})
	del.Importance = widget.DangerImportance

	return newRow(projectColumns,
		p.sel.Check(id),
		container.NewVBox(widget.NewLabelWithStyle(pr.BusinessName, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), widget.NewLabel(pr.Description)),
		widget.NewLabel(titleCase(pr.Industry)),
		container.NewCenter(newBadge(pr.Status)),
		widget.NewLabel(formatTime(pr.CreatedAt)),
		container.NewHBox(visit, del),
	)
}
