package windows

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
)

type generatedReport struct {
	template adminapi.ReportTemplate
	report   *adminapi.Report
}

type ReportsPage struct {
	env       *Env
	busy      *widget.Activity
	templates *fyne.Container
	generated *fyne.Container
	history   []generatedReport

	content fyne.CanvasObject
}

func NewReportsPage(env *Env) *ReportsPage {
	p := &ReportsPage{
		env:       env,
		busy:      newActivity(),
		templates: container.NewVBox(),
		generated: container.NewVBox(emptyLabel("No reports generated yet")),
	}
	p.content = container.NewVScroll(container.NewVBox(
		container.NewHBox(heading("Report Templates"), p.busy),
		p.templates,
		widget.NewSeparator(),
		heading("Generated Reports"),
		p.generated,
	))
	return p
}

func (p *ReportsPage) Name() string { return "Reports" }

func (p *ReportsPage) Content() fyne.CanvasObject { return p.content }

func (p *ReportsPage) Refresh() {
	load(p.env, p.busy, p.env.Client.ReportTemplates, p.apply)
}

func (p *ReportsPage) apply(templates []adminapi.ReportTemplate) {
	p.templates.RemoveAll()
	if len(templates) == 0 {
		p.templates.Add(emptyLabel("No report templates available"))
	}
	for _, t := range templates {
		gen := widget.NewButtonWithIcon("Generate", theme.DocumentCreateIcon(), func() { p.ask(t) })
		desc := widget.NewLabel(t.Description)
		desc.Wrapping = fyne.TextWrapWord
		info := container.NewVBox(heading(t.Name), desc)
		if len(t.Parameters) > 0 {
			info.Add(widget.NewLabel("Parameters: " + strings.Join(t.Parameters, ", ")))
		}
		p.templates.Add(container.NewBorder(nil, nil, nil, gen, info))
	}
}

// ask collects the template parameters before generating.
func (p *ReportsPage) ask(t adminapi.ReportTemplate) {
	if len(t.Parameters) == 0 || p.env.Window == nil {
		p.Generate(t, nil)
		return
	}
	entries := make(map[string]*widget.Entry, len(t.Parameters))
	items := make([]*widget.FormItem, 0, len(t.Parameters))
	for _, name := range t.Parameters {
		e := widget.NewEntry()
		entries[name] = e
		items = append(items, widget.NewFormItem(titleCase(name), e))
	}
	dialog.ShowForm("Generate "+t.Name, "Generate", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		params := make(map[string]string, len(entries))
		for name, e := range entries {
			if v := strings.TrimSpace(e.Text); v != "" {
				params[name] = v
			}
		}
		p.Generate(t, params)
	}, p.env.Window)
}

func (p *ReportsPage) Generate(t adminapi.ReportTemplate, params map[string]string) {
	typ := t.Type
	if typ == "" {
		typ = t.ID
	}
	load(p.env, p.busy, func(ctx context.Context) (*adminapi.Report, error) {
		return p.env.Client.GenerateReport(ctx, typ, params)
	}, func(r *adminapi.Report) {
		p.history = append([]generatedReport{{template: t, report: r}}, p.history...)
		p.showHistory()
	})
}

func (p *ReportsPage) showHistory() {
	p.generated.RemoveAll()
	for _, g := range p.history {
		status := "success"
		if !g.report.Success {
			status = "failed"
		}
		text := fmt.Sprintf("%s  %s", g.template.Name, formatTime(g.report.GeneratedAt))
		if g.report.Message != "" {
			text += "  " + g.report.Message
		}
		p.generated.Add(container.NewBorder(nil, nil, newBadge(status), widget.NewLabel(g.report.ReportID), widget.NewLabel(text)))
	}
}
