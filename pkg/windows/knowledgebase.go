package windows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/layout"
	sdialog "github.com/sqweek/dialog"
)

type KnowledgeBasePage struct {
	env  *Env
	busy *widget.Activity

	total      *statCard
	stats      *fyne.Container
	collection *widget.Select
	upload     *widget.Button
	progress   *widget.ProgressBar
	files      *widget.Accordion

	content fyne.CanvasObject
}

func NewKnowledgeBasePage(env *Env) *KnowledgeBasePage {
	p := &KnowledgeBasePage{
		env:        env,
		busy:       newActivity(),
		total:      newStatCard("Total documents", chart.Purple),
		stats:      layout.NewGrid(4, theme.Padding()),
		collection: widget.NewSelect(nil, nil),
		progress:   widget.NewProgressBar(),
		files:      widget.NewAccordion(),
	}
	p.collection.PlaceHolder = "Collection"
	p.progress.Hide()
	p.upload = widget.NewButtonWithIcon("Upload", theme.UploadIcon(), p.pickFile)
	regenerate := widget.NewButtonWithIcon("Regenerate embeddings", theme.ViewRefreshIcon(), func() {
		p.env.Confirm("Regenerate embeddings", "Rebuild the embeddings for every collection? This can take a while.", func() {
			mutate(p.env, p, "Regenerate embeddings", func(ctx context.Context) (*adminapi.ActionResult, error) {
				return p.env.Client.RegenerateEmbeddings(ctx)
			})
		})
	})

	p.content = container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, p.total.Container, nil, p.stats),
			container.NewBorder(nil, nil, nil, container.NewHBox(p.collection, p.upload, regenerate, p.busy), p.progress),
		),
		nil,
		nil,
		nil,
		container.NewVScroll(p.files),
	)
	return p
}

func (p *KnowledgeBasePage) Name() string { return "Knowledge Base" }

func (p *KnowledgeBasePage) Content() fyne.CanvasObject { return p.content }

func (p *KnowledgeBasePage) Refresh() {
	load(p.env, p.busy, p.env.Client.KnowledgeBase, p.apply)
}

func (p *KnowledgeBasePage) apply(kb *adminapi.KnowledgeBase) {
	p.total.Set("%d", kb.TotalDocuments)

	collections := append([]string(nil), kb.Collections...)
	for name := range kb.Files {
		if !slices.Contains(collections, name) {
			collections = append(collections, name)
		}
	}
	sort.Strings(collections)

	p.stats.RemoveAll()
	for _, name := range collections {
		c := newStatCard(titleCase(name), chart.Blue)
		c.Set("%d", kb.Statistics[name])
		p.stats.Add(c.Container)
	}

	p.collection.SetOptions(collections)
	if p.collection.Selected == "" && len(collections) > 0 {
		p.collection.SetSelected(collections[0])
	}

	for len(p.files.Items) > 0 {
		p.files.RemoveIndex(0)
	}
	for _, name := range collections {
		list := container.NewVBox()
		for _, f := range kb.Files[name] {
			list.Add(p.fileRow(name, f))
		}
		if len(kb.Files[name]) == 0 {
			list.Add(emptyLabel("No files"))
		}
		p.files.Append(widget.NewAccordionItem(fmt.Sprintf("%s (%d)", titleCase(name), len(kb.Files[name])), list))
	}
}

func (p *KnowledgeBasePage) fileRow(collection string, f adminapi.KnowledgeFile) fyne.CanvasObject {
	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		p.env.Confirm("Delete file", fmt.Sprintf("Delete %s from %s?", f.Name, collection), func() {
			mutate(p.env, p, "Delete file", func(ctx context.Context) (*adminapi.ActionResult, error) {
				return p.env.Client.DeleteKnowledgeBaseContent(ctx, collection, f.Name)
			})
		})
	})
	del.Importance = widget.DangerImportance
	return container.NewBorder(nil, nil, widget.NewIcon(theme.FileIcon()),
		container.NewHBox(widget.NewLabel(humanBytes(f.Size)), widget.NewLabel(formatTime(f.Modified)), del),
		widget.NewLabel(f.Name),
	)
}

func (p *KnowledgeBasePage) pickFile() {
	collection := p.collection.Selected
	if collection == "" {
		p.env.Error(errors.New("select a collection first"))
		return
	}
	go func() {
		filename, err := sdialog.File().Filter("Documents", "pdf", "txt", "md", "docx", "csv", "json").Title("Upload document").Load()
		if err != nil {
			if errors.Is(err, sdialog.ErrCancelled) {
				return
			}
			fyne.Do(func() { p.env.Error(err) })
			return
		}
		fyne.Do(func() { p.Upload(collection, filename) })
	}()
}

// Upload sends a local file to collection and shows the progress.
func (p *KnowledgeBasePage) Upload(collection, filename string) {
	p.upload.Disable()
	p.progress.SetValue(0)
	p.progress.Show()
	done := func() {
		p.upload.Enable()
		p.progress.Hide()
	}
	load(p.env, nil, func(ctx context.Context) (*adminapi.ActionResult, error) {
		res, err := p.send(ctx, collection, filename)
		if err != nil {
			fyne.Do(done)
		}
		return res, err
	}, func(res *adminapi.ActionResult) {
		done()
		if res != nil && res.Message != "" {
			p.env.Info("Upload", res.Message)
		}
		p.Refresh()
	})
}

func (p *KnowledgeBasePage) send(ctx context.Context, collection, filename string) (*adminapi.ActionResult, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	res, err := p.env.Client.UploadKnowledgeBaseContent(ctx, collection, filepath.Base(filename), f, fi.Size(), func(sent, total int64) {
		if total <= 0 {
			return
		}
		v := float64(sent) / float64(total)
		fyne.Do(func() { p.progress.SetValue(v) })
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", filepath.Base(filename), err)
	}
	return res, nil
}
