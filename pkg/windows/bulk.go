package windows

import (
	"context"
	"fmt"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"golang.org/x/sync/errgroup"
)

// bulkConcurrency caps the requests a bulk action keeps in flight.
const bulkConcurrency = 4

type actionFunc func(ctx context.Context, id string) (*adminapi.ActionResult, error)

// bulk applies f to every id concurrently. The first error cancels the
// remaining requests, a result with Success false counts as not applied.
func bulk(ctx context.Context, ids []string, f actionFunc) (*adminapi.ActionResult, error) {
	var refused atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			res, err := f(gctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			if res != nil && !res.Success {
				refused.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if n := int(refused.Load()); n > 0 {
		return &adminapi.ActionResult{Message: fmt.Sprintf("%d of %d were not applied", n, len(ids))}, nil
	}
	return &adminapi.ActionResult{Success: true, Message: fmt.Sprintf("%d completed", len(ids))}, nil
}

type bulkAction struct {
	label   string
	confirm bool
	f       actionFunc
	button  *widget.Button
}

// selection is the strip above a list that tracks ticked rows and runs bulk
// actions on them.
type selection struct {
	*fyne.Container
	env  *Env
	page Page
	noun string

	ids     map[string]bool
	visible []string
	checks  map[string]*widget.Check

	all     *widget.Check
	count   *widget.Label
	actions []*bulkAction
}

func newSelection(env *Env, page Page, noun string) *selection {
	s := &selection{
		env:    env,
		page:   page,
		noun:   noun,
		ids:    make(map[string]bool),
		checks: make(map[string]*widget.Check),
		count:  widget.NewLabel(""),
	}
	s.all = widget.NewCheck("Select all", s.selectAll)
	s.Container = container.NewHBox(s.all, s.count)
	return s
}

// Action adds a button that runs f on every selected id.
func (s *selection) Action(label string, confirm bool, f actionFunc) *widget.Button {
	a := &bulkAction{label: label, confirm: confirm, f: f}
	a.button = widget.NewButton(label, func() { s.run(a) })
	s.actions = append(s.actions, a)
	s.Add(a.button)
	s.update()
	return a.button
}

// Reset forgets the selection and remembers the ids now on screen.
func (s *selection) Reset(visible []string) {
	s.visible = visible
	clear(s.ids)
	clear(s.checks)
	s.update()
}

// Check returns the row checkbox for id.
func (s *selection) Check(id string) *widget.Check {
	c := widget.NewCheck("", func(on bool) { s.Set(id, on) })
	c.Checked = s.ids[id]
	s.checks[id] = c
	return c
}

func (s *selection) Set(id string, on bool) {
	if s.ids[id] == on {
		return
	}
	if on {
		s.ids[id] = true
	} else {
		delete(s.ids, id)
	}
	if c := s.checks[id]; c != nil && c.Checked != on {
		c.SetChecked(on)
	}
	s.update()
}

func (s *selection) selectAll(on bool) {
	if on == (len(s.visible) > 0 && len(s.ids) == len(s.visible)) {
		return
	}
	for _, id := range s.visible {
		s.Set(id, on)
	}
}

// IDs returns the selected ids in display order.
func (s *selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for _, id := range s.visible {
		if s.ids[id] {
			out = append(out, id)
		}
	}
	return out
}

func (s *selection) update() {
	n := len(s.ids)
	if n == 0 {
		s.count.SetText("")
	} else {
		s.count.SetText(fmt.Sprintf("%d selected", n))
	}
	for _, a := range s.actions {
		if n == 0 {
			a.button.Disable()
		} else {
			a.button.Enable()
		}
	}
	allOn := n > 0 && n == len(s.visible)
	if s.all.Checked != allOn {
		s.all.Checked = allOn
		s.all.Refresh()
	}
}

func (s *selection) run(a *bulkAction) {
	ids := s.IDs()
	if len(ids) == 0 {
		return
	}
	what := fmt.Sprintf("%s %d %s", a.label, len(ids), s.noun)
	do := func() {
		load(s.env, nil, func(ctx context.Context) (*adminapi.ActionResult, error) {
			return bulk(ctx, ids, a.f)
		}, func(res *adminapi.ActionResult) {
			s.env.Info(what, res.Message)
			s.page.Refresh()
		})
	}
	if a.confirm {
		s.env.Confirm(what, fmt.Sprintf("%s? This cannot be undone.", what), do)
		return
	}
	do()
}
