package windows

import (
	"context"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/table"
)

const perPage = 20

var userColumns = []float32{.04, .26, .12, .1, .14, .3}

type UsersPage struct {
	env    *Env
	busy   *widget.Activity
	pager  *table.Pager
	bar    *pagerBar
	search *widget.Entry
	status *widget.Select
	sel    *selection
	rows   *fyne.Container

	content fyne.CanvasObject
}

func NewUsersPage(env *Env) *UsersPage {
	p := &UsersPage{
		env:    env,
		busy:   newActivity(),
		pager:  table.NewPager(perPage),
		search: widget.NewEntry(),
		rows:   container.NewVBox(),
	}
	p.search.PlaceHolder = "Search name or email"
	p.search.OnSubmitted = func(string) {
		p.pager.Reset()
		p.Refresh()
	}
	p.status = widget.NewSelect([]string{"All", "active", "suspended", "pending"}, func(string) {
		p.pager.Reset()
		p.Refresh()
	})
	p.status.Selected = "All"
	p.bar = newPagerBar(p.pager, p.Refresh)

	p.sel = newSelection(env, p, "users")
	p.sel.Action("Activate", false, env.Client.ActivateUser)
	p.sel.Action("Suspend", false, env.Client.SuspendUser)
	p.sel.Action("Delete", true, env.Client.DeleteUser).Importance = widget.DangerImportance

	p.content = container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, nil, container.NewHBox(p.status, p.busy), p.search),
			p.sel,
			headerRow(userColumns, "", "User", "Status", "Projects", "Joined", "Actions"),
		),
		p.bar,
		nil,
		nil,
		container.NewVScroll(p.rows),
	)
	return p
}

func (p *UsersPage) Name() string { return "Users" }

func (p *UsersPage) Content() fyne.CanvasObject { return p.content }

func (p *UsersPage) query() adminapi.ListQuery {
	q := adminapi.ListQuery{Skip: p.pager.Skip(), Limit: p.pager.PerPage, Search: p.search.Text}
	if p.status.Selected != "All" {
		q.Status = p.status.Selected
	}
	return q
}

func (p *UsersPage) Refresh() {
	q := p.query()
	load(p.env, p.busy, func(ctx context.Context) (*adminapi.UserList, error) {
		return p.env.Client.Users(ctx, q)
	}, p.apply)
}

func (p *UsersPage) apply(list *adminapi.UserList) {
	p.pager.SetTotal(list.Total)
	p.bar.Update()
	p.rows.RemoveAll()
	ids := make([]string, len(list.Users))
	for i, u := range list.Users {
		ids[i] = u.ID
	}
	p.sel.Reset(ids)
	if len(list.Users) == 0 {
		p.rows.Add(emptyLabel("No users found"))
		return
	}
	for _, u := range list.Users {
		p.rows.Add(p.row(u))
	}
}

func (p *UsersPage) row(u adminapi.User) fyne.CanvasObject {
	id := u.ID
	toggle := widget.NewButtonWithIcon("Suspend", theme.MediaPauseIcon(), func() {
		mutate(p.env, p, "Suspend user", func(ctx context.Context) (*adminapi.ActionResult, error) {
			return p.env.Client.SuspendUser(ctx, id)
		})
	})
	if u.Status == "suspended" {
		toggle.SetText("Activate")
		toggle.SetIcon(theme.MediaPlayIcon())
		toggle.OnTapped = func() {
			mutate(p.env, p, "Activate user", func(ctx context.Context) (*adminapi.ActionResult, error) {
				return p.env.Client.ActivateUser(ctx, id)
			})
		}
	}
	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		p.env.Confirm("Delete user", fmt.Sprintf("Delete %s? This cannot be undone.", u.Email), func() {
			mutate(p.env, p, "Delete user", func(ctx context.Context) (*adminapi.ActionResult, error) {
				return p.env.Client.DeleteUser(ctx, id)
			})
		})
	})
	del.Importance = widget.DangerImportance

	return newRow(userColumns,
		p.sel.Check(id),
		container.NewVBox(widget.NewLabelWithStyle(u.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), widget.NewLabel(u.Email)),
		container.NewCenter(newBadge(u.Status)),
		widget.NewLabel(strconv.Itoa(u.ProjectsCount)),
		widget.NewLabel(formatTime(u.CreatedAt)),
		container.NewHBox(toggle, del),
	)
}
