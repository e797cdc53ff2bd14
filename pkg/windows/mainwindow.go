package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/layout"
)

type navItem struct {
	page   Page
	icon   fyne.Resource
	loaded bool
}

type MainWindow struct {
	fyne.Window
	env *Env

	nav     []*navItem
	sidebar *widget.List
	content *fyne.Container
	title   *widget.Label
	user    *widget.Label
	current *navItem
}

func NewMainWindow(env *Env) *MainWindow {
	mw := &MainWindow{
		Window:  env.App.NewWindow("Admin Dashboard"),
		env:     env,
		content: container.NewStack(),
		title:   widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		user:    widget.NewLabel(""),
	}
	env.Window = mw.Window
	env.Navigate = mw.Show

	mw.nav = []*navItem{
		{page: NewDashboardPage(env), icon: theme.HomeIcon()},
		{page: NewUsersPage(env), icon: theme.AccountIcon()},
		{page: NewProjectsPage(env), icon: theme.FolderIcon()},
		{page: NewDeploymentsPage(env), icon: theme.UploadIcon()},
		{page: NewKnowledgeBasePage(env), icon: theme.FileTextIcon()},
		{page: NewAnalyticsPage(env), icon: theme.GridIcon()},
		{page: NewReportsPage(env), icon: theme.DocumentIcon()},
		{page: NewSystemPage(env), icon: theme.ComputerIcon()},
		{page: NewSettingsPage(env), icon: theme.SettingsIcon()},
	}

	mw.sidebar = widget.NewList(
		func() int { return len(mw.nav) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.HomeIcon()), widget.NewLabel("Knowledge Base"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			c := obj.(*fyne.Container)
			c.Objects[0].(*widget.Icon).SetResource(mw.nav[id].icon)
			c.Objects[1].(*widget.Label).SetText(mw.nav[id].page.Name())
		},
	)
	mw.sidebar.OnSelected = func(id widget.ListItemID) {
		mw.show(mw.nav[id])
	}

	refresh := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		if mw.current == nil {
			return
		}
		env.Client.Invalidate()
		mw.current.page.Refresh()
	})
	logout := widget.NewButtonWithIcon("Logout", theme.LogoutIcon(), func() {
		env.Session.Logout()
	})

	header := container.NewBorder(nil, nil, mw.title, container.NewHBox(mw.user, refresh, logout))

	mw.SetContent(container.NewBorder(
		nil,
		nil,
		container.NewBorder(nil, nil, nil, widget.NewSeparator(), layout.NewFixedWidth(190, mw.sidebar)),
		nil,
		container.NewBorder(container.NewVBox(header, widget.NewSeparator()), nil, nil, nil, mw.content),
	))
	mw.SetUser(env.Session.User())
	mw.Resize(fyne.NewSize(1200, 800))
	mw.CenterOnScreen()

	mw.sidebar.Select(0)
	return mw
}

func (mw *MainWindow) SetUser(u *adminapi.User) {
	if u == nil {
		mw.user.SetText("")
		return
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	if u.Role != "" {
		name = fmt.Sprintf("%s (%s)", name, u.Role)
	}
	mw.user.SetText(name)
}

// Show selects the page with the given name.
func (mw *MainWindow) Show(name string) {
	for i, n := range mw.nav {
		if n.page.Name() == name {
			mw.sidebar.Select(i)
			return
		}
	}
}

func (mw *MainWindow) Current() Page {
	if mw.current == nil {
		return nil
	}
	return mw.current.page
}

// Close stops the background work of the current page and closes the window.
func (mw *MainWindow) Close() {
	mw.hide(mw.current)
	mw.Window.Close()
}

func (mw *MainWindow) hide(n *navItem) {
	if n == nil {
		return
	}
	if s, ok := n.page.(shower); ok {
		s.Hidden()
	}
}

func (mw *MainWindow) show(n *navItem) {
	if mw.current != n {
		mw.hide(mw.current)
	}
	mw.current = n
	mw.title.SetText(n.page.Name())
	mw.content.Objects = []fyne.CanvasObject{n.page.Content()}
	mw.content.Refresh()
	if !n.loaded {
		n.loaded = true
		n.page.Refresh()
	}
	if s, ok := n.page.(shower); ok {
		s.Shown()
	}
}
