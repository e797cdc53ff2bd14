package windows

import (
	"context"
	"errors"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/config"
	"github.com/roffe/admindash/pkg/session"
)

// Page is one section of the main window. Content is built once, Refresh
// re-fetches whatever the page shows.
type Page interface {
	Name() string
	Content() fyne.CanvasObject
	Refresh()
}

// shower is implemented by pages that run background work only while they
// are the current page.
type shower interface {
	Shown()
	Hidden()
}

// Env is what every page gets handed.
type Env struct {
	App     fyne.App
	Window  fyne.Window
	Client  *adminapi.Client
	Session *session.Session
	Config  *config.Config

	// Navigate switches the main window to the named page.
	Navigate func(name string)
}

func (e *Env) Error(err error) {
	if err == nil {
		return
	}
	// an expired session is handled by switching back to the login window
	if adminapi.IsUnauthorized(err) || errors.Is(err, context.Canceled) {
		return
	}
	log.Println(err)
	if e.Window != nil {
		dialog.ShowError(err, e.Window)
	}
}

func (e *Env) Info(title, message string) {
	if e.Window != nil {
		dialog.ShowInformation(title, message, e.Window)
	}
}

func (e *Env) Confirm(title, message string, f func()) {
	if e.Window == nil {
		f()
		return
	}
	dialog.ShowConfirm(title, message, func(ok bool) {
		if ok {
			f()
		}
	}, e.Window)
}

func (e *Env) timeout() time.Duration {
	if e.Config == nil || e.Config.Timeout <= 0 {
		return 30 * time.Second
	}
	// room for the retries on top of a single request
	return e.Config.Timeout * time.Duration(max(e.Config.RetryAttempts, 1)+1)
}

// load runs fetch off the UI goroutine and hands the result to apply on it.
// busy may be nil.
func load[T any](e *Env, busy *widget.Activity, fetch func(ctx context.Context) (T, error), apply func(T)) {
	if busy != nil {
		busy.Show()
		busy.Start()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout())
		defer cancel()
		v, err := fetch(ctx)
		fyne.Do(func() {
			if busy != nil {
				busy.Stop()
				busy.Hide()
			}
			if err != nil {
				e.Error(err)
				return
			}
			apply(v)
		})
	}()
}

// mutate runs an action against the API and refreshes the page on success.
func mutate(e *Env, p Page, what string, f func(ctx context.Context) (*adminapi.ActionResult, error)) {
	load(e, nil, f, func(res *adminapi.ActionResult) {
		if res != nil && !res.Success && res.Message != "" {
			e.Info(what, res.Message)
		}
		p.Refresh()
	})
}

func newActivity() *widget.Activity {
	a := widget.NewActivity()
	a.Hide()
	return a
}
