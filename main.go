package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/config"
	"github.com/roffe/admindash/pkg/debug"
	"github.com/roffe/admindash/pkg/session"
	"github.com/roffe/admindash/pkg/theme"
	"github.com/roffe/admindash/pkg/windows"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

func main() {
	a := app.NewWithID("com.roffe.admindash")
	cfg := config.Load(a.Preferences())
	if err := cfg.Validate(); err != nil {
		log.Printf("config: %v, using %s", err, config.DefaultEndpoint)
		cfg.Endpoint = config.DefaultEndpoint
	}
	a.Settings().SetTheme(theme.New(cfg.AccentColor))

	debug.Enable(cfg.DebugLog)
	defer debug.Close()

	store := session.NewPreferencesStore(a.Preferences())
	client := adminapi.New(
		adminapi.WithEndpoint(cfg.Endpoint),
		adminapi.WithCredentials(store),
		adminapi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		adminapi.WithCacheTTL(cfg.CacheTTL),
		adminapi.WithRetryAttempts(uint(cfg.RetryAttempts), 200*time.Millisecond),
		adminapi.WithDebugLog(debug.Log),
	)
	sess := session.New(client, store)

	env := &windows.Env{
		App:     a,
		Client:  client,
		Session: sess,
		Config:  cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	if err := sess.Restore(ctx); err != nil {
		log.Printf("restore session: %v", err)
	}
	cancel()

	r := &router{app: a, env: env}
	r.login = windows.NewLoginWindow(env, nil)
	r.login.SetCloseIntercept(a.Quit)
	r.show(sess.User())

	// the session can change from any goroutine, a 401 expires it mid request
	sess.OnChange(func(u *adminapi.User) {
		fyne.Do(func() { r.show(u) })
	})

	a.Run()
}

// router swaps between the login and the main window as the session changes.
type router struct {
	app   fyne.App
	env   *windows.Env
	login *windows.LoginWindow
	main  *windows.MainWindow
}

func (r *router) show(u *adminapi.User) {
	if u == nil {
		r.login.Show()
		if r.main != nil {
			r.main.Close()
			r.main = nil
			r.env.Window = nil
		}
		return
	}
	if r.main == nil {
		r.main = windows.NewMainWindow(r.env)
		r.main.SetCloseIntercept(r.app.Quit)
	}
	r.main.SetUser(u)
	r.main.Window.Show()
	r.login.Hide()
}
