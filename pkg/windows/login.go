package windows

import (
	"context"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/layout"
)

type LoginWindow struct {
	fyne.Window
	env *Env

	email    *widget.Entry
	password *widget.Entry
	errText  *canvas.Text
	busy     *widget.Activity
	submit   *widget.Button

	onSuccess func()
}

func NewLoginWindow(env *Env, onSuccess func()) *LoginWindow {
	lw := &LoginWindow{
		Window:    env.App.NewWindow("Admin Dashboard - Sign in"),
		env:       env,
		email:     widget.NewEntry(),
		password:  widget.NewPasswordEntry(),
		errText:   canvas.NewText("", chart.Resolve(chart.Red)),
		busy:      newActivity(),
		onSuccess: onSuccess,
	}
	lw.email.PlaceHolder = "admin@example.com"
	lw.password.PlaceHolder = "Password"
	lw.password.OnSubmitted = func(string) { lw.Submit() }
	lw.submit = widget.NewButton("Sign in", lw.Submit)
	lw.submit.Importance = widget.HighImportance

	title := canvas.NewText("Admin Dashboard", color.White)
	title.TextSize = 24
	title.TextStyle.Bold = true
	title.Alignment = fyne.TextAlignCenter

	form := container.NewVBox(
		title,
		widget.NewLabel("Email"),
		lw.email,
		widget.NewLabel("Password"),
		lw.password,
		lw.errText,
		container.NewStack(lw.submit, container.NewCenter(lw.busy)),
	)

	lw.SetContent(container.NewCenter(layout.NewFixedWidth(320, form)))
	lw.Resize(fyne.NewSize(480, 400))
	lw.CenterOnScreen()
	return lw
}

func (lw *LoginWindow) SetError(msg string) {
	lw.errText.Text = msg
	lw.errText.Refresh()
}

func (lw *LoginWindow) Submit() {
	email := strings.TrimSpace(lw.email.Text)
	if email == "" || lw.password.Text == "" {
		lw.SetError("Email and password are required")
		return
	}
	lw.SetError("")
	lw.submit.Disable()
	lw.busy.Show()
	lw.busy.Start()
	password := lw.password.Text
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), lw.env.timeout())
		defer cancel()
		err := lw.env.Session.Login(ctx, email, password)
		fyne.Do(func() {
			lw.busy.Stop()
			lw.busy.Hide()
			lw.submit.Enable()
			if err != nil {
				lw.SetError(err.Error())
				return
			}
			lw.password.SetText("")
			if lw.onSuccess != nil {
				lw.onSuccess()
			}
		})
	}()
}
