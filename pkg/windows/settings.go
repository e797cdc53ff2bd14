package windows

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/lusingander/colorpicker"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/config"
	"github.com/roffe/admindash/pkg/debug"
	admintheme "github.com/roffe/admindash/pkg/theme"
)

type SettingsPage struct {
	env *Env

	endpoint      *widget.Entry
	timeout       *widget.Entry
	cacheTTL      *widget.Entry
	retries       *widget.Entry
	activityLimit *widget.Entry
	chartKind     *widget.Select
	chartColor    *widget.Select
	debugLog      *widget.Check
	accent        color.RGBA
	accentSwatch  *canvas.Rectangle

	content fyne.CanvasObject
}

func NewSettingsPage(env *Env) *SettingsPage {
	tokens := chart.Tokens()
	colors := make([]string, len(tokens))
	for i, t := range tokens {
		colors[i] = string(t)
	}
	p := &SettingsPage{
		env:           env,
		endpoint:      widget.NewEntry(),
		timeout:       widget.NewEntry(),
		cacheTTL:      widget.NewEntry(),
		retries:       widget.NewEntry(),
		activityLimit: widget.NewEntry(),
		chartKind:     widget.NewSelect([]string{chart.Line.String(), chart.Bar.String()}, nil),
		chartColor:    widget.NewSelect(colors, nil),
		debugLog:      widget.NewCheck("Write API requests to the debug log", nil),
		accentSwatch:  canvas.NewRectangle(config.DefaultAccent),
	}
	p.endpoint.PlaceHolder = config.DefaultEndpoint
	p.accentSwatch.SetMinSize(fyne.NewSize(32, 32))
	p.accentSwatch.CornerRadius = 4

	pick := widget.NewButtonWithIcon("Choose", theme.ColorPaletteIcon(), p.pickAccent)

	form := widget.NewForm(
		widget.NewFormItem("API endpoint", p.endpoint),
		widget.NewFormItem("Request timeout (s)", p.timeout),
		widget.NewFormItem("Cache TTL (s)", p.cacheTTL),
		widget.NewFormItem("Retry attempts", p.retries),
		widget.NewFormItem("Recent activity items", p.activityLimit),
		widget.NewFormItem("Default chart type", p.chartKind),
		widget.NewFormItem("Default chart color", p.chartColor),
		widget.NewFormItem("Accent color", container.NewHBox(p.accentSwatch, pick)),
		widget.NewFormItem("Debug", p.debugLog),
	)
	form.SubmitText = "Save"
	form.OnSubmit = p.save
	form.CancelText = "Reset"
	form.OnCancel = p.Refresh

	p.content = container.NewVScroll(container.NewVBox(heading("Client Settings"), form))
	return p
}

func (p *SettingsPage) Name() string { return "Settings" }

func (p *SettingsPage) Content() fyne.CanvasObject { return p.content }

// Refresh puts the current config back into the form.
func (p *SettingsPage) Refresh() {
	cfg := p.env.Config
	if cfg == nil {
		cfg = config.Default()
	}
	p.endpoint.SetText(cfg.Endpoint)
	p.timeout.SetText(strconv.Itoa(int(cfg.Timeout / time.Second)))
	p.cacheTTL.SetText(strconv.Itoa(int(cfg.CacheTTL / time.Second)))
	p.retries.SetText(strconv.Itoa(cfg.RetryAttempts))
	p.activityLimit.SetText(strconv.Itoa(cfg.ActivityLimit))
	p.chartKind.SetSelected(cfg.DefaultChartKind.String())
	p.chartColor.SetSelected(string(cfg.DefaultChartColor))
	p.debugLog.SetChecked(cfg.DebugLog)
	p.setAccent(cfg.AccentColor)
}

func (p *SettingsPage) setAccent(c color.RGBA) {
	p.accent = c
	p.accentSwatch.FillColor = c
	p.accentSwatch.Refresh()
}

func (p *SettingsPage) pickAccent() {
	picker := colorpicker.New(250, colorpicker.StyleHueCircle)
	picker.SetColor(p.accent)
	picker.SetOnChanged(func(c color.Color) {
		r, g, b, _ := c.RGBA()
		p.setAccent(color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff})
	})
	if p.env.Window == nil {
		return
	}
	var modal *widget.PopUp
	modal = widget.NewModalPopUp(container.NewVBox(
		picker,
		widget.NewButton("Close", func() {
			modal.Hide()
		}),
	), p.env.Window.Canvas())
	modal.Show()
}

func atoi(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s can not be negative", name)
	}
	return n, nil
}

// Config builds a config from the form, keeping what the form does not show.
func (p *SettingsPage) Config() (*config.Config, error) {
	next := config.Default()
	if p.env.Config != nil {
		*next = *p.env.Config
	}
	next.Endpoint = strings.TrimRight(strings.TrimSpace(p.endpoint.Text), "/")
	if next.Endpoint == "" {
		next.Endpoint = config.DefaultEndpoint
	}
	timeout, err := atoi("Request timeout", p.timeout.Text)
	if err != nil {
		return nil, err
	}
	ttl, err := atoi("Cache TTL", p.cacheTTL.Text)
	if err != nil {
		return nil, err
	}
	retries, err := atoi("Retry attempts", p.retries.Text)
	if err != nil {
		return nil, err
	}
	limit, err := atoi("Recent activity items", p.activityLimit.Text)
	if err != nil {
		return nil, err
	}
	next.Timeout = time.Duration(max(timeout, 1)) * time.Second
	next.CacheTTL = time.Duration(ttl) * time.Second
	next.RetryAttempts = max(retries, 1)
	next.ActivityLimit = limit
	next.DefaultChartKind = chart.ParseKind(p.chartKind.Selected)
	next.DefaultChartColor = chart.ColorToken(p.chartColor.Selected)
	next.DebugLog = p.debugLog.Checked
	next.AccentColor = p.accent
	return next, next.Validate()
}

func (p *SettingsPage) save() {
	next, err := p.Config()
	if err != nil {
		p.env.Error(err)
		return
	}
	if err := next.Save(p.env.App.Preferences()); err != nil {
		p.env.Error(err)
		return
	}
	restart := p.env.Config != nil && (p.env.Config.Endpoint != next.Endpoint ||
		p.env.Config.Timeout != next.Timeout ||
		p.env.Config.CacheTTL != next.CacheTTL ||
		p.env.Config.RetryAttempts != next.RetryAttempts)
	if p.env.Config != nil {
		*p.env.Config = *next
	} else {
		p.env.Config = next
	}

	debug.Enable(next.DebugLog)
	p.env.App.Settings().SetTheme(admintheme.New(next.AccentColor))

	msg := "Settings saved"
	if restart {
		msg += ", connection changes apply after a restart"
	}
	if os.Getenv(config.EnvEndpoint) != "" {
		msg += fmt.Sprintf(". %s is set and overrides the endpoint", config.EnvEndpoint)
	}
	p.env.Info("Settings", msg)
}
