package chart

import (
	"bytes"
	"image/color"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/chart"
)

const EmptyText = "No data available"

var _ fyne.Widget = (*Chart)(nil)

// Chart hosts a chart.Raster and re-renders it whenever the data, the
// presentation or the widget size changes.
type Chart struct {
	widget.BaseWidget

	title       *canvas.Text
	canvasImage *canvas.Image
	emptyText   *canvas.Text

	raster *chart.Raster
	series chart.Series
	cfg    chart.Config

	size  fyne.Size
	scale float32
}

type ChartOpt func(*Chart)

func WithKind(kind chart.Kind) ChartOpt {
	return func(c *Chart) {
		c.cfg.Kind = kind
	}
}

func WithColor(token chart.ColorToken) ChartOpt {
	return func(c *Chart) {
		c.cfg.Color = token
	}
}

func WithPadding(in chart.Insets) ChartOpt {
	return func(c *Chart) {
		c.cfg.Padding = in
	}
}

func WithTitle(title string) ChartOpt {
	return func(c *Chart) {
		c.title.Text = title
	}
}

func New(series chart.Series, opts ...ChartOpt) *Chart {
	c := &Chart{
		title:     canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		emptyText: canvas.NewText(EmptyText, color.RGBA{0x6b, 0x72, 0x80, 0xff}),
		raster:    chart.NewRaster(300, 192),
		series:    series,
		cfg:       chart.Config{Kind: chart.Line, Color: chart.Blue},
	}
	c.ExtendBaseWidget(c)

	c.title.TextStyle.Bold = true
	c.title.TextSize = theme.TextSubHeadingSize()
	c.emptyText.Alignment = fyne.TextAlignCenter

	c.canvasImage = canvas.NewImageFromImage(c.raster.Image())
	c.canvasImage.FillMode = canvas.ImageFillStretch
	c.canvasImage.ScaleMode = canvas.ImageScaleFastest

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Chart) SetSeries(series chart.Series) {
	c.series = series
	c.refreshImage()
}

func (c *Chart) SetKind(kind chart.Kind) {
	c.cfg.Kind = kind
	c.refreshImage()
}

func (c *Chart) SetColor(token chart.ColorToken) {
	c.cfg.Color = token
	c.refreshImage()
}

func (c *Chart) SetTitle(title string) {
	c.title.Text = title
	c.title.Refresh()
}

func (c *Chart) Series() chart.Series {
	return c.series
}

func (c *Chart) Kind() chart.Kind {
	return c.cfg.Kind
}

func (c *Chart) Color() chart.ColorToken {
	return c.cfg.Color
}

// ExportPNG writes the most recent render.
func (c *Chart) ExportPNG(w io.Writer) error {
	return c.raster.EncodePNG(w)
}

func (c *Chart) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.ExportPNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pixelScale is the number of device pixels per fyne unit on the canvas
// showing c, 1 when c is not on a canvas yet.
func (c *Chart) pixelScale() float32 {
	app := fyne.CurrentApp()
	if app == nil || len(app.Driver().AllWindows()) == 0 {
		return 1
	}
	cv := app.Driver().CanvasForObject(c)
	if cv == nil || cv.Scale() <= 0 {
		return 1
	}
	return cv.Scale()
}

func (c *Chart) refreshImage() {
	cfg := c.cfg
	if c.scale > 1 {
		cfg = cfg.Scaled(float64(c.scale))
	}
	chart.Render(c.raster, c.series, cfg)
	// Sync may have swapped the backing buffer
	c.canvasImage.Image = c.raster.Image()
	empty := c.series.Len() == 0
	c.emptyText.Hidden = !empty
	c.canvasImage.Hidden = empty
	c.canvasImage.Refresh()
	c.emptyText.Refresh()
}

func (c *Chart) CreateRenderer() fyne.WidgetRenderer {
	return &chartRenderer{c: c}
}

type chartRenderer struct {
	c *Chart
}

func (r *chartRenderer) titleHeight() float32 {
	if r.c.title.Text == "" {
		return 0
	}
	return r.c.title.MinSize().Height + theme.Padding()
}

func (r *chartRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 192+r.titleHeight())
}

func (r *chartRenderer) Layout(size fyne.Size) {
	scale := r.c.pixelScale()
	if r.c.size == size && r.c.scale == scale {
		return
	}
	r.c.size = size
	r.c.scale = scale

	th := r.titleHeight()
	r.c.title.Move(fyne.NewPos(0, 0))
	r.c.title.Resize(fyne.NewSize(size.Width, r.c.title.MinSize().Height))

	plotSize := fyne.NewSize(size.Width, size.Height-th)
	r.c.canvasImage.Move(fyne.NewPos(0, th))
	r.c.canvasImage.Resize(plotSize)
	r.c.emptyText.Move(fyne.NewPos(0, th+plotSize.Height/2-r.c.emptyText.MinSize().Height/2))
	r.c.emptyText.Resize(fyne.NewSize(size.Width, r.c.emptyText.MinSize().Height))

	// render at device resolution so HiDPI screens do not stretch the image
	r.c.raster.SetDisplaySize(int(plotSize.Width*scale), int(plotSize.Height*scale))
	r.c.refreshImage()
}

func (r *chartRenderer) Refresh() {
	r.c.title.Color = theme.Color(theme.ColorNameForeground)
	r.c.title.Refresh()
	r.c.refreshImage()
}

func (r *chartRenderer) Destroy() {
}

func (r *chartRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.c.title, r.c.canvasImage, r.c.emptyText}
}
