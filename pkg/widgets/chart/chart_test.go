package chart

import (
	"bytes"
	"image/png"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/roffe/admindash/pkg/chart"
)

func registrations() chart.Series {
	return chart.FromValues([]string{"Mon", "Tue", "Wed"}, []float64{12, 18, 15})
}

func TestChartRendersAtWidgetSize(t *testing.T) {
	test.NewTempApp(t)

	c := New(registrations(), WithKind(chart.Bar), WithColor(chart.Green))
	c.Resize(fyne.NewSize(300, 200))

	img := c.raster.Image()
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("raster bounds = %v, want 300x200", b)
	}
	if c.canvasImage.Image != img {
		t.Error("canvas image not pointing at the current raster buffer")
	}
	// middle bar in the center of the plot
	if got := img.RGBAAt(150, 100); got != chart.Resolve(chart.Green) {
		t.Errorf("pixel at 150,100 = %v, want green", got)
	}
	if c.emptyText.Visible() {
		t.Error("empty text visible with data")
	}
}

func TestChartEmpty(t *testing.T) {
	test.NewTempApp(t)

	c := New(nil)
	c.Resize(fyne.NewSize(300, 192))
	if !c.emptyText.Visible() || c.canvasImage.Visible() {
		t.Fatal("empty series should show the placeholder only")
	}
	if c.emptyText.Text != EmptyText {
		t.Errorf("text = %q", c.emptyText.Text)
	}

	c.SetSeries(registrations())
	if c.emptyText.Visible() || !c.canvasImage.Visible() {
		t.Error("placeholder not hidden after SetSeries")
	}
}

func TestChartSetters(t *testing.T) {
	test.NewTempApp(t)

	c := New(registrations())
	c.Resize(fyne.NewSize(300, 200))
	c.SetKind(chart.Bar)
	c.SetColor(chart.Red)
	if c.Kind() != chart.Bar || c.Color() != chart.Red {
		t.Fatalf("kind/color = %v/%v", c.Kind(), c.Color())
	}
	if got := c.raster.Image().RGBAAt(150, 100); got != chart.Resolve(chart.Red) {
		t.Errorf("pixel at 150,100 = %v, want red", got)
	}

	c.SetTitle("User registrations")
	if c.MinSize().Height <= 192 {
		t.Errorf("MinSize() = %v, title not accounted for", c.MinSize())
	}
}

func TestChartExportPNG(t *testing.T) {
	test.NewTempApp(t)

	c := New(registrations())
	c.Resize(fyne.NewSize(320, 240))
	b, err := c.PNG()
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Errorf("png bounds = %v", img.Bounds())
	}
}

func TestChartMinSize(t *testing.T) {
	test.NewTempApp(t)

	if got := New(nil).MinSize(); got != fyne.NewSize(300, 192) {
		t.Errorf("MinSize() = %v, want 300x192", got)
	}
}

func TestChartRendersAtCanvasScale(t *testing.T) {
	test.NewTempApp(t)

	tests := []struct {
		name  string
		scale float32
	}{
		{name: "standard", scale: 1},
		{name: "hidpi", scale: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(registrations(), WithKind(chart.Bar), WithColor(chart.Green))
			w := test.NewWindow(c)
			defer w.Close()
			w.Canvas().(test.WindowlessCanvas).SetScale(tt.scale)

			test.WidgetRenderer(c).Layout(fyne.NewSize(300, 200))
			img := c.raster.Image()
			wantW, wantH := int(300*tt.scale), int(200*tt.scale)
			if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
				t.Fatalf("raster bounds = %v, want %dx%d", b, wantW, wantH)
			}
			cx, cy := wantW/2, wantH/2
			if got := img.RGBAAt(cx, cy); got != chart.Resolve(chart.Green) {
				t.Errorf("pixel at %d,%d = %v, want green", cx, cy, got)
			}
			// the padding scales with the buffer, the corner stays clear
			if got := img.RGBAAt(int(50*tt.scale), int(30*tt.scale)); got == chart.Resolve(chart.Green) {
				t.Error("bar drawn into the padding")
			}
		})
	}
}
