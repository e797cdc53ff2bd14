package chart

import "image/color"

// Surface is a drawing target. Coordinates are in pixels with the origin in
// the top left corner.
type Surface interface {
	// Sync resizes the backing buffer to the displayed size.
	Sync()
	Size() (width, height int)
	Clear()
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
	StrokePath(points []Point, width float64, c color.Color)
	FillRect(r Rect, c color.Color)
	FillCircle(center Point, radius float64, c color.Color)
	// FillText draws text horizontally centered on at, at.Y is the baseline.
	FillText(text string, at Point, c color.Color)
}

type Config struct {
	Kind  Kind
	Color ColorToken
	// Padding defaults to DefaultPadding on every side when zero.
	Padding Insets
}

func (c Config) insets() Insets {
	if c.Padding == (Insets{}) {
		return Uniform(DefaultPadding)
	}
	return c.Padding
}

// Scaled returns c with its padding multiplied by f, for surfaces with f
// pixels per display unit.
func (c Config) Scaled(f float64) Config {
	in := c.insets()
	c.Padding = Insets{Top: in.Top * f, Right: in.Right * f, Bottom: in.Bottom * f, Left: in.Left * f}
	return c
}

// Render draws series onto s. An empty series leaves s cleared and issues no
// drawing, the caller is expected to show a placeholder instead.
func Render(s Surface, series Series, cfg Config) {
	s.Sync()
	s.Clear()
	if len(series) == 0 {
		return
	}

	w, h := s.Size()
	plot := PlotRect(w, h, cfg.insets())
	sc := NewScale(series)
	col := Resolve(cfg.Color)

	drawRows(s, plot)

	switch cfg.Kind {
	case Bar:
		drawBars(s, series, plot, sc, col)
	default:
		drawLine(s, series, plot, sc, col)
	}
}

func drawRows(s Surface, plot Rect) {
	for i := 0; i <= gridRows; i++ {
		y := plot.Y + float64(i)/gridRows*plot.H
		s.StrokeLine(plot.X, y, plot.Right(), y, gridWidth, GridColor)
	}
}

func drawLine(s Surface, series Series, plot Rect, sc Scale, col color.RGBA) {
	n := len(series)
	for i := 0; i <= n; i++ {
		x := plot.X + float64(i)/float64(n)*plot.W
		s.StrokeLine(x, plot.Y, x, plot.Bottom(), gridWidth, GridColor)
	}

	pts := LinePoints(series, plot, sc)
	s.StrokePath(pts, lineWidth, col)
	for _, p := range pts {
		s.FillCircle(p, pointRadius, col)
	}
	for i, p := range lineLabelPositions(pts, plot) {
		s.FillText(series[i].Label, p, LabelColor)
	}
}

func drawBars(s Surface, series Series, plot Rect, sc Scale, col color.RGBA) {
	for _, r := range Bars(series, plot, sc) {
		s.FillRect(r, col)
	}
	for i, p := range BarLabelPositions(len(series), plot) {
		s.FillText(series[i].Label, p, LabelColor)
	}
}
