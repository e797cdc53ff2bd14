package chart

import "math"

const (
	DefaultPadding = 40

	gridRows     = 5
	lineWidth    = 3
	gridWidth    = 1
	pointRadius  = 4
	labelOffset  = 20
	barFill      = 0.8
	barGapBefore = (1 - barFill) / 2
)

type Insets struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns insets with the same value on all four sides.
func Uniform(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64 {
	return r.X + r.W
}

func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// PlotRect is the inner drawing area left after subtracting the insets.
func PlotRect(width, height int, in Insets) Rect {
	return Rect{
		X: in.Left,
		Y: in.Top,
		W: float64(width) - in.Left - in.Right,
		H: float64(height) - in.Top - in.Bottom,
	}
}

// Scale maps sample values linearly onto the plot height.
type Scale struct {
	Min   float64
	Max   float64
	Range float64
}

// NewScale computes min, max and range over the series. A flat series gets a
// range of 1 so every value maps to the baseline: flat bars are 0px high and
// a flat line runs along the plot bottom.
func NewScale(s Series) Scale {
	if len(s) == 0 {
		return Scale{Range: 1}
	}
	sc := Scale{Min: s[0].Value, Max: s[0].Value}
	for _, v := range s[1:] {
		if v.Value < sc.Min {
			sc.Min = v.Value
		}
		if v.Value > sc.Max {
			sc.Max = v.Value
		}
	}
	sc.Range = sc.Max - sc.Min
	if sc.Range == 0 {
		sc.Range = 1
	}
	return sc
}

// Fraction returns where v sits between Min and Max, 0 at Min.
func (sc Scale) Fraction(v float64) float64 {
	if math.IsInf(sc.Range, 0) {
		// Max-Min overflowed, halves of finite values cannot
		return (v/2 - sc.Min/2) / (sc.Max/2 - sc.Min/2)
	}
	return (v - sc.Min) / sc.Range
}

// Y maps a value to a y coordinate inside plot, higher values get smaller y.
func (sc Scale) Y(v float64, plot Rect) float64 {
	return plot.Y + plot.H - sc.Fraction(v)*plot.H
}

// LinePoints maps every sample to its point on the line. A single sample is
// placed at the horizontal center of the plot.
func LinePoints(s Series, plot Rect, sc Scale) []Point {
	n := len(s)
	pts := make([]Point, n)
	for i, v := range s {
		var x float64
		if n == 1 {
			x = plot.X + plot.W/2
		} else {
			x = plot.X + float64(i)/float64(n-1)*plot.W
		}
		pts[i] = Point{X: x, Y: sc.Y(v.Value, plot)}
	}
	return pts
}

// Bars splits the plot width into one slot per sample. Each bar takes 80% of
// its slot, centered, and grows up from the plot bottom.
func Bars(s Series, plot Rect, sc Scale) []Rect {
	n := len(s)
	if n == 0 {
		return nil
	}
	slot := plot.W / float64(n)
	bars := make([]Rect, n)
	for i, v := range s {
		h := sc.Fraction(v.Value) * plot.H
		bars[i] = Rect{
			X: plot.X + float64(i)*slot + slot*barGapBefore,
			Y: plot.Bottom() - h,
			W: slot * barFill,
			H: h,
		}
	}
	return bars
}

// BarLabelPositions returns the label anchor under each bar slot midpoint.
func BarLabelPositions(n int, plot Rect) []Point {
	if n == 0 {
		return nil
	}
	slot := plot.W / float64(n)
	out := make([]Point, n)
	for i := range out {
		out[i] = Point{X: plot.X + float64(i)*slot + slot/2, Y: plot.Bottom() + labelOffset}
	}
	return out
}

// lineLabelPositions anchors labels under each line point.
func lineLabelPositions(pts []Point, plot Rect) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X, Y: plot.Bottom() + labelOffset}
	}
	return out
}
