package chart

import (
	"math"
	"testing"
)

const eps = 0.01

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

var registrations = Normalize([]map[string]any{
	{"_id": "2024-01-01", "count": 12},
	{"_id": "2024-01-02", "count": 18},
	{"_id": "2024-01-03", "count": 15},
})

func TestRenderEmpty(t *testing.T) {
	for _, kind := range []Kind{Line, Bar} {
		t.Run(kind.String(), func(t *testing.T) {
			r := newRecorder(300, 200)
			Render(r, Series{}, Config{Kind: kind})
			if r.synced != 1 || r.cleared != 1 {
				t.Errorf("synced=%d cleared=%d, want 1 and 1", r.synced, r.cleared)
			}
			if n := r.primitives(); n != 0 {
				t.Errorf("empty series issued %d primitives", n)
			}
		})
	}
}

func TestRenderLineEndpoints(t *testing.T) {
	series := FromValues(
		[]string{"a", "b", "c", "d", "e", "f"},
		[]float64{3, 9, 1, 4, 4, 7},
	)
	r := newRecorder(640, 240)
	Render(r, series, Config{Kind: Line})

	if len(r.paths) != 1 {
		t.Fatalf("stroked %d paths, want 1", len(r.paths))
	}
	pts := r.paths[0].points
	if len(pts) != len(series) {
		t.Fatalf("path has %d points, want %d", len(pts), len(series))
	}
	if !near(pts[0].X, DefaultPadding) {
		t.Errorf("first x = %v, want %v", pts[0].X, DefaultPadding)
	}
	if !near(pts[len(pts)-1].X, 640-DefaultPadding) {
		t.Errorf("last x = %v, want %v", pts[len(pts)-1].X, 640-DefaultPadding)
	}
	if r.paths[0].width != lineWidth {
		t.Errorf("line width = %v, want %v", r.paths[0].width, lineWidth)
	}
	if len(r.circles) != len(series) {
		t.Errorf("drew %d markers, want %d", len(r.circles), len(series))
	}
	for _, c := range r.circles {
		if c.radius != pointRadius {
			t.Errorf("marker radius = %v, want %v", c.radius, pointRadius)
		}
	}
	if len(r.texts) != len(series) {
		t.Errorf("drew %d labels, want %d", len(r.texts), len(series))
	}
	// six horizontal rows plus n+1 vertical lines
	if want := gridRows + 1 + len(series) + 1; len(r.lines) != want {
		t.Errorf("drew %d gridlines, want %d", len(r.lines), want)
	}
	if len(r.rects) != 0 {
		t.Errorf("line chart filled %d rects", len(r.rects))
	}
}

func TestRenderBarWidths(t *testing.T) {
	for n := 1; n <= 7; n++ {
		values := make([]float64, n)
		labels := make([]string, n)
		for i := range values {
			values[i] = float64(i * i)
			labels[i] = "x"
		}
		r := newRecorder(500, 300)
		Render(r, FromValues(labels, values), Config{Kind: Bar, Color: Green})
		if len(r.rects) != n {
			t.Fatalf("n=%d: filled %d rects", n, len(r.rects))
		}
		want := 0.8 * (420.0 / float64(n))
		for i, b := range r.rects {
			if !near(b.W, want) {
				t.Errorf("n=%d bar %d width = %v, want %v", n, i, b.W, want)
			}
			if !near(b.Bottom(), 300-DefaultPadding) {
				t.Errorf("n=%d bar %d bottom = %v, want baseline", n, i, b.Bottom())
			}
		}
		if len(r.paths) != 0 || len(r.circles) != 0 {
			t.Errorf("bar chart stroked paths or markers")
		}
	}
}

func TestRenderFlatSeries(t *testing.T) {
	flat := FromValues([]string{"a", "b", "c"}, []float64{5, 5, 5})

	r := newRecorder(300, 200)
	Render(r, flat, Config{Kind: Line})
	pts := r.paths[0].points
	for _, p := range pts[1:] {
		if p.Y != pts[0].Y {
			t.Errorf("flat line y differs: %v vs %v", p.Y, pts[0].Y)
		}
		if math.IsNaN(p.Y) {
			t.Fatal("flat line produced NaN")
		}
	}

	r = newRecorder(300, 200)
	Render(r, flat, Config{Kind: Bar})
	for _, b := range r.rects[1:] {
		if b.H != r.rects[0].H {
			t.Errorf("flat bar height differs: %v vs %v", b.H, r.rects[0].H)
		}
	}
}

func TestRenderSingleSampleLine(t *testing.T) {
	r := newRecorder(300, 200)
	Render(r, Series{{Label: "only", Value: 42}}, Config{Kind: Line})
	pts := r.paths[0].points
	if len(pts) != 1 {
		t.Fatalf("path has %d points, want 1", len(pts))
	}
	if !near(pts[0].X, 150) {
		t.Errorf("single point x = %v, want plot center 150", pts[0].X)
	}
	if math.IsNaN(pts[0].Y) || math.IsInf(pts[0].Y, 0) {
		t.Errorf("single point y = %v", pts[0].Y)
	}
	if len(r.circles) != 1 || len(r.texts) != 1 {
		t.Errorf("markers=%d labels=%d, want 1 and 1", len(r.circles), len(r.texts))
	}
}

func TestRenderRegistrationsLine(t *testing.T) {
	r := newRecorder(300, 200)
	Render(r, registrations, Config{Kind: Line, Color: Blue})

	pts := r.paths[0].points
	if len(pts) != 3 {
		t.Fatalf("path has %d points, want 3", len(pts))
	}
	for i, want := range []float64{40, 150, 260} {
		if !near(pts[i].X, want) {
			t.Errorf("point %d x = %v, want %v", i, pts[i].X, want)
		}
	}
	if !(pts[1].Y < pts[2].Y && pts[2].Y < pts[0].Y) {
		t.Errorf("unexpected y order: %v %v %v", pts[0].Y, pts[1].Y, pts[2].Y)
	}
	if !near(pts[1].Y, 40) || !near(pts[0].Y, 160) {
		t.Errorf("max at %v and min at %v, want 40 and 160", pts[1].Y, pts[0].Y)
	}
	if r.paths[0].c != Resolve(Blue) {
		t.Errorf("path color = %v", r.paths[0].c)
	}
	for i, txt := range r.texts {
		if txt.text != registrations[i].Label || !near(txt.at.X, pts[i].X) || !near(txt.at.Y, 180) {
			t.Errorf("label %d = %+v", i, txt)
		}
	}
}

func TestRenderRegistrationsBar(t *testing.T) {
	r := newRecorder(300, 200)
	Render(r, registrations, Config{Kind: Bar, Color: Blue})

	if len(r.rects) != 3 {
		t.Fatalf("filled %d rects, want 3", len(r.rects))
	}
	want := 0.8 * 220 / 3
	for i, b := range r.rects {
		if !near(b.W, want) {
			t.Errorf("bar %d width = %v, want %v", i, b.W, want)
		}
	}
	if !(r.rects[1].H > r.rects[2].H && r.rects[2].H > r.rects[0].H) {
		t.Errorf("middle bar should be tallest: %v %v %v", r.rects[0].H, r.rects[1].H, r.rects[2].H)
	}
	slot := 220.0 / 3
	for i, txt := range r.texts {
		if !near(txt.at.X, 40+float64(i)*slot+slot/2) {
			t.Errorf("label %d x = %v", i, txt.at.X)
		}
	}
}

func TestRenderCustomPadding(t *testing.T) {
	r := newRecorder(200, 100)
	cfg := Config{Kind: Line, Padding: Insets{Top: 10, Right: 20, Bottom: 30, Left: 5}}
	Render(r, FromValues([]string{"a", "b"}, []float64{0, 1}), cfg)
	pts := r.paths[0].points
	if !near(pts[0].X, 5) || !near(pts[1].X, 180) {
		t.Errorf("x = %v..%v, want 5..180", pts[0].X, pts[1].X)
	}
	if !near(pts[1].Y, 10) || !near(pts[0].Y, 70) {
		t.Errorf("y = %v..%v, want 70..10", pts[0].Y, pts[1].Y)
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	r := newRecorder(300, 200)
	Render(r, registrations, Config{Kind: Bar})
	first := append([]Rect(nil), r.rects...)
	Render(r, registrations, Config{Kind: Bar})
	if len(r.rects) != len(first) {
		t.Fatalf("second render filled %d rects, want %d", len(r.rects), len(first))
	}
	for i := range first {
		if first[i] != r.rects[i] {
			t.Errorf("rect %d differs between renders", i)
		}
	}
}

func TestNewScale(t *testing.T) {
	sc := NewScale(FromValues([]string{"a", "b"}, []float64{-2, 6}))
	if sc.Min != -2 || sc.Max != 6 || sc.Range != 8 {
		t.Errorf("scale = %+v", sc)
	}
	if sc := NewScale(nil); sc.Range != 1 {
		t.Errorf("empty scale range = %v, want 1", sc.Range)
	}
}

func TestScaleExtremes(t *testing.T) {
	plot := PlotRect(300, 200, Uniform(DefaultPadding))
	tests := []struct {
		name   string
		values []float64
	}{
		{name: "full float range", values: []float64{-math.MaxFloat64, 0, math.MaxFloat64}},
		{name: "positive overflow", values: []float64{-1e308, 1e308}},
		{name: "ordinary", values: []float64{-2, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromValues(make([]string, len(tt.values)), tt.values)
			pts := LinePoints(s, plot, NewScale(s))
			for i, p := range pts {
				if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
					t.Fatalf("point %d y = %v", i, p.Y)
				}
			}
			if !near(pts[0].Y, plot.Bottom()) {
				t.Errorf("min y = %v, want plot bottom %v", pts[0].Y, plot.Bottom())
			}
			if last := pts[len(pts)-1]; !near(last.Y, plot.Y) {
				t.Errorf("max y = %v, want plot top %v", last.Y, plot.Y)
			}
		})
	}
}

func TestScaleFlatSeriesAtBaseline(t *testing.T) {
	plot := PlotRect(300, 200, Uniform(DefaultPadding))
	for _, v := range []float64{0, 5, -3} {
		s := FromValues([]string{"a", "b", "c"}, []float64{v, v, v})
		sc := NewScale(s)
		for i, b := range Bars(s, plot, sc) {
			if b.H != 0 || b.Y != plot.Bottom() {
				t.Errorf("value %v bar %d = %+v, want 0px at the baseline", v, i, b)
			}
		}
		for i, p := range LinePoints(s, plot, sc) {
			if p.Y != plot.Bottom() {
				t.Errorf("value %v point %d y = %v, want %v", v, i, p.Y, plot.Bottom())
			}
		}
	}
}

func TestConfigScaled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Insets
	}{
		{name: "default padding", cfg: Config{}, want: Uniform(80)},
		{name: "custom padding", cfg: Config{Padding: Insets{Top: 10, Right: 5, Bottom: 20, Left: 30}}, want: Insets{Top: 20, Right: 10, Bottom: 40, Left: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Scaled(2).Padding; got != tt.want {
				t.Errorf("Scaled(2).Padding = %+v, want %+v", got, tt.want)
			}
		})
	}
}
