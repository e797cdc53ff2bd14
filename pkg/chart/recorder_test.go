package chart

import "image/color"

type strokedLine struct {
	x0, y0, x1, y1, width float64
	c                     color.Color
}

type strokedPath struct {
	points []Point
	width  float64
	c      color.Color
}

type filledCircle struct {
	center Point
	radius float64
	c      color.Color
}

type drawnText struct {
	text string
	at   Point
}

// recorder is a Surface that keeps every primitive it receives.
type recorder struct {
	width, height int
	synced        int
	cleared       int

	lines   []strokedLine
	paths   []strokedPath
	rects   []Rect
	circles []filledCircle
	texts   []drawnText
}

func newRecorder(w, h int) *recorder {
	return &recorder{width: w, height: h}
}

func (r *recorder) Sync()            { r.synced++ }
func (r *recorder) Size() (int, int) { return r.width, r.height }

func (r *recorder) Clear() {
	r.cleared++
	r.lines, r.paths, r.rects, r.circles, r.texts = nil, nil, nil, nil, nil
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.lines = append(r.lines, strokedLine{x0, y0, x1, y1, width, c})
}

func (r *recorder) StrokePath(points []Point, width float64, c color.Color) {
	r.paths = append(r.paths, strokedPath{append([]Point(nil), points...), width, c})
}

func (r *recorder) FillRect(rect Rect, c color.Color) {
	r.rects = append(r.rects, rect)
}

func (r *recorder) FillCircle(center Point, radius float64, c color.Color) {
	r.circles = append(r.circles, filledCircle{center, radius, c})
}

func (r *recorder) FillText(text string, at Point, c color.Color) {
	r.texts = append(r.texts, drawnText{text, at})
}

func (r *recorder) primitives() int {
	return len(r.lines) + len(r.paths) + len(r.rects) + len(r.circles) + len(r.texts)
}
