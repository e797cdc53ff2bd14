package chart

import (
	"image"
	"image/color"
)

// hairline sets every pixel on the 1px line from a to b, both ends
// included. Pixels outside img are skipped.
func hairline(img *image.RGBA, a, b image.Point, col color.RGBA) {
	switch {
	case a.Y == b.Y:
		hspan(img, min(a.X, b.X), max(a.X, b.X), a.Y, col)
		return
	case a.X == b.X:
		vspan(img, a.X, min(a.Y, b.Y), max(a.Y, b.Y), col)
		return
	}

	dx, dy := b.X-a.X, b.Y-a.Y
	stepX, stepY := 1, 1
	if dx < 0 {
		dx, stepX = -dx, -1
	}
	if dy < 0 {
		dy, stepY = -dy, -1
	}
	dy = -dy

	bounds := img.Bounds()
	p := a
	e := dx + dy
	for {
		if p.In(bounds) {
			img.SetRGBA(p.X, p.Y, col)
		}
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += stepX
		}
		if e2 <= dx {
			e += dx
			p.Y += stepY
		}
	}
}

// hspan fills row y from x0 to x1, x0 <= x1.
func hspan(img *image.RGBA, x0, x1, y int, col color.RGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := max(x0, b.Min.X); x <= min(x1, b.Max.X-1); x++ {
		img.SetRGBA(x, y, col)
	}
}

// vspan fills column x from y0 to y1, y0 <= y1.
func vspan(img *image.RGBA, x, y0, y1 int, col color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := max(y0, b.Min.Y); y <= min(y1, b.Max.Y-1); y++ {
		img.SetRGBA(x, y, col)
	}
}
