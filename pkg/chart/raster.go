package chart

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// kappa is the control point distance for approximating a quarter circle
// with a cubic bezier.
const kappa = 0.5522847498

var _ Surface = (*Raster)(nil)

// Raster is a Surface backed by an in memory RGBA image.
type Raster struct {
	img        *image.RGBA
	z          *vector.Rasterizer
	face       font.Face
	dispWidth  int
	dispHeight int
}

func NewRaster(width, height int) *Raster {
	r := &Raster{
		face:       basicfont.Face7x13,
		dispWidth:  max(width, 0),
		dispHeight: max(height, 0),
	}
	r.Sync()
	return r
}

// SetDisplaySize records the on screen size, the buffer follows on the next Sync.
func (r *Raster) SetDisplaySize(width, height int) {
	r.dispWidth, r.dispHeight = max(width, 0), max(height, 0)
}

func (r *Raster) Sync() {
	if r.img != nil {
		b := r.img.Bounds()
		if b.Dx() == r.dispWidth && b.Dy() == r.dispHeight {
			return
		}
	}
	r.img = image.NewRGBA(image.Rect(0, 0, r.dispWidth, r.dispHeight))
	r.z = vector.NewRasterizer(r.dispWidth, r.dispHeight)
	r.z.DrawOp = draw.Over
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) empty() bool {
	return r.img.Bounds().Empty()
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	if r.empty() {
		return
	}
	if width <= 1 {
		hairline(r.img, image.Pt(round(x0), round(y0)), image.Pt(round(x1), round(y1)), toRGBA(c))
		return
	}
	r.begin()
	r.segment(Point{x0, y0}, Point{x1, y1}, width/2)
	r.fill(c)
}

func (r *Raster) StrokePath(points []Point, width float64, c color.Color) {
	if r.empty() || len(points) < 2 {
		return
	}
	if width <= 1 {
		col := toRGBA(c)
		for i := 1; i < len(points); i++ {
			a, b := points[i-1], points[i]
			hairline(r.img, image.Pt(round(a.X), round(a.Y)), image.Pt(round(b.X), round(b.Y)), col)
		}
		return
	}
	half := width / 2
	r.begin()
	for i := 1; i < len(points); i++ {
		r.segment(points[i-1], points[i], half)
	}
	// round joins
	for _, p := range points[1 : len(points)-1] {
		r.circle(p, half)
	}
	r.fill(c)
}

func (r *Raster) FillRect(rect Rect, c color.Color) {
	if r.empty() || rect.W <= 0 || rect.H <= 0 {
		return
	}
	r.begin()
	r.z.MoveTo(float32(rect.X), float32(rect.Y))
	r.z.LineTo(float32(rect.Right()), float32(rect.Y))
	r.z.LineTo(float32(rect.Right()), float32(rect.Bottom()))
	r.z.LineTo(float32(rect.X), float32(rect.Bottom()))
	r.z.ClosePath()
	r.fill(c)
}

func (r *Raster) FillCircle(center Point, radius float64, c color.Color) {
	if r.empty() || radius <= 0 {
		return
	}
	r.begin()
	r.circle(center, radius)
	r.fill(c)
}

func (r *Raster) FillText(text string, at Point, c color.Color) {
	if r.empty() || text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: r.face,
	}
	w := d.MeasureString(text).Round()
	d.Dot = fixed.P(round(at.X)-w/2, round(at.Y))
	d.DrawString(text)
}

func (r *Raster) begin() {
	w, h := r.Size()
	r.z.Reset(w, h)
	r.z.DrawOp = draw.Over
}

func (r *Raster) fill(c color.Color) {
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// segment adds a quad covering the line from a to b with the given half width.
func (r *Raster) segment(a, b Point, half float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		r.circle(a, half)
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	r.z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	r.z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	r.z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	r.z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	r.z.ClosePath()
}

// circle winds the same way as segment so joins add up instead of cancelling.
func (r *Raster) circle(c Point, radius float64) {
	k := radius * kappa
	x, y := c.X, c.Y
	r.z.MoveTo(float32(x+radius), float32(y))
	r.z.CubeTo(float32(x+radius), float32(y-k), float32(x+k), float32(y-radius), float32(x), float32(y-radius))
	r.z.CubeTo(float32(x-k), float32(y-radius), float32(x-radius), float32(y-k), float32(x-radius), float32(y))
	r.z.CubeTo(float32(x-radius), float32(y+k), float32(x-k), float32(y+radius), float32(x), float32(y+radius))
	r.z.CubeTo(float32(x+k), float32(y+radius), float32(x+radius), float32(y+k), float32(x+radius), float32(y))
	r.z.ClosePath()
}

func round(f float64) int {
	return int(math.Round(f))
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
