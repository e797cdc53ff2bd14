package layout

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

func NewFixedWidth(width float32, obj fyne.CanvasObject) *fyne.Container {
	return container.New(&FixedWidthContainer{width: width}, obj)
}

// FixedWidthContainer gives its children a fixed width and the full height.
type FixedWidthContainer struct {
	width float32
}

func (d *FixedWidthContainer) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var h float32
	for _, o := range objects {
		if childSize := o.MinSize(); childSize.Height > h {
			h = childSize.Height
		}
	}
	return fyne.NewSize(d.width, h)
}

func (d *FixedWidthContainer) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(fyne.NewSize(d.width, size.Height))
	}
}

// NewRatio lays out objects on one row, each taking its share of the width.
func NewRatio(widths []float32, objects ...fyne.CanvasObject) *fyne.Container {
	return container.New(&RatioContainer{Widths: widths}, objects...)
}

type RatioContainer struct {
	Widths []float32
}

func (d *RatioContainer) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var h float32
	for _, o := range objects {
		h = max(h, o.MinSize().Height)
	}
	return fyne.NewSize(400, h)
}

func (d *RatioContainer) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	var x float32
	padd := size.Width * ((1.0 - sumFloat32(d.Widths)) / float32(len(d.Widths)))
	for i, o := range objects {
		if i >= len(d.Widths) {
			o.Resize(fyne.NewSize(0, 0))
			continue
		}
		width := size.Width * d.Widths[i]
		o.Resize(fyne.NewSize(width, size.Height))
		o.Move(fyne.NewPos(x, 0))
		x += width + padd
	}
}

func sumFloat32(a []float32) float32 {
	var sum float32
	for _, v := range a {
		sum += v
	}
	return sum
}

// NewGrid wraps objects into rows of cols equally wide cells.
func NewGrid(cols int, padding float32, objects ...fyne.CanvasObject) *fyne.Container {
	return container.New(&Grid{Cols: max(cols, 1), Padding: padding}, objects...)
}

type Grid struct {
	Cols    int
	Padding float32
}

func (g *Grid) rowHeights(objects []fyne.CanvasObject) []float32 {
	rows := (len(objects) + g.Cols - 1) / g.Cols
	heights := make([]float32, rows)
	for i, o := range objects {
		if !o.Visible() {
			continue
		}
		r := i / g.Cols
		heights[r] = max(heights[r], o.MinSize().Height)
	}
	return heights
}

func (g *Grid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	cellWidth := (size.Width - float32(g.Cols-1)*g.Padding) / float32(g.Cols)
	heights := g.rowHeights(objects)
	var y float32
	for r, h := range heights {
		for c := 0; c < g.Cols; c++ {
			i := r*g.Cols + c
			if i >= len(objects) {
				break
			}
			objects[i].Move(fyne.NewPos(float32(c)*(cellWidth+g.Padding), y))
			objects[i].Resize(fyne.NewSize(cellWidth, h))
		}
		y += h + g.Padding
	}
}

func (g *Grid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		w = max(w, o.MinSize().Width)
	}
	heights := g.rowHeights(objects)
	for _, rh := range heights {
		h += rh
	}
	if len(heights) > 1 {
		h += float32(len(heights)-1) * g.Padding
	}
	return fyne.NewSize(w*float32(g.Cols)+float32(g.Cols-1)*g.Padding, h)
}

// MinHeight stacks objects vertically and reports at least Height.
type MinHeight struct {
	Height float32
}

func NewMinHeight(height float32, objects ...fyne.CanvasObject) *fyne.Container {
	return container.New(&MinHeight{Height: height}, objects...)
}

func (l *MinHeight) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	var fixed float32
	for _, o := range objects[min(1, len(objects)):] {
		fixed += o.MinSize().Height
	}
	var y float32
	for i, o := range objects {
		h := o.MinSize().Height
		if i == 0 {
			h = max(h, size.Height-fixed)
		}
		o.Move(fyne.NewPos(0, y))
		o.Resize(fyne.NewSize(size.Width, h))
		y += h
	}
}

func (l *MinHeight) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, o := range objects {
		width = max(width, o.MinSize().Width)
		height += o.MinSize().Height
	}
	return fyne.NewSize(width, max(height, l.Height))
}

// Horizontal centers each object at its min size in equally wide slots.
type Horizontal struct {
	Offset float32
}

func NewHorizontal(objects ...fyne.CanvasObject) *fyne.Container {
	return container.New(&Horizontal{}, objects...)
}

func (l *Horizontal) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	width := (size.Width - l.Offset) / float32(len(objects))
	for i, o := range objects {
		m := o.MinSize()
		o.Resize(m)
		o.Move(fyne.NewPos(l.Offset+float32(i)*width+width*.5-m.Width*.5, (size.Height-m.Height)*.5))
	}
}

func (l *Horizontal) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, o := range objects {
		width += o.MinSize().Width
		height = max(height, o.MinSize().Height)
	}
	return fyne.NewSize(width+l.Offset, height)
}
