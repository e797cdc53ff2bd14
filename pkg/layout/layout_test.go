package layout

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

func rect(w, h float32) *canvas.Rectangle {
	r := canvas.NewRectangle(nil)
	r.SetMinSize(fyne.NewSize(w, h))
	return r
}

func TestGrid(t *testing.T) {
	objs := []fyne.CanvasObject{rect(50, 10), rect(50, 30), rect(50, 10), rect(80, 20), rect(50, 10)}
	l := &Grid{Cols: 2, Padding: 10}

	min := l.MinSize(objs)
	// three rows: 30 + 20 + 10 plus two gaps
	if min != fyne.NewSize(170, 80) {
		t.Errorf("MinSize() = %v, want 170x80", min)
	}

	l.Layout(objs, fyne.NewSize(210, 200))
	if objs[1].Position() != fyne.NewPos(110, 0) || objs[1].Size() != fyne.NewSize(100, 30) {
		t.Errorf("cell 1 at %v size %v", objs[1].Position(), objs[1].Size())
	}
	if objs[2].Position() != fyne.NewPos(0, 40) {
		t.Errorf("cell 2 at %v, want 0,40", objs[2].Position())
	}
	if objs[4].Position() != fyne.NewPos(0, 70) {
		t.Errorf("cell 4 at %v, want 0,70", objs[4].Position())
	}
}

func TestRatio(t *testing.T) {
	objs := []fyne.CanvasObject{rect(1, 10), rect(1, 20)}
	l := &RatioContainer{Widths: []float32{.5, .25}}
	l.Layout(objs, fyne.NewSize(1000, 40))
	if objs[0].Size().Width != 500 || objs[1].Size().Width != 250 {
		t.Errorf("widths %v %v", objs[0].Size().Width, objs[1].Size().Width)
	}
	// the remaining 25% is spread as gaps after each cell
	if objs[1].Position().X != 625 {
		t.Errorf("second cell x = %v, want 625", objs[1].Position().X)
	}
	if l.MinSize(objs).Height != 20 {
		t.Errorf("MinSize().Height = %v", l.MinSize(objs).Height)
	}
}

func TestFixedWidth(t *testing.T) {
	c := NewFixedWidth(180, rect(40, 300))
	if c.MinSize() != fyne.NewSize(180, 300) {
		t.Errorf("MinSize() = %v", c.MinSize())
	}
	c.Resize(fyne.NewSize(500, 600))
	if got := c.Objects[0].Size(); got != fyne.NewSize(180, 600) {
		t.Errorf("child size = %v", got)
	}
}

func TestMinHeight(t *testing.T) {
	c := NewMinHeight(250, rect(300, 192), rect(100, 20))
	if c.MinSize() != fyne.NewSize(300, 250) {
		t.Errorf("MinSize() = %v, want 300x250", c.MinSize())
	}
	c.Resize(fyne.NewSize(400, 300))
	// the first object takes whatever the trailing ones leave
	if got := c.Objects[0].Size(); got != fyne.NewSize(400, 280) {
		t.Errorf("first size = %v", got)
	}
	if got := c.Objects[1].Position(); got != fyne.NewPos(0, 280) {
		t.Errorf("second pos = %v", got)
	}
}

func TestHorizontal(t *testing.T) {
	objs := []fyne.CanvasObject{rect(20, 10), rect(40, 30)}
	l := &Horizontal{}
	if got := l.MinSize(objs); got != fyne.NewSize(60, 30) {
		t.Errorf("MinSize() = %v, want 60x30", got)
	}
	l.Layout(objs, fyne.NewSize(200, 30))
	// slots are 100 wide, objects centered in them
	if got := objs[0].Position(); got != fyne.NewPos(40, 10) {
		t.Errorf("first at %v, want 40,10", got)
	}
	if got := objs[1].Position(); got != fyne.NewPos(130, 0) {
		t.Errorf("second at %v, want 130,0", got)
	}
}
