package chart

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func closeTo(got color.RGBA, want color.RGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(got.R, want.R) <= 2 && d(got.G, want.G) <= 2 && d(got.B, want.B) <= 2 && d(got.A, want.A) <= 2
}

func TestRasterBar(t *testing.T) {
	r := NewRaster(300, 200)
	Render(r, registrations, Config{Kind: Bar, Color: Blue})
	img := r.Image()

	if got := img.RGBAAt(150, 100); !closeTo(got, Resolve(Blue)) {
		t.Errorf("middle bar pixel = %v, want %v", got, Resolve(Blue))
	}
	if got := img.RGBAAt(100, 40); got != GridColor {
		t.Errorf("gridline pixel = %v, want %v", got, GridColor)
	}
	if got := img.RGBAAt(5, 5); got.A != 0 {
		t.Errorf("padding pixel = %v, want transparent", got)
	}
}

func TestRasterLine(t *testing.T) {
	r := NewRaster(300, 200)
	Render(r, registrations, Config{Kind: Line, Color: Red})
	img := r.Image()

	if got := img.RGBAAt(150, 40); !closeTo(got, Resolve(Red)) {
		t.Errorf("marker pixel = %v, want %v", got, Resolve(Red))
	}
	// midway along the first segment
	if got := img.RGBAAt(95, 100); !closeTo(got, Resolve(Red)) {
		t.Errorf("path pixel = %v, want %v", got, Resolve(Red))
	}
}

func TestRasterEmptyClears(t *testing.T) {
	r := NewRaster(50, 50)
	r.FillRect(Rect{0, 0, 50, 50}, color.White)
	Render(r, nil, Config{})
	for _, p := range r.Image().Pix {
		if p != 0 {
			t.Fatal("surface not cleared for empty series")
		}
	}
}

func TestRasterSync(t *testing.T) {
	r := NewRaster(300, 200)
	r.SetDisplaySize(120, 80)
	if w, h := r.Size(); w != 300 || h != 200 {
		t.Fatalf("size changed before sync: %dx%d", w, h)
	}
	Render(r, registrations, Config{})
	if w, h := r.Size(); w != 120 || h != 80 {
		t.Errorf("size after render = %dx%d, want 120x80", w, h)
	}
}

func TestRasterZeroSize(t *testing.T) {
	r := NewRaster(0, 0)
	Render(r, registrations, Config{Kind: Line})
	Render(r, registrations, Config{Kind: Bar})
}

func TestRasterEncodePNG(t *testing.T) {
	r := NewRaster(64, 48)
	Render(r, registrations, Config{Kind: Bar})
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("decoded bounds = %v", b)
	}
}
