package theme

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
)

func TestAccent(t *testing.T) {
	test.NewTempApp(t)
	accent := color.RGBA{0x8b, 0x5c, 0xf6, 0xff}
	th := New(accent)
	if got := th.Color(theme.ColorNamePrimary, theme.VariantDark); got != accent {
		t.Errorf("primary = %v, want %v", got, accent)
	}
	want := color.NRGBA{0x8b, 0x5c, 0xf6, 0x40}
	if got := th.Color(theme.ColorNameHover, theme.VariantDark); got != want {
		t.Errorf("hover = %v, want %v", got, want)
	}
	if got := New(nil).Color(theme.ColorNamePrimary, theme.VariantDark); got == nil {
		t.Error("nil accent should fall back to the default primary")
	}
	if th.Size(theme.SizeNameText) != 14 {
		t.Errorf("text size = %v", th.Size(theme.SizeNameText))
	}
}
