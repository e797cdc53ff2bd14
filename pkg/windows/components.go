package windows

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/admindash/pkg/adminapi"
	"github.com/roffe/admindash/pkg/chart"
	"github.com/roffe/admindash/pkg/layout"
	"github.com/roffe/admindash/pkg/table"
)

type statCard struct {
	*fyne.Container
	value *canvas.Text
}

func newStatCard(title string, accent chart.ColorToken) *statCard {
	value := canvas.NewText("-", chart.Resolve(accent))
	value.TextSize = theme.TextHeadingSize()
	value.TextStyle.Bold = true
	caption := canvas.NewText(title, chart.LabelColor)
	caption.TextSize = theme.CaptionTextSize()
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	bg.CornerRadius = theme.InputRadiusSize()
	return &statCard{
		Container: container.NewStack(bg, container.NewPadded(container.NewVBox(caption, value))),
		value:     value,
	}
}

func (s *statCard) Set(format string, args ...any) {
	s.value.Text = fmt.Sprintf(format, args...)
	s.value.Refresh()
}

func statusColor(status string) color.Color {
	switch strings.ToLower(status) {
	case "active", "success", "successful", "deployed", "operational", "healthy", "info":
		return chart.Resolve(chart.Green)
	case "pending", "building", "deploying", "warning", "degraded", "draft":
		return chart.Resolve(chart.Yellow)
	case "suspended", "failed", "error", "down", "unhealthy":
		return chart.Resolve(chart.Red)
	}
	return chart.LabelColor
}

func newBadge(status string) *canvas.Text {
	t := canvas.NewText(status, statusColor(status))
	t.TextStyle.Bold = true
	return t
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// pagerBar is the prev/next strip under a server paged list.
type pagerBar struct {
	*fyne.Container
	pager   *table.Pager
	summary *widget.Label
	prev    *widget.Button
	next    *widget.Button
}

func newPagerBar(p *table.Pager, onChange func()) *pagerBar {
	b := &pagerBar{pager: p, summary: widget.NewLabel("")}
	b.prev = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		if p.Prev() {
			onChange()
		}
	})
	b.next = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		if p.Next() {
			onChange()
		}
	})
	b.Container = container.NewBorder(nil, nil, nil, container.NewHBox(b.prev, b.next), b.summary)
	b.Update()
	return b
}

func (b *pagerBar) Update() {
	b.summary.SetText(b.pager.Summary())
	if b.pager.HasPrev() {
		b.prev.Enable()
	} else {
		b.prev.Disable()
	}
	if b.pager.HasNext() {
		b.next.Enable()
	} else {
		b.next.Disable()
	}
}

func newRow(widths []float32, objects ...fyne.CanvasObject) *fyne.Container {
	return layout.NewRatio(widths, objects...)
}

func headerRow(widths []float32, titles ...string) *fyne.Container {
	objs := make([]fyne.CanvasObject, len(titles))
	for i, t := range titles {
		objs[i] = heading(t)
	}
	return newRow(widths, objs...)
}

func logRow(l adminapi.LogEntry) fyne.CanvasObject {
	msg := widget.NewLabel(l.Message)
	msg.TextStyle.Monospace = true
	msg.Wrapping = fyne.TextWrapWord
	src := l.Service
	if src == "" {
		src = l.User
	}
	return container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel(formatTime(l.Timestamp)), newBadge(strings.ToLower(l.Level)), widget.NewLabel(src)),
		nil,
		msg,
	)
}

func emptyLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
}

// formatTime shortens API timestamps, anything unparsable is returned as is.
func formatTime(ts string) string {
	for _, f := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(f, ts); err == nil {
			return t.Local().Format("2006-01-02 15:04")
		}
	}
	return ts
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func titleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
