package adminapi

import (
	"io"
	"time"
)

// progressWriter wraps a writer and reports progress periodically.
type progressWriter struct {
	w          io.Writer
	uploaded   int64
	total      int64
	lastReport time.Time
	every      time.Duration
	report     func(sent, total int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.uploaded += int64(n)
		now := time.Now()
		if p.report != nil && (now.Sub(p.lastReport) > p.every || p.uploaded == p.total) {
			p.report(p.uploaded, p.total)
			p.lastReport = now
		}
	}
	return n, err
}
