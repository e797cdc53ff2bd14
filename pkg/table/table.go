// Package table holds the paging and filtering used by the list pages.
package table

import (
	"fmt"
	"strings"
)

// Pager tracks a 1 based page over Total items.
type Pager struct {
	Page    int
	PerPage int
	Total   int
}

func NewPager(perPage int) *Pager {
	return &Pager{Page: 1, PerPage: max(perPage, 1)}
}

// Skip is the offset of the first item on the current page.
func (p *Pager) Skip() int {
	return (max(p.Page, 1) - 1) * p.PerPage
}

// Pages is the page count, at least 1.
func (p *Pager) Pages() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

func (p *Pager) HasPrev() bool {
	return p.Page > 1
}

func (p *Pager) HasNext() bool {
	return p.Page < p.Pages()
}

func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.Page++
	return true
}

func (p *Pager) Prev() bool {
	if !p.HasPrev() {
		return false
	}
	p.Page--
	return true
}

// Reset goes back to the first page, used whenever a filter changes.
func (p *Pager) Reset() {
	p.Page = 1
}

// SetTotal updates the item count and clamps the page into range.
func (p *Pager) SetTotal(total int) {
	p.Total = max(total, 0)
	if p.Page > p.Pages() {
		p.Page = p.Pages()
	}
	if p.Page < 1 {
		p.Page = 1
	}
}

func (p *Pager) Summary() string {
	if p.Total == 0 {
		return "No results"
	}
	from := p.Skip() + 1
	to := min(p.Skip()+p.PerPage, p.Total)
	return fmt.Sprintf("Showing %d to %d of %d results", from, to, p.Total)
}

// Filter keeps the items where any of fields contains query, ignoring case.
// An empty query keeps everything.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []T
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Match keeps the items whose key equals want, an empty want keeps everything.
func Match[T any](items []T, want string, key func(T) string) []T {
	if want == "" {
		return items
	}
	var out []T
	for _, it := range items {
		if key(it) == want {
			out = append(out, it)
		}
	}
	return out
}

// Paginate returns the items of a 1 based page.
func Paginate[T any](items []T, page, perPage int) []T {
	if perPage <= 0 {
		return items
	}
	start := (max(page, 1) - 1) * perPage
	if start >= len(items) {
		return nil
	}
	return items[start:min(start+perPage, len(items))]
}

// Counts tallies items by key.
func Counts[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		out[key(it)]++
	}
	return out
}
