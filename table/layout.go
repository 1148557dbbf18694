package table

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Layout is the column and breakpoint configuration handed to a rendering
// surface. Build it once with NewLayout and share the pointer; it is not
// modified afterwards.
type Layout struct {
	Columns     []Column
	Breakpoints []Breakpoint
	Widths      map[BreakpointName][]int
}

// ResolvedColumn is a column visible at a given viewport width together with
// the number of cells it occupies.
type ResolvedColumn struct {
	Index    int       `json:"index"`
	Key      ColumnKey `json:"key"`
	Label    string    `json:"label"`
	Width    int       `json:"width"`
	Sortable bool      `json:"sortable"`
}

func NewLayout(breakpoints []Breakpoint) *Layout {
	return newLayout(BuildColumns(), breakpoints)
}

func newLayout(columns []Column, breakpoints []Breakpoint) *Layout {
	seen := map[ColumnKey]bool{}
	for _, c := range columns {
		if seen[c.Key] {
			panic(fmt.Sprintf("table: duplicate column key %q", c.Key))
		}
		seen[c.Key] = true
	}

	bps := append([]Breakpoint(nil), breakpoints...)
	slices.SortStableFunc(bps, func(a, b Breakpoint) int {
		return a.MinWidth - b.MinWidth
	})

	return &Layout{
		Columns:     columns,
		Breakpoints: bps,
		Widths:      ComputeBreakpoints(columns, bps),
	}
}

func (l *Layout) ColumnIndex(key ColumnKey) (int, bool) {
	for i, c := range l.Columns {
		if c.Key == key {
			return i, true
		}
	}
	return -1, false
}

// ActiveBreakpoint returns the widest breakpoint viewWidth reaches, or the
// narrowest one when it reaches none.
func (l *Layout) ActiveBreakpoint(viewWidth int) Breakpoint {
	active := l.Breakpoints[0]
	for _, bp := range l.Breakpoints {
		if viewWidth >= bp.MinWidth {
			active = bp
		}
	}
	return active
}

// Resolve returns the columns visible at viewWidth with concrete widths.
// Fixed columns keep their width; proportional columns split what is left
// by weight and never go below their minimum width.
func (l *Layout) Resolve(viewWidth int) []ResolvedColumn {
	bp := l.ActiveBreakpoint(viewWidth)
	widths := l.Widths[bp.Name]

	resolved := []ResolvedColumn{}
	remaining := viewWidth
	totalWeight := 0
	proportional := []int{}
	for i, c := range l.Columns {
		if !c.VisibleAt(bp.Name) {
			continue
		}
		rc := ResolvedColumn{Index: i, Key: c.Key, Label: c.Label, Sortable: c.Sortable()}
		if _, fixed := c.Width.Fixed(); fixed {
			rc.Width = widths[i]
			remaining -= rc.Width
		} else {
			totalWeight += c.Width.Weight()
			proportional = append(proportional, len(resolved))
		}
		resolved = append(resolved, rc)
	}

	if remaining < 0 {
		remaining = 0
	}
	given := 0
	for n, ri := range proportional {
		c := l.Columns[resolved[ri].Index]
		w := remaining * c.Width.Weight() / totalWeight
		if n == len(proportional)-1 {
			// last one takes the rounding remainder
			w = remaining - given
		}
		given += w
		if w < c.MinWidth {
			w = c.MinWidth
		}
		resolved[ri].Width = w
	}
	return l.fit(resolved, viewWidth)
}

// fit brings the total width down to viewWidth. Columns first shrink towards
// their minimum width in display order, then the rightmost columns are
// dropped. The last column left never exceeds viewWidth.
func (l *Layout) fit(resolved []ResolvedColumn, viewWidth int) []ResolvedColumn {
	if viewWidth < 0 {
		viewWidth = 0
	}
	overflow := totalWidth(resolved) - viewWidth
	for i := range resolved {
		if overflow <= 0 {
			return resolved
		}
		slack := resolved[i].Width - l.Columns[resolved[i].Index].MinWidth
		if slack <= 0 {
			continue
		}
		if slack > overflow {
			slack = overflow
		}
		resolved[i].Width -= slack
		overflow -= slack
	}

	for len(resolved) > 1 && totalWidth(resolved) > viewWidth {
		resolved = resolved[:len(resolved)-1]
	}
	if len(resolved) == 1 && resolved[0].Width > viewWidth {
		resolved[0].Width = viewWidth
	}
	return resolved
}

func totalWidth(resolved []ResolvedColumn) int {
	total := 0
	for _, rc := range resolved {
		total += rc.Width
	}
	return total
}
