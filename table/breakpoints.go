package table

import "github.com/inburst/prhub/config"

type BreakpointName string

const (
	Small  BreakpointName = "small"
	Medium BreakpointName = "medium"
	Large  BreakpointName = "large"
)

// Breakpoint applies to every viewport at least MinWidth cells wide.
type Breakpoint struct {
	Name     BreakpointName `json:"name"`
	MinWidth int            `json:"minWidth"`
}

func DefaultBreakpoints() []Breakpoint {
	return BreakpointsFromConfig(config.Default().Breakpoints)
}

func BreakpointsFromConfig(c config.BreakpointConfig) []Breakpoint {
	return []Breakpoint{
		{Name: Small, MinWidth: 1},
		{Name: Medium, MinWidth: c.Medium},
		{Name: Large, MinWidth: c.Large},
	}
}

// ComputeBreakpoints returns, per breakpoint, one width per column in column
// order. A column contributes its width only where it is visible and only
// when that width is fixed; everything else is 0.
func ComputeBreakpoints(columns []Column, breakpoints []Breakpoint) map[BreakpointName][]int {
	widths := make(map[BreakpointName][]int, len(breakpoints))
	for _, bp := range breakpoints {
		vector := make([]int, len(columns))
		for i, c := range columns {
			if cells, fixed := c.Width.Fixed(); fixed && c.VisibleAt(bp.Name) {
				vector[i] = cells
			}
		}
		widths[bp.Name] = vector
	}
	return widths
}
