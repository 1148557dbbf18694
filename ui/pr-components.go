package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cznic/mathutil"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/table"
	"github.com/lucasb-eyer/go-colorful"
)

// Filter decides which rows a tab shows.
type Filter func(pr *datasource.PullRequest) bool

// PRView is one tab of the table. It keeps the rows passing its filter in the
// order they were handed over.
type PRView struct {
	Name string

	filter                     Filter
	pulls                      []*datasource.PullRequest
	currentlySelectedPullIndex int
}

func NewPRView(name string, filter Filter) *PRView {
	return &PRView{Name: name, filter: filter, pulls: []*datasource.PullRequest{}}
}

// OnNewPullData replaces the rows of the view. The selection follows the
// previously selected pull request when it is still listed.
func (p *PRView) OnNewPullData(rows []*datasource.PullRequest) {
	var selectedKey string
	if selected := p.GetSelectedPull(); selected != nil {
		selectedKey = selected.CacheKey()
	}

	pulls := []*datasource.PullRequest{}
	for _, pr := range rows {
		if p.filter == nil || p.filter(pr) {
			pulls = append(pulls, pr)
		}
	}
	p.pulls = pulls

	for i, pr := range p.pulls {
		if pr.CacheKey() == selectedKey {
			p.currentlySelectedPullIndex = i
			return
		}
	}
	p.currentlySelectedPullIndex = mathutil.Clamp(p.currentlySelectedPullIndex, 0, max(len(p.pulls)-1, 0))
}

func (p *PRView) Clear() {
	p.pulls = []*datasource.PullRequest{}
	p.currentlySelectedPullIndex = 0
}

func (p *PRView) OnCursorMove(movedY int) bool {
	if movedY == 0 {
		return false
	}
	next := mathutil.Clamp(p.currentlySelectedPullIndex+movedY, 0, max(len(p.pulls)-1, 0))
	moved := next != p.currentlySelectedPullIndex
	p.currentlySelectedPullIndex = next
	return moved
}

func (p *PRView) GetSelectedIndex() int {
	return p.currentlySelectedPullIndex
}

func (p *PRView) GetPulls() []*datasource.PullRequest {
	return p.pulls
}

// GetSelectedPull returns nil when the view is empty.
func (p *PRView) GetSelectedPull() *datasource.PullRequest {
	if p.currentlySelectedPullIndex >= len(p.pulls) {
		return nil
	}
	return p.pulls[p.currentlySelectedPullIndex]
}

// SortState is the column the rows are ordered by. Column is -1 until the
// user picks one.
type SortState struct {
	Column    int
	Direction table.SortDirection
}

func NewSortState() SortState {
	return SortState{Column: -1, Direction: table.Ascending}
}

func (s SortState) Sorted() bool {
	return s.Column >= 0
}

// Select sorts by column, a repeated selection flips the direction.
func (s SortState) Select(column int) SortState {
	if s.Column == column {
		return SortState{Column: column, Direction: s.Direction.Toggle()}
	}
	return SortState{Column: column, Direction: table.Ascending}
}

func (s SortState) ToggleDirection() SortState {
	if !s.Sorted() {
		return s
	}
	return SortState{Column: s.Column, Direction: s.Direction.Toggle()}
}

func (s SortState) indicator(column int) string {
	if s.Column != column {
		return ""
	}
	if s.Direction == table.Descending {
		return " ▼"
	}
	return " ▲"
}

// Label is the human readable description of the current order.
func (s SortState) Label(layout *table.Layout) string {
	if !s.Sorted() || s.Column >= len(layout.Columns) {
		return ""
	}
	labels := layout.Columns[s.Column].SortLabels
	if s.Direction == table.Descending {
		return labels.Descending
	}
	return labels.Ascending
}

func BuildHeader(viewWidth int, viewHeight int, provider string) string {
	w := lipgloss.Width
	doc := strings.Builder{}
	var (
		colors = colorGrid(1, 5)
		title  strings.Builder
	)
	for i, v := range colors {
		const offset = 2
		c := lipgloss.Color(v[0])
		fmt.Fprint(&title, titleStyle.Copy().MarginLeft(i*offset).Background(c).SetString("prhub"))
		if i < len(colors)-1 {
			title.WriteRune('\n')
		}
	}
	renderedTitle := lipgloss.NewStyle().Padding(0, 2).Render(title.String())

	shortcuts := list.Copy().Width(40).Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			listHeader("Keyboard Shortcuts"),
			lipgloss.JoinHorizontal(lipgloss.Top,
				lipgloss.JoinVertical(lipgloss.Left,
					listItem("[r]eload"),
					listItem("[1-5] sort"),
					listItem("[s] direction"),
					listItem("[o|entr] open"),
				),
				lipgloss.JoinVertical(lipgloss.Left,
					listItem("[d]escription"),
					listItem("[z] stats"),
					listItem("[esc] back"),
					listItem("[jk] move"),
				),
			),
		),
	)

	desc := lipgloss.NewStyle().Width(max(viewWidth-w(renderedTitle)-w(shortcuts), 0)).Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			descStyle.Render("Active pull requests"),
			infoStyle.Render("Source: "+divider+url(provider)),
		),
	)

	row := lipgloss.JoinHorizontal(lipgloss.Top, renderedTitle, desc, shortcuts)
	doc.WriteString("\n" + row + "\n")

	return lipgloss.NewStyle().
		MaxWidth(viewWidth).
		Height(viewHeight).
		MaxHeight(viewHeight).
		Render(doc.String()) + "\n"
}

func colorGrid(xSteps, ySteps int) [][]string {
	x0y0, _ := colorful.Hex("#F25D94")
	x1y0, _ := colorful.Hex("#EDFF82")
	x0y1, _ := colorful.Hex("#643AFF")
	x1y1, _ := colorful.Hex("#14F9D5")

	x0 := make([]colorful.Color, ySteps)
	for i := range x0 {
		x0[i] = x0y0.BlendLuv(x0y1, float64(i)/float64(ySteps))
	}

	x1 := make([]colorful.Color, ySteps)
	for i := range x1 {
		x1[i] = x1y0.BlendLuv(x1y1, float64(i)/float64(ySteps))
	}

	grid := make([][]string, ySteps)
	for x := 0; x < ySteps; x++ {
		y0 := x0[x]
		grid[x] = make([]string, xSteps)
		for y := 0; y < xSteps; y++ {
			grid[x][y] = y0.BlendLuv(x1[x], float64(y)/float64(xSteps)).Hex()
		}
	}

	return grid
}
