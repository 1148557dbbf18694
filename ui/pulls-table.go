package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/table"
)

type ViewState int

const (
	StateUninitialized ViewState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "uninitialized"
}

const (
	rowHeight    = 2
	gutterWidth  = 2
	columnGap    = 1
	headerHeight = 1
)

// TableView draws the rows of a PRView with the columns of the breakpoint
// reached by the view width.
type TableView struct {
	Layout *table.Layout
	Avatar Avatar
	Sort   SortState
	Counts map[string]datasource.CommentCount
	State  ViewState
	Err    error
	Now    func() time.Time
}

func (t *TableView) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

func (t *TableView) BuildView(p *PRView, viewWidth int, viewHeight int) string {
	doc := strings.Builder{}
	pullPosHeight := 1
	bodyHeight := max(viewHeight-pullPosHeight, 0)

	pulls := p.GetPulls()
	msg := strings.Builder{}
	if label := t.Sort.Label(t.Layout); label != "" {
		msg.WriteString(lipgloss.NewStyle().Bold(true).Render(label) + "  ")
	}
	if len(pulls) > 0 {
		msg.WriteString(fmt.Sprintf("%d of %d", p.GetSelectedIndex()+1, len(pulls)))
	}
	doc.WriteString(pullPositionStyle.Copy().Width(viewWidth).Render(msg.String()) + "\n")

	var body string
	switch {
	case t.State == StateFailed && len(pulls) == 0:
		body = lipgloss.NewStyle().Width(viewWidth).Align(lipgloss.Center).
			Render(tagAlertStyle.Render("could not load pull requests") + "\n\n" + errorText(t.Err) + "\n\n[r]eload")
	case t.State == StateUninitialized:
		body = ""
	case t.State == StateLoading && len(pulls) == 0:
		body = lipgloss.NewStyle().Width(viewWidth).Align(lipgloss.Center).Render("loading...")
	case len(pulls) == 0:
		body = lipgloss.NewStyle().Width(viewWidth).Align(lipgloss.Center).Render("nothing to show\nhere is a cat 🐈\n\n[r]eload")
	default:
		body = t.buildRows(p, viewWidth, bodyHeight)
	}

	doc.WriteString(lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		MaxWidth(viewWidth).
		Render(body))

	return lipgloss.NewStyle().MaxWidth(viewWidth).Render(doc.String()) + "\n"
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return stripNewLines(err.Error())
}

// VisibleColumns returns the columns drawn at viewWidth, left to right.
func (t *TableView) VisibleColumns(viewWidth int) []table.ResolvedColumn {
	return t.Layout.Resolve(max(viewWidth-gutterWidth, 0))
}

func (t *TableView) buildRows(p *PRView, viewWidth int, bodyHeight int) string {
	columns := t.VisibleColumns(viewWidth)
	ctx := cellContext{avatar: t.Avatar, now: t.now(), counts: t.Counts}

	lines := []string{t.buildHeaderRow(columns)}

	pulls := p.GetPulls()
	visible := max((bodyHeight-headerHeight)/rowHeight, 1)
	start := 0
	if p.GetSelectedIndex() >= visible {
		start = p.GetSelectedIndex() - visible + 1
	}
	end := start + visible
	if end > len(pulls) {
		end = len(pulls)
	}

	for i := start; i < end; i++ {
		top, bottom := t.buildRow(columns, ctx, pulls[i])
		gutter := strings.Repeat(" ", gutterWidth)
		if i == p.GetSelectedIndex() {
			gutter = rowSelectedStyle.Render(fit(">", gutterWidth))
		}
		lines = append(lines, gutter+top, gutter+bottom)
	}
	return strings.Join(lines, "\n")
}

func (t *TableView) buildHeaderRow(columns []table.ResolvedColumn) string {
	header := strings.Builder{}
	header.WriteString(strings.Repeat(" ", gutterWidth))
	for _, c := range columns {
		width := max(c.Width-columnGap, 0)
		header.WriteString(styled(headerCellStyle, c.Label+t.Sort.indicator(c.Index), width))
		header.WriteString(strings.Repeat(" ", columnGap))
	}
	return header.String()
}

func (t *TableView) buildRow(columns []table.ResolvedColumn, ctx cellContext, pr *datasource.PullRequest) (string, string) {
	top := strings.Builder{}
	bottom := strings.Builder{}
	gap := strings.Repeat(" ", columnGap)
	for _, c := range columns {
		rendered := renderCell(c.Key, ctx, pr, max(c.Width-columnGap, 0))
		top.WriteString(rendered.top + gap)
		bottom.WriteString(rendered.bottom + gap)
	}
	return top.String(), bottom.String()
}
