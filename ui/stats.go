package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inburst/prhub/stats"
)

// topAuthors is how many authors the stats page lists.
const topAuthors = 5

type Stats struct {
	UserStats *stats.Stats
}

func (p *Stats) BuildView(viewWidth int, viewHeight int) string {
	doc := strings.Builder{}

	statItem := lipgloss.NewStyle().Padding(0, 1).Width(24)

	labels := []string{statItem.Render("Lifetime Opens")}
	values := []string{statItem.Render(fmt.Sprintf("%d", p.UserStats.LifetimePROpens))}
	for _, author := range p.topAuthors() {
		labels = append(labels, statItem.Render(author))
		values = append(values, statItem.Render(fmt.Sprintf("%d", p.UserStats.PROpensPerAuthor[author])))
	}

	statsList := list.Copy().Width(viewWidth).Height(viewHeight).Align(lipgloss.Center).Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			statItem.Render("\n"),
			listHeader("📈 prhub Stats 📈"),
			lipgloss.JoinHorizontal(lipgloss.Top,
				lipgloss.JoinVertical(lipgloss.Right, labels...),
				lipgloss.JoinVertical(lipgloss.Right, values...),
			),
		),
	)

	doc.WriteString(statsList)

	return lipgloss.NewStyle().MaxWidth(viewWidth).Render(doc.String()) + "\n"
}

func (p *Stats) topAuthors() []string {
	authors := []string{}
	for a := range p.UserStats.PROpensPerAuthor {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool {
		ci, cj := p.UserStats.PROpensPerAuthor[authors[i]], p.UserStats.PROpensPerAuthor[authors[j]]
		if ci != cj {
			return ci > cj
		}
		return authors[i] < authors[j]
	})
	if len(authors) > topAuthors {
		authors = authors[:topAuthors]
	}
	return authors
}
