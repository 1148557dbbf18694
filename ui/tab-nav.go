package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TabNav struct{}

func (t *TabNav) BuildView(viewWidth int, viewHeight int, views []*PRView, selectedTabIndex int) string {
	doc := strings.Builder{}

	renderedTabs := []string{}
	for i, v := range views {
		name := fmt.Sprintf("%s (%d)", v.Name, len(v.GetPulls()))
		if i == selectedTabIndex {
			renderedTabs = append(renderedTabs, activeTab.Render(name))
		} else {
			renderedTabs = append(renderedTabs, tab.Render(name))
		}
	}

	// Tabs
	row := lipgloss.JoinHorizontal(
		lipgloss.Bottom,
		renderedTabs...,
	)

	gap := tabGap.Render(strings.Repeat(" ", max(0, viewWidth-lipgloss.Width(row)-2)))
	row = lipgloss.JoinHorizontal(lipgloss.Bottom, row, gap)

	doc.WriteString(lipgloss.NewStyle().
		Height(viewHeight).
		MaxHeight(viewHeight).
		Render(row) + "\n")

	return doc.String()
}
