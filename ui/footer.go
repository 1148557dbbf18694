package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Footer struct{}

func (f *Footer) BuildView(viewWidth int, viewHeight int, statusMsg string, state ViewState, provider string) string {
	doc := strings.Builder{}

	w := lipgloss.Width

	statusKey := tagStyle.Copy().Render("STATUS:")
	var stateTag string
	switch state {
	case StateFailed:
		stateTag = tagAlertStyle.Copy().Render(strings.ToUpper(state.String()))
	case StateLoaded:
		stateTag = tagSuccessStyle.Copy().Render(strings.ToUpper(state.String()))
	default:
		stateTag = tagStyle.Copy().Render(strings.ToUpper(state.String()))
	}
	providerTag := tagSpecialStyle.Copy().Align(lipgloss.Right).Render("prhub ⏱ " + provider)
	statusVal := lipgloss.NewStyle().
		Width(max(viewWidth-w(statusKey)-w(stateTag)-w(providerTag), 0)).
		Render(stripNewLines(statusMsg))

	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		statusKey,
		statusVal,
		stateTag,
		providerTag,
	)

	doc.WriteString(lipgloss.NewStyle().Width(viewWidth).MaxWidth(viewWidth).Render(bar))

	return lipgloss.NewStyle().Height(viewHeight).Render(doc.String())
}
