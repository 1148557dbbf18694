package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/logger"
)

type PRDetail struct {
	PR *datasource.PullRequest
}

func (p *PRDetail) BuildView(w int, h int) string {
	doc := strings.Builder{}

	doc.WriteString(pullListStyle.Copy().Inherit(titleStyle).Width(w).Render(fmt.Sprintf("#%d %s", p.PR.ID, p.PR.Title)) + "\n")
	doc.WriteString(secondaryTextStyle.Render(fmt.Sprintf("%s/%s %s » %s",
		p.PR.Repository.Owner, p.PR.Repository.Name, branchName(p.PR.SourceRef), branchName(p.PR.TargetRef))) + "\n")
	if p.PR.MergeFailureMessage != "" {
		doc.WriteString(tagAlertStyle.Render(stripNewLines(p.PR.MergeFailureMessage)) + "\n")
	}

	description := p.PR.Description
	if strings.TrimSpace(description) == "" {
		description = "_No description provided._"
	}
	out, err := glamour.Render(description, "dark")
	if err != nil {
		logger.Shared().WithError(err).Warn("rendering description")
		out = description
	}
	doc.WriteString(out + "\n")

	return docStyle.Copy().MaxWidth(w).MaxHeight(h).Render(doc.String())
}
