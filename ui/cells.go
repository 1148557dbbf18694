package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/table"
	"github.com/mattn/go-runewidth"
)

// reviewerWidth is avatar, vote mark and a space.
const reviewerWidth = AvatarWidth + 2

// cell is one two line table cell, both lines exactly as wide as the column.
type cell struct {
	top    string
	bottom string
}

type cellContext struct {
	avatar Avatar
	now    time.Time
	counts map[string]datasource.CommentCount
}

type cellRenderer func(ctx cellContext, pr *datasource.PullRequest, width int) cell

var cellRenderers = map[table.ColumnKey]cellRenderer{
	table.ColumnID:         idCell,
	table.ColumnCreatedBy:  createdByCell,
	table.ColumnTitle:      titleCell,
	table.ColumnRepository: repositoryCell,
	table.ColumnStatus:     statusCell,
	table.ColumnReviewers:  reviewersCell,
}

func renderCell(key table.ColumnKey, ctx cellContext, pr *datasource.PullRequest, width int) cell {
	r, ok := cellRenderers[key]
	if !ok {
		return cell{top: fit("", width), bottom: fit("", width)}
	}
	return r(ctx, pr, width)
}

func styled(style lipgloss.Style, text string, width int) string {
	// padding of the style counts against the width
	room := width - lipgloss.Width(style.Render(""))
	if room <= 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	return pad(style.Render(runewidth.Truncate(text, room, "…")), width)
}

func idCell(ctx cellContext, pr *datasource.PullRequest, width int) cell {
	return cell{
		top:    styled(linkStyle, strconv.Itoa(pr.ID), width),
		bottom: fit("", width),
	}
}

func createdByCell(ctx cellContext, pr *datasource.PullRequest, width int) cell {
	indent := AvatarWidth + 1
	age := formatAgo(ctx.now.Sub(pr.CreatedAt))
	if width <= indent {
		return cell{
			top:    fit(pr.CreatedBy.DisplayName, width),
			bottom: styled(secondaryTextStyle, age, width),
		}
	}
	return cell{
		top:    ctx.avatar.Render(pr.CreatedBy) + " " + fit(pr.CreatedBy.DisplayName, width-indent),
		bottom: strings.Repeat(" ", indent) + styled(secondaryTextStyle, age, width-indent),
	}
}

func titleCell(ctx cellContext, pr *datasource.PullRequest, width int) cell {
	summary := strings.SplitN(strings.TrimSpace(pr.Description), "\n", 2)[0]
	bottom := styled(secondaryTextStyle, summary, width)

	if !pr.IsDraft {
		return cell{top: fit(pr.Title, width), bottom: bottom}
	}
	pill := tagDraftStyle.Render("DRAFT")
	rest := width - lipgloss.Width(pill) - 1
	if rest <= 0 {
		return cell{top: styled(tagDraftStyle, "DRAFT", width), bottom: bottom}
	}
	return cell{top: pill + " " + fit(pr.Title, rest), bottom: bottom}
}

func repositoryCell(ctx cellContext, pr *datasource.PullRequest, width int) cell {
	branches := fmt.Sprintf("%s » %s", branchName(pr.SourceRef), branchName(pr.TargetRef))
	return cell{
		top:    fit(pr.Repository.Name, width),
		bottom: styled(secondaryTextStyle, branches, width),
	}
}

func statusCell(ctx cellContext, pr *datasource.PullRequest, width int) cell {
	top := fit(pr.MergeStatus.Label(), width)
	if pr.MergeStatus == datasource.MergeConflicts {
		top = styled(tagAlertStyle, "Conflict", width)
	}

	comments := "… / …"
	if count, ok := ctx.counts[pr.CacheKey()]; ok {
		comments = count.String()
	}
	return cell{top: top, bottom: styled(secondaryTextStyle, comments, width)}
}

func voteMark(v datasource.Vote) string {
	switch v {
	case datasource.VoteApproved:
		return voteApprovedStyle.Render("✓")
	case datasource.VoteApprovedWithSuggestions:
		return voteApprovedStyle.Render("~")
	case datasource.VoteWaitingForAuthor:
		return voteWaitingStyle.Render("…")
	case datasource.VoteRejected:
		return voteRejectedStyle.Render("✗")
	}
	return " "
}

func reviewersCell(ctx cellContext, pr *datasource.PullRequest, width int) cell {
	approved := 0
	for _, r := range pr.Reviewers {
		if r.Vote > datasource.VoteNone {
			approved++
		}
	}
	summary := ""
	if len(pr.Reviewers) > 0 {
		summary = fmt.Sprintf("%d of %d approved", approved, len(pr.Reviewers))
	}

	slots := width / reviewerWidth
	shown := pr.Reviewers
	overflow := 0
	if len(shown) > slots {
		// keep a slot for the +N marker
		keep := max(slots-1, 0)
		overflow = len(shown) - keep
		shown = shown[:keep]
	}

	top := strings.Builder{}
	for _, r := range shown {
		top.WriteString(ctx.avatar.Render(r.Identity) + voteMark(r.Vote) + " ")
	}
	if overflow > 0 {
		top.WriteString(runewidth.Truncate(fmt.Sprintf("+%d", overflow), width-lipgloss.Width(top.String()), ""))
	}

	return cell{
		top:    pad(top.String(), width),
		bottom: styled(secondaryTextStyle, summary, width),
	}
}
