package ui

import "github.com/inburst/prhub/datasource"

func DraftPRs() *PRView {
	return NewPRView("Drafts", func(pr *datasource.PullRequest) bool {
		return pr.IsDraft
	})
}
