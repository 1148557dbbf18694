package ui

import "github.com/inburst/prhub/datasource"

// MyPRs shows pull requests created by user.
func MyPRs(user string) *PRView {
	return NewPRView("Mine", func(pr *datasource.PullRequest) bool {
		return pr.CreatedBy.Is(user)
	})
}
