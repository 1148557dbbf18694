package ui

import "github.com/inburst/prhub/datasource"

// ReviewingPRs shows pull requests where user is asked for a review.
func ReviewingPRs(user string) *PRView {
	return NewPRView("Reviewing", func(pr *datasource.PullRequest) bool {
		return pr.HasReviewer(user)
	})
}
