package ui

import "github.com/inburst/prhub/datasource"

func AllPRs() *PRView {
	return NewPRView("All", func(pr *datasource.PullRequest) bool {
		return true
	})
}
