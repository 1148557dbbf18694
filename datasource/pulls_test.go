package datasource

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("BuildPullRequestURL", func() {
	It("escapes the project name", func() {
		url := BuildPullRequestURL("https://dev.azure.com/contoso/", "My Project", "6a1b", 42)
		Expect(url).To(Equal("https://dev.azure.com/contoso/My%20Project/_git/6a1b/pullRequest/42"))
	})

	It("adds the missing trailing slash of the host", func() {
		url := BuildPullRequestURL("https://dev.azure.com/contoso", "web", "r", 1)
		Expect(url).To(Equal("https://dev.azure.com/contoso/web/_git/r/pullRequest/1"))
	})
})

var _ = Describe("Identity", func() {
	It("takes initials from the first and last word", func() {
		Expect(Identity{DisplayName: "Ada King Lovelace"}.Initials()).To(Equal("AL"))
		Expect(Identity{DisplayName: "grace"}.Initials()).To(Equal("G"))
		Expect(Identity{DisplayName: "A. Smith"}.Initials()).To(Equal("AS"))
		Expect(Identity{UniqueName: "bob@example.com"}.Initials()).To(Equal("B"))
		Expect(Identity{}.Initials()).To(Equal("?"))
	})

	It("matches users by id, unique name or display name", func() {
		id := Identity{ID: "1", DisplayName: "Ada Lovelace", UniqueName: "ada@example.com"}

		Expect(id.Is("ADA@example.com")).To(BeTrue())
		Expect(id.Is("ada lovelace")).To(BeTrue())
		Expect(id.Is("1")).To(BeTrue())
		Expect(id.Is("")).To(BeFalse())
		Expect(id.Is("grace")).To(BeFalse())
	})
})

var _ = Describe("PullRequest", func() {
	It("finds reviewers", func() {
		pr := &PullRequest{Reviewers: []Reviewer{{Identity: Identity{UniqueName: "bob"}, Vote: VoteApproved}}}

		Expect(pr.HasReviewer("bob")).To(BeTrue())
		Expect(pr.HasReviewer("carol")).To(BeFalse())
	})

	It("labels merge states", func() {
		Expect(MergeConflicts.Label()).To(Equal("Conflicts"))
		Expect(MergeRejectedByPolicy.Label()).To(Equal("RejectedByPolicy"))
		Expect(MergeStatus("").Label()).To(Equal("NotSet"))
	})
})
