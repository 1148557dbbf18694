package datasource

import (
	"context"
	"net/http"

	"github.com/h2non/gock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

const githubPull = `{
	"number": 7,
	"title": "Add cache",
	"body": "Adds a cache",
	"draft": true,
	"mergeable_state": "dirty",
	"html_url": "https://github.com/acme/api/pull/7",
	"created_at": "2026-01-02T03:04:05Z",
	"user": {"login": "alice", "id": 1, "avatar_url": "https://avatars/alice"},
	"head": {"ref": "feature/cache"},
	"base": {"ref": "main", "repo": {"id": 99, "name": "api", "full_name": "acme/api", "owner": {"login": "acme"}}},
	"requested_reviewers": [{"login": "dave", "id": 4}]
}`

const githubReviews = `[
	{"user": {"login": "bob", "id": 2}, "state": "COMMENTED"},
	{"user": {"login": "bob", "id": 2}, "state": "APPROVED"},
	{"user": {"login": "carol", "id": 3}, "state": "CHANGES_REQUESTED"}
]`

var _ = Describe("GithubProvider", func() {
	const api = "https://api.github.com"

	AfterEach(func() {
		gock.Off()
	})

	mockUser := func(scopes string) {
		gock.New(api).
			Get("/user$").
			Reply(200).
			SetHeader("X-OAuth-Scopes", scopes).
			JSON(`{"login": "me", "id": 100}`)
	}

	Describe("ListActivePullRequests", func() {
		It("hydrates each open pull request with its reviews", func() {
			mockUser("repo, workflow")
			gock.New(api).
				Get("/repos/acme/api/pulls$").
				MatchParam("state", "open").
				Reply(200).
				JSON(`[{"number": 7}]`)
			gock.New(api).
				Get("/repos/acme/api/pulls/7$").
				Reply(200).
				JSON(githubPull)
			gock.New(api).
				Get("/repos/acme/api/pulls/7/reviews$").
				Reply(200).
				JSON(githubReviews)

			provider := newGithubProvider(&http.Client{}, "", []string{"acme/api"})
			pulls, err := provider.ListActivePullRequests(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(gock.IsDone()).To(BeTrue())

			Expect(pulls).To(HaveLen(1))
			pr := pulls[0]
			Expect(pr.ID).To(Equal(7))
			Expect(pr.Title).To(Equal("Add cache"))
			Expect(pr.IsDraft).To(BeTrue())
			Expect(pr.MergeStatus).To(Equal(MergeConflicts))
			Expect(pr.CreatedBy.DisplayName).To(Equal("alice"))
			Expect(pr.CreatedBy.ImageURL).To(Equal("https://avatars/alice"))
			Expect(pr.Repository).To(Equal(Repository{ID: "99", Name: "api", Owner: "acme"}))
			Expect(pr.SourceRef).To(Equal("refs/heads/feature/cache"))
			Expect(pr.TargetRef).To(Equal("refs/heads/main"))
			Expect(pr.URL).To(Equal("https://github.com/acme/api/pull/7"))

			Expect(pr.Reviewers).To(HaveLen(3))
			Expect(pr.Reviewers[0].UniqueName).To(Equal("dave"))
			Expect(pr.Reviewers[0].IsRequired).To(BeTrue())
			Expect(pr.Reviewers[0].Vote).To(Equal(VoteNone))
			Expect(pr.Reviewers[1].UniqueName).To(Equal("bob"))
			Expect(pr.Reviewers[1].Vote).To(Equal(VoteApproved))
			Expect(pr.Reviewers[2].Vote).To(Equal(VoteRejected))
		})

		It("lists the unarchived repositories of the organization", func() {
			mockUser("repo, read:org")
			gock.New(api).
				Get("/orgs/acme/repos$").
				Reply(200).
				JSON(`[{"name": "api", "full_name": "acme/api"}, {"name": "old", "full_name": "acme/old", "archived": true}]`)
			gock.New(api).
				Get("/repos/acme/api/pulls$").
				Reply(200).
				JSON(`[]`)

			provider := newGithubProvider(&http.Client{}, "acme", nil)
			pulls, err := provider.ListActivePullRequests(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(pulls).To(BeEmpty())
			Expect(gock.IsDone()).To(BeTrue())
		})

		It("refuses tokens missing a required scope", func() {
			mockUser("read:user")

			provider := newGithubProvider(&http.Client{}, "", []string{"acme/api"})
			_, err := provider.ListActivePullRequests(context.Background())
			Expect(errors.Is(err, ErrFetchFailed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Did not find [repo]"))
		})

		It("reports remote failures as fetch errors", func() {
			mockUser("")
			gock.New(api).
				Get("/repos/acme/api/pulls$").
				Reply(500).
				JSON(`{"message": "boom"}`)

			provider := newGithubProvider(&http.Client{}, "", []string{"acme/api"})
			_, err := provider.ListActivePullRequests(context.Background())
			Expect(errors.Is(err, ErrFetchFailed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("acme/api"))
		})
	})

	Describe("GetThreads", func() {
		It("pages through every review thread", func() {
			gock.New(api).
				Post("/graphql$").
				Reply(200).
				JSON(`{"data": {"repository": {"pullRequest": {"reviewThreads": {
					"nodes": [{"isResolved": true, "comments": {"totalCount": 1}}],
					"pageInfo": {"hasNextPage": true, "endCursor": "Y3Vyc29yOjE="}
				}}}}}`)
			gock.New(api).
				Post("/graphql$").
				BodyString(`"cursor":"Y3Vyc29yOjE="`).
				Reply(200).
				JSON(`{"data": {"repository": {"pullRequest": {"reviewThreads": {
					"nodes": [
						{"isResolved": false, "comments": {"totalCount": 1}},
						{"isResolved": true, "comments": {"totalCount": 3}}
					],
					"pageInfo": {"hasNextPage": false, "endCursor": "Y3Vyc29yOjM="}
				}}}}}`)

			provider := newGithubProvider(&http.Client{}, "", []string{"acme/api"})
			threads, err := provider.GetThreads(context.Background(), &PullRequest{
				ID:         7,
				Repository: Repository{Name: "api", Owner: "acme"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(threads).To(HaveLen(3))
			Expect(threads[2].ID).To(Equal(3))
			Expect(CountComments(threads)).To(Equal(CommentCount{Resolved: 2, Total: 3}))
			Expect(gock.IsDone()).To(BeTrue())
		})

		It("maps resolved review threads to closed threads", func() {
			gock.New(api).
				Post("/graphql$").
				Reply(200).
				JSON(`{"data": {"repository": {"pullRequest": {"reviewThreads": {"nodes": [
					{"isResolved": true, "comments": {"totalCount": 2}},
					{"isResolved": false, "comments": {"totalCount": 1}}
				]}}}}}`)

			provider := newGithubProvider(&http.Client{}, "", []string{"acme/api"})
			threads, err := provider.GetThreads(context.Background(), &PullRequest{
				ID:         7,
				Repository: Repository{Name: "api", Owner: "acme"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(threads).To(HaveLen(2))
			Expect(threads[0].Status).To(Equal(ThreadClosed))
			Expect(threads[0].Comments).To(HaveLen(2))
			Expect(CountComments(threads)).To(Equal(CommentCount{Resolved: 1, Total: 2}))
		})
	})
})

var _ = Describe("mergeStatusFromGithub", func() {
	It("maps mergeable states", func() {
		Expect(mergeStatusFromGithub("dirty")).To(Equal(MergeConflicts))
		Expect(mergeStatusFromGithub("clean")).To(Equal(MergeSucceeded))
		Expect(mergeStatusFromGithub("blocked")).To(Equal(MergeRejectedByPolicy))
		Expect(mergeStatusFromGithub("unknown")).To(Equal(MergeQueued))
	})
})
