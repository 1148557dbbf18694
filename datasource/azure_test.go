package datasource

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/webapi"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

type fakeGitClient struct {
	pages   [][]git.GitPullRequest
	calls   []git.GetPullRequestsByProjectArgs
	threads []git.GitPullRequestCommentThread
	err     error
}

func (f *fakeGitClient) GetPullRequestsByProject(ctx context.Context, args git.GetPullRequestsByProjectArgs) (*[]git.GitPullRequest, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.calls) - 1
	if i >= len(f.pages) {
		return &[]git.GitPullRequest{}, nil
	}
	page := f.pages[i]
	return &page, nil
}

func (f *fakeGitClient) GetThreads(ctx context.Context, args git.GetThreadsArgs) (*[]git.GitPullRequestCommentThread, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.threads, nil
}

var testRepositoryID = uuid.MustParse("6a1b2c3d-0000-4000-8000-000000000001")

func azurePull(id int) git.GitPullRequest {
	return git.GitPullRequest{
		PullRequestId: ptr(id),
		Title:         ptr("Add cache"),
		CreatedBy:     &webapi.IdentityRef{DisplayName: ptr("Ada Lovelace"), UniqueName: ptr("ada@example.com")},
		Repository:    &git.GitRepository{Id: &testRepositoryID, Name: ptr("api")},
	}
}

var _ = Describe("AzureProvider", func() {
	var (
		client   *fakeGitClient
		provider *AzureProvider
	)

	BeforeEach(func() {
		client = &fakeGitClient{}
		provider = newAzureProvider(client, "https://dev.azure.com/contoso", "My Project")
	})

	Describe("projecting records", func() {
		It("maps every field a row needs", func() {
			created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			conflicts := git.PullRequestAsyncStatusValues.Conflicts
			raw := azurePull(42)
			raw.CreationDate = &azuredevops.Time{Time: created}
			raw.IsDraft = ptr(true)
			raw.MergeStatus = &conflicts
			raw.SourceRefName = ptr("refs/heads/feature/cache")
			raw.TargetRefName = ptr("refs/heads/main")
			raw.CreatedBy.Links = map[string]interface{}{
				"avatar": map[string]interface{}{"href": "https://avatars/ada"},
			}
			raw.CreatedBy.ImageUrl = ptr("https://images/ada")
			raw.Reviewers = &[]git.IdentityRefWithVote{
				{DisplayName: ptr("Bob"), UniqueName: ptr("bob@example.com"), Vote: ptr(10), IsRequired: ptr(true)},
				{DisplayName: ptr("Carol"), ImageUrl: ptr("https://images/carol"), Vote: ptr(-5)},
			}

			pr, err := projectAzurePull(provider.hostURL, provider.project, raw)
			Expect(err).NotTo(HaveOccurred())

			Expect(pr.ID).To(Equal(42))
			Expect(pr.Title).To(Equal("Add cache"))
			Expect(pr.CreatedAt).To(Equal(created))
			Expect(pr.IsDraft).To(BeTrue())
			Expect(pr.MergeStatus).To(Equal(MergeConflicts))
			Expect(pr.CreatedBy.ImageURL).To(Equal("https://avatars/ada"))
			Expect(pr.Repository).To(Equal(Repository{ID: testRepositoryID.String(), Name: "api", Owner: "My Project"}))
			Expect(pr.SourceRef).To(Equal("refs/heads/feature/cache"))
			Expect(pr.URL).To(Equal("https://dev.azure.com/contoso/My%20Project/_git/" + testRepositoryID.String() + "/pullRequest/42"))

			Expect(pr.Reviewers).To(HaveLen(2))
			Expect(pr.Reviewers[0].Vote).To(Equal(VoteApproved))
			Expect(pr.Reviewers[0].IsRequired).To(BeTrue())
			Expect(pr.Reviewers[1].Vote).To(Equal(VoteWaitingForAuthor))
			Expect(pr.Reviewers[1].ImageURL).To(Equal("https://images/carol"))
		})

		It("defaults the merge status", func() {
			pr, err := projectAzurePull(provider.hostURL, provider.project, azurePull(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(pr.MergeStatus).To(Equal(MergeNotSet))
			Expect(pr.Reviewers).To(BeEmpty())
		})

		It("rejects records without a repository or creator", func() {
			noRepo := azurePull(1)
			noRepo.Repository = nil
			_, err := projectAzurePull(provider.hostURL, provider.project, noRepo)
			Expect(errors.Is(err, ErrMalformedRecord)).To(BeTrue())

			noCreator := azurePull(2)
			noCreator.CreatedBy = nil
			_, err = projectAzurePull(provider.hostURL, provider.project, noCreator)
			Expect(errors.Is(err, ErrMalformedRecord)).To(BeTrue())

			noID := azurePull(3)
			noID.PullRequestId = nil
			_, err = projectAzurePull(provider.hostURL, provider.project, noID)
			Expect(errors.Is(err, ErrMalformedRecord)).To(BeTrue())
		})
	})

	Describe("ListActivePullRequests", func() {
		It("asks for active pull requests of the project", func() {
			client.pages = [][]git.GitPullRequest{{azurePull(1), azurePull(2)}}

			pulls, err := provider.ListActivePullRequests(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(pulls).To(HaveLen(2))

			Expect(client.calls).To(HaveLen(1))
			Expect(*client.calls[0].Project).To(Equal("My Project"))
			Expect(*client.calls[0].SearchCriteria.Status).To(Equal(git.PullRequestStatusValues.Active))
		})

		It("reads every page", func() {
			first := []git.GitPullRequest{}
			for i := 1; i <= azurePageSize; i++ {
				first = append(first, azurePull(i))
			}
			client.pages = [][]git.GitPullRequest{first, {azurePull(azurePageSize + 1)}}

			pulls, err := provider.ListActivePullRequests(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(pulls).To(HaveLen(azurePageSize + 1))
			Expect(client.calls).To(HaveLen(2))
			Expect(*client.calls[1].Skip).To(Equal(azurePageSize))
		})

		It("reports remote failures as fetch errors", func() {
			client.err = errors.New("401 unauthorized")

			_, err := provider.ListActivePullRequests(context.Background())
			Expect(errors.Is(err, ErrFetchFailed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("401 unauthorized"))
		})

		It("fails the listing on a malformed record", func() {
			broken := azurePull(2)
			broken.CreatedBy = nil
			client.pages = [][]git.GitPullRequest{{azurePull(1), broken}}

			_, err := provider.ListActivePullRequests(context.Background())
			Expect(errors.Is(err, ErrMalformedRecord)).To(BeTrue())
		})
	})

	Describe("GetThreads", func() {
		It("maps status, deletion and comment kinds", func() {
			closed := git.CommentThreadStatusValues.Closed
			active := git.CommentThreadStatusValues.Active
			text := git.CommentTypeValues.Text
			system := git.CommentTypeValues.System
			client.threads = []git.GitPullRequestCommentThread{
				{Id: ptr(1), Status: &closed, Comments: &[]git.Comment{{CommentType: &text}}},
				{Id: ptr(2), Status: &active, Comments: &[]git.Comment{{CommentType: &text}}},
				{Id: ptr(3), Status: &closed, IsDeleted: ptr(true), Comments: &[]git.Comment{{CommentType: &text}}},
				{Id: ptr(4), Comments: &[]git.Comment{{CommentType: &system}}},
			}

			threads, err := provider.GetThreads(context.Background(), &PullRequest{ID: 42, Repository: Repository{ID: "r"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(threads).To(HaveLen(4))
			Expect(threads[2].Deleted).To(BeTrue())
			Expect(threads[3].Status).To(Equal(ThreadUnknown))
			Expect(threads[3].Comments[0].Kind).To(Equal(CommentSystem))
			Expect(CountComments(threads)).To(Equal(CommentCount{Resolved: 1, Total: 2}))
		})
	})
})
