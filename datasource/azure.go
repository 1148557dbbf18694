package datasource

import (
	"context"
	"strings"

	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/logger"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/webapi"
	"github.com/sirupsen/logrus"
)

const azurePageSize = 100

// azureGitClient is the part of git.Client used here.
type azureGitClient interface {
	GetPullRequestsByProject(context.Context, git.GetPullRequestsByProjectArgs) (*[]git.GitPullRequest, error)
	GetThreads(context.Context, git.GetThreadsArgs) (*[]git.GitPullRequestCommentThread, error)
}

type AzureProvider struct {
	client  azureGitClient
	hostURL string
	project string
}

func NewAzureProvider(ctx context.Context, c *config.Config) (*AzureProvider, error) {
	connection := azuredevops.NewPatConnection(c.OrganizationURL, c.AccessToken)
	client, err := git.NewClient(ctx, connection)
	if err != nil {
		return nil, fetchFailed(err, "connect to %s", c.OrganizationURL)
	}
	return newAzureProvider(client, c.OrganizationURL, c.Project), nil
}

func newAzureProvider(client azureGitClient, hostURL string, project string) *AzureProvider {
	if !strings.HasSuffix(hostURL, "/") {
		hostURL += "/"
	}
	return &AzureProvider{client: client, hostURL: hostURL, project: project}
}

func (p *AzureProvider) Name() string {
	return config.ProviderAzure
}

func (p *AzureProvider) ListActivePullRequests(ctx context.Context) ([]*PullRequest, error) {
	status := git.PullRequestStatusValues.Active
	criteria := &git.GitPullRequestSearchCriteria{Status: &status}
	top := azurePageSize
	skip := 0

	// get all pages of results
	var allPulls []*PullRequest
	for {
		logger.Shared().WithFields(logrus.Fields{"project": p.project, "skip": skip}).Debug("listing pull requests")
		page, err := p.client.GetPullRequestsByProject(ctx, git.GetPullRequestsByProjectArgs{
			Project:        &p.project,
			SearchCriteria: criteria,
			Top:            &top,
			Skip:           &skip,
		})
		if err != nil {
			return nil, fetchFailed(err, "list pull requests in %s", p.project)
		}
		if page == nil {
			break
		}

		for _, raw := range *page {
			pr, err := projectAzurePull(p.hostURL, p.project, raw)
			if err != nil {
				return nil, err
			}
			allPulls = append(allPulls, pr)
		}
		if len(*page) < top {
			break
		}
		skip += len(*page)
	}
	return allPulls, nil
}

func (p *AzureProvider) GetThreads(ctx context.Context, pr *PullRequest) ([]Thread, error) {
	repositoryID := pr.Repository.ID
	pullRequestID := pr.ID
	raw, err := p.client.GetThreads(ctx, git.GetThreadsArgs{
		RepositoryId:  &repositoryID,
		PullRequestId: &pullRequestID,
		Project:       &p.project,
	})
	if err != nil {
		return nil, fetchFailed(err, "threads of %s", pr.CacheKey())
	}
	if raw == nil {
		return nil, nil
	}

	threads := make([]Thread, 0, len(*raw))
	for _, t := range *raw {
		thread := Thread{
			ID:      deref(t.Id),
			Deleted: deref(t.IsDeleted),
			Status:  ThreadUnknown,
		}
		if t.Status != nil {
			thread.Status = ThreadStatus(*t.Status)
		}
		if t.Comments != nil {
			for _, c := range *t.Comments {
				kind := CommentUnknown
				if c.CommentType != nil {
					kind = CommentKind(*c.CommentType)
				}
				thread.Comments = append(thread.Comments, Comment{Kind: kind})
			}
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

// projectAzurePull maps one listing record into a row.
func projectAzurePull(hostURL string, projectName string, raw git.GitPullRequest) (*PullRequest, error) {
	if raw.PullRequestId == nil {
		return nil, malformed("pull request without id")
	}
	id := *raw.PullRequestId
	if raw.Repository == nil || raw.Repository.Id == nil {
		return nil, malformed("pull request %d: missing repository", id)
	}
	if raw.CreatedBy == nil {
		return nil, malformed("pull request %d: missing creator", id)
	}

	repositoryID := raw.Repository.Id.String()
	pr := &PullRequest{
		ID:                  id,
		CreatedBy:           azureIdentity(*raw.CreatedBy),
		IsDraft:             deref(raw.IsDraft),
		MergeStatus:         MergeNotSet,
		MergeFailureMessage: deref(raw.MergeFailureMessage),
		Repository: Repository{
			ID:    repositoryID,
			Name:  deref(raw.Repository.Name),
			Owner: projectName,
		},
		SourceRef:   deref(raw.SourceRefName),
		TargetRef:   deref(raw.TargetRefName),
		Title:       deref(raw.Title),
		Description: deref(raw.Description),
		URL:         BuildPullRequestURL(hostURL, projectName, repositoryID, id),
	}
	if raw.CreationDate != nil {
		pr.CreatedAt = raw.CreationDate.Time
	}
	if raw.MergeStatus != nil {
		pr.MergeStatus = MergeStatus(*raw.MergeStatus)
	}
	if raw.Reviewers != nil {
		for _, r := range *raw.Reviewers {
			pr.Reviewers = append(pr.Reviewers, Reviewer{
				Identity: Identity{
					ID:          deref(r.Id),
					DisplayName: deref(r.DisplayName),
					UniqueName:  deref(r.UniqueName),
					ImageURL:    avatarURL(r.Links, deref(r.ImageUrl)),
				},
				Vote:       Vote(deref(r.Vote)),
				IsRequired: deref(r.IsRequired),
			})
		}
	}
	return pr, nil
}

func azureIdentity(ref webapi.IdentityRef) Identity {
	return Identity{
		ID:          deref(ref.Id),
		DisplayName: deref(ref.DisplayName),
		UniqueName:  deref(ref.UniqueName),
		ImageURL:    avatarURL(ref.Links, deref(ref.ImageUrl)),
	}
}

// avatarURL prefers the _links.avatar.href reference over imageUrl.
func avatarURL(links interface{}, fallback string) string {
	l, ok := links.(map[string]interface{})
	if !ok {
		return fallback
	}
	avatar, ok := l["avatar"].(map[string]interface{})
	if !ok {
		return fallback
	}
	if href, ok := avatar["href"].(string); ok && href != "" {
		return href
	}
	return fallback
}
