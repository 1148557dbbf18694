package datasource

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/go-github/v53/github"
	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/logger"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const GHResultsPerPage = 50

type GithubProvider struct {
	client       *github.Client
	graphql      *githubv4.Client
	organization string
	repositories []string

	scopesChecked bool
}

func NewGithubProvider(ctx context.Context, c *config.Config) (*GithubProvider, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: c.AccessToken},
	)
	tc := oauth2.NewClient(ctx, ts)
	return newGithubProvider(tc, c.Organization, c.Repositories), nil
}

func newGithubProvider(httpClient *http.Client, organization string, repositories []string) *GithubProvider {
	return &GithubProvider{
		client:       github.NewClient(httpClient),
		graphql:      githubv4.NewClient(httpClient),
		organization: organization,
		repositories: repositories,
	}
}

func (p *GithubProvider) Name() string {
	return config.ProviderGithub
}

func (p *GithubProvider) ListActivePullRequests(ctx context.Context) ([]*PullRequest, error) {
	if !p.scopesChecked {
		scopes := []string{"repo"}
		if p.organization != "" {
			scopes = append(scopes, "read:org")
		}
		if err := CheckAccessToken(ctx, p.client, scopes); err != nil {
			return nil, fetchFailed(err, "check access token")
		}
		p.scopesChecked = true
	}

	repos, err := p.repositoryNames(ctx)
	if err != nil {
		return nil, err
	}

	var allPulls []*PullRequest
	for _, fullName := range repos {
		parts := strings.SplitN(fullName, "/", 2)
		owner, repo := parts[0], parts[1]

		pulls, err := p.getAllPullsForRepo(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		for _, ghpr := range pulls {
			// NOTE: the listed PR data is not complete and needs to be directly
			// fetched to hydrate the mergeable state
			full, _, err := p.client.PullRequests.Get(ctx, owner, repo, ghpr.GetNumber())
			if err != nil {
				return nil, fetchFailed(err, "get %s/%s#%d", owner, repo, ghpr.GetNumber())
			}
			reviews, err := p.getAllReviewsForPull(ctx, owner, repo, ghpr.GetNumber())
			if err != nil {
				return nil, err
			}
			pr, err := projectGithubPull(full, reviews)
			if err != nil {
				return nil, err
			}
			allPulls = append(allPulls, pr)
		}
	}
	return allPulls, nil
}

func (p *GithubProvider) repositoryNames(ctx context.Context) ([]string, error) {
	if len(p.repositories) > 0 {
		return p.repositories, nil
	}
	repos, err := p.getAllReposForOrg(ctx, p.organization)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, r := range repos {
		if r.GetArchived() {
			continue
		}
		names = append(names, r.GetFullName())
	}
	return names, nil
}

func (p *GithubProvider) getAllPullsForRepo(ctx context.Context, owner string, repo string) ([]*github.PullRequest, error) {
	opt := &github.PullRequestListOptions{
		ListOptions: github.ListOptions{PerPage: GHResultsPerPage},
		State:       "open",
	}
	var allPulls []*github.PullRequest
	for {
		logger.Shared().WithFields(logrus.Fields{"repo": owner + "/" + repo, "page": opt.Page}).Debug("listing pulls")
		prs, resp, err := p.client.PullRequests.List(ctx, owner, repo, opt)
		if err != nil {
			logRateLimit(err)
			return nil, fetchFailed(err, "list pulls in %s/%s", owner, repo)
		}
		allPulls = append(allPulls, prs...)
		if resp.NextPage == 0 || opt.Page == resp.NextPage {
			break
		}
		opt.Page = resp.NextPage
	}
	return allPulls, nil
}

func (p *GithubProvider) getAllReviewsForPull(ctx context.Context, owner string, repo string, number int) ([]*github.PullRequestReview, error) {
	opt := &github.ListOptions{PerPage: GHResultsPerPage}
	var allReviews []*github.PullRequestReview
	for {
		reviews, resp, err := p.client.PullRequests.ListReviews(ctx, owner, repo, number, opt)
		if err != nil {
			logRateLimit(err)
			return nil, fetchFailed(err, "reviews of %s/%s#%d", owner, repo, number)
		}
		allReviews = append(allReviews, reviews...)
		if resp.NextPage == 0 || opt.Page == resp.NextPage {
			break
		}
		opt.Page = resp.NextPage
	}
	return allReviews, nil
}

func (p *GithubProvider) getAllReposForOrg(ctx context.Context, orgName string) ([]*github.Repository, error) {
	opt := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: GHResultsPerPage},
		Type:        "all",
	}

	// get all pages of results
	var allRepos []*github.Repository
	for {
		repos, resp, err := p.client.Repositories.ListByOrg(ctx, orgName, opt)
		if err != nil {
			logRateLimit(err)
			return nil, fetchFailed(err, "list repos of %s", orgName)
		}
		logger.Shared().Debugf("found repos in org [%s]: count:%d", orgName, len(repos))
		allRepos = append(allRepos, repos...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return allRepos, nil
}

const reviewThreadsPerPage = 100

type reviewThreadsQuery struct {
	Repository struct {
		PullRequest struct {
			ReviewThreads struct {
				Nodes []struct {
					IsResolved githubv4.Boolean
					Comments   struct {
						TotalCount githubv4.Int
					} `graphql:"comments(first: 1)"`
				}
				PageInfo struct {
					HasNextPage githubv4.Boolean
					EndCursor   githubv4.String
				}
			} `graphql:"reviewThreads(first: $first, after: $cursor)"`
		} `graphql:"pullRequest(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// GetThreads reads review threads from the GraphQL API, the REST API does not
// expose whether a thread is resolved.
func (p *GithubProvider) GetThreads(ctx context.Context, pr *PullRequest) ([]Thread, error) {
	variables := map[string]interface{}{
		"owner":  githubv4.String(pr.Repository.Owner),
		"name":   githubv4.String(pr.Repository.Name),
		"number": githubv4.Int(pr.ID),
		"first":  githubv4.Int(reviewThreadsPerPage),
		"cursor": (*githubv4.String)(nil),
	}

	// get all pages of results
	threads := []Thread{}
	for {
		var q reviewThreadsQuery
		if err := p.graphql.Query(ctx, &q, variables); err != nil {
			return nil, fetchFailed(err, "threads of %s/%s#%d", pr.Repository.Owner, pr.Repository.Name, pr.ID)
		}

		page := q.Repository.PullRequest.ReviewThreads
		for _, n := range page.Nodes {
			t := Thread{ID: len(threads) + 1, Status: ThreadActive}
			if n.IsResolved {
				t.Status = ThreadClosed
			}
			for c := 0; c < int(n.Comments.TotalCount); c++ {
				t.Comments = append(t.Comments, Comment{Kind: CommentText})
			}
			threads = append(threads, t)
		}
		if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor == "" {
			break
		}
		variables["cursor"] = githubv4.NewString(page.PageInfo.EndCursor)
	}
	return threads, nil
}

func projectGithubPull(ghpr *github.PullRequest, reviews []*github.PullRequestReview) (*PullRequest, error) {
	if ghpr.Number == nil {
		return nil, malformed("pull request without number")
	}
	number := ghpr.GetNumber()
	repo := ghpr.GetBase().GetRepo()
	if repo == nil {
		return nil, malformed("pull request %d: missing repository", number)
	}
	if ghpr.User == nil {
		return nil, malformed("pull request %d: missing creator", number)
	}

	return &PullRequest{
		ID:          number,
		CreatedBy:   githubIdentity(ghpr.GetUser()),
		CreatedAt:   ghpr.GetCreatedAt().Time,
		IsDraft:     ghpr.GetDraft(),
		MergeStatus: mergeStatusFromGithub(ghpr.GetMergeableState()),
		Repository: Repository{
			ID:    strconv.FormatInt(repo.GetID(), 10),
			Name:  repo.GetName(),
			Owner: repo.GetOwner().GetLogin(),
		},
		SourceRef:   "refs/heads/" + ghpr.GetHead().GetRef(),
		TargetRef:   "refs/heads/" + ghpr.GetBase().GetRef(),
		Reviewers:   reviewersFromGithub(ghpr.RequestedReviewers, reviews),
		Title:       ghpr.GetTitle(),
		Description: ghpr.GetBody(),
		URL:         ghpr.GetHTMLURL(),
	}, nil
}

func githubIdentity(u *github.User) Identity {
	displayName := u.GetName()
	if displayName == "" {
		displayName = u.GetLogin()
	}
	return Identity{
		ID:          strconv.FormatInt(u.GetID(), 10),
		DisplayName: displayName,
		UniqueName:  u.GetLogin(),
		ImageURL:    u.GetAvatarURL(),
	}
}

func mergeStatusFromGithub(state string) MergeStatus {
	switch state {
	case "dirty":
		return MergeConflicts
	case "clean", "unstable", "has_hooks":
		return MergeSucceeded
	case "blocked", "behind":
		return MergeRejectedByPolicy
	case "draft":
		return MergeNotSet
	}
	return MergeQueued
}

// reviewersFromGithub lists requested reviewers first, then everyone who left
// a review. The latest deciding review of each user sets the vote.
func reviewersFromGithub(requested []*github.User, reviews []*github.PullRequestReview) []Reviewer {
	reviewers := []Reviewer{}
	index := map[string]int{}
	for _, u := range requested {
		index[u.GetLogin()] = len(reviewers)
		reviewers = append(reviewers, Reviewer{Identity: githubIdentity(u), IsRequired: true})
	}

	for _, r := range reviews {
		login := r.GetUser().GetLogin()
		i, ok := index[login]
		if !ok {
			i = len(reviewers)
			index[login] = i
			reviewers = append(reviewers, Reviewer{Identity: githubIdentity(r.GetUser())})
		}
		switch r.GetState() {
		case "APPROVED":
			reviewers[i].Vote = VoteApproved
		case "CHANGES_REQUESTED":
			reviewers[i].Vote = VoteRejected
		case "DISMISSED":
			reviewers[i].Vote = VoteNone
		}
	}
	return reviewers
}

func logRateLimit(err error) {
	if rlerr, ok := err.(*github.RateLimitError); ok {
		logger.Shared().Warnf("hit rate limit, resets at %s", rlerr.Rate.Reset.Time)
	} else if _, ok := err.(*github.AbuseRateLimitError); ok {
		logger.Shared().Warn("hit secondary rate limit")
	}
}
