package datasource

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// MergeStatus mirrors the asynchronous merge status reported by the host.
type MergeStatus string

const (
	MergeNotSet           MergeStatus = "notSet"
	MergeQueued           MergeStatus = "queued"
	MergeConflicts        MergeStatus = "conflicts"
	MergeSucceeded        MergeStatus = "succeeded"
	MergeRejectedByPolicy MergeStatus = "rejectedByPolicy"
	MergeFailure          MergeStatus = "failure"
)

// Label is the display name of the status, e.g. "RejectedByPolicy".
func (s MergeStatus) Label() string {
	if s == "" {
		return "NotSet"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Vote is a reviewer's vote. Only the five values below are issued.
type Vote int

const (
	VoteRejected                Vote = -10
	VoteWaitingForAuthor        Vote = -5
	VoteNone                    Vote = 0
	VoteApprovedWithSuggestions Vote = 5
	VoteApproved                Vote = 10
)

type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName"`
	ImageURL    string `json:"imageUrl"`
}

// Initials returns up to two upper case letters taken from the display name.
func (i Identity) Initials() string {
	name := i.DisplayName
	if name == "" {
		name = i.UniqueName
	}
	initials := []rune{}
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) {
				initials = append(initials, unicode.ToUpper(r))
				break
			}
		}
	}
	switch len(initials) {
	case 0:
		return "?"
	case 1:
		return string(initials)
	}
	return string([]rune{initials[0], initials[len(initials)-1]})
}

// Is reports whether user names this identity by id, unique name or display name.
func (i Identity) Is(user string) bool {
	if user == "" {
		return false
	}
	return strings.EqualFold(i.ID, user) ||
		strings.EqualFold(i.UniqueName, user) ||
		strings.EqualFold(i.DisplayName, user)
}

type Reviewer struct {
	Identity
	Vote       Vote `json:"vote"`
	IsRequired bool `json:"isRequired"`
}

type Repository struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// PullRequest is the row shown in the listing. Rows are built once by a
// provider and never modified afterwards.
type PullRequest struct {
	ID                  int         `json:"pullRequestId"`
	CreatedBy           Identity    `json:"createdBy"`
	CreatedAt           time.Time   `json:"creationDate"`
	IsDraft             bool        `json:"isDraft"`
	MergeStatus         MergeStatus `json:"mergeStatus"`
	MergeFailureMessage string      `json:"mergeFailureMessage,omitempty"`
	Repository          Repository  `json:"repository"`
	SourceRef           string      `json:"sourceRefName"`
	TargetRef           string      `json:"targetRefName"`
	Reviewers           []Reviewer  `json:"reviewers"`
	Title               string      `json:"title"`
	Description         string      `json:"description,omitempty"`
	URL                 string      `json:"pullRequestUrl"`
}

func (pr *PullRequest) CacheKey() string {
	return fmt.Sprintf("%s/%d", pr.Repository.ID, pr.ID)
}

func (pr *PullRequest) HasReviewer(user string) bool {
	for _, r := range pr.Reviewers {
		if r.Is(user) {
			return true
		}
	}
	return false
}

// BuildPullRequestURL returns the web page of a pull request hosted under
// hostURL, e.g. https://dev.azure.com/org/My%20Project/_git/<repo>/pullRequest/7.
func BuildPullRequestURL(hostURL string, projectName string, repositoryID string, pullRequestID int) string {
	if !strings.HasSuffix(hostURL, "/") {
		hostURL += "/"
	}
	return fmt.Sprintf("%s%s/_git/%s/pullRequest/%d", hostURL, url.PathEscape(projectName), repositoryID, pullRequestID)
}
