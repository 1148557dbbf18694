package datasource

import (
	"context"

	"github.com/inburst/prhub/config"
	"github.com/pkg/errors"
)

// Provider is a remote service hosting pull requests.
type Provider interface {
	Name() string
	// ListActivePullRequests returns every active pull request in scope,
	// already projected into rows.
	ListActivePullRequests(ctx context.Context) ([]*PullRequest, error)
	GetThreads(ctx context.Context, pr *PullRequest) ([]Thread, error)
}

func NewProvider(ctx context.Context, c *config.Config) (Provider, error) {
	switch c.Provider {
	case config.ProviderAzure:
		p, err := NewAzureProvider(ctx, c)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderGithub:
		p, err := NewGithubProvider(ctx, c)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, errors.Errorf("unknown provider %q", c.Provider)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
