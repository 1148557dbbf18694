package datasource

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru"
	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/logger"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Datasource fetches pull request rows and their comment counts from a
// provider. It is safe for concurrent use.
type Datasource struct {
	provider Provider
	config   *config.Config
	metrics  *Metrics

	// comment counts per pull request, dropped on every listing refresh
	comments      *lru.Cache
	cacheFilePath string

	// listing counts successful listings; counts fetched under an older one
	// are not cached
	listing uint64

	cachedPRs []*PullRequest
	mutex     sync.RWMutex
}

// New wraps provider. Metrics are registered on reg unless it is nil.
func New(c *config.Config, provider Provider, reg prometheus.Registerer) (*Datasource, error) {
	size := c.CommentCacheSize
	if size <= 0 {
		size = config.Default().CommentCacheSize
	}
	comments, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "comment cache")
	}

	ds := &Datasource{
		provider: provider,
		config:   c,
		metrics:  newMetrics(),
		comments: comments,
	}
	ds.cacheFilePath, _ = config.GetPullsCacheFilePath()

	if reg != nil {
		if err := ds.metrics.register(reg); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
	}
	return ds, nil
}

func (ds *Datasource) ProviderName() string {
	return ds.provider.Name()
}

func (ds *Datasource) SetCacheFilePath(path string) {
	ds.cacheFilePath = path
}

func (ds *Datasource) log() *logrus.Entry {
	return logger.Shared().WithField("provider", ds.provider.Name())
}

func (ds *Datasource) observe(kind string, start time.Time, err error) {
	ds.metrics.Fetches.WithLabelValues(ds.provider.Name(), kind, result(err)).Inc()
	ds.metrics.FetchDuration.WithLabelValues(ds.provider.Name(), kind).Observe(time.Since(start).Seconds())
}

// ListPulls fetches every active pull request. A successful listing replaces
// the cached one and invalidates memoised comment counts.
func (ds *Datasource) ListPulls(ctx context.Context) ([]*PullRequest, error) {
	start := time.Now()
	pulls, err := ds.provider.ListActivePullRequests(ctx)
	ds.observe("list", start, err)
	if err != nil {
		ds.log().WithError(err).Error("listing pull requests failed")
		return nil, err
	}
	ds.log().Infof("found [%d] active pull requests", len(pulls))

	ds.mutex.Lock()
	ds.listing++
	ds.comments.Purge()
	ds.cachedPRs = pulls
	ds.mutex.Unlock()
	ds.saveToFile()

	return pulls, nil
}

// CachedPulls returns the rows of the last successful listing or cache load.
func (ds *Datasource) CachedPulls() []*PullRequest {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()
	return ds.cachedPRs
}

// CommentCount returns resolved/total comment threads of pr, fetching the
// threads at most once per listing. A count fetched while a new listing
// arrived is returned but not cached.
func (ds *Datasource) CommentCount(ctx context.Context, pr *PullRequest) (CommentCount, error) {
	ds.mutex.RLock()
	listing := ds.listing
	ds.mutex.RUnlock()

	if v, ok := ds.comments.Get(pr.CacheKey()); ok {
		ds.metrics.CommentLookups.WithLabelValues("hit").Inc()
		return v.(CommentCount), nil
	}
	ds.metrics.CommentLookups.WithLabelValues("miss").Inc()

	start := time.Now()
	threads, err := ds.provider.GetThreads(ctx, pr)
	ds.observe("threads", start, err)
	if err != nil {
		ds.log().WithField("pr", pr.CacheKey()).WithError(err).Warn("fetching threads failed")
		return CommentCount{}, err
	}

	count := CountComments(threads)
	ds.mutex.Lock()
	if ds.listing == listing {
		ds.comments.Add(pr.CacheKey(), count)
	}
	ds.mutex.Unlock()
	return count, nil
}

// CommentCounts looks up every row and returns the counts keyed by
// PullRequest.CacheKey. Rows that failed are missing from the map and their
// errors are combined.
func (ds *Datasource) CommentCounts(ctx context.Context, prs []*PullRequest) (map[string]CommentCount, error) {
	var result *multierror.Error
	counts := make(map[string]CommentCount, len(prs))
	for _, pr := range prs {
		c, err := ds.CommentCount(ctx, pr)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		counts[pr.CacheKey()] = c
	}
	return counts, result.ErrorOrNil()
}
