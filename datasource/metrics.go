package datasource

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Fetches        *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	CommentLookups *prometheus.CounterVec
}

func newMetrics() *Metrics {
	return &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prhub_fetches_total",
			Help: "Remote listing and thread requests by provider, kind and result.",
		}, []string{"provider", "kind", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prhub_fetch_duration_seconds",
			Help:    "Latency of remote listing and thread requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider", "kind"}),
		CommentLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prhub_comment_cache_lookups_total",
			Help: "Comment count cache lookups by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Fetches, m.FetchDuration, m.CommentLookups} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
