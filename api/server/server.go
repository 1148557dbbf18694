package server

import (
	"context"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gin-gonic/gin"
	"github.com/inburst/prhub/api/handlers"
	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/logger"
	"github.com/inburst/prhub/table"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/robfig/cron.v2"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config   *config.Config
	store    *handlers.Store
	engine   *gin.Engine
	registry *prometheus.Registry
}

// New builds the API around ds. The registry is the one ds registered its
// collectors on and is exposed on /metrics.
func New(c *config.Config, ds *datasource.Datasource, registry *prometheus.Registry) *Server {
	layout := table.NewLayout(table.BreakpointsFromConfig(c.Breakpoints))
	store := handlers.NewStore(ds)

	r := gin.New()
	r.Use(gin.Recovery())
	registerHandlers(r, handlers.NewHandlers(store, layout, ds), registry)

	return &Server{
		config:   c,
		store:    store,
		engine:   r,
		registry: registry,
	}
}

func (s *Server) Handler() http.Handler {
	return gziphandler.GzipHandler(s.engine)
}

func (s *Server) Refresh(ctx context.Context) error {
	err := s.store.Refresh(ctx)
	if err != nil {
		logger.Shared().WithError(err).Error("refreshing pull requests")
	}
	return err
}

// Listen serves until ctx is cancelled. Rows are refreshed once up front and
// then on the configured schedule.
func (s *Server) Listen(ctx context.Context) error {
	s.Refresh(ctx)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(s.config.RefreshSchedule, func() { s.Refresh(ctx) }); err != nil {
		return errors.Wrapf(err, "refresh schedule %q", s.config.RefreshSchedule)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{Addr: s.config.ListenAddress, Handler: s.Handler()}
	errs := make(chan error, 1)
	go func() {
		logger.Shared().Infof("listening on %s", s.config.ListenAddress)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func registerHandlers(r *gin.Engine, h *handlers.Handlers, registry *prometheus.Registry) {
	r.GET("/ping", handlers.HandlePing)
	r.GET("/pulls", h.HandlePulls)
	r.GET("/pulls/:id/comments", h.HandleComments)
	r.GET("/layout", h.HandleLayout)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
