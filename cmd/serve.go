package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/inburst/prhub/api/server"
	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/datasource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func runServe(ctx context.Context, c *config.Config, provider datasource.Provider) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	ds, err := datasource.New(c, provider, registry)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(c, ds, registry).Listen(ctx)
}
