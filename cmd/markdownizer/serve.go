package main

import (
	"fmt"

	mdhttp "github.com/fwojciec/markdownizer/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := mdhttp.NewServer(deps.Service,
		mdhttp.WithAllowedOrigins(c.AllowedOrigins...),
		mdhttp.WithRateLimit(mdhttp.NewKeyLimiter(c.RatePerMinute, c.Burst)),
		mdhttp.WithHostRateLimit(mdhttp.NewKeyLimiter(c.HostRatePerMinute, c.HostBurst)),
		mdhttp.WithMetrics(mdhttp.NewMetrics(reg), reg),
		mdhttp.WithLogger(deps.Logger),
	)

	if err := server.Run(deps.Ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
