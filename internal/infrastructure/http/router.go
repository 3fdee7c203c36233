package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sutram/service-registry/internal/infrastructure/http/handlers"
)

// RegisterOperational mounts the unauthenticated probes and the Prometheus
// scrape endpoint on e.
func RegisterOperational(e *echo.Echo, db handlers.Pinger, gatherer prometheus.Gatherer) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – does the store answer?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
}
