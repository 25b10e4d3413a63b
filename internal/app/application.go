package app

import (
	"log/slog"

	"econdash/internal/appconf"
	"econdash/internal/metrics"
	"econdash/internal/pipeline"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Pipeline *pipeline.Runner
}

// New wires an Application around the dataset named in cfg.
func New(cfg appconf.Config, logger *slog.Logger) *Application {
	m := metrics.New()
	return &Application{
		Config:   cfg,
		Logger:   logger,
		Metrics:  m,
		Pipeline: pipeline.NewRunner(cfg.DataFile, logger, m),
	}
}
