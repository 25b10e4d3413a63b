package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"econdash/internal/app"
	"econdash/internal/appconf"
	"econdash/internal/ingest"
	"econdash/internal/logging"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)

	application := app.New(cfg, logger)

	handler, err := newHandler(application)
	if err != nil {
		logging.LogError(logger, "failed to build routes", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server",
		slog.String("addr", srv.Addr),
		slog.String("env", cfg.Env.String()),
		slog.String("data_file", cfg.DataFile))
	err = srv.ListenAndServe()
	logging.LogError(logger, "server stopped", err)
	os.Exit(1)
}

// parseConfig reads the command line flags into a Config.
func parseConfig(args []string) (appconf.Config, error) {
	var cfg appconf.Config
	var env string

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", 8501, "HTTP server port")
	fs.StringVar(&env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&cfg.DataFile, "data-file", ingest.DefaultFileName, "Path of the economic activity CSV file")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 20, "Requests per second per client, 0 disables limiting")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return appconf.Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	cfg.Env = appconf.EnvFlagToEnvironment(env)

	return cfg, nil
}
