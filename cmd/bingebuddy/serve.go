package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/bingebuddy/internal/api"
	"github.com/amaumene/bingebuddy/internal/browse"
	"github.com/amaumene/bingebuddy/internal/metrics"
	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/amaumene/bingebuddy/internal/scheduler"
	"github.com/amaumene/bingebuddy/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			return serve(a)
		},
	}
}

func serve(a *app) error {
	logger := a.logger
	logger.Info("Starting BingeBuddy")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Observability
	metrics.Register(prometheus.DefaultRegisterer)
	shutdownTracing, err := telemetry.Init(ctx, "bingebuddy", a.cfg.TracingEnabled, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	// 2. Initialize database
	db, err := models.NewDatabase(a.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 3. Browse sessions
	sessions := browse.NewManager(a.source, a.settings, a.cfg.SessionTTL, logger)
	defer sessions.CloseAll()

	// 4. Initialize scheduler
	sched := scheduler.NewScheduler(a.source, []scheduler.Expirer{a.tmdb, a.source, sessions}, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 5. Initialize HTTP server
	server := api.NewServer(a.cfg, api.Dependencies{
		DB:        db,
		Sessions:  sessions,
		Source:    a.source,
		Settings:  a.settings,
		Assistant: a.assistant,
	}, logger)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 6. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("BingeBuddy is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("BingeBuddy stopped")
	return nil
}
