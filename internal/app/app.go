package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"redirect-manager/internal/announce"
	"redirect-manager/internal/config"
	"redirect-manager/internal/metrics"
	"redirect-manager/internal/repository"
	"redirect-manager/internal/service"
	"redirect-manager/internal/transport/httpapi"
)

type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.logger.Info("Starting redirect manager")

	db, err := repository.NewPostgresDB(a.cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}

	ruleRepo := repository.NewRuleRepository(db, a.cfg.EnableCache, a.cfg.CacheTTL)
	statsRepo := repository.NewStatsRepository(db)

	broadcaster := announce.NewBroadcaster(a.logger)
	// Keep an audit trail of announced changes until a real consumer
	// subscribes (the extension frontend talks to the HTTP API directly).
	subID, events := broadcaster.Subscribe()
	defer broadcaster.Unsubscribe(subID)
	go func() {
		for ev := range events {
			a.logger.Info("Rule set changed", "event_id", ev.ID, "kind", ev.Kind, "source", ev.Source)
		}
	}()

	svc := service.NewRedirectService(a.logger, ruleRepo, statsRepo, broadcaster)
	svc.StartMetricsUpdater(ctx)

	metricsSrv := metrics.NewServer(a.logger, a.cfg.MetricsAddr)
	go func() {
		if err := metricsSrv.Listen(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()

	apiSrv := httpapi.NewServer(a.logger, httpapi.NewHandler(a.logger, svc), a.cfg.HTTPAddr)
	cleanup, err := apiSrv.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start api server: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("Shutting down")
	if err := cleanup(); err != nil {
		return fmt.Errorf("failed to stop api server: %w", err)
	}
	return nil
}
