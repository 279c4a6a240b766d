package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/leads-service/internal/api/http"
	"github.com/spec-kit/leads-service/internal/api/http/handlers"
	"github.com/spec-kit/leads-service/internal/auth"
	"github.com/spec-kit/leads-service/internal/config"
	"github.com/spec-kit/leads-service/internal/geo"
	"github.com/spec-kit/leads-service/internal/observability"
	"github.com/spec-kit/leads-service/internal/persistence"
	"github.com/spec-kit/leads-service/internal/repository"
	"github.com/spec-kit/leads-service/internal/service"
	"github.com/spec-kit/leads-service/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := persistence.OpenStore(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open document store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	notifications := worker.StartNotificationWorker(cfg.Notification, logger, metrics)

	leadRepo := repository.NewLeadRepository(store)
	projectRepo := repository.NewProjectRepository(store)
	statusRepo := repository.NewStatusCheckRepository(store)

	gate := auth.NewAdminGate(cfg.Admin)
	quoteService := service.NewQuoteService(service.QuoteDependencies{
		Leads:      leadRepo,
		Geo:        geo.NewResolver(cfg.Geo.BaseURL, cfg.Geo.Timeout(), logger, metrics),
		Dispatcher: notifications.Dispatcher(),
		Logger:     logger,
		Metrics:    metrics,
	})
	adminService := service.NewAdminService(gate, leadRepo, logger)
	projectService := service.NewProjectService(projectRepo)
	statusService := service.NewStatusService(statusRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Store.Driver, store),
		Status:          handlers.NewStatusHandler(statusService),
		Quotes:          handlers.NewQuoteHandler(quoteService),
		Projects:        handlers.NewProjectHandler(projectService),
		Admin:           handlers.NewAdminHandler(adminService),
		AdminMiddleware: auth.NewAdminMiddleware(gate),
		Gatherer:        registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	_ = notifications.Stop(shutdownCtx)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
