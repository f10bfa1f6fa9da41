package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ccoppo/AcronymLookupTool/api/routes"
	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/permissions"
	"github.com/ccoppo/AcronymLookupTool/internal/promotion"
	"github.com/ccoppo/AcronymLookupTool/internal/search"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	"github.com/ccoppo/AcronymLookupTool/internal/users"
	"github.com/ccoppo/AcronymLookupTool/pkg/config"
	"github.com/ccoppo/AcronymLookupTool/pkg/db"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
	"github.com/ccoppo/AcronymLookupTool/pkg/metrics"
	"github.com/ccoppo/AcronymLookupTool/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	memberRepo := memberships.NewRepository(dbClient.DB())
	personalStore := terms.NewPersonalStore(dbClient.DB())
	projectStore := terms.NewProjectStore(dbClient.DB())
	requestRepo := promotion.NewRepository(dbClient.DB())
	lookupMetrics := metrics.NewLookupMetrics(prometheus.DefaultRegisterer)

	resolver, err := permissions.NewResolver(userRepo, memberRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create permission resolver", err)
		os.Exit(1)
	}

	orchestrator, err := search.NewOrchestrator(personalStore, projectStore, memberRepo, lookupMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create search orchestrator", err)
		os.Exit(1)
	}

	termService, err := terms.NewService(terms.ServiceParams{
		Personal: personalStore,
		Project:  projectStore,
		Requests: requestRepo,
		Resolver: resolver,
		Metrics:  lookupMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create terms service", err)
		os.Exit(1)
	}

	requestService, err := promotion.NewService(promotion.ServiceParams{
		Personal: personalStore,
		Project:  projectStore,
		Requests: requestRepo,
		Resolver: resolver,
		Metrics:  lookupMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create promotion service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Users:    userRepo,
			Members:  memberRepo,
			Resolver: resolver,
			Search:   orchestrator,
			Terms:    termService,
			Requests: requestService,
		}),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-done
	logg.Info(ctx, "shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}
