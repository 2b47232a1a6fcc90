package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bodega-labs/bodega/internal/analysis"
	"github.com/bodega-labs/bodega/internal/catalog"
	"github.com/bodega-labs/bodega/internal/checkout"
	corecfg "github.com/bodega-labs/bodega/internal/core/config"
	"github.com/bodega-labs/bodega/internal/core/storage/postgres"
	"github.com/bodega-labs/bodega/internal/migrations"
	"github.com/bodega-labs/bodega/internal/server"
	"github.com/bodega-labs/bodega/internal/users"
)

func main() {
	configPath := flag.String("config", "bodega.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	refreshInterval, err := time.ParseDuration(cfg.Analysis.EffectiveRefreshInterval())
	if err != nil {
		slog.Error("Invalid analysis refresh interval", "value", cfg.Analysis.EffectiveRefreshInterval(), "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	catalogStore := postgres.NewCatalogAdapter(dbAdapter.DB())
	userStore := postgres.NewUserAdapter(dbAdapter.DB())

	// 3. Initialize Services
	userSvc := users.NewService(userStore)
	catalogSvc := catalog.NewService(catalogStore)
	checkoutSvc := checkout.NewService(dbAdapter, cfg.Server.MaxBodySizeMB)

	pipeline := analysis.NewPipeline(analysis.MemoryEngine{}, cfg.Analysis.TopN)
	analysisSvc := analysis.NewService(dbAdapter, pipeline, cfg.Analysis.SnapshotPageSize, cfg.Analysis.ExportPath)

	// 3.1. Seed catalog + operator accounts on first start
	if cfg.Catalog.SeedOnStart {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := catalog.Seed(seedCtx, cfg.Catalog.SeedPath, catalogStore, userSvc); err != nil {
			cancel()
			slog.Error("Failed to seed catalog", "error", err)
			os.Exit(1)
		}
		cancel()
	}

	// 4. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	adminOnly := users.RequireAdmin()
	userSvc.RegisterRoutes(srv.Engine)
	catalogSvc.RegisterRoutes(srv.Engine, adminOnly)
	checkoutSvc.RegisterRoutes(srv.Engine, adminOnly)
	analysisSvc.RegisterRoutes(srv.Engine, adminOnly)

	// 5. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Periodic report refresh in background if enabled
	if cfg.Analysis.RefreshEnabled {
		scheduler := analysis.NewScheduler(refreshInterval, analysisSvc)
		go func() {
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Scheduler stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Analysis refresh scheduler disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
