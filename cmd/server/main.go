package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/inspectform/inspectform/internal/audit"
	"github.com/inspectform/inspectform/internal/config"
	"github.com/inspectform/inspectform/internal/extract"
	"github.com/inspectform/inspectform/internal/logging"
	"github.com/inspectform/inspectform/internal/schema"
	"github.com/inspectform/inspectform/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"workbook", cfg.Workbook.Path,
		"results_dir", cfg.Export.Dir,
		"audit_enabled", cfg.Database.URL != "",
	)

	registry, err := schema.LoadFile(cfg.Workbook.SchemaFile)
	if err != nil {
		slog.Error("failed to load schema registry", "error", err)
		os.Exit(1)
	}
	slog.Info("schema registry loaded",
		"forms", len(registry.Forms()),
		"field_segments", len(registry.Segments()),
		"override", cfg.Workbook.SchemaFile != "",
	)

	ctx := context.Background()

	// The submission log is optional: without a database URL the service
	// runs extraction and export only.
	var auditStore *audit.Store
	if cfg.Database.URL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		auditStore, err = audit.NewStore(ctx, pool)
		if err != nil {
			slog.Error("failed to initialize submission log", "error", err)
			os.Exit(1)
		}
		slog.Info("submission log enabled")
	}

	service := extract.NewService(registry)
	server := web.NewServer(cfg, service, auditStore)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
