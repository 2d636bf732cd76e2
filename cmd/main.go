package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vmduarte/conciliador-backend/internal/config"
	"github.com/vmduarte/conciliador-backend/internal/db"
	"github.com/vmduarte/conciliador-backend/internal/extract"
	httpServer "github.com/vmduarte/conciliador-backend/internal/http"
	httpH "github.com/vmduarte/conciliador-backend/internal/http/handlers"
	"github.com/vmduarte/conciliador-backend/internal/observability"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
	"github.com/vmduarte/conciliador-backend/internal/platform/openai"
	"github.com/vmduarte/conciliador-backend/internal/reconcile"
	"github.com/vmduarte/conciliador-backend/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing (no-op unless OTEL_ENABLED)
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "conciliador",
		Environment: cfg.LogMode,
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("Could not create upload dir", "dir", cfg.UploadDir, "error", err)
	}

	// Database + repos
	dbService, err := db.NewService(log, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database migration failed", "error", err)
	}
	runRepo := repos.NewRunRepo(dbService.DB(), log)

	// Oracle client
	oracleClient, err := openai.NewClient(log, openai.Options{
		Model:       cfg.OracleModel,
		Temperature: cfg.OracleTemperature,
	})
	if err != nil {
		log.Fatal("Could not init OpenAI client", "error", err)
	}

	// Pipeline
	extractor := extract.NewExtractor(log)
	comparator := reconcile.NewOracleComparator(log, oracleClient)
	emitter := reconcile.NewEmitter(log)
	reconcileService := reconcile.NewService(log, extractor, comparator, emitter, cfg.MaxCharsPerDoc, cfg.UploadDir)

	// HTTP
	server := httpServer.NewServer(httpServer.RouterConfig{
		Log:              log,
		CORSOrigins:      cfg.CORSOrigins,
		HealthHandler:    httpH.NewHealthHandler(),
		ReconcileHandler: httpH.NewReconcileHandler(log, reconcileService, runRepo, cfg.UploadDir),
		RunHandler:       httpH.NewRunHandler(log, runRepo),
		ChatHandler:      httpH.NewChatHandler(log, oracleClient),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("Server starting", "addr", addr)
	if err := server.Run(addr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
