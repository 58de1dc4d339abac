package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"submission-tracker-service/internal/adapters/primary/http/handlers"
	"submission-tracker-service/internal/adapters/primary/http/middleware"
	"submission-tracker-service/internal/adapters/secondary/blobstore"
	"submission-tracker-service/internal/adapters/secondary/sqlstore"
	"submission-tracker-service/internal/config"
	"submission-tracker-service/internal/core/services"
	"submission-tracker-service/internal/core/validation"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	columnPolicy, lookupPolicy, err := validation.Policies(cfg.Validation.ColumnPolicy, cfg.Validation.LookupPolicy)
	if err != nil {
		log.Fatalf("validation: %v", err)
	}

	db, err := sqlstore.Open(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	log.WithField("driver", cfg.Database.Driver).Info("database connection established")

	blobs, err := blobstore.NewOnDisk(cfg.Blob.Root)
	if err != nil {
		log.Fatalf("open blob store: %v", err)
	}
	log.WithField("root", cfg.Blob.Root).Info("blob store ready")

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports)
	tableRepo := sqlstore.NewTableRepository(db)
	recordRepo := sqlstore.NewRecordRepository(db)
	artifactRepo := sqlstore.NewArtifactRepository(db)

	// Core Services (Application Layer)
	tableSvc := services.NewTableService(tableRepo, artifactRepo, blobs, columnPolicy)
	recordSvc := services.NewRecordService(tableRepo, recordRepo, artifactRepo, blobs, columnPolicy, lookupPolicy)
	artifactSvc := services.NewArtifactService(tableRepo, recordRepo, artifactRepo, blobs, lookupPolicy)
	statsSvc := services.NewStatsService(tableRepo, recordRepo, artifactRepo, blobs)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(tableSvc, recordSvc, artifactSvc, statsSvc, cfg.Blob.UploadMaxBytes)

	// Setup router
	router := gin.New()
	router.MaxMultipartMemory = cfg.Blob.UploadMaxBytes
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())

	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	// Health check with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
