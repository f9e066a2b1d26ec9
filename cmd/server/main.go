package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/handlers"
	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/primary/http/middleware"
	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/secondary/kube"
	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/secondary/objectstore"
	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/secondary/postgres"
	"github.com/aws-samples/build-language-models-on-aws/internal/adapters/secondary/runtime"
	"github.com/aws-samples/build-language-models-on-aws/internal/config"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/ports/output"
	"github.com/aws-samples/build-language-models-on-aws/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	// Secondary Adapters (Output Ports)
	pkgRepo := postgres.NewModelPackageRepository(pool)
	jobRepo := postgres.NewTrainingJobRepository(pool)
	endpointRepo := postgres.NewEndpointRepository(pool)

	store, err := objectstore.New(context.Background(), &cfg.Storage)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}
	log.Infof("object storage ready (bucket %s)", cfg.Storage.Bucket)

	// Launcher / Serving backends (Optional - based on config)
	var launcher ports.LauncherClient
	var serving ports.ServingClient
	if cfg.Kubernetes.Enabled {
		launcher, err = kube.NewLauncherClient(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("launcher init failed (continuing in registry-only mode): %v", err)
		} else {
			log.Info("training launcher initialized")
		}

		serving, err = kube.NewServingClient(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("serving backend init failed (continuing in registry-only mode): %v", err)
		} else {
			log.Info("serving backend initialized")
		}
	} else {
		log.Info("kubernetes integration disabled; running in registry-only mode")
	}

	invoker := runtime.NewInvoker(60 * time.Second)

	// Core Services (Application Layer)
	catalogSvc := services.NewCatalogService()
	packagingSvc := services.NewPackagingService(pkgRepo, endpointRepo, store)
	trainingSvc := services.NewTrainingService(jobRepo, launcher, cfg.Kubernetes.TrainingNS)
	endpointSvc := services.NewEndpointService(endpointRepo, pkgRepo, serving, cfg.Kubernetes.ServingNS)
	invokeSvc := services.NewInvocationService(endpointRepo, invoker)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(catalogSvc, packagingSvc, trainingSvc, endpointSvc, invokeSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/llm-platform")
	h.RegisterRoutes(api)

	// Health check with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
