package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/classwise/timetabler/internal/catalogstore"
	"github.com/classwise/timetabler/internal/compilecache"
	internalhandler "github.com/classwise/timetabler/internal/handler"
	jobstore "github.com/classwise/timetabler/internal/jobs"
	internalmiddleware "github.com/classwise/timetabler/internal/middleware"
	"github.com/classwise/timetabler/internal/metrics"
	"github.com/classwise/timetabler/internal/service"
	"github.com/classwise/timetabler/pkg/cache"
	"github.com/classwise/timetabler/pkg/config"
	"github.com/classwise/timetabler/pkg/jobs"
	"github.com/classwise/timetabler/pkg/logger"
	corsmiddleware "github.com/classwise/timetabler/pkg/middleware/cors"
	reqidmiddleware "github.com/classwise/timetabler/pkg/middleware/requestid"
)

// @title Timetabler API
// @version 0.1.0
// @description Randomized conflict-free schedule generation service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	metricsHandler := internalhandler.NewMetricsHandler(m)

	var cacheRepo compilecache.Repository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("compile cache disabled, redis unavailable", "error", err)
		} else {
			defer client.Close()
			cacheRepo = compilecache.NewRedisRepository(client, logr)
		}
	}
	compileCache := compilecache.New(cacheRepo, m, logr, compilecache.Config{
		Enabled:    cfg.Cache.Enabled && cacheRepo != nil,
		DefaultTTL: cfg.Cache.TTL,
	})

	catalogs := catalogstore.NewStore(cfg.JobQueue.JobTTL)
	jobRecords := jobstore.NewStore(cfg.JobQueue.JobTTL)

	generatorSvc := service.NewScheduleGeneratorService(
		catalogs,
		compileCache,
		jobRecords,
		nil,
		validator.New(),
		m,
		logr,
		cfg.Generator,
	)

	queueCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	generatorQueue := jobs.NewQueue("generate", generatorSvc.Handle, jobs.QueueConfig{
		Workers:    cfg.JobQueue.Workers,
		MaxRetries: cfg.JobQueue.MaxRetries,
		RetryDelay: cfg.JobQueue.RetryDelay,
		Logger:     logr,
	})
	generatorQueue.Start(queueCtx)
	defer generatorQueue.Stop()
	generatorSvc.AttachQueue(generatorQueue)

	generatorHandler := internalhandler.NewScheduleGeneratorHandler(generatorSvc)
	catalogHandler := internalhandler.NewCatalogHandler(catalogs)
	configHandler := internalhandler.NewConfigHandler()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(m))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/snapshot", metricsHandler.Snapshot)

	api := r.Group(cfg.APIPrefix)

	api.POST("/catalogs", catalogHandler.Ingest)

	api.GET("/configurations", configHandler.Get)
	api.PUT("/configurations", configHandler.Put)

	schedulesGroup := api.Group("/schedules")
	schedulesGroup.Use(internalmiddleware.WithResponseMeta())
	schedulesGroup.POST("/generate", generatorHandler.Generate)
	schedulesGroup.GET("/jobs/:id", generatorHandler.Job)
	schedulesGroup.GET("/jobs/:id/export", generatorHandler.Export)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
