package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/user-directory/api/swagger"
	"github.com/noah-isme/user-directory/internal/handler"
	"github.com/noah-isme/user-directory/internal/middleware"
	"github.com/noah-isme/user-directory/internal/repository"
	"github.com/noah-isme/user-directory/internal/service"
	"github.com/noah-isme/user-directory/pkg/cache"
	"github.com/noah-isme/user-directory/pkg/config"
	"github.com/noah-isme/user-directory/pkg/logger"
	corsmiddleware "github.com/noah-isme/user-directory/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/user-directory/pkg/middleware/requestid"
)

// @title User Directory API
// @version 1.0.0
// @description Filter, sort and page through a directory of people loaded once from randomuser.me
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	var redisClient redis.UniversalClient
	if cfg.ViewCache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, view cache disabled", zap.Error(err))
		} else {
			redisClient = client
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.ViewCache.TTL, logr, redisClient != nil)

	directorySvc := service.NewDirectoryService(repository.NewRecordSource(cfg.Source, logr), cacheSvc, metricsSvc, cfg.View, logr)
	directorySvc.LoadAsync(ctx)

	directoryHandler := handler.NewDirectoryHandler(directorySvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, directorySvc.Ready())

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	api.GET("/users", directoryHandler.List)
	api.GET("/users/:id", directoryHandler.Get)
	api.GET("/countries", directoryHandler.Countries)
	api.GET("/status", directoryHandler.Status)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Warn("server shutdown failed", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "source", cfg.Source.URL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}

	evictCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := directorySvc.Evict(evictCtx); err != nil {
		logr.Warn("view cache eviction failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
