package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/ward-roster-api/api/swagger"
	"github.com/noah-isme/ward-roster-api/internal/handler"
	internalmiddleware "github.com/noah-isme/ward-roster-api/internal/middleware"
	"github.com/noah-isme/ward-roster-api/internal/repository"
	"github.com/noah-isme/ward-roster-api/internal/service"
	"github.com/noah-isme/ward-roster-api/pkg/cache"
	"github.com/noah-isme/ward-roster-api/pkg/config"
	"github.com/noah-isme/ward-roster-api/pkg/database"
	"github.com/noah-isme/ward-roster-api/pkg/export"
	"github.com/noah-isme/ward-roster-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ward-roster-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ward-roster-api/pkg/middleware/requestid"
)

// @title Ward Roster API
// @version 1.0.0
// @description Monthly shift-schedule generation for hospital departments
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, summary caching disabled", "error", err)
	}

	validate := validator.New()

	doctorRepo := repository.NewDoctorRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	unavailabilityRepo := repository.NewUnavailabilityRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Summary.CacheTTL, logr, true)
	} else {
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Summary.CacheTTL, logr, false)
	}

	authSvc := service.NewAuthService(cfg.JWT.Secret)
	doctorSvc := service.NewDoctorService(doctorRepo, serviceRepo, validate, logr)
	catalogSvc := service.NewCatalogService(serviceRepo, validate, logr)
	unavailabilitySvc := service.NewUnavailabilityService(unavailabilityRepo, doctorRepo, validate, logr)
	rosterSvc := service.NewRosterService(
		doctorRepo,
		serviceRepo,
		unavailabilityRepo,
		scheduleRepo,
		cacheSvc,
		metricsSvc,
		validate,
		logr,
		service.RosterConfig{
			ProposalTTL:       cfg.Roster.ProposalTTL,
			DepartmentOrder:   cfg.Roster.DepartmentOrder,
			WorkerConcurrency: cfg.Roster.WorkerConcurrency,
			WorkerRetries:     cfg.Roster.WorkerRetries,
		},
	)
	summarySvc := service.NewSummaryService(scheduleRepo, doctorRepo, serviceRepo, cacheSvc, cfg.Summary.CacheTTL, logr)
	exportSvc := service.NewExportService(
		scheduleRepo,
		doctorRepo,
		serviceRepo,
		service.ExportConfig{PDFTitle: cfg.Export.PDFTitle},
		logr,
		export.NewCSVExporter(),
		export.NewPDFExporter(),
	)

	doctorHandler := handler.NewDoctorHandler(doctorSvc)
	serviceHandler := handler.NewServiceHandler(catalogSvc)
	unavailabilityHandler := handler.NewUnavailabilityHandler(unavailabilitySvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc, summarySvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rosterSvc.StartWorkers(ctx)
	defer rosterSvc.StopWorkers()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "postgres": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := internalmiddleware.JWT(authSvc)
	planner := internalmiddleware.RequireRoles("planner", "admin")

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/metrics/snapshot", metricsHandler.Snapshot)

		doctors := api.Group("/doctors")
		{
			doctors.GET("", doctorHandler.List)
			doctors.GET("/:id", doctorHandler.Get)
			doctors.POST("", auth, planner, doctorHandler.Create)
			doctors.PUT("/:id", auth, planner, doctorHandler.Update)
			doctors.DELETE("/:id", auth, planner, doctorHandler.Delete)
			doctors.PUT("/:id/services", auth, planner, doctorHandler.SetServices)
		}

		services := api.Group("/services")
		{
			services.GET("", serviceHandler.List)
			services.GET("/:id", serviceHandler.Get)
			services.POST("", auth, planner, serviceHandler.Create)
			services.PUT("/:id", auth, planner, serviceHandler.Update)
			services.DELETE("/:id", auth, planner, serviceHandler.Delete)
		}

		unavailability := api.Group("/unavailability")
		{
			unavailability.GET("", unavailabilityHandler.List)
			unavailability.POST("", auth, planner, unavailabilityHandler.Create)
			unavailability.DELETE("/:id", auth, planner, unavailabilityHandler.Delete)
		}

		api.GET("/schedules", rosterHandler.Schedules)

		roster := api.Group("/roster")
		{
			roster.POST("/generate", auth, planner, rosterHandler.Generate)
			roster.POST("/publish", auth, planner, rosterHandler.Publish)
			roster.GET("/proposals/:id", auth, rosterHandler.Proposal)
			roster.POST("/runs", auth, planner, rosterHandler.StartRun)
			roster.GET("/runs/:id", auth, rosterHandler.Run)
			roster.GET("/summary", rosterHandler.Summary)
			roster.GET("/export", rosterHandler.Export)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
