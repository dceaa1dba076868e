package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rosterly/shift-solver-api/api/swagger"
	"github.com/rosterly/shift-solver-api/internal/handler"
	"github.com/rosterly/shift-solver-api/internal/middleware"
	"github.com/rosterly/shift-solver-api/internal/service"
	"github.com/rosterly/shift-solver-api/pkg/config"
	"github.com/rosterly/shift-solver-api/pkg/logger"
	corsmiddleware "github.com/rosterly/shift-solver-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rosterly/shift-solver-api/pkg/middleware/requestid"
)

// @title Shift Solver API
// @version 0.1.0
// @description Constraint-based employee shift scheduling
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

	metricsSvc := service.NewMetricsService()
	scheduleSvc := service.NewScheduleService(validator.New(), logr, metricsSvc, cfg.Solver)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(logr)
	}

	scheduleHandler := newScheduleHandler(scheduleSvc, exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Shift Scheduler API is running"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	api.POST("/schedule", scheduleHandler.Generate)
	api.POST("/test", scheduleHandler.Echo)
	if cfg.Export.Enabled {
		api.POST("/schedule/export", scheduleHandler.Export)
	}

	if cfg.Docs.Enabled || cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newScheduleHandler keeps a nil export service from becoming a non-nil
// interface value inside the handler.
func newScheduleHandler(svc *service.ScheduleService, exportSvc *service.ExportService) *handler.ScheduleHandler {
	if exportSvc == nil {
		return handler.NewScheduleHandler(svc, nil)
	}
	return handler.NewScheduleHandler(svc, exportSvc)
}
