package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/careerpulse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/careerpulse-backend/internal/http/middleware"
	"github.com/yungbote/careerpulse-backend/internal/observability"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

const serviceName = "careerpulse-backend"

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	CORSOrigins    []string
	Metrics        *observability.Metrics

	ReadinessHandler    *httpH.ReadinessHandler
	ApplyTrackerHandler *httpH.ApplyTrackerHandler
	GoalHandler         *httpH.GoalHandler
	ActivityHandler     *httpH.ActivityHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	if cfg.Metrics != nil {
		r.Use(httpMW.Metrics(cfg.Metrics))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Readiness
		if cfg.ReadinessHandler != nil {
			protected.GET("/career/readiness", cfg.ReadinessHandler.GetReadiness)
			protected.PATCH("/career/weekly-checklist", cfg.ReadinessHandler.PatchWeeklyChecklist)
			protected.GET("/career/progress-delta", cfg.ReadinessHandler.ProgressDelta)
			protected.GET("/dashboard/stats", cfg.ReadinessHandler.Stats)
		}

		// Apply tracker
		if cfg.ApplyTrackerHandler != nil {
			protected.GET("/career/apply-tracker", cfg.ApplyTrackerHandler.List)
			protected.POST("/career/apply-tracker", cfg.ApplyTrackerHandler.Upsert)
			protected.GET("/career/apply-tracker/export", cfg.ApplyTrackerHandler.Export)
			protected.PATCH("/career/apply-tracker/:id", cfg.ApplyTrackerHandler.UpdateStatus)
			protected.DELETE("/career/apply-tracker/:id", cfg.ApplyTrackerHandler.Delete)
		}

		// Personal goals
		if cfg.GoalHandler != nil {
			protected.GET("/career/personal-goals", cfg.GoalHandler.List)
			protected.POST("/career/personal-goals", cfg.GoalHandler.Create)
			protected.PATCH("/career/personal-goals/:id", cfg.GoalHandler.Update)
			protected.DELETE("/career/personal-goals/:id", cfg.GoalHandler.Delete)
		}

		// Activity
		if cfg.ActivityHandler != nil {
			protected.POST("/activity/event", cfg.ActivityHandler.RecordEvent)
			protected.POST("/activity/login", cfg.ActivityHandler.TouchLogin)
			protected.GET("/activity/heatmap", cfg.ActivityHandler.Heatmap)
		}
	}

	return r
}
