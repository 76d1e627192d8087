package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/http"
	httpH "github.com/yungbote/careerpulse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/careerpulse-backend/internal/http/middleware"
	"github.com/yungbote/careerpulse-backend/internal/observability"
	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health       *httpH.HealthHandler
	Readiness    *httpH.ReadinessHandler
	ApplyTracker *httpH.ApplyTrackerHandler
	Goal         *httpH.GoalHandler
	Activity     *httpH.ActivityHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, clk clock.Clock, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(db),
		Readiness:    httpH.NewReadinessHandler(log, services.Readiness, services.ActionPlan),
		ApplyTracker: httpH.NewApplyTrackerHandler(log, services.ApplyTracker, clk),
		Goal:         httpH.NewGoalHandler(log, services.Goal),
		Activity:     httpH.NewActivityHandler(log, services.Activity),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                 log,
		AuthMiddleware:      middleware.Auth,
		CORSOrigins:         cfg.CORSOrigins,
		Metrics:             metrics,
		HealthHandler:       handlers.Health,
		ReadinessHandler:    handlers.Readiness,
		ApplyTrackerHandler: handlers.ApplyTracker,
		GoalHandler:         handlers.Goal,
		ActivityHandler:     handlers.Activity,
	})
}
