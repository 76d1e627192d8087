package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/services"
)

type Services struct {
	Readiness    services.ReadinessService
	ActionPlan   services.ActionPlanService
	ApplyTracker services.ApplyTrackerService
	Goal         services.GoalService
	Activity     services.ActivityService
}

func loadPolicy(log *logger.Logger, path string) (*policy.Policy, error) {
	if path == "" {
		log.Info("Using built-in readiness policy")
		return policy.Default(), nil
	}
	pol, err := policy.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load readiness policy %s: %w", path, err)
	}
	log.Info("Loaded readiness policy", "path", path, "roles", len(pol.Roles))
	return pol, nil
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clk clock.Clock, pol *policy.Policy, r Repos, c Clients) Services {
	log.Info("Wiring services...")

	var events services.EventPublisher
	if c.EventBus != nil {
		events = c.EventBus
	}

	plans := services.NewActionPlanService(db, log, clk, r.ActionLock, r.Checklist, events)
	return Services{
		Readiness: services.NewReadinessService(
			db, log, clk, pol,
			r.Source, r.ActivityEvent, r.LoginStreak, r.Snapshot,
			plans, events, cfg.DefaultLocation,
		),
		ActionPlan:   plans,
		ApplyTracker: services.NewApplyTrackerService(db, log, clk, r.ApplyTracker),
		Goal:         services.NewGoalService(db, log, clk, pol, r.Source, r.Goal),
		Activity:     services.NewActivityService(db, log, clk, r.Source, r.ActivityEvent, r.LoginStreak),
	}
}
