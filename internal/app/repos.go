package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type Repos struct {
	Source        repos.SourceRepo
	ActivityEvent repos.ActivityEventRepo
	LoginStreak   repos.LoginStreakRepo

	Snapshot     repos.ReadinessSnapshotRepo
	ActionLock   repos.DailyActionLockRepo
	Checklist    repos.WeeklyChecklistRepo
	ApplyTracker repos.ApplyTrackerRepo
	Goal         repos.PersonalGoalRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Source:        repos.NewSourceRepo(db, log),
		ActivityEvent: repos.NewActivityEventRepo(db, log),
		LoginStreak:   repos.NewLoginStreakRepo(db, log),

		Snapshot:     repos.NewReadinessSnapshotRepo(db, log),
		ActionLock:   repos.NewDailyActionLockRepo(db, log),
		Checklist:    repos.NewWeeklyChecklistRepo(db, log),
		ApplyTracker: repos.NewApplyTrackerRepo(db, log),
		Goal:         repos.NewPersonalGoalRepo(db, log),
	}
}
