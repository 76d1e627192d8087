package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/data/repos/career"
	"github.com/yungbote/careerpulse-backend/internal/data/repos/metrics"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type SourceRepo = metrics.SourceRepo
type SourceTotals = metrics.Totals
type SourceAggregate = metrics.Aggregate
type ActivityEventRepo = metrics.ActivityEventRepo
type LoginStreakRepo = metrics.LoginStreakRepo

type ReadinessSnapshotRepo = career.ReadinessSnapshotRepo
type DailyActionLockRepo = career.DailyActionLockRepo
type WeeklyChecklistRepo = career.WeeklyChecklistRepo
type ApplyTrackerRepo = career.ApplyTrackerRepo
type PersonalGoalRepo = career.PersonalGoalRepo

func NewSourceRepo(db *gorm.DB, baseLog *logger.Logger) SourceRepo {
	return metrics.NewSourceRepo(db, baseLog)
}
func NewActivityEventRepo(db *gorm.DB, baseLog *logger.Logger) ActivityEventRepo {
	return metrics.NewActivityEventRepo(db, baseLog)
}
func NewLoginStreakRepo(db *gorm.DB, baseLog *logger.Logger) LoginStreakRepo {
	return metrics.NewLoginStreakRepo(db, baseLog)
}

func NewReadinessSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) ReadinessSnapshotRepo {
	return career.NewReadinessSnapshotRepo(db, baseLog)
}
func NewDailyActionLockRepo(db *gorm.DB, baseLog *logger.Logger) DailyActionLockRepo {
	return career.NewDailyActionLockRepo(db, baseLog)
}
func NewWeeklyChecklistRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyChecklistRepo {
	return career.NewWeeklyChecklistRepo(db, baseLog)
}
func NewApplyTrackerRepo(db *gorm.DB, baseLog *logger.Logger) ApplyTrackerRepo {
	return career.NewApplyTrackerRepo(db, baseLog)
}
func NewPersonalGoalRepo(db *gorm.DB, baseLog *logger.Logger) PersonalGoalRepo {
	return career.NewPersonalGoalRepo(db, baseLog)
}
