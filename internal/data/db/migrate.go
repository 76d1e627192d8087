package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/domain/career"
	"github.com/yungbote/careerpulse-backend/internal/domain/metrics"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// =========================
		// Metric sources (written by collaborators)
		// =========================
		&metrics.CodeSubmission{},
		&metrics.ResumeAnalysis{},
		&metrics.InterviewEvaluation{},
		&metrics.LearningSession{},
		&metrics.ActivityEvent{},
		&metrics.LoginStreak{},
		&metrics.LearnerProfile{},

		// =========================
		// Readiness engine state
		// =========================
		&career.ReadinessSnapshot{},
		&career.DailyActionLock{},
		&career.WeeklyChecklistState{},
		&career.ApplyTrackerItem{},
		&career.PersonalGoal{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureReadinessIndexes(db)
}

// EnsureReadinessIndexes adds the (user_id, created_at) read-path indexes.
// The statements are portable across Postgres and SQLite.
func EnsureReadinessIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_code_submission_user_created", `CREATE INDEX IF NOT EXISTS idx_code_submission_user_created ON code_submission (user_id, created_at);`},
		{"idx_resume_analysis_user_created", `CREATE INDEX IF NOT EXISTS idx_resume_analysis_user_created ON resume_analysis (user_id, created_at);`},
		{"idx_interview_evaluation_user_created", `CREATE INDEX IF NOT EXISTS idx_interview_evaluation_user_created ON interview_evaluation (user_id, created_at);`},
		{"idx_learning_session_user_created", `CREATE INDEX IF NOT EXISTS idx_learning_session_user_created ON learning_session (user_id, created_at);`},
		{"idx_activity_event_user_type_created", `CREATE INDEX IF NOT EXISTS idx_activity_event_user_type_created ON activity_event (user_id, event_type, created_at);`},
		{"idx_apply_tracker_user_updated", `CREATE INDEX IF NOT EXISTS idx_apply_tracker_user_updated ON apply_tracker (user_id, updated_at);`},
		{"idx_personal_goal_user_created", `CREATE INDEX IF NOT EXISTS idx_personal_goal_user_created ON personal_goal (user_id, created_at);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
