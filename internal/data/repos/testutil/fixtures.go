package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/domain/metrics"
	"github.com/yungbote/careerpulse-backend/internal/readiness/activity"
)

func F(v float64) *float64 { return &v }
func I(v int) *int         { return &v }

func create(tb testing.TB, tx *gorm.DB, what string, row any) {
	tb.Helper()
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed %s: %v", what, err)
	}
}

func SeedSubmission(tb testing.TB, tx *gorm.DB, userID uuid.UUID, at time.Time, score *float64, passed bool, topic, difficulty string) *metrics.CodeSubmission {
	tb.Helper()
	row := &metrics.CodeSubmission{
		ID:         uuid.New(),
		UserID:     userID,
		Topic:      topic,
		Difficulty: difficulty,
		Passed:     passed,
		Score:      score,
		CreatedAt:  activity.Format(at),
	}
	create(tb, tx, "code submission", row)
	return row
}

func SeedResume(tb testing.TB, tx *gorm.DB, userID uuid.UUID, at time.Time, credibility *float64, text string) *metrics.ResumeAnalysis {
	tb.Helper()
	row := &metrics.ResumeAnalysis{
		ID:               uuid.New(),
		UserID:           userID,
		Filename:         "resume.pdf",
		TextContent:      text,
		CredibilityScore: credibility,
		CreatedAt:        activity.Format(at),
	}
	create(tb, tx, "resume analysis", row)
	return row
}

func SeedInterview(tb testing.TB, tx *gorm.DB, userID uuid.UUID, at time.Time, readiness *float64, kind string) *metrics.InterviewEvaluation {
	tb.Helper()
	row := &metrics.InterviewEvaluation{
		ID:             uuid.New(),
		UserID:         userID,
		InterviewType:  kind,
		ReadinessScore: readiness,
		CreatedAt:      activity.Format(at),
	}
	create(tb, tx, "interview evaluation", row)
	return row
}

func SeedLearning(tb testing.TB, tx *gorm.DB, userID uuid.UUID, at time.Time, topic string) *metrics.LearningSession {
	tb.Helper()
	row := &metrics.LearningSession{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     topic,
		CreatedAt: activity.Format(at),
	}
	create(tb, tx, "learning session", row)
	return row
}

// SeedRawLearning stores a learning session with a verbatim created_at value.
func SeedRawLearning(tb testing.TB, tx *gorm.DB, userID uuid.UUID, createdAt string) {
	tb.Helper()
	create(tb, tx, "learning session", &metrics.LearningSession{ID: uuid.New(), UserID: userID, CreatedAt: createdAt})
}

func SeedEvent(tb testing.TB, tx *gorm.DB, userID uuid.UUID, at time.Time, eventType, path string, duration *int) *metrics.ActivityEvent {
	tb.Helper()
	row := &metrics.ActivityEvent{
		ID:              uuid.New(),
		UserID:          userID,
		EventType:       eventType,
		Path:            path,
		DurationSeconds: duration,
		CreatedAt:       activity.Format(at),
	}
	create(tb, tx, "activity event", row)
	return row
}

func SeedProfile(tb testing.TB, tx *gorm.DB, userID uuid.UUID, profileJSON string) {
	tb.Helper()
	create(tb, tx, "learner profile", &metrics.LearnerProfile{
		UserID:      userID,
		ProfileData: datatypes.JSON([]byte(profileJSON)),
		UpdatedAt:   time.Now().UTC(),
	})
}
