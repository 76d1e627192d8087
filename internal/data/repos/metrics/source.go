package metrics

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/yungbote/careerpulse-backend/internal/data/db"
	types "github.com/yungbote/careerpulse-backend/internal/domain/metrics"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

// Aggregate is a row count with the SQL average of one score column.
// Avg is nil when no row carries a score.
type Aggregate struct {
	Count int64    `gorm:"column:n"`
	Avg   *float64 `gorm:"column:avg"`
}

// Totals are the whole-history aggregates the dashboard stats and goals read.
type Totals struct {
	Submissions Aggregate
	Resumes     Aggregate
	Interviews  Aggregate
	Learning    Aggregate
}

// SourceRepo reads the metric rows written by other collaborators. It returns
// raw rows and never interprets timestamps or scores.
type SourceRepo interface {
	Totals(dbc dbctx.Context, userID uuid.UUID) (*Totals, error)
	ListSubmissions(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.CodeSubmission, error)
	LatestResume(dbc dbctx.Context, userID uuid.UUID) (*types.ResumeAnalysis, error)
	ListInterviews(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.InterviewEvaluation, error)
	LearningTimestamps(dbc dbctx.Context, userID uuid.UUID, since string, limit int) ([]string, error)
	LearningTopics(dbc dbctx.Context, userID uuid.UUID, limit int) ([]string, error)
	ActivityTimestamps(dbc dbctx.Context, userID uuid.UUID, since string) ([]string, error)
	GetProfile(dbc dbctx.Context, userID uuid.UUID) (*types.LearnerProfile, error)
}

type sourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourceRepo(db *gorm.DB, baseLog *logger.Logger) SourceRepo {
	return &sourceRepo{db: db, log: baseLog.With("repo", "SourceRepo")}
}

func (r *sourceRepo) aggregate(dbc dbctx.Context, model any, scoreCol string, userID uuid.UUID) (Aggregate, error) {
	var out Aggregate
	sel := "COUNT(*) AS n, NULL AS avg"
	if scoreCol != "" {
		sel = "COUNT(*) AS n, AVG(" + scoreCol + ") AS avg"
	}
	err := dbc.DB(r.db).
		Model(model).
		Select(sel).
		Where("user_id = ?", userID).
		Scan(&out).Error
	return out, err
}

func (r *sourceRepo) Totals(dbc dbctx.Context, userID uuid.UUID) (*Totals, error) {
	out := &Totals{}
	if userID == uuid.Nil {
		return out, nil
	}
	var err error
	if out.Submissions, err = r.aggregate(dbc, &types.CodeSubmission{}, "score", userID); err != nil {
		return nil, err
	}
	if out.Resumes, err = r.aggregate(dbc, &types.ResumeAnalysis{}, "credibility_score", userID); err != nil {
		return nil, err
	}
	if out.Interviews, err = r.aggregate(dbc, &types.InterviewEvaluation{}, "readiness_score", userID); err != nil {
		return nil, err
	}
	if out.Learning, err = r.aggregate(dbc, &types.LearningSession{}, "", userID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sourceRepo) ListSubmissions(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.CodeSubmission, error) {
	var out []*types.CodeSubmission
	if userID == uuid.Nil {
		return out, nil
	}
	q := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sourceRepo) LatestResume(dbc dbctx.Context, userID uuid.UUID) (*types.ResumeAnalysis, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.ResumeAnalysis
	err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Take(&row).Error
	if dbpkg.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *sourceRepo) ListInterviews(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.InterviewEvaluation, error) {
	var out []*types.InterviewEvaluation
	if userID == uuid.Nil {
		return out, nil
	}
	q := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LearningTimestamps returns raw created_at values, newest first. An empty
// since reads the whole history.
func (r *sourceRepo) LearningTimestamps(dbc dbctx.Context, userID uuid.UUID, since string, limit int) ([]string, error) {
	var out []string
	if userID == uuid.Nil {
		return out, nil
	}
	q := dbc.DB(r.db).
		Model(&types.LearningSession{}).
		Where("user_id = ?", userID)
	if since != "" {
		q = q.Where("created_at >= ?", since)
	}
	q = q.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("created_at", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LearningTopics returns distinct non-blank topics in recency order, read from
// the newest limit sessions.
func (r *sourceRepo) LearningTopics(dbc dbctx.Context, userID uuid.UUID, limit int) ([]string, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var raw []string
	q := dbc.DB(r.db).
		Model(&types.LearningSession{}).
		Where("user_id = ? AND topic IS NOT NULL AND TRIM(topic) <> ''", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("topic", &raw).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

const activityUnionSQL = `
SELECT created_at FROM learning_session WHERE user_id = ? AND created_at >= ?
UNION ALL
SELECT created_at FROM code_submission WHERE user_id = ? AND created_at >= ?
UNION ALL
SELECT created_at FROM resume_analysis WHERE user_id = ? AND created_at >= ?
UNION ALL
SELECT created_at FROM interview_evaluation WHERE user_id = ? AND created_at >= ?
UNION ALL
SELECT created_at FROM activity_event WHERE user_id = ? AND created_at >= ?`

// ActivityTimestamps unions created_at across every source table since the cutoff text.
func (r *sourceRepo) ActivityTimestamps(dbc dbctx.Context, userID uuid.UUID, since string) ([]string, error) {
	var out []string
	if userID == uuid.Nil {
		return out, nil
	}
	args := make([]any, 0, 10)
	for i := 0; i < 5; i++ {
		args = append(args, userID, since)
	}
	if err := dbc.DB(r.db).Raw(activityUnionSQL, args...).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sourceRepo) GetProfile(dbc dbctx.Context, userID uuid.UUID) (*types.LearnerProfile, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.LearnerProfile
	err := dbc.DB(r.db).Where("user_id = ?", userID).Take(&row).Error
	if dbpkg.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
