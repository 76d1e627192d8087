package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbpkg "github.com/yungbote/careerpulse-backend/internal/data/db"
	types "github.com/yungbote/careerpulse-backend/internal/domain/career"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type WeeklyChecklistRepo interface {
	Get(dbc dbctx.Context, userID uuid.UUID, weekStart string) (*types.WeeklyChecklistState, error)
	Upsert(dbc dbctx.Context, row *types.WeeklyChecklistState) (*types.WeeklyChecklistState, error)
}

type weeklyChecklistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyChecklistRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyChecklistRepo {
	return &weeklyChecklistRepo{db: db, log: baseLog.With("repo", "WeeklyChecklistRepo")}
}

func (r *weeklyChecklistRepo) Get(dbc dbctx.Context, userID uuid.UUID, weekStart string) (*types.WeeklyChecklistState, error) {
	if userID == uuid.Nil || weekStart == "" {
		return nil, nil
	}
	var row types.WeeklyChecklistState
	err := dbc.DB(r.db).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Take(&row).Error
	if dbpkg.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert replaces the done map for (user, week) and returns the stored row.
func (r *weeklyChecklistRepo) Upsert(dbc dbctx.Context, row *types.WeeklyChecklistState) (*types.WeeklyChecklistState, error) {
	if row == nil || row.UserID == uuid.Nil || row.WeekStart == "" {
		return nil, nil
	}
	now := time.Now().UTC()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}
	if err := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"done_json", "updated_at"}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.Get(dbc, row.UserID, row.WeekStart)
}
