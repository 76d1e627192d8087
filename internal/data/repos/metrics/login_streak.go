package metrics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbpkg "github.com/yungbote/careerpulse-backend/internal/data/db"
	types "github.com/yungbote/careerpulse-backend/internal/domain/metrics"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type LoginStreakRepo interface {
	Get(dbc dbctx.Context, userID uuid.UUID) (*types.LoginStreak, error)
	Upsert(dbc dbctx.Context, row *types.LoginStreak) error
}

type loginStreakRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoginStreakRepo(db *gorm.DB, baseLog *logger.Logger) LoginStreakRepo {
	return &loginStreakRepo{db: db, log: baseLog.With("repo", "LoginStreakRepo")}
}

func (r *loginStreakRepo) Get(dbc dbctx.Context, userID uuid.UUID) (*types.LoginStreak, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.LoginStreak
	err := dbc.DB(r.db).Where("user_id = ?", userID).Take(&row).Error
	if dbpkg.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *loginStreakRepo) Upsert(dbc dbctx.Context, row *types.LoginStreak) error {
	if row == nil || row.UserID == uuid.Nil {
		return nil
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_streak",
				"longest_streak",
				"last_login_at",
				"updated_at",
			}),
		}).
		Create(row).Error
}
