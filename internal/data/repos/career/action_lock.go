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

type DailyActionLockRepo interface {
	InsertIfAbsent(dbc dbctx.Context, row *types.DailyActionLock) (stored *types.DailyActionLock, created bool, err error)
	GetByDate(dbc dbctx.Context, userID uuid.UUID, day string) (*types.DailyActionLock, error)
}

type dailyActionLockRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyActionLockRepo(db *gorm.DB, baseLog *logger.Logger) DailyActionLockRepo {
	return &dailyActionLockRepo{db: db, log: baseLog.With("repo", "DailyActionLockRepo")}
}

func (r *dailyActionLockRepo) InsertIfAbsent(dbc dbctx.Context, row *types.DailyActionLock) (*types.DailyActionLock, bool, error) {
	if row == nil || row.UserID == uuid.Nil || row.ActionDate == "" {
		return nil, false, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "action_date"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil && !dbpkg.IsUniqueViolation(res.Error) {
		return nil, false, res.Error
	}
	created := res.Error == nil && res.RowsAffected > 0
	stored, err := r.GetByDate(dbc, row.UserID, row.ActionDate)
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *dailyActionLockRepo) GetByDate(dbc dbctx.Context, userID uuid.UUID, day string) (*types.DailyActionLock, error) {
	if userID == uuid.Nil || day == "" {
		return nil, nil
	}
	var row types.DailyActionLock
	err := dbc.DB(r.db).
		Where("user_id = ? AND action_date = ?", userID, day).
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
