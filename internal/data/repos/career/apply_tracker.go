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

type ApplyTrackerRepo interface {
	// UpsertByURL inserts row or, when (user, url) exists, updates role, source,
	// match tag, status and updated_at in place. created_at is never rewritten.
	UpsertByURL(dbc dbctx.Context, row *types.ApplyTrackerItem) (*types.ApplyTrackerItem, error)
	List(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ApplyTrackerItem, error)
	GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.ApplyTrackerItem, error)
	GetByURL(dbc dbctx.Context, userID uuid.UUID, url string) (*types.ApplyTrackerItem, error)
	UpdateStatus(dbc dbctx.Context, userID, id uuid.UUID, status string, at time.Time) (bool, error)
	Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error)
}

type applyTrackerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApplyTrackerRepo(db *gorm.DB, baseLog *logger.Logger) ApplyTrackerRepo {
	return &applyTrackerRepo{db: db, log: baseLog.With("repo", "ApplyTrackerRepo")}
}

func (r *applyTrackerRepo) UpsertByURL(dbc dbctx.Context, row *types.ApplyTrackerItem) (*types.ApplyTrackerItem, error) {
	if row == nil || row.UserID == uuid.Nil || row.URL == "" {
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
			Columns: []clause.Column{{Name: "user_id"}, {Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"role",
				"source",
				"match_tag",
				"status",
				"updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByURL(dbc, row.UserID, row.URL)
}

func (r *applyTrackerRepo) List(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ApplyTrackerItem, error) {
	var out []*types.ApplyTrackerItem
	if userID == uuid.Nil {
		return out, nil
	}
	q := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *applyTrackerRepo) take(dbc dbctx.Context, query string, args ...any) (*types.ApplyTrackerItem, error) {
	var row types.ApplyTrackerItem
	err := dbc.DB(r.db).Where(query, args...).Take(&row).Error
	if dbpkg.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *applyTrackerRepo) GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.ApplyTrackerItem, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	return r.take(dbc, "id = ? AND user_id = ?", id, userID)
}

func (r *applyTrackerRepo) GetByURL(dbc dbctx.Context, userID uuid.UUID, url string) (*types.ApplyTrackerItem, error) {
	if userID == uuid.Nil || url == "" {
		return nil, nil
	}
	return r.take(dbc, "user_id = ? AND url = ?", userID, url)
}

func (r *applyTrackerRepo) UpdateStatus(dbc dbctx.Context, userID, id uuid.UUID, status string, at time.Time) (bool, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	res := dbc.DB(r.db).
		Model(&types.ApplyTrackerItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *applyTrackerRepo) Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.ApplyTrackerItem{})
	return res.RowsAffected > 0, res.Error
}
