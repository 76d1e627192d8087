package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/yungbote/careerpulse-backend/internal/data/db"
	types "github.com/yungbote/careerpulse-backend/internal/domain/career"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type PersonalGoalRepo interface {
	Create(dbc dbctx.Context, row *types.PersonalGoal) (*types.PersonalGoal, error)
	List(dbc dbctx.Context, userID uuid.UUID) ([]*types.PersonalGoal, error)
	GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.PersonalGoal, error)
	UpdateFields(dbc dbctx.Context, userID, id uuid.UUID, updates map[string]interface{}) (bool, error)
	Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error)
}

type personalGoalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonalGoalRepo(db *gorm.DB, baseLog *logger.Logger) PersonalGoalRepo {
	return &personalGoalRepo{db: db, log: baseLog.With("repo", "PersonalGoalRepo")}
}

func (r *personalGoalRepo) Create(dbc dbctx.Context, row *types.PersonalGoal) (*types.PersonalGoal, error) {
	if row == nil {
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
		row.UpdatedAt = row.CreatedAt
	}
	if err := dbc.DB(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *personalGoalRepo) List(dbc dbctx.Context, userID uuid.UUID) ([]*types.PersonalGoal, error) {
	var out []*types.PersonalGoal
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *personalGoalRepo) GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.PersonalGoal, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.PersonalGoal
	err := dbc.DB(r.db).Where("id = ? AND user_id = ?", id, userID).Take(&row).Error
	if dbpkg.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *personalGoalRepo) UpdateFields(dbc dbctx.Context, userID, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	res := dbc.DB(r.db).
		Model(&types.PersonalGoal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *personalGoalRepo) Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.PersonalGoal{})
	return res.RowsAffected > 0, res.Error
}
