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

type ReadinessSnapshotRepo interface {
	// InsertIfAbsent writes row unless (user, day) already has a snapshot and
	// returns the stored row either way. created reports whether row was written.
	InsertIfAbsent(dbc dbctx.Context, row *types.ReadinessSnapshot) (stored *types.ReadinessSnapshot, created bool, err error)
	GetByDate(dbc dbctx.Context, userID uuid.UUID, day string) (*types.ReadinessSnapshot, error)
	// ListRecent returns the newest limit snapshots in ascending date order.
	ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ReadinessSnapshot, error)
}

type readinessSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadinessSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) ReadinessSnapshotRepo {
	return &readinessSnapshotRepo{db: db, log: baseLog.With("repo", "ReadinessSnapshotRepo")}
}

func (r *readinessSnapshotRepo) InsertIfAbsent(dbc dbctx.Context, row *types.ReadinessSnapshot) (*types.ReadinessSnapshot, bool, error) {
	if row == nil || row.UserID == uuid.Nil || row.SnapshotDate == "" {
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
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "snapshot_date"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil && !dbpkg.IsUniqueViolation(res.Error) {
		return nil, false, res.Error
	}
	created := res.Error == nil && res.RowsAffected > 0
	stored, err := r.GetByDate(dbc, row.UserID, row.SnapshotDate)
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *readinessSnapshotRepo) GetByDate(dbc dbctx.Context, userID uuid.UUID, day string) (*types.ReadinessSnapshot, error) {
	if userID == uuid.Nil || day == "" {
		return nil, nil
	}
	var row types.ReadinessSnapshot
	err := dbc.DB(r.db).
		Where("user_id = ? AND snapshot_date = ?", userID, day).
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

func (r *readinessSnapshotRepo) ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ReadinessSnapshot, error) {
	var out []*types.ReadinessSnapshot
	if userID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 {
		limit = 30
	}
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("snapshot_date DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
