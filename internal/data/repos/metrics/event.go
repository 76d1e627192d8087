package metrics

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/careerpulse-backend/internal/domain/metrics"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

type ActivityEventRepo interface {
	Create(dbc dbctx.Context, rows []*types.ActivityEvent) ([]*types.ActivityEvent, error)
	ListSince(dbc dbctx.Context, userID uuid.UUID, since string, eventTypes []string) ([]*types.ActivityEvent, error)
}

type activityEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityEventRepo(db *gorm.DB, baseLog *logger.Logger) ActivityEventRepo {
	return &activityEventRepo{db: db, log: baseLog.With("repo", "ActivityEventRepo")}
}

func (r *activityEventRepo) Create(dbc dbctx.Context, rows []*types.ActivityEvent) ([]*types.ActivityEvent, error) {
	if len(rows) == 0 {
		return []*types.ActivityEvent{}, nil
	}
	for _, row := range rows {
		if row != nil && row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListSince returns events at or after the cutoff text, oldest first. An empty
// eventTypes reads every type.
func (r *activityEventRepo) ListSince(dbc dbctx.Context, userID uuid.UUID, since string, eventTypes []string) ([]*types.ActivityEvent, error) {
	var out []*types.ActivityEvent
	if userID == uuid.Nil {
		return out, nil
	}
	q := dbc.DB(r.db).
		Where("user_id = ? AND created_at >= ?", userID, since)
	if len(eventTypes) > 0 {
		q = q.Where("event_type IN ?", eventTypes)
	}
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
