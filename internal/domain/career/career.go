package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReadinessSnapshot is the first composite score computed for a user on a UTC day.
type ReadinessSnapshot struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_readiness_snapshot_user_day,priority:1" json:"user_id"`
	SnapshotDate   string         `gorm:"column:snapshot_date;not null;uniqueIndex:idx_readiness_snapshot_user_day,priority:2" json:"snapshot_date"`
	ReadinessScore float64        `gorm:"column:readiness_score;not null" json:"readiness_score"`
	BreakdownJSON  datatypes.JSON `gorm:"column:breakdown_json" json:"breakdown"`
	CreatedAt      time.Time      `gorm:"column:created_at;not null;index" json:"created_at"`
}

func (ReadinessSnapshot) TableName() string { return "readiness_snapshot" }

// DailyActionLock pins the best action chosen at a user's first view of the day.
type DailyActionLock struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_daily_action_lock_user_day,priority:1" json:"user_id"`
	ActionDate string         `gorm:"column:action_date;not null;uniqueIndex:idx_daily_action_lock_user_day,priority:2" json:"action_date"`
	ActionJSON datatypes.JSON `gorm:"column:action_json;not null" json:"action"`
	CreatedAt  time.Time      `gorm:"column:created_at;not null;index" json:"created_at"`
}

func (DailyActionLock) TableName() string { return "daily_action_lock" }

// WeeklyChecklistState maps checklist item ids to completion for one Monday-started week.
type WeeklyChecklistState struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_checklist_user_week,priority:1" json:"user_id"`
	WeekStart string         `gorm:"column:week_start;not null;uniqueIndex:idx_weekly_checklist_user_week,priority:2" json:"week_start"`
	DoneJSON  datatypes.JSON `gorm:"column:done_json;not null" json:"done_map"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (WeeklyChecklistState) TableName() string { return "weekly_checklist_state" }

const (
	ApplyStatusPlanned   = "planned"
	ApplyStatusApplied   = "applied"
	ApplyStatusInterview = "interview"
	ApplyStatusOffer     = "offer"
	ApplyStatusRejected  = "rejected"
)

type ApplyTrackerItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_apply_tracker_user_url,priority:1" json:"user_id"`
	Role      string    `gorm:"column:role;not null" json:"role"`
	Source    string    `gorm:"column:source;not null" json:"source"`
	URL       string    `gorm:"column:url;not null;uniqueIndex:idx_apply_tracker_user_url,priority:2" json:"url"`
	MatchTag  *string   `gorm:"column:match_tag" json:"match_tag"`
	Status    string    `gorm:"column:status;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index" json:"updated_at"`
}

func (ApplyTrackerItem) TableName() string { return "apply_tracker" }

const (
	GoalCoding    = "coding"
	GoalResume    = "resume"
	GoalInterview = "interview"
	GoalLearning  = "learning"
	GoalStreak    = "streak"
	GoalReadiness = "readiness"
	GoalCustom    = "custom"
)

type PersonalGoal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Category  string    `gorm:"column:category;not null;default:custom" json:"category"`
	Target    float64   `gorm:"column:target;not null;default:1" json:"target"`
	Deadline  *string   `gorm:"column:deadline" json:"deadline"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (PersonalGoal) TableName() string { return "personal_goal" }
