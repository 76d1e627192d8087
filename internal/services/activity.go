package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	types "github.com/yungbote/careerpulse-backend/internal/domain/metrics"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/readiness/activity"
	"github.com/yungbote/careerpulse-backend/internal/readiness/streak"
)

const (
	maxEventTypeLen    = 50
	maxEventPathLen    = 512
	maxEventDuration   = 86400
	defaultHeatmapDays = 180
)

type ActivityEventInput struct {
	EventType       string          `json:"event_type"`
	Path            *string         `json:"path"`
	DurationSeconds *int            `json:"duration_seconds"`
	Metadata        json.RawMessage `json:"metadata"`
}

// LoginStreakView is the stored login streak plus the count that should be shown now.
type LoginStreakView struct {
	CurrentStreak        int     `json:"current_streak"`
	DisplayCurrentStreak int     `json:"display_current_streak"`
	LongestStreak        int     `json:"longest_streak"`
	LastLoginAt          *string `json:"last_login_at"`
}

type Heatmap struct {
	Days  int                 `json:"days"`
	Items []activity.DayCount `json:"items"`
}

type ActivityService interface {
	RecordEvent(ctx context.Context, in ActivityEventInput) error
	TouchLogin(ctx context.Context) (*LoginStreakView, error)
	Heatmap(ctx context.Context, days int) (*Heatmap, error)
}

type activityService struct {
	db     *gorm.DB
	log    *logger.Logger
	clock  clock.Clock
	source repos.SourceRepo
	events repos.ActivityEventRepo
	logins repos.LoginStreakRepo
}

func NewActivityService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clk clock.Clock,
	source repos.SourceRepo,
	events repos.ActivityEventRepo,
	logins repos.LoginStreakRepo,
) ActivityService {
	if clk == nil {
		clk = clock.System()
	}
	return &activityService{
		db:     db,
		log:    baseLog.With("service", "ActivityService"),
		clock:  clk,
		source: source,
		events: events,
		logins: logins,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (s *activityService) RecordEvent(ctx context.Context, in ActivityEventInput) error {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return err
	}
	eventType := truncate(strings.TrimSpace(in.EventType), maxEventTypeLen)
	if eventType == "" {
		return apierr.BadInput("invalid_event_type", errors.New("event_type is required"))
	}
	row := &types.ActivityEvent{
		UserID:    userID,
		EventType: eventType,
		CreatedAt: activity.Format(s.clock.Now()),
	}
	if in.Path != nil {
		row.Path = truncate(strings.TrimSpace(*in.Path), maxEventPathLen)
	}
	if in.DurationSeconds != nil {
		d := min(max(*in.DurationSeconds, 0), maxEventDuration)
		row.DurationSeconds = &d
	}
	if len(in.Metadata) > 0 && string(in.Metadata) != "null" {
		if !json.Valid(in.Metadata) {
			return apierr.BadInput("invalid_metadata", errors.New("metadata must be valid JSON"))
		}
		row.Metadata = datatypes.JSON(in.Metadata)
	}
	if _, err := s.events.Create(dbctx.Of(ctx), []*types.ActivityEvent{row}); err != nil {
		return fmt.Errorf("record activity event: %w", err)
	}
	return nil
}

func loginView(row *types.LoginStreak, now time.Time) LoginStreakView {
	if row == nil {
		return LoginStreakView{}
	}
	out := LoginStreakView{
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
	}
	if row.LastLoginAt != "" {
		raw := row.LastLoginAt
		out.LastLoginAt = &raw
	}
	if last, ok := activity.Parse(row.LastLoginAt); ok {
		out.DisplayCurrentStreak = streak.Display(streak.Recency{Current: row.CurrentStreak, Last: &last}, now)
	}
	return out
}

// TouchLogin applies one login at now to the stored streak.
func (s *activityService) TouchLogin(ctx context.Context) (*LoginStreakView, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	var out LoginStreakView
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		prev, err := s.logins.Get(inner, userID)
		if err != nil {
			return err
		}
		next := touchLogin(prev, now)
		row := &types.LoginStreak{
			UserID:        userID,
			CurrentStreak: next.Current,
			LongestStreak: next.Longest,
			LastLoginAt:   activity.Format(*next.Last),
			UpdatedAt:     now,
		}
		if err := s.logins.Upsert(inner, row); err != nil {
			return err
		}
		out = loginView(row, now)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("touch login streak: %w", err)
	}
	return &out, nil
}

// touchLogin resets to 1 for a first login. A stored timestamp that no longer
// parses also resets the current count but keeps the longest.
func touchLogin(prev *types.LoginStreak, now time.Time) streak.Recency {
	if prev == nil || strings.TrimSpace(prev.LastLoginAt) == "" {
		return streak.Touch(streak.Recency{}, now)
	}
	last, ok := activity.Parse(prev.LastLoginAt)
	if !ok {
		return streak.Touch(streak.Recency{Longest: prev.LongestStreak}, now)
	}
	return streak.Touch(streak.Recency{Current: prev.CurrentStreak, Longest: prev.LongestStreak, Last: &last}, now)
}

func (s *activityService) Heatmap(ctx context.Context, days int) (*Heatmap, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		days = defaultHeatmapDays
	}
	days = activity.ClampLookback(days)
	now := s.clock.Now()
	cutoff := activity.Cutoff(now, days)
	raw, err := s.source.ActivityTimestamps(dbctx.Of(ctx), userID, activity.Format(cutoff))
	if err != nil {
		return nil, fmt.Errorf("load activity timestamps: %w", err)
	}
	times := make([]time.Time, 0, len(raw))
	for _, t := range activity.ParseAll(raw) {
		if !t.Before(cutoff) {
			times = append(times, t)
		}
	}
	return &Heatmap{Days: days, Items: activity.Heatmap(times)}, nil
}
