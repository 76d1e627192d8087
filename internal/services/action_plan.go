package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bus "github.com/yungbote/careerpulse-backend/internal/clients/redis"
	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	types "github.com/yungbote/careerpulse-backend/internal/domain/career"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/readiness/planner"
	"github.com/yungbote/careerpulse-backend/internal/readiness/prediction"
)

type ChecklistPatch struct {
	WeekStart string `json:"week_start"`
	ItemID    string `json:"item_id"`
	Done      bool   `json:"done"`
}

type ChecklistState struct {
	OK        bool            `json:"ok"`
	WeekStart string          `json:"week_start"`
	DoneMap   map[string]bool `json:"done_map"`
}

type ActionPlanService interface {
	// LockToday returns the action pinned for (user, today), pinning computed
	// when the day has no action yet.
	LockToday(dbc dbctx.Context, userID uuid.UUID, now time.Time, computed prediction.Action) (prediction.Action, error)
	WeeklyState(dbc dbctx.Context, userID uuid.UUID, weekStart string) (map[string]bool, error)
	PatchChecklist(ctx context.Context, in ChecklistPatch) (*ChecklistState, error)
}

type actionPlanService struct {
	db        *gorm.DB
	log       *logger.Logger
	clock     clock.Clock
	locks     repos.DailyActionLockRepo
	checklist repos.WeeklyChecklistRepo
	events    EventPublisher
}

func NewActionPlanService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clk clock.Clock,
	locks repos.DailyActionLockRepo,
	checklist repos.WeeklyChecklistRepo,
	events EventPublisher,
) ActionPlanService {
	if clk == nil {
		clk = clock.System()
	}
	return &actionPlanService{
		db:        db,
		log:       baseLog.With("service", "ActionPlanService"),
		clock:     clk,
		locks:     locks,
		checklist: checklist,
		events:    events,
	}
}

func (s *actionPlanService) LockToday(dbc dbctx.Context, userID uuid.UUID, now time.Time, computed prediction.Action) (prediction.Action, error) {
	raw, err := json.Marshal(computed)
	if err != nil {
		return computed, fmt.Errorf("marshal best action: %w", err)
	}
	stored, created, err := s.locks.InsertIfAbsent(dbc, &types.DailyActionLock{
		UserID:     userID,
		ActionDate: clock.DayKey(now),
		ActionJSON: datatypes.JSON(raw),
		CreatedAt:  now,
	})
	if err != nil {
		return computed, fmt.Errorf("lock daily action: %w", err)
	}
	if created {
		publish(dbc.Ctx, s.log, s.events, bus.EventActionLocked, userID, now, computed)
	}
	if stored == nil {
		return computed, nil
	}
	var locked prediction.Action
	if err := json.Unmarshal(stored.ActionJSON, &locked); err != nil {
		s.log.Warn("unreadable daily action lock, serving computed action", "user_id", userID, "error", err)
		return computed, nil
	}
	return locked, nil
}

func decodeDoneMap(raw datatypes.JSON) map[string]bool {
	out := map[string]bool{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]bool{}
	}
	return out
}

func (s *actionPlanService) WeeklyState(dbc dbctx.Context, userID uuid.UUID, weekStart string) (map[string]bool, error) {
	row, err := s.checklist.Get(dbc, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("load weekly checklist: %w", err)
	}
	if row == nil {
		return map[string]bool{}, nil
	}
	return decodeDoneMap(row.DoneJSON), nil
}

func (s *actionPlanService) PatchChecklist(ctx context.Context, in ChecklistPatch) (*ChecklistState, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	weekStart := strings.TrimSpace(in.WeekStart)
	itemID := strings.TrimSpace(in.ItemID)
	if !planner.ValidWeekStart(weekStart) {
		return nil, apierr.BadInput("invalid_week_start", errors.New("week_start is required"))
	}
	if itemID == "" {
		return nil, apierr.BadInput("invalid_item_id", errors.New("item_id is required"))
	}

	now := s.clock.Now()
	var next map[string]bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		current, err := s.WeeklyState(inner, userID, weekStart)
		if err != nil {
			return err
		}
		next = planner.Toggle(current, itemID, in.Done)
		raw, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = s.checklist.Upsert(inner, &types.WeeklyChecklistState{
			UserID:    userID,
			WeekStart: weekStart,
			DoneJSON:  datatypes.JSON(raw),
			CreatedAt: now,
			UpdatedAt: now,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("patch weekly checklist: %w", err)
	}

	publish(ctx, s.log, s.events, bus.EventChecklistUpdated, userID, now, map[string]any{
		"week_start": weekStart,
		"item_id":    itemID,
		"done":       in.Done,
	})
	return &ChecklistState{OK: true, WeekStart: weekStart, DoneMap: next}, nil
}
