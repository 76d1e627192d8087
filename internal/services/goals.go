package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	types "github.com/yungbote/careerpulse-backend/internal/domain/career"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
)

const maxGoalTitleLen = 200

var goalCategories = map[string]struct{}{
	types.GoalCoding:    {},
	types.GoalResume:    {},
	types.GoalInterview: {},
	types.GoalLearning:  {},
	types.GoalStreak:    {},
	types.GoalReadiness: {},
	types.GoalCustom:    {},
}

// defaultGoals are shown to owners who have not created any goal yet.
var defaultGoals = []struct {
	id, title, category string
	target              float64
}{
	{"default-coding", "Solve 50 coding problems", types.GoalCoding, 50},
	{"default-resume", "Resume score above 85%", types.GoalResume, 85},
	{"default-interview", "Complete 10 mock interviews", types.GoalInterview, 10},
	{"default-learning", "Complete 30 learning sessions", types.GoalLearning, 30},
}

type GoalCreate struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Target   *float64 `json:"target"`
	Deadline *string  `json:"deadline"`
}

type GoalUpdate struct {
	Title    *string  `json:"title"`
	Target   *float64 `json:"target"`
	Deadline *string  `json:"deadline"`
}

type GoalView struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Target     float64    `json:"target"`
	Deadline   *string    `json:"deadline"`
	Progress   float64    `json:"progress"`
	Percentage float64    `json:"percentage"`
	Completed  bool       `json:"completed"`
	IsDefault  bool       `json:"is_default"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

type GoalService interface {
	List(ctx context.Context) ([]GoalView, error)
	Create(ctx context.Context, in GoalCreate) (*GoalView, error)
	Update(ctx context.Context, id uuid.UUID, in GoalUpdate) (*GoalView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalService struct {
	db     *gorm.DB
	log    *logger.Logger
	clock  clock.Clock
	policy *policy.Policy
	source repos.SourceRepo
	goals  repos.PersonalGoalRepo
}

func NewGoalService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clk clock.Clock,
	pol *policy.Policy,
	source repos.SourceRepo,
	goals repos.PersonalGoalRepo,
) GoalService {
	if clk == nil {
		clk = clock.System()
	}
	if pol == nil {
		pol = policy.Default()
	}
	return &goalService{
		db:     db,
		log:    baseLog.With("service", "GoalService"),
		clock:  clk,
		policy: pol,
		source: source,
		goals:  goals,
	}
}

var errGoalNotFound = apierr.New(http.StatusNotFound, "goal_not_found", errors.New("Goal not found"))

func normalizeGoalCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if _, ok := goalCategories[c]; ok {
		return c
	}
	return types.GoalCustom
}

func normalizeDeadline(deadline *string) *string {
	if deadline == nil {
		return nil
	}
	d := strings.TrimSpace(*deadline)
	if d == "" {
		return nil
	}
	return &d
}

// progressByCategory is the current value each goal category is measured against.
func progressByCategory(b *baseline, p *policy.Policy) map[string]float64 {
	return map[string]float64{
		types.GoalCoding:    float64(b.Totals.Submissions.Count),
		types.GoalResume:    b.avgResume(),
		types.GoalInterview: float64(b.Totals.Interviews.Count),
		types.GoalLearning:  float64(b.Totals.Learning.Count),
		types.GoalStreak:    float64(b.Learning.CurrentStreak),
		types.GoalReadiness: b.plainScore(p),
		types.GoalCustom:    0,
	}
}

func goalView(id, title, category string, target float64, deadline *string, progress map[string]float64) GoalView {
	value := progress[category]
	pct := 0.0
	if target > 0 {
		pct = min(100, value/target*100)
	}
	return GoalView{
		ID:         id,
		Title:      title,
		Category:   category,
		Target:     target,
		Deadline:   deadline,
		Progress:   scoring.Round(value, 2),
		Percentage: scoring.Round(pct, 2),
		Completed:  value >= target,
	}
}

func storedGoalView(g *types.PersonalGoal, progress map[string]float64) GoalView {
	v := goalView(g.ID.String(), g.Title, normalizeGoalCategory(g.Category), g.Target, g.Deadline, progress)
	at := g.CreatedAt
	v.CreatedAt = &at
	return v
}

func (s *goalService) progress(dbc dbctx.Context, userID uuid.UUID) (map[string]float64, error) {
	base, err := loadBaseline(dbc, s.log, s.source, userID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return progressByCategory(base, s.policy), nil
}

func (s *goalService) List(ctx context.Context) ([]GoalView, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Of(ctx)
	rows, err := s.goals.List(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list personal goals: %w", err)
	}
	progress, err := s.progress(dbc, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		out := make([]GoalView, 0, len(defaultGoals))
		for _, d := range defaultGoals {
			v := goalView(d.id, d.title, d.category, d.target, nil, progress)
			v.IsDefault = true
			out = append(out, v)
		}
		return out, nil
	}
	out := make([]GoalView, 0, len(rows))
	for _, g := range rows {
		out = append(out, storedGoalView(g, progress))
	}
	return out, nil
}

func (s *goalService) Create(ctx context.Context, in GoalCreate) (*GoalView, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	title := truncate(strings.TrimSpace(in.Title), maxGoalTitleLen)
	if title == "" {
		return nil, apierr.BadInput("invalid_goal_title", errors.New("title is required"))
	}
	target := 1.0
	if in.Target != nil {
		target = *in.Target
	}
	if target <= 0 {
		return nil, apierr.BadInput("invalid_goal_target", errors.New("target must be positive"))
	}
	now := s.clock.Now()
	dbc := dbctx.Of(ctx)
	row, err := s.goals.Create(dbc, &types.PersonalGoal{
		UserID:    userID,
		Title:     title,
		Category:  normalizeGoalCategory(in.Category),
		Target:    target,
		Deadline:  normalizeDeadline(in.Deadline),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create personal goal: %w", err)
	}
	progress, err := s.progress(dbc, userID)
	if err != nil {
		return nil, err
	}
	v := storedGoalView(row, progress)
	return &v, nil
}

func (s *goalService) Update(ctx context.Context, id uuid.UUID, in GoalUpdate) (*GoalView, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"updated_at": s.clock.Now()}
	if in.Title != nil {
		title := truncate(strings.TrimSpace(*in.Title), maxGoalTitleLen)
		if title == "" {
			return nil, apierr.BadInput("invalid_goal_title", errors.New("title is required"))
		}
		updates["title"] = title
	}
	if in.Target != nil {
		if *in.Target <= 0 {
			return nil, apierr.BadInput("invalid_goal_target", errors.New("target must be positive"))
		}
		updates["target"] = *in.Target
	}
	if in.Deadline != nil {
		updates["deadline"] = normalizeDeadline(in.Deadline)
	}

	var row *types.PersonalGoal
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		ok, err := s.goals.UpdateFields(inner, userID, id, updates)
		if err != nil {
			return fmt.Errorf("update personal goal: %w", err)
		}
		if !ok {
			return errGoalNotFound
		}
		row, err = s.goals.GetByID(inner, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errGoalNotFound
	}
	progress, err := s.progress(dbctx.Of(ctx), userID)
	if err != nil {
		return nil, err
	}
	v := storedGoalView(row, progress)
	return &v, nil
}

func (s *goalService) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return err
	}
	ok, err := s.goals.Delete(dbctx.Of(ctx), userID, id)
	if err != nil {
		return fmt.Errorf("delete personal goal: %w", err)
	}
	if !ok {
		return errGoalNotFound
	}
	return nil
}
