package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careerpulse-backend/internal/data/repos/testutil"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
)

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }

func TestGoalsDefaultsWhenNoneStored(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		testutil.SeedSubmission(t, h.db, h.userID, testNow.Add(-time.Duration(i)*time.Hour), testutil.F(60), true, "arrays", "easy")
	}

	goals, err := h.goals.List(h.ctx)
	require.NoError(t, err)
	require.Len(t, goals, 4)

	ids := []string{}
	for _, g := range goals {
		ids = append(ids, g.ID)
		assert.True(t, g.IsDefault)
	}
	assert.Equal(t, []string{"default-coding", "default-resume", "default-interview", "default-learning"}, ids)

	coding := goals[0]
	assert.Equal(t, "Solve 50 coding problems", coding.Title)
	assert.Equal(t, 5.0, coding.Progress)
	assert.Equal(t, 10.0, coding.Percentage)
	assert.False(t, coding.Completed)
}

func TestGoalCreateValidation(t *testing.T) {
	h := newHarness(t)
	cases := []struct {
		name string
		in   GoalCreate
		code string
	}{
		{"blank title", GoalCreate{Title: "  "}, "invalid_goal_title"},
		{"zero target", GoalCreate{Title: "x", Target: fp(0)}, "invalid_goal_target"},
		{"negative target", GoalCreate{Title: "x", Target: fp(-3)}, "invalid_goal_target"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.goals.Create(h.ctx, tc.in)
			ae, ok := apierr.As(err)
			require.True(t, ok)
			assert.Equal(t, 400, ae.Status)
			assert.Equal(t, tc.code, ae.Code)
		})
	}
}

func TestGoalLifecycle(t *testing.T) {
	h := newHarness(t)
	testutil.SeedInterview(t, h.db, h.userID, testNow.Add(-time.Hour), testutil.F(70), "technical")
	testutil.SeedInterview(t, h.db, h.userID, testNow.Add(-2*time.Hour), testutil.F(50), "hr")

	g, err := h.goals.Create(h.ctx, GoalCreate{Title: " Ace interviews ", Category: "INTERVIEW", Target: fp(4), Deadline: sp("2026-04-30")})
	require.NoError(t, err)
	assert.Equal(t, "Ace interviews", g.Title)
	assert.Equal(t, "interview", g.Category)
	assert.Equal(t, 2.0, g.Progress)
	assert.Equal(t, 50.0, g.Percentage)
	require.NotNil(t, g.Deadline)

	custom, err := h.goals.Create(h.ctx, GoalCreate{Title: "Read a book", Category: "hobby"})
	require.NoError(t, err)
	assert.Equal(t, "custom", custom.Category)
	assert.Equal(t, 1.0, custom.Target)
	assert.Equal(t, 0.0, custom.Progress)

	listed, err := h.goals.List(h.ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	for _, v := range listed {
		assert.False(t, v.IsDefault)
	}

	id := uuid.MustParse(g.ID)
	upd, err := h.goals.Update(h.ctx, id, GoalUpdate{Target: fp(2), Deadline: sp("")})
	require.NoError(t, err)
	assert.Equal(t, "Ace interviews", upd.Title)
	assert.Equal(t, 100.0, upd.Percentage)
	assert.True(t, upd.Completed)
	assert.Nil(t, upd.Deadline)

	_, err = h.goals.Update(h.ctx, uuid.New(), GoalUpdate{Title: sp("nope")})
	assert.Equal(t, 404, statusOf(err))
	assert.EqualError(t, err, "Goal not found")

	require.NoError(t, h.goals.Delete(h.ctx, id))
	assert.Equal(t, 404, statusOf(h.goals.Delete(h.ctx, id)))
}

func TestProgressByCategoryReadiness(t *testing.T) {
	h := newHarness(t)
	testutil.SeedResume(t, h.db, h.userID, testNow.Add(-time.Hour), testutil.F(80), "")
	testutil.SeedResume(t, h.db, h.userID, testNow.Add(-2*time.Hour), testutil.F(60), "")

	g, err := h.goals.Create(h.ctx, GoalCreate{Title: "Resume", Category: "resume", Target: fp(85)})
	require.NoError(t, err)
	assert.Equal(t, 70.0, g.Progress)
	assert.Equal(t, 82.35, g.Percentage)
}
