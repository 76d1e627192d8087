package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	"github.com/yungbote/careerpulse-backend/internal/data/repos/testutil"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/readiness/activity"
)

func TestRecordEvent(t *testing.T) {
	h := newHarness(t)

	err := h.activity.RecordEvent(h.ctx, ActivityEventInput{EventType: "   "})
	ae, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, ae.Status)

	long := strings.Repeat("x", 80)
	path := " /career "
	require.NoError(t, h.activity.RecordEvent(h.ctx, ActivityEventInput{EventType: long, Path: &path, DurationSeconds: testutil.I(-5)}))
	require.NoError(t, h.activity.RecordEvent(h.ctx, ActivityEventInput{
		EventType:       "time_spent",
		DurationSeconds: testutil.I(100000),
		Metadata:        json.RawMessage(`{"tab":"coding"}`),
	}))

	rows, err := repos.NewActivityEventRepo(h.db, h.log).ListSince(dbctx.Of(context.Background()), h.userID, "", nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byType := map[string]int{}
	for _, r := range rows {
		require.NotNil(t, r.DurationSeconds)
		byType[r.EventType] = *r.DurationSeconds
		if r.EventType == strings.Repeat("x", 50) {
			assert.Equal(t, "/career", r.Path)
		}
	}
	assert.Equal(t, map[string]int{strings.Repeat("x", 50): 0, "time_spent": 86400}, byType)
}

func TestRecordEventRejectsBadMetadata(t *testing.T) {
	h := newHarness(t)
	err := h.activity.RecordEvent(h.ctx, ActivityEventInput{EventType: "page_view", Metadata: json.RawMessage(`{nope`)})
	ae, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_metadata", ae.Code)
}

func TestTouchLoginRecency(t *testing.T) {
	h := newHarness(t)
	steps := []struct {
		after   time.Duration
		current int
		longest int
	}{
		{0, 1, 1},
		{24 * time.Hour, 1, 1},
		{25 * time.Hour, 2, 2},
		{49 * time.Hour, 1, 2},
		{2 * time.Hour, 1, 2},
	}
	at := testNow
	for i, s := range steps {
		at = at.Add(s.after)
		v, err := h.at(at).activity.TouchLogin(h.ctx)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, s.current, v.CurrentStreak, "step %d current", i)
		assert.Equal(t, s.longest, v.LongestStreak, "step %d longest", i)
		assert.Equal(t, s.current, v.DisplayCurrentStreak, "step %d display", i)
		require.NotNil(t, v.LastLoginAt)
		assert.Equal(t, activity.Format(at), *v.LastLoginAt)
	}
}

func TestTouchLoginUnparsableLastResets(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.db.Exec(
		"INSERT INTO login_streak (user_id, current_streak, longest_streak, last_login_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		h.userID, 4, 6, "garbage", testNow,
	).Error)

	v, err := h.activity.TouchLogin(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v.CurrentStreak)
	assert.Equal(t, 6, v.LongestStreak)
}

func TestHeatmap(t *testing.T) {
	h := newHarness(t)
	testutil.SeedLearning(t, h.db, h.userID, testNow.Add(-time.Hour), "Go")
	testutil.SeedSubmission(t, h.db, h.userID, testNow.Add(-2*time.Hour), nil, false, "", "")
	testutil.SeedLearning(t, h.db, h.userID, testNow.AddDate(0, 0, -1), "Go")
	testutil.SeedLearning(t, h.db, h.userID, testNow.AddDate(0, 0, -30), "Go")

	hm, err := h.activity.Heatmap(h.ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 180, hm.Days)
	assert.Equal(t, []activity.DayCount{
		{Date: "2026-02-16", Count: 1},
		{Date: "2026-03-17", Count: 1},
		{Date: "2026-03-18", Count: 2},
	}, hm.Items)

	hm, err = h.activity.Heatmap(h.ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, hm.Days)
	assert.Len(t, hm.Items, 2)
}
