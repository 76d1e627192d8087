package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	bus "github.com/yungbote/careerpulse-backend/internal/clients/redis"
	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	"github.com/yungbote/careerpulse-backend/internal/data/repos/testutil"
	types "github.com/yungbote/careerpulse-backend/internal/domain/career"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/readiness/planner"
	"github.com/yungbote/careerpulse-backend/internal/readiness/progress"
)

func TestDashboardRequiresOwner(t *testing.T) {
	h := newHarness(t)
	_, err := h.readiness.Dashboard(context.Background())
	ae, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, 401, ae.Status)
}

func TestDashboardEmptyUser(t *testing.T) {
	h := newHarness(t)

	d, err := h.readiness.Dashboard(h.ctx)
	require.NoError(t, err)

	assert.Equal(t, 0.0, d.CareerReadinessScore)
	assert.Len(t, d.History, 1)
	assert.Len(t, d.ActionPlan.Weekly, 7)
	assert.Equal(t, planner.WeekStartKey(testNow), d.ActionPlan.WeeklyState.WeekStart)
	assert.Empty(t, d.ActionPlan.WeeklyState.DoneMap)
	assert.Nil(t, d.Tracking.Activity.LastActivityAt)
	assert.Equal(t, int64(0), d.Tracking.Coding.TotalProblemsSolved)
	assert.Len(t, d.JobSuggestions, 3)
	assert.NotEmpty(t, d.Insights.HighDemandSkills)
	assert.Equal(t, 1, h.pub.count(bus.EventSnapshotCreated))
	assert.Equal(t, 1, h.pub.count(bus.EventActionLocked))
}

func TestDashboardSnapshotAndActionStableWithinDay(t *testing.T) {
	h := newHarness(t)
	testutil.SeedSubmission(t, h.db, h.userID, testNow.Add(-2*time.Hour), testutil.F(40), false, "arrays", "easy")

	first, err := h.readiness.Dashboard(h.ctx)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		testutil.SeedSubmission(t, h.db, h.userID, testNow.Add(-time.Hour), testutil.F(95), true, "graphs", "hard")
	}
	testutil.SeedResume(t, h.db, h.userID, testNow.Add(-time.Hour), testutil.F(90), "projects experience skills")

	second, err := h.at(testNow.Add(3 * time.Hour)).readiness.Dashboard(h.ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first.CareerReadinessScore, second.CareerReadinessScore)
	require.Len(t, second.History, 1)
	assert.Equal(t, first.CareerReadinessScore, second.History[0].ReadinessScore)
	assert.Equal(t, first.ActionPlan.Today, second.ActionPlan.Today)

	var n int64
	require.NoError(t, h.db.Model(&types.ReadinessSnapshot{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, h.pub.count(bus.EventSnapshotCreated))
	assert.Equal(t, 1, h.pub.count(bus.EventActionLocked))

	next, err := h.at(testNow.Add(24 * time.Hour)).readiness.Dashboard(h.ctx)
	require.NoError(t, err)
	require.Len(t, next.History, 2)
	assert.Equal(t, next.CareerReadinessScore, next.History[1].ReadinessScore)
	assert.Equal(t, 2, h.pub.count(bus.EventSnapshotCreated))
}

func TestDashboardTracking(t *testing.T) {
	h := newHarness(t)
	at := testNow.Add(-3 * time.Hour)
	testutil.SeedSubmission(t, h.db, h.userID, at, testutil.F(80), true, "arrays", "easy")
	testutil.SeedSubmission(t, h.db, h.userID, at.Add(time.Minute), testutil.F(40), false, "graphs", "hard")
	testutil.SeedSubmission(t, h.db, h.userID, at.Add(2*time.Minute), nil, true, "arrays", "Medium")
	testutil.SeedResume(t, h.db, h.userID, at, testutil.F(70), "Projects: built a REST API in Go and Docker")
	testutil.SeedInterview(t, h.db, h.userID, at, testutil.F(60), "Technical")
	testutil.SeedInterview(t, h.db, h.userID, at.Add(time.Minute), testutil.F(80), " hr ")
	testutil.SeedInterview(t, h.db, h.userID, at.Add(2*time.Minute), nil, "")
	testutil.SeedLearning(t, h.db, h.userID, at, "SQL")
	testutil.SeedEvent(t, h.db, h.userID, at, "page_view", "/dashboard", nil)
	testutil.SeedEvent(t, h.db, h.userID, at, "time_spent", "/dashboard", testutil.I(120))

	d, err := h.readiness.Dashboard(h.ctx)
	require.NoError(t, err)

	coding := d.Tracking.Coding
	assert.Equal(t, int64(3), coding.TotalProblemsSolved)
	assert.Equal(t, 66.67, coding.AccuracyRate)
	assert.Equal(t, map[string]int{"easy": 1, "medium": 1, "hard": 1, "unknown": 0}, coding.EasyMediumHard)
	assert.Equal(t, []string{"graphs", "arrays"}, coding.WeakTopics)

	assert.Equal(t, 70.0, d.Tracking.Resume.ResumeScore)
	assert.Equal(t, int64(1), d.Tracking.Resume.ResumeImprovementHistoryCount)
	require.NotNil(t, d.Tracking.Resume.LastResumeReviewDate)

	mi := d.Tracking.MockInterview
	assert.Equal(t, int64(3), mi.NumberOfMockInterviews)
	assert.Equal(t, map[string]int{"technical": 1, "hr": 1, "general": 1}, mi.Types)
	assert.Equal(t, 70.0, mi.AvgReadinessScore)

	act := d.Tracking.Activity
	assert.Equal(t, 1, act.ActiveDays.Days7)
	assert.Equal(t, 120, act.TimeSpentSeconds7)
	require.NotNil(t, act.LastActivityAt)
	assert.Equal(t, 1, d.Tracking.Learning.LearningStreak.Current)
	assert.Equal(t, int64(1), d.Tracking.Learning.LearningSessions)
}

func TestProgressDelta(t *testing.T) {
	h := newHarness(t)
	snaps := repos.NewReadinessSnapshotRepo(h.db, h.log)
	dbc := dbctx.Of(context.Background())
	for _, s := range []struct {
		daysAgo int
		score   float64
	}{{14, 45}, {7, 50}, {0, 60}} {
		day := testNow.AddDate(0, 0, -s.daysAgo)
		_, _, err := snaps.InsertIfAbsent(dbc, &types.ReadinessSnapshot{
			UserID:         h.userID,
			SnapshotDate:   day.Format(time.DateOnly),
			ReadinessScore: s.score,
			BreakdownJSON:  datatypes.JSON(`{}`),
			CreatedAt:      day,
		})
		require.NoError(t, err)
	}

	d, err := h.readiness.ProgressDelta(h.ctx)
	require.NoError(t, err)
	require.NotNil(t, d.CurrentScore)
	require.NotNil(t, d.WeeklyDelta)
	require.NotNil(t, d.PreviousWeeklyDelta)
	assert.Equal(t, 60.0, *d.CurrentScore)
	assert.Equal(t, 10.0, *d.WeeklyDelta)
	assert.Equal(t, 5.0, *d.PreviousWeeklyDelta)
	assert.Equal(t, progress.TrendUp, d.Trend)
	assert.Len(t, d.History, 3)
}

func TestStats(t *testing.T) {
	h := newHarness(t)
	testutil.SeedLearning(t, h.db, h.userID, testNow.Add(-time.Hour), "Go")
	testutil.SeedLearning(t, h.db, h.userID, testNow.Add(-25*time.Hour), "Go")
	testutil.SeedRawLearning(t, h.db, h.userID, "not a timestamp")
	testutil.SeedSubmission(t, h.db, h.userID, testNow.Add(-2*time.Hour), testutil.F(90), true, "dp", "hard")
	testutil.SeedSubmission(t, h.db, h.userID, testNow.Add(-time.Hour), testutil.F(70), false, "dp", "hard")

	_, err := h.activity.TouchLogin(h.ctx)
	require.NoError(t, err)

	s, err := h.readiness.Stats(h.ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), s.CodeSubmissions)
	assert.Equal(t, 80.0, s.AvgCodeScore)
	assert.Equal(t, int64(3), s.LearningSessions)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, 1, s.LoginCurrentStreak)
	assert.Equal(t, 1, s.LoginDisplayCurrentStreak)
	require.NotNil(t, s.LoginLastLoginAt)
	assert.Equal(t, 1, s.CodingCurrentStreak)
	assert.Equal(t, 1, s.CodingDisplayCurrentStreak)
	require.NotNil(t, s.CodingLastSolvedAt)

	later, err := h.at(testNow.Add(30 * time.Hour)).readiness.Stats(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, later.LoginCurrentStreak)
	assert.Equal(t, 0, later.LoginDisplayCurrentStreak)
	assert.Equal(t, 0, later.CodingDisplayCurrentStreak)
}
