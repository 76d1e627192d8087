package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careerpulse-backend/internal/data/repos/testutil"
	types "github.com/yungbote/careerpulse-backend/internal/domain/metrics"
	"github.com/yungbote/careerpulse-backend/internal/readiness/activity"
)

func TestSourceRepoTotals(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.Ctx(tx)
	repo := NewSourceRepo(db, testutil.Logger(t))

	user := uuid.New()
	other := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	testutil.SeedSubmission(t, tx, user, now, testutil.F(80), true, "arrays", "easy")
	testutil.SeedSubmission(t, tx, user, now, testutil.F(60), false, "graphs", "hard")
	testutil.SeedSubmission(t, tx, user, now, nil, false, "graphs", "hard")
	testutil.SeedSubmission(t, tx, other, now, testutil.F(10), true, "arrays", "easy")
	testutil.SeedResume(t, tx, user, now, testutil.F(70), "")
	testutil.SeedLearning(t, tx, user, now, "go")

	got, err := repo.Totals(dbc, user)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Submissions.Count)
	require.NotNil(t, got.Submissions.Avg)
	assert.InDelta(t, 70.0, *got.Submissions.Avg, 1e-9)
	assert.EqualValues(t, 1, got.Resumes.Count)
	assert.EqualValues(t, 0, got.Interviews.Count)
	assert.Nil(t, got.Interviews.Avg)
	assert.EqualValues(t, 1, got.Learning.Count)
}

func TestSourceRepoOrderingAndLimits(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.Ctx(tx)
	repo := NewSourceRepo(db, testutil.Logger(t))

	user := uuid.New()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		testutil.SeedSubmission(t, tx, user, base.Add(time.Duration(i)*time.Hour), testutil.F(float64(i)), true, "t", "easy")
	}
	testutil.SeedResume(t, tx, user, base, testutil.F(40), "old")
	testutil.SeedResume(t, tx, user, base.Add(time.Hour), testutil.F(90), "new")

	subs, err := repo.ListSubmissions(dbc, user, 2)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, 3.0, *subs[0].Score)
	assert.Equal(t, 2.0, *subs[1].Score)

	latest, err := repo.LatestResume(dbc, user)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "new", latest.TextContent)

	none, err := repo.LatestResume(dbc, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, none)

	profile, err := repo.GetProfile(dbc, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSourceRepoLearningTopics(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.Ctx(tx)
	repo := NewSourceRepo(db, testutil.Logger(t))

	user := uuid.New()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	testutil.SeedLearning(t, tx, user, base, "SQL")
	testutil.SeedLearning(t, tx, user, base.Add(time.Minute), "  ")
	testutil.SeedLearning(t, tx, user, base.Add(2*time.Minute), "Docker")
	testutil.SeedLearning(t, tx, user, base.Add(3*time.Minute), "SQL")

	topics, err := repo.LearningTopics(dbc, user, 200)
	require.NoError(t, err)
	assert.Equal(t, []string{"SQL", "Docker"}, topics)

	since := activity.Format(base.Add(90 * time.Second))
	stamps, err := repo.LearningTimestamps(dbc, user, since, 0)
	require.NoError(t, err)
	assert.Len(t, stamps, 2)
}

func TestSourceRepoActivityTimestampsUnion(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.Ctx(tx)
	repo := NewSourceRepo(db, testutil.Logger(t))

	user := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -200)

	testutil.SeedSubmission(t, tx, user, now, nil, true, "", "")
	testutil.SeedResume(t, tx, user, now, nil, "")
	testutil.SeedInterview(t, tx, user, now, nil, "hr")
	testutil.SeedLearning(t, tx, user, now, "")
	testutil.SeedEvent(t, tx, user, now, activity.EventPageView, "/home", nil)
	testutil.SeedLearning(t, tx, user, old, "")
	testutil.SeedLearning(t, tx, uuid.New(), now, "")

	got, err := repo.ActivityTimestamps(dbc, user, activity.Format(activity.Cutoff(now, 120)))
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestActivityEventRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.Ctx(tx)
	repo := NewActivityEventRepo(db, testutil.Logger(t))

	user := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	created, err := repo.Create(dbc, []*types.ActivityEvent{
		{UserID: user, EventType: activity.EventPageView, Path: "/a", CreatedAt: activity.Format(now.Add(-time.Hour))},
		{UserID: user, EventType: activity.EventTimeSpent, Path: "/a", DurationSeconds: testutil.I(30), CreatedAt: activity.Format(now)},
		{UserID: user, EventType: "click", CreatedAt: activity.Format(now)},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.NotEqual(t, uuid.Nil, created[0].ID)

	got, err := repo.ListSince(dbc, user, activity.Format(now.Add(-2*time.Hour)), []string{activity.EventPageView, activity.EventTimeSpent})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, activity.EventPageView, got[0].EventType)
}

func TestLoginStreakRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.Ctx(tx)
	repo := NewLoginStreakRepo(db, testutil.Logger(t))

	user := uuid.New()
	missing, err := repo.Get(dbc, user)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Upsert(dbc, &types.LoginStreak{UserID: user, CurrentStreak: 1, LongestStreak: 1, LastLoginAt: "2026-03-10T12:00:00.000000Z"}))
	require.NoError(t, repo.Upsert(dbc, &types.LoginStreak{UserID: user, CurrentStreak: 2, LongestStreak: 2, LastLoginAt: "2026-03-11T13:00:00.000000Z"}))

	got, err := repo.Get(dbc, user)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 2, got.LongestStreak)
	assert.Equal(t, "2026-03-11T13:00:00.000000Z", got.LastLoginAt)
}
