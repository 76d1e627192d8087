package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bus "github.com/yungbote/careerpulse-backend/internal/clients/redis"
	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	"github.com/yungbote/careerpulse-backend/internal/data/repos/testutil"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/ctxutil"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
)

// Wednesday, so the week started two days earlier.
var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

type fakePublisher struct {
	mu     sync.Mutex
	events []bus.Event
}

func (f *fakePublisher) Publish(_ context.Context, ev bus.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakePublisher) count(eventType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ev := range f.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

type harness struct {
	t      *testing.T
	db     *gorm.DB
	log    *logger.Logger
	pub    *fakePublisher
	userID uuid.UUID
	ctx    context.Context

	readiness ReadinessService
	plans     ActionPlanService
	apply     ApplyTrackerService
	goals     GoalService
	activity  ActivityService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		db:     testutil.DB(t),
		log:    testutil.Logger(t),
		pub:    &fakePublisher{},
		userID: uuid.New(),
	}
	h.ctx = ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: h.userID})
	h.at(testNow)
	return h
}

// at rebuilds every service against a clock fixed at now, sharing the database.
func (h *harness) at(now time.Time) *harness {
	clk := clock.Fixed(now)
	pol := policy.Default()
	source := repos.NewSourceRepo(h.db, h.log)
	events := repos.NewActivityEventRepo(h.db, h.log)
	logins := repos.NewLoginStreakRepo(h.db, h.log)

	h.plans = NewActionPlanService(h.db, h.log, clk,
		repos.NewDailyActionLockRepo(h.db, h.log),
		repos.NewWeeklyChecklistRepo(h.db, h.log),
		h.pub,
	)
	h.readiness = NewReadinessService(h.db, h.log, clk, pol, source, events, logins,
		repos.NewReadinessSnapshotRepo(h.db, h.log), h.plans, h.pub, "")
	h.apply = NewApplyTrackerService(h.db, h.log, clk, repos.NewApplyTrackerRepo(h.db, h.log))
	h.goals = NewGoalService(h.db, h.log, clk, pol, source, repos.NewPersonalGoalRepo(h.db, h.log))
	h.activity = NewActivityService(h.db, h.log, clk, source, events, logins)
	return h
}

// statusOf is the HTTP status carried by err, 0 for untyped errors.
func statusOf(err error) int {
	if ae, ok := apierr.As(err); ok {
		return ae.Status
	}
	return 0
}
