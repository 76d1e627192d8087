package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	bus "github.com/yungbote/careerpulse-backend/internal/clients/redis"
	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	"github.com/yungbote/careerpulse-backend/internal/observability"
	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
	"github.com/yungbote/careerpulse-backend/internal/platform/ctxutil"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/readiness/activity"
	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
	"github.com/yungbote/careerpulse-backend/internal/readiness/streak"
)

const (
	learningWindowDays   = 30
	learningHistoryLimit = 5000
)

var errUnauthorized = apierr.New(http.StatusUnauthorized, "unauthorized", errors.New("request data not set in context"))

func ownerFrom(ctx context.Context) (uuid.UUID, error) {
	id := ctxutil.OwnerID(ctx)
	if id == uuid.Nil {
		return uuid.Nil, errUnauthorized
	}
	return id, nil
}

// EventPublisher fans readiness state changes out to other instances. A nil
// publisher disables fan-out.
type EventPublisher interface {
	Publish(ctx context.Context, ev bus.Event) error
}

// publish is best effort: a failed publish is logged and never fails the caller.
func publish(ctx context.Context, log *logger.Logger, pub EventPublisher, eventType string, userID uuid.UUID, now time.Time, data any) {
	if pub == nil {
		return
	}
	ev, err := bus.NewEvent(eventType, userID, now, data)
	if err == nil {
		err = pub.Publish(ctx, ev)
	}
	observability.Current().IncEventPublished(eventType, err)
	if err != nil {
		log.Warn("readiness event publish failed", "event", eventType, "user_id", userID, "error", err)
	}
}

// baseline is the whole-history view shared by the dashboard, stats and goals.
type baseline struct {
	Totals              *repos.SourceTotals
	SessionsLast30      int
	LearningConsistency float64
	Learning            streak.LearningStats
}

func avgOrZero(a repos.SourceAggregate) float64 {
	if a.Avg == nil {
		return 0
	}
	return *a.Avg
}

func (b *baseline) avgCode() float64      { return avgOrZero(b.Totals.Submissions) }
func (b *baseline) avgResume() float64    { return avgOrZero(b.Totals.Resumes) }
func (b *baseline) avgInterview() float64 { return avgOrZero(b.Totals.Interviews) }

// plainScore is the composite over historical averages, as reported by stats and goals.
func (b *baseline) plainScore(p *policy.Policy) float64 {
	return scoring.Compute(p, scoring.Inputs{
		Coding:    b.avgCode(),
		Resume:    b.avgResume(),
		Interview: b.avgInterview(),
		Learning:  b.LearningConsistency,
	}).Score
}

func loadBaseline(dbc dbctx.Context, log *logger.Logger, src repos.SourceRepo, userID uuid.UUID, now time.Time) (*baseline, error) {
	totals, err := src.Totals(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load metric totals: %w", err)
	}

	cutoff := activity.Cutoff(now, learningWindowDays)
	recent, err := src.LearningTimestamps(dbc, userID, activity.Format(cutoff), 0)
	if err != nil {
		return nil, fmt.Errorf("load recent learning sessions: %w", err)
	}
	sessions := 0
	for _, t := range activity.ParseAll(recent) {
		if !t.Before(cutoff) {
			sessions++
		}
	}

	raw, err := src.LearningTimestamps(dbc, userID, "", learningHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load learning history: %w", err)
	}
	times := activity.ParseAll(raw)
	if dropped := len(raw) - len(times); dropped > 0 {
		log.Debug("dropped unparsable learning timestamps", "user_id", userID, "dropped", dropped)
	}

	return &baseline{
		Totals:              totals,
		SessionsLast30:      sessions,
		LearningConsistency: scoring.LearningConsistency(sessions),
		Learning:            streak.Learning(times, now),
	}, nil
}
