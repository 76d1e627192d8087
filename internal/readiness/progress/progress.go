// Package progress compares daily readiness snapshots week over week.
package progress

import (
	"time"

	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
)

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Point is one stored snapshot. Breakdown is nil when the stored JSON was unreadable.
type Point struct {
	Date           string             `json:"date"`
	ReadinessScore float64            `json:"readiness_score"`
	Breakdown      *scoring.Breakdown `json:"breakdown"`
}

type Delta struct {
	CurrentScore        *float64           `json:"current_score"`
	WeeklyDelta         *float64           `json:"weekly_delta"`
	PreviousWeeklyDelta *float64           `json:"previous_weekly_delta"`
	Trend               string             `json:"trend"`
	CategoryDeltas      map[string]float64 `json:"category_deltas"`
	History             []Point            `json:"history"`
}

// latestOnOrBefore returns the newest point dated on or before day.
func latestOnOrBefore(history []Point, day string) *Point {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Date <= day {
			return &history[i]
		}
	}
	return nil
}

func diff(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := scoring.Round(*a-*b, 2)
	return &d
}

func scoreOf(p *Point) *float64 {
	if p == nil {
		return nil
	}
	s := p.ReadinessScore
	return &s
}

// Compute derives deltas from history sorted by ascending date. Today's
// snapshot is the current score, falling back to the newest one. The week-ago
// and two-weeks-ago values use the nearest snapshot dated on or before the cutoff.
func Compute(history []Point, now time.Time) Delta {
	if history == nil {
		history = []Point{}
	}
	today := clock.DayKey(now)
	weekAgoDay := clock.DayKey(now.AddDate(0, 0, -7))
	twoWeeksAgoDay := clock.DayKey(now.AddDate(0, 0, -14))

	var current *float64
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Date == today {
			current = scoreOf(&history[i])
			break
		}
	}
	if current == nil && len(history) > 0 {
		current = scoreOf(&history[len(history)-1])
	}
	weekAgo := latestOnOrBefore(history, weekAgoDay)
	twoWeeksAgo := latestOnOrBefore(history, twoWeeksAgoDay)

	out := Delta{
		CurrentScore:        current,
		WeeklyDelta:         diff(current, scoreOf(weekAgo)),
		PreviousWeeklyDelta: diff(scoreOf(weekAgo), scoreOf(twoWeeksAgo)),
		Trend:               TrendStable,
		CategoryDeltas:      map[string]float64{},
		History:             history,
	}
	if out.WeeklyDelta != nil {
		switch {
		case *out.WeeklyDelta > 0:
			out.Trend = TrendUp
		case *out.WeeklyDelta < 0:
			out.Trend = TrendDown
		}
	}

	if len(history) > 0 && weekAgo != nil {
		cur, prev := history[len(history)-1].Breakdown, weekAgo.Breakdown
		if cur != nil && prev != nil {
			for _, c := range policy.Components {
				out.CategoryDeltas[c] = scoring.Round(cur.Score(c)-prev.Score(c), 2)
			}
		}
	}
	return out
}
