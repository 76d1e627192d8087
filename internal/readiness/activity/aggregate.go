package activity

import (
	"sort"
	"strings"
	"time"

	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
)

const (
	EventPageView  = "page_view"
	EventTimeSpent = "time_spent"

	DashboardLookbackDays = 120
)

// Event is a raw activity event row as the aggregator sees it.
type Event struct {
	Type            string
	Path            string
	DurationSeconds *int
	CreatedAt       string
}

// Tracking summarises active days over the fixed 7/30/90 day windows.
type Tracking struct {
	DailyLoginActivity   int        `json:"daily_login_activity"`
	ActiveDays7          int        `json:"active_days_7"`
	ActiveDays30         int        `json:"active_days_30"`
	ActiveDays90         int        `json:"active_days_90"`
	MissedLearningDays30 int        `json:"missed_learning_days_30"`
	LastActivityAt       *time.Time `json:"last_activity_at"`
	TimeSpentSeconds7    int        `json:"time_spent_seconds_7"`
	TimeSpentSeconds30   int        `json:"time_spent_seconds_30"`
}

type PageStat struct {
	Path             string `json:"path"`
	Views            int    `json:"views"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampLookback bounds an activity lookback to 7..365 days.
func ClampLookback(days int) int { return clampInt(days, 7, 365) }

// ClampWindow bounds a time-spent or page analytics window to 1..365 days.
func ClampWindow(days int) int { return clampInt(days, 1, 365) }

// ClampPageLimit bounds a page analytics limit to 1..50.
func ClampPageLimit(limit int) int { return clampInt(limit, 1, 50) }

// Cutoff is the earliest instant inside a window of days ending at now.
func Cutoff(now time.Time, days int) time.Time {
	return now.UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

// DaySet returns the distinct UTC calendar days of times.
func DaySet(times []time.Time) map[time.Time]struct{} {
	out := make(map[time.Time]struct{}, len(times))
	for _, t := range times {
		out[clock.Day(t)] = struct{}{}
	}
	return out
}

// Track computes active-day counts relative to now's UTC day.
func Track(times []time.Time, now time.Time) Tracking {
	if len(times) == 0 {
		return Tracking{MissedLearningDays30: 30}
	}
	days := DaySet(times)
	today := clock.Day(now)
	activeIn := func(window int) int {
		start := today.AddDate(0, 0, -(window - 1))
		n := 0
		for d := range days {
			if !d.Before(start) {
				n++
			}
		}
		return n
	}
	last := times[0]
	for _, t := range times[1:] {
		if t.After(last) {
			last = t
		}
	}
	last = last.UTC()

	tr := Tracking{
		ActiveDays7:    activeIn(7),
		ActiveDays30:   activeIn(30),
		ActiveDays90:   activeIn(90),
		LastActivityAt: &last,
	}
	tr.MissedLearningDays30 = max(0, 30-tr.ActiveDays30)
	if _, ok := days[today]; ok {
		tr.DailyLoginActivity = 1
	}
	return tr
}

// inWindow parses the event timestamp and reports whether it falls at or after cutoff.
func inWindow(ev Event, cutoff time.Time) bool {
	t, ok := Parse(ev.CreatedAt)
	return ok && !t.Before(cutoff)
}

func duration(ev Event) int {
	if ev.DurationSeconds == nil {
		return 0
	}
	return *ev.DurationSeconds
}

// TimeSpent sums durations of time_spent events inside the window.
func TimeSpent(events []Event, now time.Time, days int) int {
	cutoff := Cutoff(now, ClampWindow(days))
	total := 0
	for _, ev := range events {
		if ev.Type != EventTimeSpent || !inWindow(ev, cutoff) {
			continue
		}
		total += duration(ev)
	}
	return total
}

// PageAnalytics merges page_view counts with time_spent totals per path,
// ordered by views then time spent, both descending.
func PageAnalytics(events []Event, now time.Time, days, limit int) []PageStat {
	cutoff := Cutoff(now, ClampWindow(days))
	limit = ClampPageLimit(limit)

	byPath := map[string]*PageStat{}
	order := []string{}
	get := func(p string) *PageStat {
		ps, ok := byPath[p]
		if !ok {
			ps = &PageStat{Path: p}
			byPath[p] = ps
			order = append(order, p)
		}
		return ps
	}
	for _, ev := range events {
		p := strings.TrimSpace(ev.Path)
		if p == "" || !inWindow(ev, cutoff) {
			continue
		}
		switch ev.Type {
		case EventPageView:
			get(p).Views++
		case EventTimeSpent:
			get(p).TimeSpentSeconds += duration(ev)
		}
	}

	out := make([]PageStat, 0, len(order))
	for _, p := range order {
		out = append(out, *byPath[p])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].TimeSpentSeconds > out[j].TimeSpentSeconds
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Heatmap counts records per UTC day, ascending by date.
func Heatmap(times []time.Time) []DayCount {
	counts := map[string]int{}
	for _, t := range times {
		counts[clock.DayKey(t)]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]DayCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, DayCount{Date: k, Count: counts[k]})
	}
	return out
}
