package streak

import (
	"sort"
	"time"

	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
)

const (
	keepWindow      = 24 * time.Hour
	incrementWindow = 48 * time.Hour
)

// sortedDays returns the distinct UTC calendar days of times in ascending order.
func sortedDays(times []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(times))
	out := make([]time.Time, 0, len(times))
	for _, t := range times {
		d := clock.Day(t)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Longest is the length of the longest run of consecutive calendar days in times.
func Longest(times []time.Time) int {
	days := sortedDays(times)
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// CurrentFromToday walks back from now's UTC day while each day is present.
func CurrentFromToday(times []time.Time, now time.Time) int {
	set := make(map[time.Time]struct{}, len(times))
	for _, t := range times {
		set[clock.Day(t)] = struct{}{}
	}
	n := 0
	for d := clock.Day(now); ; d = d.AddDate(0, 0, -1) {
		if _, ok := set[d]; !ok {
			return n
		}
		n++
	}
}

func latest(times []time.Time) *time.Time {
	if len(times) == 0 {
		return nil
	}
	last := times[0]
	for _, t := range times[1:] {
		if t.After(last) {
			last = t
		}
	}
	last = last.UTC()
	return &last
}

// LearningStats is the date-adjacency streak family.
type LearningStats struct {
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	ActiveDays30   int        `json:"active_days_30"`
	LastActivityAt *time.Time `json:"last_activity_at"`
}

func Learning(times []time.Time, now time.Time) LearningStats {
	if len(times) == 0 {
		return LearningStats{}
	}
	start := clock.Day(now).AddDate(0, 0, -29)
	active := 0
	for _, d := range sortedDays(times) {
		if !d.Before(start) {
			active++
		}
	}
	return LearningStats{
		CurrentStreak:  CurrentFromToday(times, now),
		LongestStreak:  Longest(times),
		ActiveDays30:   active,
		LastActivityAt: latest(times),
	}
}

// Recency is the stored state of an event-recency streak (login, coding).
type Recency struct {
	Current int
	Longest int
	Last    *time.Time
}

// Touch applies one qualifying event at now: within 24h of the last event the
// count is kept, within 48h it increments, anything older or unknown resets to 1.
func Touch(prev Recency, now time.Time) Recency {
	now = now.UTC()
	current := 1
	if prev.Last != nil {
		elapsed := now.Sub(*prev.Last)
		switch {
		case elapsed <= keepWindow:
			current = max(1, prev.Current)
		case elapsed <= incrementWindow:
			current = max(1, prev.Current) + 1
		}
	}
	return Recency{
		Current: current,
		Longest: max(prev.Longest, current),
		Last:    &now,
	}
}

// Display is the count shown right now: zero once more than 24h have passed
// since the last event, the stored count otherwise.
func Display(r Recency, now time.Time) int {
	if r.Last == nil || now.Sub(*r.Last) > keepWindow {
		return 0
	}
	return r.Current
}

// CodingStats is the coding streak derived from passed submissions.
type CodingStats struct {
	CurrentStreak        int        `json:"current_streak"`
	DisplayCurrentStreak int        `json:"display_current_streak"`
	LongestStreak        int        `json:"longest_streak"`
	LastSolvedAt         *time.Time `json:"last_solved_at"`
}

// Coding counts consecutive calendar days of passed submissions ending at the
// last solved day. The display count drops to 0 once the last solve is more
// than 24h old; CurrentStreak still reports the run.
func Coding(passed []time.Time, now time.Time) CodingStats {
	days := sortedDays(passed)
	if len(days) == 0 {
		return CodingStats{}
	}
	current := 1
	for i := len(days) - 1; i > 0 && days[i].Sub(days[i-1]) == 24*time.Hour; i-- {
		current++
	}
	last := latest(passed)
	display := current
	if now.Sub(*last) > keepWindow {
		display = 0
	}
	return CodingStats{
		CurrentStreak:        current,
		DisplayCurrentStreak: display,
		LongestStreak:        Longest(passed),
		LastSolvedAt:         last,
	}
}
