package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/careerpulse-backend/internal/readiness/prediction"
)

func TestWeeklyPlanAlwaysSevenDays(t *testing.T) {
	blockers := []string{
		prediction.BlockerInactivity,
		prediction.BlockerResume,
		prediction.BlockerInterview,
		prediction.BlockerCoding,
		prediction.BlockerMaintain,
		"",
		"unknown",
	}
	for _, b := range blockers {
		plan := WeeklyPlan(b)
		if len(plan) != 7 {
			t.Fatalf("blocker %q: %d entries", b, len(plan))
		}
		for i, d := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
			if plan[i].Day != d {
				t.Fatalf("blocker %q: entry %d day=%q", b, i, plan[i].Day)
			}
		}
	}
}

func TestWeeklyPlanTemplates(t *testing.T) {
	assert.Equal(t, "Rewrite 3 project bullets with metrics", WeeklyPlan(prediction.BlockerResume)[0].Task)
	assert.Equal(t, "Mock interview (HR)", WeeklyPlan(prediction.BlockerInterview)[0].Task)
	coding := WeeklyPlan(prediction.BlockerCoding)
	assert.Equal(t, PlanEntry{Day: "Tue", Task: "Solve 1 Medium SQL + 1 Medium DSA", Minutes: 50, Priority: "High"}, coding[1])
	assert.Equal(t, coding, WeeklyPlan(prediction.BlockerInactivity))
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), "2026-03-16"},
		{time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC), "2026-03-16"},
		{time.Date(2026, 3, 22, 23, 59, 0, 0, time.UTC), "2026-03-16"},
		{time.Date(2026, 3, 23, 0, 0, 1, 0, time.UTC), "2026-03-23"},
		{time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "2026-02-23"},
		// 01:00 on Monday in UTC+5 is still Sunday in UTC
		{time.Date(2026, 3, 23, 1, 0, 0, 0, time.FixedZone("X", 5*3600)), "2026-03-16"},
	}
	for _, tc := range cases {
		if got := WeekStartKey(tc.at); got != tc.want {
			t.Fatalf("WeekStartKey(%s)=%s want %s", tc.at, got, tc.want)
		}
		if WeekStart(tc.at).Weekday() != time.Monday {
			t.Fatalf("WeekStart(%s) not a Monday", tc.at)
		}
	}
}

func TestValidWeekStart(t *testing.T) {
	assert.True(t, ValidWeekStart("2026-03-16"))
	assert.False(t, ValidWeekStart(" 2026-3-1 "))
	assert.False(t, ValidWeekStart(""))
}

func TestToggle(t *testing.T) {
	base := map[string]bool{"a": true}
	next := Toggle(base, "b", true)
	assert.Equal(t, map[string]bool{"a": true, "b": true}, next)
	assert.Len(t, base, 1)
	assert.Equal(t, map[string]bool{"a": false}, Toggle(base, "a", false))
	assert.Equal(t, map[string]bool{"x": true}, Toggle(nil, "x", true))
}
