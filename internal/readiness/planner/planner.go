package planner

import (
	"strings"
	"time"

	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/readiness/prediction"
)

// PlanEntry is one day of the weekly plan.
type PlanEntry struct {
	Day      string `json:"day"`
	Task     string `json:"task"`
	Minutes  int    `json:"minutes"`
	Priority string `json:"priority"`
}

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type dayTask struct {
	task     string
	minutes  int
	priority string
}

var (
	resumePlan = [7]dayTask{
		{"Rewrite 3 project bullets with metrics", 30, "High"},
		{"Add ATS keywords for target role", 25, "High"},
		{"Solve 2 Medium DSA problems", 45, "High"},
		{"Mock interview (technical)", 30, "Medium"},
		{"Polish skills section + reorder by relevance", 20, "High"},
		{"Build one small feature in portfolio project", 60, "Medium"},
		{"Apply to 3 jobs and tailor resume", 35, "Medium"},
	}
	interviewPlan = [7]dayTask{
		{"Mock interview (HR)", 25, "High"},
		{"Solve 2 Medium DSA problems", 45, "High"},
		{"Mock interview (technical)", 30, "High"},
		{"System design basics (30 mins)", 30, "Medium"},
		{"Mock interview (technical)", 30, "High"},
		{"Review mistakes + create flashcards", 30, "Medium"},
		{"Apply to 3 jobs and book one referral ask", 35, "Medium"},
	}
	// codingPlan also covers inactivity and maintenance.
	codingPlan = [7]dayTask{
		{"Solve 2 Medium DSA problems", 45, "High"},
		{"Solve 1 Medium SQL + 1 Medium DSA", 50, "High"},
		{"Resume: add 2 quantified achievements", 25, "Medium"},
		{"Mock interview (technical)", 30, "Medium"},
		{"Solve 2 Medium problems + review solutions", 55, "High"},
		{"Build portfolio project feature", 60, "Medium"},
		{"Apply to 3 jobs", 35, "Medium"},
	}
)

// WeeklyPlan returns the Mon..Sun template for the blocker.
func WeeklyPlan(blocker string) []PlanEntry {
	tpl := &codingPlan
	switch blocker {
	case prediction.BlockerResume:
		tpl = &resumePlan
	case prediction.BlockerInterview:
		tpl = &interviewPlan
	}
	out := make([]PlanEntry, 0, len(weekdays))
	for i, d := range weekdays {
		out = append(out, PlanEntry{Day: d, Task: tpl[i].task, Minutes: tpl[i].minutes, Priority: tpl[i].priority})
	}
	return out
}

// WeekStart is the Monday of now's UTC week.
func WeekStart(now time.Time) time.Time {
	d := clock.Day(now)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekStartKey formats WeekStart as YYYY-MM-DD.
func WeekStartKey(now time.Time) string {
	return clock.DayKey(WeekStart(now))
}

// ValidWeekStart accepts any key of at least date length after trimming.
func ValidWeekStart(weekStart string) bool {
	return len(strings.TrimSpace(weekStart)) >= len(time.DateOnly)
}

// Toggle returns a copy of done with itemID set.
func Toggle(done map[string]bool, itemID string, value bool) map[string]bool {
	out := make(map[string]bool, len(done)+1)
	for k, v := range done {
		out[k] = v
	}
	out[itemID] = value
	return out
}
