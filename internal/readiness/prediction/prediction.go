package prediction

import (
	"fmt"
	"math"
	"time"

	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
)

const (
	BlockerInactivity = "Inactivity"
	BlockerResume     = "Resume Quality"
	BlockerInterview  = "Interview Practice"
	BlockerCoding     = "Coding Consistency"
	BlockerMaintain   = "Maintain Momentum"

	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"

	bestActionTitle = "Today's Best Action"
)

// Action is a single recommended task with its call to action.
type Action struct {
	Title                string `json:"title"`
	Task                 string `json:"task"`
	EstimatedTimeMinutes int    `json:"estimated_time_minutes"`
	Priority             string `json:"priority"`
	CTALabel             string `json:"cta_label"`
	CTAPath              string `json:"cta_path"`
}

type RiskAlert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type WhatIf struct {
	Scenario string `json:"scenario"`
	Effect   string `json:"effect"`
}

type Forecast struct {
	EstimatedDaysToJobReady int        `json:"estimated_days_to_job_ready"`
	NextCareerMilestone     string     `json:"next_career_milestone"`
	MilestoneDays           int        `json:"milestone_days"`
	BiggestBlocker          string     `json:"biggest_blocker"`
	RiskLevel               string     `json:"risk_level"`
	ConfidenceScore         int        `json:"confidence_score"`
	InactiveDays            *int       `json:"inactive_days"`
	RiskAlert               *RiskAlert `json:"ai_risk_alert"`
	BestAction              Action     `json:"best_action"`
	WhatIf                  []WhatIf   `json:"what_if"`
}

type Input struct {
	Score          float64
	Breakdown      scoring.Breakdown
	LastActivityAt *time.Time
	Now            time.Time
}

// InactiveDays is the number of whole days since last, nil when there was no activity.
func InactiveDays(last *time.Time, now time.Time) *int {
	if last == nil {
		return nil
	}
	d := int(math.Floor(now.Sub(*last).Hours() / 24))
	return &d
}

// Predict builds the heuristic forecast. Inactivity outranks every other blocker.
func Predict(p *policy.Policy, in Input) Forecast {
	f := p.Forecast
	score := scoring.Clamp(in.Score)
	coding := scoring.Clamp(in.Breakdown.Coding.Score)
	resume := scoring.Clamp(in.Breakdown.Resume.Score)
	interview := scoring.Clamp(in.Breakdown.Interview.Score)
	learning := scoring.Clamp(in.Breakdown.Learning.Score)

	inactive := InactiveDays(in.LastActivityAt, in.Now)
	isInactive := inactive != nil && *inactive > f.InactivityDays

	baseDays := math.RoundToEven((100 - score) * f.DaysPerPoint)
	pace := 1.0
	switch {
	case isInactive:
		pace = f.InactivePace
	case learning >= f.ConsistentLearning:
		pace = f.ConsistentPace
	case learning < f.LowLearning:
		pace = f.LowLearningPace
	}
	days := int(math.RoundToEven(baseDays * pace))
	days = max(f.MinDays, min(f.MaxDays, days))

	blocker := BlockerMaintain
	switch {
	case isInactive:
		blocker = BlockerInactivity
	case resume < f.ResumeTarget:
		blocker = BlockerResume
	case interview < f.InterviewTarget:
		blocker = BlockerInterview
	case coding < f.CodingTarget:
		blocker = BlockerCoding
	}

	var alert *RiskAlert
	if isInactive {
		alert = &RiskAlert{
			Level:   RiskHigh,
			Message: fmt.Sprintf("AI Risk Alert: inactivity for %d days may slow your job-readiness timeline.", *inactive),
		}
	}

	milestone, milestoneDays := "Resume-Ready", 15
	if resume >= f.ResumeTarget {
		milestone, milestoneDays = "Interview-Ready", 10
	}

	risk := RiskLow
	switch {
	case alert != nil:
		risk = RiskHigh
	case score < 35 || learning < f.LowLearning:
		risk = RiskMedium
	}

	confidence := f.BaseConfidence
	if inactive != nil && *inactive > f.LongInactivityDays {
		confidence = f.LongInactiveConfidence
	}
	confidence = max(70, min(99, confidence))

	return Forecast{
		EstimatedDaysToJobReady: days,
		NextCareerMilestone:     milestone,
		MilestoneDays:           milestoneDays,
		BiggestBlocker:          blocker,
		RiskLevel:               risk,
		ConfidenceScore:         confidence,
		InactiveDays:            inactive,
		RiskAlert:               alert,
		BestAction:              bestAction(f, isInactive, coding, resume, interview),
		WhatIf:                  whatIfs(score),
	}
}

// bestAction follows its own priority: comeback, coding, resume, interview, apply.
func bestAction(f policy.ForecastPolicy, inactive bool, coding, resume, interview float64) Action {
	switch {
	case inactive:
		return Action{bestActionTitle, "Do a 20-minute comeback session: 1 Easy + 1 Medium DSA problem", 20, "High", "Resume Practice", "/coding"}
	case coding < f.CodingTarget:
		return Action{bestActionTitle, "Solve 2 Medium DSA problems", 45, "High", "Start Coding", "/coding"}
	case resume < f.ResumeTarget:
		return Action{bestActionTitle, "Improve 2 resume bullet points with metrics", 25, "High", "Improve Resume", "/resume"}
	case interview < f.InterviewTarget:
		return Action{bestActionTitle, "Take 1 mock interview", 30, "High", "Start Mock Interview", "/interview"}
	default:
		return Action{bestActionTitle, "Apply to 3 jobs and tailor resume keywords", 35, "Medium", "Explore Jobs", "/resources"}
	}
}

func whatIfs(score float64) []WhatIf {
	projected := int(math.Min(100, math.RoundToEven(score+13.5)))
	return []WhatIf{
		{Scenario: "If you practice coding daily for 14 days", Effect: fmt.Sprintf("Readiness increases to %d%%", projected)},
		{Scenario: "If your resume score crosses 85%", Effect: "Eligibility increases for Backend + Full-Stack roles"},
		{Scenario: "If you complete 5 mock interviews", Effect: "Interview confidence improves and risk level drops"},
	}
}

// ConfidenceIndicator labels a confidence score.
func ConfidenceIndicator(score int) string {
	switch {
	case score >= 90:
		return "High"
	case score >= 80:
		return "Medium"
	default:
		return "Low"
	}
}
