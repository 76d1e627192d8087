package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
)

var now = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

func input(coding, resume, interview, learning float64, lastAgo *time.Duration) Input {
	res := scoring.Compute(policy.Default(), scoring.Inputs{Coding: coding, Resume: resume, Interview: interview, Learning: learning})
	in := Input{Score: res.Score, Breakdown: res.Breakdown, Now: now}
	if lastAgo != nil {
		last := now.Add(-*lastAgo)
		in.LastActivityAt = &last
	}
	return in
}

func dur(d time.Duration) *time.Duration { return &d }

func TestInactivityOutranksResume(t *testing.T) {
	f := Predict(policy.Default(), input(90, 60, 90, 90, dur(4*24*time.Hour)))
	assert.Equal(t, BlockerInactivity, f.BiggestBlocker)
	require.NotNil(t, f.RiskAlert)
	assert.Equal(t, "AI Risk Alert: inactivity for 4 days may slow your job-readiness timeline.", f.RiskAlert.Message)
	assert.Equal(t, RiskHigh, f.RiskLevel)
	assert.Equal(t, 20, f.BestAction.EstimatedTimeMinutes)
	assert.Equal(t, "/coding", f.BestAction.CTAPath)
	require.NotNil(t, f.InactiveDays)
	assert.Equal(t, 4, *f.InactiveDays)
	assert.Equal(t, 92, f.ConfidenceScore)
}

func TestBlockerOrder(t *testing.T) {
	cases := []struct {
		name                                string
		coding, resume, interview, learning float64
		blocker, task                       string
	}{
		{"resume", 50, 70, 50, 50, BlockerResume, "Solve 2 Medium DSA problems"},
		{"interview", 90, 85, 60, 50, BlockerInterview, "Take 1 mock interview"},
		{"coding", 60, 85, 75, 50, BlockerCoding, "Solve 2 Medium DSA problems"},
		{"resume action", 80, 70, 90, 50, BlockerResume, "Improve 2 resume bullet points with metrics"},
		{"maintain", 90, 90, 90, 90, BlockerMaintain, "Apply to 3 jobs and tailor resume keywords"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Predict(policy.Default(), input(tc.coding, tc.resume, tc.interview, tc.learning, dur(time.Hour)))
			assert.Equal(t, tc.blocker, f.BiggestBlocker)
			assert.Equal(t, tc.task, f.BestAction.Task)
			assert.Equal(t, "Today's Best Action", f.BestAction.Title)
			assert.Nil(t, f.RiskAlert)
		})
	}
}

func TestThreeDaysIsNotInactive(t *testing.T) {
	f := Predict(policy.Default(), input(90, 90, 90, 90, dur(3*24*time.Hour+23*time.Hour)))
	assert.Equal(t, BlockerMaintain, f.BiggestBlocker)
	assert.Equal(t, 3, *f.InactiveDays)
}

func TestNoActivity(t *testing.T) {
	f := Predict(policy.Default(), input(0, 0, 0, 0, nil))
	assert.Nil(t, f.InactiveDays)
	assert.Nil(t, f.RiskAlert)
	assert.Equal(t, BlockerResume, f.BiggestBlocker)
	assert.Equal(t, RiskMedium, f.RiskLevel)
	// base 115, pace 1.1
	assert.Equal(t, 127, f.EstimatedDaysToJobReady)
	assert.Equal(t, "Resume-Ready", f.NextCareerMilestone)
	assert.Equal(t, 15, f.MilestoneDays)
}

func TestDaysClamped(t *testing.T) {
	hi := Predict(policy.Default(), input(100, 100, 100, 100, dur(time.Hour)))
	assert.Equal(t, 30, hi.EstimatedDaysToJobReady)
	assert.Equal(t, "Interview-Ready", hi.NextCareerMilestone)
	assert.Equal(t, 10, hi.MilestoneDays)
	assert.Equal(t, RiskLow, hi.RiskLevel)

	lo := Predict(policy.Default(), input(0, 0, 0, 0, dur(30*24*time.Hour)))
	assert.Equal(t, 144, lo.EstimatedDaysToJobReady)
	assert.Equal(t, 82, lo.ConfidenceScore)
	assert.Equal(t, "Medium", ConfidenceIndicator(lo.ConfidenceScore))
}

func TestPace(t *testing.T) {
	// composite 50 with learning 70: base 57, pace 0.9
	in := input(40, 40, 40, 70, dur(time.Hour))
	in.Score = 50
	f := Predict(policy.Default(), in)
	assert.Equal(t, 51, f.EstimatedDaysToJobReady)

	// learning 50 -> pace 1.0
	in = input(40, 40, 40, 50, dur(time.Hour))
	in.Score = 50
	assert.Equal(t, 57, Predict(policy.Default(), in).EstimatedDaysToJobReady)
}

func TestWhatIf(t *testing.T) {
	f := Predict(policy.Default(), input(80, 60, 50, 90, dur(time.Hour)))
	require.Len(t, f.WhatIf, 3)
	assert.Equal(t, "Readiness increases to 83%", f.WhatIf[0].Effect)
	assert.Equal(t, "If your resume score crosses 85%", f.WhatIf[1].Scenario)

	top := Predict(policy.Default(), input(100, 100, 100, 100, nil))
	assert.Equal(t, "Readiness increases to 100%", top.WhatIf[0].Effect)
}

func TestConfidenceIndicator(t *testing.T) {
	assert.Equal(t, "High", ConfidenceIndicator(92))
	assert.Equal(t, "High", ConfidenceIndicator(90))
	assert.Equal(t, "Medium", ConfidenceIndicator(80))
	assert.Equal(t, "Low", ConfidenceIndicator(79))
}
