package services

import (
	"sort"
	"strings"
	"time"

	metrics "github.com/yungbote/careerpulse-backend/internal/domain/metrics"
	"github.com/yungbote/careerpulse-backend/internal/readiness/activity"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
)

type ActiveDays struct {
	Days7  int `json:"7"`
	Days30 int `json:"30"`
	Days90 int `json:"90"`
}

type ActivityTracking struct {
	DailyLoginActivity   int                 `json:"daily_login_activity"`
	ActiveDays           ActiveDays          `json:"active_days"`
	MissedLearningDays30 int                 `json:"missed_learning_days_30"`
	LastActivityAt       *time.Time          `json:"last_activity_at"`
	TimeSpentSeconds7    int                 `json:"time_spent_seconds_7"`
	TimeSpentSeconds30   int                 `json:"time_spent_seconds_30"`
	Pages7d              []activity.PageStat `json:"pages_7d"`
	Pages30d             []activity.PageStat `json:"pages_30d"`
}

type LearningStreakSummary struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type LearningTracking struct {
	DailyLoginActivity       int                   `json:"daily_login_activity"`
	ActiveDays               ActiveDays            `json:"active_days"`
	LearningStreak           LearningStreakSummary `json:"learning_streak"`
	LearningSessions         int64                 `json:"learning_sessions"`
	LearningConsistencyScore float64               `json:"learning_consistency_score"`
	MissedLearningDays30     int                   `json:"missed_learning_days_30"`
	LastActivityAt           *time.Time            `json:"last_activity_at"`
}

type TopicPerformance struct {
	Topic    string  `json:"topic"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

type CodingTracking struct {
	TotalProblemsSolved     int64              `json:"total_problems_solved"`
	EasyMediumHard          map[string]int     `json:"easy_medium_hard"`
	TopicWisePerformance    []TopicPerformance `json:"topic_wise_performance"`
	AccuracyRate            float64            `json:"accuracy_rate"`
	AverageSolveTimeSeconds *int               `json:"average_solve_time_seconds"`
	ConsistencyScore        float64            `json:"consistency_score"`
	WeakTopics              []string           `json:"weak_topics"`
}

type ResumeTracking struct {
	ResumeScore                   float64                `json:"resume_score"`
	Sections                      scoring.ResumeSections `json:"sections"`
	ResumeImprovementHistoryCount int64                  `json:"resume_improvement_history_count"`
	LastResumeReviewDate          *string                `json:"last_resume_review_date"`
}

type InterviewTracking struct {
	NumberOfMockInterviews int64          `json:"number_of_mock_interviews"`
	Types                  map[string]int `json:"types"`
	AvgReadinessScore      float64        `json:"avg_readiness_score"`
	LastMockInterviewDate  *string        `json:"last_mock_interview_date"`
}

type Tracking struct {
	Activity      ActivityTracking  `json:"activity"`
	Learning      LearningTracking  `json:"learning"`
	Coding        CodingTracking    `json:"coding"`
	Resume        ResumeTracking    `json:"resume"`
	MockInterview InterviewTracking `json:"mock_interview"`
}

const (
	difficultyUnknown = "unknown"
	weakTopicCount    = 3
)

// summarizeCoding derives difficulty counts, per-topic averages and accuracy from
// the newest submissions. Unscored submissions count as 0 in topic averages.
func summarizeCoding(subs []*metrics.CodeSubmission) CodingTracking {
	out := CodingTracking{
		EasyMediumHard:       map[string]int{"easy": 0, "medium": 0, "hard": 0, difficultyUnknown: 0},
		TopicWisePerformance: []TopicPerformance{},
		WeakTopics:           []string{},
	}
	passed, solveTotal, solveN := 0, 0, 0
	sums := map[string]float64{}
	counts := map[string]int{}
	order := []string{}
	for _, s := range subs {
		if s == nil {
			continue
		}
		if s.Passed {
			passed++
		}
		if s.SolveTimeSeconds != nil {
			solveTotal += *s.SolveTimeSeconds
			solveN++
		}
		diff := strings.ToLower(strings.TrimSpace(s.Difficulty))
		if _, ok := out.EasyMediumHard[diff]; ok && diff != difficultyUnknown {
			out.EasyMediumHard[diff]++
		} else {
			out.EasyMediumHard[difficultyUnknown]++
		}
		topic := strings.TrimSpace(s.Topic)
		if topic == "" {
			continue
		}
		if _, ok := counts[topic]; !ok {
			order = append(order, topic)
		}
		counts[topic]++
		if s.Score != nil {
			sums[topic] += *s.Score
		}
	}

	for _, t := range order {
		out.TopicWisePerformance = append(out.TopicWisePerformance, TopicPerformance{
			Topic:    t,
			AvgScore: scoring.Round(sums[t]/float64(counts[t]), 2),
			Count:    counts[t],
		})
	}
	sort.SliceStable(out.TopicWisePerformance, func(i, j int) bool {
		a, b := out.TopicWisePerformance[i], out.TopicWisePerformance[j]
		if a.AvgScore != b.AvgScore {
			return a.AvgScore < b.AvgScore
		}
		return a.Count < b.Count
	})
	for _, tp := range out.TopicWisePerformance[:min(weakTopicCount, len(out.TopicWisePerformance))] {
		out.WeakTopics = append(out.WeakTopics, tp.Topic)
	}

	if n := len(subs); n > 0 {
		out.AccuracyRate = scoring.Round(float64(passed)/float64(n)*100, 2)
	}
	if solveN > 0 {
		avg := solveTotal / solveN
		out.AverageSolveTimeSeconds = &avg
	}
	return out
}

// summarizeInterviews counts evaluations per lowercased type; rows arrive newest first.
func summarizeInterviews(rows []*metrics.InterviewEvaluation) (map[string]int, *string) {
	types := map[string]int{}
	var last *string
	for i, r := range rows {
		if r == nil {
			continue
		}
		if i == 0 {
			at := r.CreatedAt
			last = &at
		}
		kind := strings.ToLower(strings.TrimSpace(r.InterviewType))
		if kind == "" {
			kind = "general"
		}
		types[kind]++
	}
	return types, last
}

// passedTimes parses the timestamps of passed submissions, dropping unparsable ones.
func passedTimes(subs []*metrics.CodeSubmission) []time.Time {
	out := make([]time.Time, 0, len(subs))
	for _, s := range subs {
		if s == nil || !s.Passed {
			continue
		}
		if t, ok := activity.Parse(s.CreatedAt); ok {
			out = append(out, t)
		}
	}
	return out
}
