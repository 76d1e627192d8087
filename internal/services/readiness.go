package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bus "github.com/yungbote/careerpulse-backend/internal/clients/redis"
	"github.com/yungbote/careerpulse-backend/internal/data/repos"
	types "github.com/yungbote/careerpulse-backend/internal/domain/career"
	metrics "github.com/yungbote/careerpulse-backend/internal/domain/metrics"
	"github.com/yungbote/careerpulse-backend/internal/observability"
	"github.com/yungbote/careerpulse-backend/internal/platform/clock"
	"github.com/yungbote/careerpulse-backend/internal/platform/dbctx"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/readiness/activity"
	"github.com/yungbote/careerpulse-backend/internal/readiness/planner"
	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/readiness/prediction"
	"github.com/yungbote/careerpulse-backend/internal/readiness/progress"
	"github.com/yungbote/careerpulse-backend/internal/readiness/roles"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
	"github.com/yungbote/careerpulse-backend/internal/readiness/streak"
)

const (
	historyDays         = 30
	submissionLimit     = 500
	interviewLimit      = 200
	topicLimit          = 200
	pageAnalyticsLimit  = 10
	shortWindowDays     = 7
	analyticsWindowDays = 30
)

var tracer = otel.Tracer("github.com/yungbote/careerpulse-backend/internal/services")

type LevelBadge struct {
	Level string `json:"level"`
}

type Confidence struct {
	Score     int    `json:"score"`
	Indicator string `json:"indicator"`
}

type PredictionSummary struct {
	EstimatedDaysToJobReady int    `json:"estimated_days_to_job_ready"`
	NextCareerMilestone     string `json:"next_career_milestone"`
	MilestoneDays           int    `json:"milestone_days"`
	BiggestBlocker          string `json:"biggest_blocker"`
	RiskLevel               string `json:"risk_level"`
}

type WeeklyState struct {
	WeekStart string          `json:"week_start"`
	DoneMap   map[string]bool `json:"done_map"`
}

type ActionPlan struct {
	Today       prediction.Action     `json:"today"`
	Weekly      []planner.PlanEntry   `json:"weekly"`
	WeeklyState WeeklyState           `json:"weekly_state"`
	RiskAlert   *prediction.RiskAlert `json:"ai_risk_alert,omitempty"`
}

type Insights struct {
	SkillGaps                  []string `json:"skill_gaps"`
	HighDemandSkills           []string `json:"high_demand_skills"`
	SuggestedCertifications    []string `json:"suggested_certifications"`
	SuggestedPortfolioProjects []string `json:"suggested_portfolio_projects"`
	NetworkingSuggestions      []string `json:"networking_suggestions"`
}

type Dashboard struct {
	CareerReadinessScore float64                `json:"career_readiness_score"`
	LevelBadge           LevelBadge             `json:"level_badge"`
	Confidence           Confidence             `json:"confidence"`
	Breakdown            scoring.Breakdown      `json:"breakdown"`
	Tracking             Tracking               `json:"tracking"`
	RoleEligibility      []roles.Eligibility    `json:"role_eligibility"`
	JobSuggestions       []roles.Suggestion     `json:"job_suggestions"`
	JobRecommendations   []roles.Recommendation `json:"job_recommendations"`
	Prediction           PredictionSummary      `json:"prediction"`
	WhatIf               []prediction.WhatIf    `json:"what_if"`
	ActionPlan           ActionPlan             `json:"action_plan"`
	Insights             Insights               `json:"insights"`
	History              []progress.Point       `json:"history"`
}

type DashboardStats struct {
	CodeSubmissions          int64      `json:"code_submissions"`
	AvgCodeScore             float64    `json:"avg_code_score"`
	ResumeAnalyses           int64      `json:"resume_analyses"`
	InterviewsTaken          int64      `json:"interviews_taken"`
	LearningSessions         int64      `json:"learning_sessions"`
	CareerReadinessScore     float64    `json:"career_readiness_score"`
	LearningConsistencyScore float64    `json:"learning_consistency_score"`
	CurrentStreak            int        `json:"current_streak"`
	LongestStreak            int        `json:"longest_streak"`
	ActiveDays30             int        `json:"active_days_30"`
	LastActivityAt           *time.Time `json:"last_activity_at"`

	LoginCurrentStreak        int     `json:"login_current_streak"`
	LoginDisplayCurrentStreak int     `json:"login_display_current_streak"`
	LoginLongestStreak        int     `json:"login_longest_streak"`
	LoginLastLoginAt          *string `json:"login_last_login_at"`

	CodingCurrentStreak        int        `json:"coding_current_streak"`
	CodingDisplayCurrentStreak int        `json:"coding_display_current_streak"`
	CodingLongestStreak        int        `json:"coding_longest_streak"`
	CodingLastSolvedAt         *time.Time `json:"coding_last_solved_at"`
}

var (
	highDemandSkills           = []string{"System Design", "Cloud (AWS/Azure)", "SQL", "DSA", "Docker"}
	suggestedCertifications    = []string{"AWS Cloud Practitioner", "Azure Fundamentals", "Google Data Analytics"}
	suggestedPortfolioProjects = []string{"Full-stack CRUD app", "Resume ATS checker", "Coding tracker dashboard"}
	networkingSuggestions      = []string{"Ask for 2 referrals", "Connect with 5 engineers on LinkedIn", "Join one local tech community"}
)

type ReadinessService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	ProgressDelta(ctx context.Context) (*progress.Delta, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

type readinessService struct {
	db              *gorm.DB
	log             *logger.Logger
	clock           clock.Clock
	policy          *policy.Policy
	source          repos.SourceRepo
	activityEvents  repos.ActivityEventRepo
	logins          repos.LoginStreakRepo
	snapshots       repos.ReadinessSnapshotRepo
	plans           ActionPlanService
	events          EventPublisher
	defaultLocation string
}

func NewReadinessService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clk clock.Clock,
	pol *policy.Policy,
	source repos.SourceRepo,
	activityEvents repos.ActivityEventRepo,
	logins repos.LoginStreakRepo,
	snapshots repos.ReadinessSnapshotRepo,
	plans ActionPlanService,
	events EventPublisher,
	defaultLocation string,
) ReadinessService {
	if clk == nil {
		clk = clock.System()
	}
	if pol == nil {
		pol = policy.Default()
	}
	if defaultLocation == "" {
		defaultLocation = roles.DefaultLocation
	}
	return &readinessService{
		db:              db,
		log:             baseLog.With("service", "ReadinessService"),
		clock:           clk,
		policy:          pol,
		source:          source,
		activityEvents:  activityEvents,
		logins:          logins,
		snapshots:       snapshots,
		plans:           plans,
		events:          events,
		defaultLocation: defaultLocation,
	}
}

func (s *readinessService) span(ctx context.Context, stage string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "readiness."+stage, trace.WithAttributes(attribute.String("readiness.stage", stage)))
}

func (s *readinessService) Dashboard(ctx context.Context) (*Dashboard, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.dashboard(ctx, userID)
	if err != nil {
		observability.Current().ObserveReadiness(0, err)
		return nil, err
	}
	observability.Current().ObserveReadiness(out.CareerReadinessScore, nil)
	return out, nil
}

func (s *readinessService) dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	now := s.clock.Now()
	ctx, root := tracer.Start(ctx, "readiness.dashboard")
	defer root.End()
	dbc := dbctx.Of(ctx)

	// Aggregation
	aggCtx, aggSpan := s.span(ctx, "aggregate")
	agg := dbctx.Of(aggCtx)
	base, err := loadBaseline(agg, s.log, s.source, userID, now)
	if err != nil {
		aggSpan.End()
		return nil, err
	}
	latestResume, err := s.source.LatestResume(agg, userID)
	if err != nil {
		aggSpan.End()
		return nil, fmt.Errorf("load latest resume: %w", err)
	}
	activityTimes, err := s.activityTimes(agg, userID, now, activity.DashboardLookbackDays)
	if err != nil {
		aggSpan.End()
		return nil, err
	}
	tracked := activity.Track(activityTimes, now)
	rawEvents, err := s.activityEvents.ListSince(agg, userID, activity.Format(activity.Cutoff(now, analyticsWindowDays)),
		[]string{activity.EventPageView, activity.EventTimeSpent})
	if err != nil {
		aggSpan.End()
		return nil, fmt.Errorf("load activity events: %w", err)
	}
	events := make([]activity.Event, 0, len(rawEvents))
	for _, ev := range rawEvents {
		events = append(events, activity.Event{Type: ev.EventType, Path: ev.Path, DurationSeconds: ev.DurationSeconds, CreatedAt: ev.CreatedAt})
	}
	subs, err := s.source.ListSubmissions(agg, userID, submissionLimit)
	if err != nil {
		aggSpan.End()
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	interviews, err := s.source.ListInterviews(agg, userID, interviewLimit)
	if err != nil {
		aggSpan.End()
		return nil, fmt.Errorf("load interviews: %w", err)
	}
	topics, err := s.source.LearningTopics(agg, userID, topicLimit)
	if err != nil {
		aggSpan.End()
		return nil, fmt.Errorf("load learning topics: %w", err)
	}
	profile, err := s.source.GetProfile(agg, userID)
	if err != nil {
		aggSpan.End()
		return nil, fmt.Errorf("load profile: %w", err)
	}
	aggSpan.End()

	// Scoring
	resumeScore := base.avgResume()
	resumeText := ""
	if latestResume != nil {
		resumeText = latestResume.TextContent
		if latestResume.CredibilityScore != nil {
			resumeScore = *latestResume.CredibilityScore
		}
	} else {
		s.log.Debug("no resume on file, using historical average", "user_id", userID)
	}
	result := scoring.Compute(s.policy, scoring.Inputs{
		Coding:    base.avgCode(),
		Resume:    resumeScore,
		Interview: base.avgInterview(),
		Learning:  base.LearningConsistency,
	})

	lastActivity := tracked.LastActivityAt
	if lastActivity == nil {
		lastActivity = base.Learning.LastActivityAt
	}

	tracking := s.buildTracking(base, tracked, events, subs, latestResume, resumeScore, interviews, lastActivity, now)

	var profileJSON []byte
	if profile != nil {
		profileJSON = profile.ProfileData
	}
	known := roles.KnownSkills(profileJSON, resumeText, topics)
	ranked := roles.Match(s.policy, result.Breakdown, known)
	location := roles.PreferredLocation(profileJSON, s.defaultLocation)

	// Prediction
	_, predSpan := s.span(ctx, "predict")
	forecast := prediction.Predict(s.policy, prediction.Input{
		Score:          result.Score,
		Breakdown:      result.Breakdown,
		LastActivityAt: lastActivity,
		Now:            now,
	})
	predSpan.End()

	// Planning
	planCtx, planSpan := s.span(ctx, "plan")
	plan := dbctx.Of(planCtx)
	today, err := s.plans.LockToday(plan, userID, now, forecast.BestAction)
	if err != nil {
		planSpan.End()
		return nil, err
	}
	weekStart := planner.WeekStartKey(now)
	done, err := s.plans.WeeklyState(plan, userID, weekStart)
	if err != nil {
		planSpan.End()
		return nil, err
	}
	if err := s.recordSnapshot(plan, userID, now, result); err != nil {
		planSpan.End()
		return nil, err
	}
	planSpan.End()

	history, err := s.history(dbc, userID)
	if err != nil {
		return nil, err
	}

	skillGaps := []string{}
	if len(ranked) > 0 && ranked[0].MissingSkills != nil {
		skillGaps = ranked[0].MissingSkills
	}
	active7 := tracked.ActiveDays7

	return &Dashboard{
		CareerReadinessScore: result.Score,
		LevelBadge:           LevelBadge{Level: result.Level},
		Confidence: Confidence{
			Score:     forecast.ConfidenceScore,
			Indicator: prediction.ConfidenceIndicator(forecast.ConfidenceScore),
		},
		Breakdown:       result.Breakdown,
		Tracking:        tracking,
		RoleEligibility: ranked,
		JobSuggestions: roles.Suggestions(ranked, roles.SuggestionInput{
			Location:    location,
			Blocker:     forecast.BiggestBlocker,
			ActiveDays7: &active7,
			WeakTopics:  tracking.Coding.WeakTopics,
		}),
		JobRecommendations: roles.Recommendations(ranked, location),
		Prediction: PredictionSummary{
			EstimatedDaysToJobReady: forecast.EstimatedDaysToJobReady,
			NextCareerMilestone:     forecast.NextCareerMilestone,
			MilestoneDays:           forecast.MilestoneDays,
			BiggestBlocker:          forecast.BiggestBlocker,
			RiskLevel:               forecast.RiskLevel,
		},
		WhatIf: forecast.WhatIf,
		ActionPlan: ActionPlan{
			Today:       today,
			Weekly:      planner.WeeklyPlan(forecast.BiggestBlocker),
			WeeklyState: WeeklyState{WeekStart: weekStart, DoneMap: done},
			RiskAlert:   forecast.RiskAlert,
		},
		Insights: Insights{
			SkillGaps:                  skillGaps,
			HighDemandSkills:           highDemandSkills,
			SuggestedCertifications:    suggestedCertifications,
			SuggestedPortfolioProjects: suggestedPortfolioProjects,
			NetworkingSuggestions:      networkingSuggestions,
		},
		History: history,
	}, nil
}

func (s *readinessService) activityTimes(dbc dbctx.Context, userID uuid.UUID, now time.Time, lookback int) ([]time.Time, error) {
	cutoff := activity.Cutoff(now, activity.ClampLookback(lookback))
	raw, err := s.source.ActivityTimestamps(dbc, userID, activity.Format(cutoff))
	if err != nil {
		return nil, fmt.Errorf("load activity timestamps: %w", err)
	}
	parsed := activity.ParseAll(raw)
	if dropped := len(raw) - len(parsed); dropped > 0 {
		s.log.Debug("dropped unparsable activity timestamps", "user_id", userID, "dropped", dropped)
	}
	out := parsed[:0]
	for _, t := range parsed {
		if !t.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *readinessService) buildTracking(
	base *baseline,
	tracked activity.Tracking,
	events []activity.Event,
	subs []*metrics.CodeSubmission,
	latestResume *metrics.ResumeAnalysis,
	resumeScore float64,
	interviews []*metrics.InterviewEvaluation,
	lastActivity *time.Time,
	now time.Time,
) Tracking {
	active := ActiveDays{Days7: tracked.ActiveDays7, Days30: tracked.ActiveDays30, Days90: tracked.ActiveDays90}
	consistency := scoring.Round(base.LearningConsistency, 2)

	coding := summarizeCoding(subs)
	coding.TotalProblemsSolved = base.Totals.Submissions.Count
	coding.ConsistencyScore = consistency

	resume := ResumeTracking{
		ResumeScore:                   scoring.Clamp(resumeScore),
		ResumeImprovementHistoryCount: base.Totals.Resumes.Count,
	}
	if latestResume != nil {
		r := latestResume
		resume.Sections = scoring.FillResumeSections(r.ProjectsScore, r.SkillsScore, r.ExperienceScore, r.ATSScore, r.TextContent)
		at := r.CreatedAt
		resume.LastResumeReviewDate = &at
	}

	interviewTypes, lastInterview := summarizeInterviews(interviews)

	return Tracking{
		Activity: ActivityTracking{
			DailyLoginActivity:   tracked.DailyLoginActivity,
			ActiveDays:           active,
			MissedLearningDays30: tracked.MissedLearningDays30,
			LastActivityAt:       lastActivity,
			TimeSpentSeconds7:    activity.TimeSpent(events, now, shortWindowDays),
			TimeSpentSeconds30:   activity.TimeSpent(events, now, analyticsWindowDays),
			Pages7d:              activity.PageAnalytics(events, now, shortWindowDays, pageAnalyticsLimit),
			Pages30d:             activity.PageAnalytics(events, now, analyticsWindowDays, pageAnalyticsLimit),
		},
		Learning: LearningTracking{
			DailyLoginActivity: tracked.DailyLoginActivity,
			ActiveDays:         active,
			LearningStreak: LearningStreakSummary{
				Current: base.Learning.CurrentStreak,
				Longest: base.Learning.LongestStreak,
			},
			LearningSessions:         base.Totals.Learning.Count,
			LearningConsistencyScore: consistency,
			MissedLearningDays30:     tracked.MissedLearningDays30,
			LastActivityAt:           lastActivity,
		},
		Coding: coding,
		Resume: resume,
		MockInterview: InterviewTracking{
			NumberOfMockInterviews: base.Totals.Interviews.Count,
			Types:                  interviewTypes,
			AvgReadinessScore:      scoring.Round(base.avgInterview(), 2),
			LastMockInterviewDate:  lastInterview,
		},
	}
}

// recordSnapshot stores the first composite of the day; later calls leave it untouched.
func (s *readinessService) recordSnapshot(dbc dbctx.Context, userID uuid.UUID, now time.Time, result scoring.Result) error {
	raw, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	_, created, err := s.snapshots.InsertIfAbsent(dbc, &types.ReadinessSnapshot{
		UserID:         userID,
		SnapshotDate:   clock.DayKey(now),
		ReadinessScore: result.Score,
		BreakdownJSON:  datatypes.JSON(raw),
		CreatedAt:      now,
	})
	if err != nil {
		return fmt.Errorf("record readiness snapshot: %w", err)
	}
	if created {
		observability.Current().IncSnapshotCreated()
		publish(dbc.Ctx, s.log, s.events, bus.EventSnapshotCreated, userID, now, map[string]any{
			"snapshot_date":   clock.DayKey(now),
			"readiness_score": result.Score,
		})
	}
	return nil
}

func (s *readinessService) history(dbc dbctx.Context, userID uuid.UUID) ([]progress.Point, error) {
	rows, err := s.snapshots.ListRecent(dbc, userID, historyDays)
	if err != nil {
		return nil, fmt.Errorf("load readiness history: %w", err)
	}
	out := make([]progress.Point, 0, len(rows))
	for _, r := range rows {
		p := progress.Point{Date: r.SnapshotDate, ReadinessScore: r.ReadinessScore}
		if len(r.BreakdownJSON) > 0 {
			var b scoring.Breakdown
			if err := json.Unmarshal(r.BreakdownJSON, &b); err == nil {
				p.Breakdown = &b
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *readinessService) ProgressDelta(ctx context.Context) (*progress.Delta, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.history(dbctx.Of(ctx), userID)
	if err != nil {
		return nil, err
	}
	out := progress.Compute(history, s.clock.Now())
	return &out, nil
}

func (s *readinessService) Stats(ctx context.Context) (*DashboardStats, error) {
	userID, err := ownerFrom(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	dbc := dbctx.Of(ctx)

	base, err := loadBaseline(dbc, s.log, s.source, userID, now)
	if err != nil {
		return nil, err
	}
	loginRow, err := s.logins.Get(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load login streak: %w", err)
	}
	login := loginView(loginRow, now)
	subs, err := s.source.ListSubmissions(dbc, userID, submissionLimit)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	coding := streak.Coding(passedTimes(subs), now)

	return &DashboardStats{
		CodeSubmissions:          base.Totals.Submissions.Count,
		AvgCodeScore:             scoring.Round(base.avgCode(), 2),
		ResumeAnalyses:           base.Totals.Resumes.Count,
		InterviewsTaken:          base.Totals.Interviews.Count,
		LearningSessions:         base.Totals.Learning.Count,
		CareerReadinessScore:     base.plainScore(s.policy),
		LearningConsistencyScore: scoring.Round(base.LearningConsistency, 2),
		CurrentStreak:            base.Learning.CurrentStreak,
		LongestStreak:            base.Learning.LongestStreak,
		ActiveDays30:             base.Learning.ActiveDays30,
		LastActivityAt:           base.Learning.LastActivityAt,

		LoginCurrentStreak:        login.CurrentStreak,
		LoginDisplayCurrentStreak: login.DisplayCurrentStreak,
		LoginLongestStreak:        login.LongestStreak,
		LoginLastLoginAt:          login.LastLoginAt,

		CodingCurrentStreak:        coding.CurrentStreak,
		CodingDisplayCurrentStreak: coding.DisplayCurrentStreak,
		CodingLongestStreak:        coding.LongestStreak,
		CodingLastSolvedAt:         coding.LastSolvedAt,
	}, nil
}
