package metrics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Source rows are written by collaborators outside the readiness engine.
// CreatedAt is kept as the text the producer wrote; unparsable values are
// skipped by the aggregator instead of failing a read.

type CodeSubmission struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProblemID        string    `gorm:"column:problem_id" json:"problem_id"`
	Topic            string    `gorm:"column:topic" json:"topic"`
	Difficulty       string    `gorm:"column:difficulty" json:"difficulty"`
	SolveTimeSeconds *int      `gorm:"column:solve_time_seconds" json:"solve_time_seconds"`
	Language         string    `gorm:"column:language" json:"language"`
	Passed           bool      `gorm:"column:passed;not null;default:false" json:"passed"`
	Score            *float64  `gorm:"column:score" json:"score"`
	CreatedAt        string    `gorm:"column:created_at;type:text;not null;index" json:"created_at"`
}

func (CodeSubmission) TableName() string { return "code_submission" }

type ResumeAnalysis struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename         string    `gorm:"column:filename" json:"filename"`
	TextContent      string    `gorm:"column:text_content;type:text" json:"text_content"`
	CredibilityScore *float64  `gorm:"column:credibility_score" json:"credibility_score"`
	ProjectsScore    *int      `gorm:"column:projects_score" json:"projects_score"`
	SkillsScore      *int      `gorm:"column:skills_score" json:"skills_score"`
	ExperienceScore  *int      `gorm:"column:experience_score" json:"experience_score"`
	ATSScore         *int      `gorm:"column:ats_score" json:"ats_score"`
	CreatedAt        string    `gorm:"column:created_at;type:text;not null;index" json:"created_at"`
}

func (ResumeAnalysis) TableName() string { return "resume_analysis" }

type InterviewEvaluation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	InterviewType   string    `gorm:"column:interview_type" json:"interview_type"`
	ReadinessScore  *float64  `gorm:"column:readiness_score" json:"readiness_score"`
	ConfidenceScore *float64  `gorm:"column:confidence_score" json:"confidence_score"`
	CreatedAt       string    `gorm:"column:created_at;type:text;not null;index" json:"created_at"`
}

func (InterviewEvaluation) TableName() string { return "interview_evaluation" }

type LearningSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Topic      string    `gorm:"column:topic" json:"topic"`
	Difficulty string    `gorm:"column:difficulty" json:"difficulty"`
	CreatedAt  string    `gorm:"column:created_at;type:text;not null;index" json:"created_at"`
}

func (LearningSession) TableName() string { return "learning_session" }

type ActivityEvent struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	EventType       string         `gorm:"column:event_type;not null;index" json:"event_type"`
	Path            string         `gorm:"column:path" json:"path,omitempty"`
	DurationSeconds *int           `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	Metadata        datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt       string         `gorm:"column:created_at;type:text;not null;index" json:"created_at"`
}

func (ActivityEvent) TableName() string { return "activity_event" }

// LoginStreak is the stored event-recency streak for logins, one row per user.
type LoginStreak struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CurrentStreak int       `gorm:"column:current_streak;not null;default:0" json:"current_streak"`
	LongestStreak int       `gorm:"column:longest_streak;not null;default:0" json:"longest_streak"`
	LastLoginAt   string    `gorm:"column:last_login_at;type:text" json:"last_login_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (LoginStreak) TableName() string { return "login_streak" }

// LearnerProfile holds the free-form profile document (skills, location).
type LearnerProfile struct {
	UserID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	ProfileData datatypes.JSON `gorm:"column:profile_data" json:"profile_data"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (LearnerProfile) TableName() string { return "learner_profile" }
