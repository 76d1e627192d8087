package policy

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Component names used as keys for weights, thresholds and breakdown entries.
const (
	Coding    = "coding"
	Resume    = "resume"
	Interview = "interview"
	Learning  = "learning"
)

// Components lists the four readiness components in breakdown order.
var Components = []string{Coding, Resume, Interview, Learning}

// Policy is the numeric configuration of the readiness engine.
type Policy struct {
	Weights     Weights           `yaml:"weights" json:"weights"`
	Badges      []Badge           `yaml:"badges" json:"badges"`
	Eligibility EligibilityPolicy `yaml:"eligibility" json:"eligibility"`
	Forecast    ForecastPolicy    `yaml:"forecast" json:"forecast"`
	Roles       []RoleProfile     `yaml:"roles" json:"roles"`
}

// Weights are fractions of the composite score and must sum to 1.
type Weights struct {
	Coding    float64 `yaml:"coding" json:"coding"`
	Resume    float64 `yaml:"resume" json:"resume"`
	Interview float64 `yaml:"interview" json:"interview"`
	Learning  float64 `yaml:"learning" json:"learning"`
}

func (w Weights) For(component string) float64 {
	switch component {
	case Coding:
		return w.Coding
	case Resume:
		return w.Resume
	case Interview:
		return w.Interview
	case Learning:
		return w.Learning
	default:
		return 0
	}
}

func (w Weights) Sum() float64 {
	return w.Coding + w.Resume + w.Interview + w.Learning
}

// Badge maps a minimum composite score to a level label. Badges are checked highest Min first.
type Badge struct {
	Level string  `yaml:"level" json:"level"`
	Min   float64 `yaml:"min" json:"min"`
}

type EligibilityPolicy struct {
	SkillWeight float64 `yaml:"skill_weight" json:"skill_weight"`
	FitWeight   float64 `yaml:"fit_weight" json:"fit_weight"`
	MaxActions  int     `yaml:"max_actions" json:"max_actions"`
}

type ForecastPolicy struct {
	DaysPerPoint           float64 `yaml:"days_per_point" json:"days_per_point"`
	MinDays                int     `yaml:"min_days" json:"min_days"`
	MaxDays                int     `yaml:"max_days" json:"max_days"`
	InactivityDays         int     `yaml:"inactivity_days" json:"inactivity_days"`
	InactivePace           float64 `yaml:"inactive_pace" json:"inactive_pace"`
	ConsistentLearning     float64 `yaml:"consistent_learning" json:"consistent_learning"`
	ConsistentPace         float64 `yaml:"consistent_pace" json:"consistent_pace"`
	LowLearning            float64 `yaml:"low_learning" json:"low_learning"`
	LowLearningPace        float64 `yaml:"low_learning_pace" json:"low_learning_pace"`
	ResumeTarget           float64 `yaml:"resume_target" json:"resume_target"`
	InterviewTarget        float64 `yaml:"interview_target" json:"interview_target"`
	CodingTarget           float64 `yaml:"coding_target" json:"coding_target"`
	BaseConfidence         int     `yaml:"base_confidence" json:"base_confidence"`
	LongInactivityDays     int     `yaml:"long_inactivity_days" json:"long_inactivity_days"`
	LongInactiveConfidence int     `yaml:"long_inactive_confidence" json:"long_inactive_confidence"`
}

// RoleProfile is a target role: required skills plus per-component minimum scores.
type RoleProfile struct {
	Role           string             `yaml:"role" json:"role"`
	RequiredSkills []string           `yaml:"required_skills" json:"required_skills"`
	Min            map[string]float64 `yaml:"min" json:"min"`
}

// Default reproduces the built-in weighting, badges and role catalog.
func Default() *Policy {
	return &Policy{
		Weights: Weights{Coding: 0.30, Resume: 0.25, Interview: 0.25, Learning: 0.20},
		Badges: []Badge{
			{Level: "Job-Ready", Min: 85},
			{Level: "Intermediate", Min: 65},
			{Level: "Beginner", Min: 45},
			{Level: "Novice", Min: 0},
		},
		Eligibility: EligibilityPolicy{SkillWeight: 0.55, FitWeight: 0.45, MaxActions: 4},
		Forecast: ForecastPolicy{
			DaysPerPoint:           1.15,
			MinDays:                30,
			MaxDays:                180,
			InactivityDays:         3,
			InactivePace:           1.25,
			ConsistentLearning:     70,
			ConsistentPace:         0.9,
			LowLearning:            40,
			LowLearningPace:        1.1,
			ResumeTarget:           80,
			InterviewTarget:        70,
			CodingTarget:           70,
			BaseConfidence:         92,
			LongInactivityDays:     7,
			LongInactiveConfidence: 82,
		},
		Roles: []RoleProfile{
			role("Frontend Developer", []string{"javascript", "react"}, 60, 60, 50, 40),
			role("Backend Developer", []string{"python", "fastapi", "sql"}, 60, 60, 50, 40),
			role("Full-Stack Developer", []string{"react", "api", "sql"}, 65, 65, 55, 45),
			role("Data Analyst", []string{"sql", "excel", "power bi"}, 45, 60, 45, 40),
			role("Data Scientist", []string{"python", "pandas", "machine learning", "sql"}, 60, 65, 55, 45),
			role("ML Engineer", []string{"python", "machine learning", "docker"}, 65, 65, 55, 45),
			role("DevOps Engineer", []string{"docker", "kubernetes", "aws"}, 50, 60, 50, 45),
		},
	}
}

func role(name string, skills []string, coding, resume, interview, learning float64) RoleProfile {
	return RoleProfile{
		Role:           name,
		RequiredSkills: skills,
		Min: map[string]float64{
			Coding:    coding,
			Resume:    resume,
			Interview: interview,
			Learning:  learning,
		},
	}
}

// Validate checks the policy for internal consistency.
func (p *Policy) Validate() error {
	if p == nil {
		return fmt.Errorf("policy is nil")
	}
	w := p.Weights
	for _, c := range Components {
		if w.For(c) < 0 {
			return fmt.Errorf("weight %s must be non-negative", c)
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-6 {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", w.Sum())
	}
	if len(p.Badges) == 0 {
		return fmt.Errorf("at least one badge is required")
	}
	for _, b := range p.Badges {
		if strings.TrimSpace(b.Level) == "" {
			return fmt.Errorf("badge level is required")
		}
		if b.Min < 0 || b.Min > 100 {
			return fmt.Errorf("badge %q min must be within 0..100", b.Level)
		}
	}
	e := p.Eligibility
	if e.SkillWeight < 0 || e.FitWeight < 0 {
		return fmt.Errorf("eligibility weights must be non-negative")
	}
	if e.SkillWeight+e.FitWeight <= 0 {
		return fmt.Errorf("eligibility weights must sum to a positive total")
	}
	if p.Eligibility.MaxActions < 1 {
		return fmt.Errorf("eligibility max_actions must be at least 1")
	}
	f := p.Forecast
	if f.MinDays < 0 || f.MaxDays < 1 || f.MaxDays < f.MinDays {
		return fmt.Errorf("forecast day bounds invalid: min=%d max=%d", f.MinDays, f.MaxDays)
	}
	if f.DaysPerPoint <= 0 {
		return fmt.Errorf("forecast days_per_point must be positive")
	}
	if f.BaseConfidence < 1 || f.BaseConfidence > 100 {
		return fmt.Errorf("forecast base_confidence must be within 1..100")
	}
	seen := make(map[string]bool, len(p.Roles))
	for _, r := range p.Roles {
		name := strings.TrimSpace(r.Role)
		if name == "" {
			return fmt.Errorf("role name is required")
		}
		if seen[name] {
			return fmt.Errorf("duplicate role %q", name)
		}
		seen[name] = true
		for c, v := range r.Min {
			if v < 0 {
				return fmt.Errorf("role %q threshold %s must be non-negative", name, c)
			}
		}
	}
	return nil
}

// BadgeFor returns the level of the highest badge whose Min is at or below score.
func (p *Policy) BadgeFor(score float64) string {
	best := ""
	bestMin := math.Inf(-1)
	for _, b := range p.Badges {
		if score >= b.Min && b.Min > bestMin {
			best, bestMin = b.Level, b.Min
		}
	}
	if best == "" && len(p.Badges) > 0 {
		lowest := p.Badges[0]
		for _, b := range p.Badges[1:] {
			if b.Min < lowest.Min {
				lowest = b
			}
		}
		return lowest.Level
	}
	return best
}

// Parse decodes YAML on top of Default. Fields a file leaves out keep their
// default; lists (badges, roles) are replaced as a whole when present.
func Parse(data []byte) (*Policy, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse readiness policy yaml: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile reads a YAML policy from path. An empty path yields Default.
func LoadFile(path string) (*Policy, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read readiness policy %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal renders the policy as YAML.
func (p *Policy) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
