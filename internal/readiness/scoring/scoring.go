package scoring

import (
	"math"
	"strings"

	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
)

// Round rounds v to places decimals, half away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp bounds v to [0,100]. NaN and infinities become 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// LearningConsistency scales sessions in the last 30 days so 30 sessions is 100.
func LearningConsistency(sessionsLast30 int) float64 {
	return math.Min(float64(sessionsLast30)*100.0/30.0, 100)
}

// Inputs are the raw component scores before clamping.
type Inputs struct {
	Coding    float64
	Resume    float64
	Interview float64
	Learning  float64
}

func (in Inputs) get(component string) float64 {
	switch component {
	case policy.Coding:
		return in.Coding
	case policy.Resume:
		return in.Resume
	case policy.Interview:
		return in.Interview
	case policy.Learning:
		return in.Learning
	}
	return 0
}

type Component struct {
	Score        float64 `json:"score"`
	Weight       int     `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type Breakdown struct {
	Coding    Component `json:"coding"`
	Resume    Component `json:"resume"`
	Interview Component `json:"interview"`
	Learning  Component `json:"learning"`
}

// Score returns a component's clamped score by name.
func (b Breakdown) Score(component string) float64 {
	switch component {
	case policy.Coding:
		return b.Coding.Score
	case policy.Resume:
		return b.Resume.Score
	case policy.Interview:
		return b.Interview.Score
	case policy.Learning:
		return b.Learning.Score
	}
	return 0
}

func (b *Breakdown) set(component string, c Component) {
	switch component {
	case policy.Coding:
		b.Coding = c
	case policy.Resume:
		b.Resume = c
	case policy.Interview:
		b.Interview = c
	case policy.Learning:
		b.Learning = c
	}
}

// Result is a composite score with its breakdown and badge.
type Result struct {
	Score     float64
	Breakdown Breakdown
	Level     string
}

// Compute clamps each input, weights it, and sums the weighted scores.
func Compute(p *policy.Policy, in Inputs) Result {
	var b Breakdown
	total := 0.0
	for _, c := range policy.Components {
		score := Round(Clamp(in.get(c)), 2)
		w := p.Weights.For(c)
		b.set(c, Component{
			Score:        score,
			Weight:       int(math.Round(w * 100)),
			Contribution: Round(score*w, 2),
		})
		total += score * w
	}
	composite := Round(total, 2)
	return Result{Score: composite, Breakdown: b, Level: p.BadgeFor(Clamp(composite))}
}

// ResumeSections holds per-section resume scores.
type ResumeSections struct {
	Projects   int `json:"projects"`
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
	ATS        int `json:"ats_optimization"`
}

var sectionRules = []struct {
	base     int
	keywords []string
}{
	{35, []string{"project", "github", "portfolio", "demo", "capstone"}},
	{30, []string{"skills", "python", "java", "react", "sql", "aws", "docker"}},
	{25, []string{"experience", "intern", "internship", "work", "employment"}},
	{25, []string{"achievements", "metrics", "%", "impact", "results", "keywords"}},
}

// InferResumeSections estimates section scores from resume text by keyword hits.
func InferResumeSections(text string) ResumeSections {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return ResumeSections{}
	}
	scores := make([]int, len(sectionRules))
	for i, rule := range sectionRules {
		hits := 0
		for _, k := range rule.keywords {
			if strings.Contains(lower, k) {
				hits++
			}
		}
		scores[i] = max(0, min(100, rule.base+hits*15))
	}
	return ResumeSections{Projects: scores[0], Skills: scores[1], Experience: scores[2], ATS: scores[3]}
}

// FillResumeSections uses stored section scores where present and inferred ones otherwise.
func FillResumeSections(projects, skills, experience, ats *int, text string) ResumeSections {
	if projects != nil && skills != nil && experience != nil && ats != nil {
		return ResumeSections{Projects: *projects, Skills: *skills, Experience: *experience, ATS: *ats}
	}
	inferred := InferResumeSections(text)
	pick := func(v *int, fallback int) int {
		if v != nil {
			return *v
		}
		return fallback
	}
	return ResumeSections{
		Projects:   pick(projects, inferred.Projects),
		Skills:     pick(skills, inferred.Skills),
		Experience: pick(experience, inferred.Experience),
		ATS:        pick(ats, inferred.ATS),
	}
}
