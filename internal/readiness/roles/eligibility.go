package roles

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
)

const (
	actionCoding    = "Practice coding daily (2 Medium problems)"
	actionResume    = "Improve resume bullets with metrics"
	actionInterview = "Complete 2 mock interviews this week"
	actionMaintain  = "Maintain momentum and apply to roles"
)

type Eligibility struct {
	Role                       string   `json:"role"`
	EligibilityPercentage      float64  `json:"eligibility_percentage"`
	MissingSkills              []string `json:"missing_skills"`
	RequiredImprovementActions []string `json:"required_improvement_actions"`
	ResumeMatchScore           float64  `json:"resume_match_score"`
	InterviewReadinessScore    float64  `json:"interview_readiness_score"`
}

// Match scores the learner against every role in the catalog, highest eligibility first.
// Ties keep catalog order.
func Match(p *policy.Policy, b scoring.Breakdown, knownSkills []string) []Eligibility {
	known := make(map[string]struct{}, len(knownSkills))
	for _, s := range knownSkills {
		known[Normalize(s)] = struct{}{}
	}
	scores := map[string]float64{}
	for _, c := range policy.Components {
		scores[c] = scoring.Clamp(b.Score(c))
	}

	out := make([]Eligibility, 0, len(p.Roles))
	for _, role := range p.Roles {
		missing := []string{}
		for _, s := range role.RequiredSkills {
			n := Normalize(s)
			if _, ok := known[n]; !ok {
				missing = append(missing, n)
			}
		}
		skillMatch := 1.0 - float64(len(missing))/math.Max(1, float64(len(role.RequiredSkills)))

		fit := 1.0
		for _, c := range policy.Components {
			fit *= math.Min(1, scores[c]/math.Max(1, role.Min[c]))
		}

		pct := scoring.Round(scoring.Clamp((skillMatch*p.Eligibility.SkillWeight+fit*p.Eligibility.FitWeight)*100), 1)

		out = append(out, Eligibility{
			Role:                       role.Role,
			EligibilityPercentage:      pct,
			MissingSkills:              missing,
			RequiredImprovementActions: actions(p, role, scores, missing),
			ResumeMatchScore:           scoring.Round(scores[policy.Resume], 1),
			InterviewReadinessScore:    scoring.Round(scores[policy.Interview], 1),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EligibilityPercentage > out[j].EligibilityPercentage
	})
	return out
}

func actions(p *policy.Policy, role policy.RoleProfile, scores map[string]float64, missing []string) []string {
	out := []string{}
	if scores[policy.Coding] < role.Min[policy.Coding] {
		out = append(out, actionCoding)
	}
	if scores[policy.Resume] < role.Min[policy.Resume] {
		out = append(out, actionResume)
	}
	if scores[policy.Interview] < role.Min[policy.Interview] {
		out = append(out, actionInterview)
	}
	if len(missing) > 0 {
		out = append(out, fmt.Sprintf("Learn missing skills: %s", strings.Join(missing[:min(4, len(missing))], ", ")))
	}
	if len(out) == 0 {
		out = append(out, actionMaintain)
	}
	if len(out) > p.Eligibility.MaxActions {
		out = out[:p.Eligibility.MaxActions]
	}
	return out
}
