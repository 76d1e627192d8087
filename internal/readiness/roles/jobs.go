package roles

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultLocation = "India"

type JobLink struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

var searchTemplates = []struct {
	source string
	prefix string
}{
	{"LinkedIn", "https://www.linkedin.com/jobs/search/?keywords="},
	{"Indeed", "https://in.indeed.com/jobs?q="},
	{"Wellfound", "https://wellfound.com/jobs?search="},
}

// Links builds the external job-search URLs for a role and location.
func Links(role, location string) []JobLink {
	q := url.QueryEscape(fmt.Sprintf("%s %s entry level", role, location))
	out := make([]JobLink, 0, len(searchTemplates))
	for _, t := range searchTemplates {
		out = append(out, JobLink{
			Source: t.source,
			Title:  fmt.Sprintf("%s jobs on %s", role, t.source),
			URL:    t.prefix + q,
		})
	}
	return out
}

// MatchTag labels an eligibility percentage.
func MatchTag(pct float64) string {
	switch {
	case pct >= 80:
		return "Highly Matched"
	case pct >= 60:
		return "Medium Match"
	default:
		return "Stretch Role"
	}
}

type Recommendation struct {
	Role     string `json:"role"`
	MatchTag string `json:"match_tag"`
	Source   string `json:"source"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

// Recommendations flattens the search links of the top five roles.
func Recommendations(ranked []Eligibility, location string) []Recommendation {
	out := []Recommendation{}
	for _, r := range ranked[:min(5, len(ranked))] {
		tag := MatchTag(r.EligibilityPercentage)
		for _, l := range Links(r.Role, location) {
			out = append(out, Recommendation{Role: r.Role, MatchTag: tag, Source: l.Source, Title: l.Title, URL: l.URL})
		}
	}
	return out
}

type Suggestion struct {
	Role                  string    `json:"role"`
	EligibilityPercentage float64   `json:"eligibility_percentage"`
	MatchTag              string    `json:"match_tag"`
	Rationale             string    `json:"rationale"`
	ApplyLinks            []JobLink `json:"apply_links"`
	MissingSkills         []string  `json:"missing_skills"`
	RecommendedActions    []string  `json:"recommended_actions"`
}

// SuggestionInput is the tracking context used to explain a suggestion.
type SuggestionInput struct {
	Location    string
	Blocker     string
	ActiveDays7 *int
	WeakTopics  []string
}

// Suggestions explains the top three roles using recent activity, the blocker and weak topics.
func Suggestions(ranked []Eligibility, in SuggestionInput) []Suggestion {
	out := []Suggestion{}
	for _, r := range ranked[:min(3, len(ranked))] {
		if strings.TrimSpace(r.Role) == "" {
			continue
		}
		bits := []string{}
		if in.ActiveDays7 != nil {
			switch {
			case *in.ActiveDays7 >= 4:
				bits = append(bits, "Strong recent activity (active days last 7d)")
			case *in.ActiveDays7 <= 1:
				bits = append(bits, "Low recent activity, focus on quick wins to improve eligibility")
			}
		}
		if in.Blocker != "" {
			bits = append(bits, "Current blocker: "+in.Blocker)
		}
		if len(in.WeakTopics) > 0 {
			bits = append(bits, "Improve weak topics: "+strings.Join(in.WeakTopics[:min(3, len(in.WeakTopics))], ", "))
		}
		if len(bits) == 0 {
			bits = append(bits, "Based on your profile + readiness signals")
		}
		missing := r.MissingSkills
		if missing == nil {
			missing = []string{}
		}
		out = append(out, Suggestion{
			Role:                  r.Role,
			EligibilityPercentage: r.EligibilityPercentage,
			MatchTag:              MatchTag(r.EligibilityPercentage),
			Rationale:             strings.Join(bits, " • "),
			ApplyLinks:            Links(r.Role, in.Location),
			MissingSkills:         missing,
			RecommendedActions:    r.RequiredImprovementActions,
		})
	}
	return out
}
