package roles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/careerpulse-backend/internal/readiness/policy"
	"github.com/yungbote/careerpulse-backend/internal/readiness/scoring"
)

func breakdown(coding, resume, interview, learning float64) scoring.Breakdown {
	return scoring.Compute(policy.Default(), scoring.Inputs{Coding: coding, Resume: resume, Interview: interview, Learning: learning}).Breakdown
}

func find(t *testing.T, list []Eligibility, role string) Eligibility {
	t.Helper()
	for _, e := range list {
		if e.Role == role {
			return e
		}
	}
	t.Fatalf("role %q not found", role)
	return Eligibility{}
}

func TestMatchFullyQualified(t *testing.T) {
	p := policy.Default()
	all := []string{"javascript", "react", "python", "fastapi", "sql", "api", "excel", "power bi", "pandas", "machine learning", "docker", "kubernetes", "aws"}
	got := Match(p, breakdown(100, 100, 100, 100), all)
	require.Len(t, got, 7)
	for _, e := range got {
		assert.Equal(t, 100.0, e.EligibilityPercentage, e.Role)
		assert.Empty(t, e.MissingSkills)
		assert.Equal(t, []string{actionMaintain}, e.RequiredImprovementActions)
	}
	// stable: catalog order on ties
	assert.Equal(t, "Frontend Developer", got[0].Role)
	assert.Equal(t, "DevOps Engineer", got[6].Role)
}

func TestMatchAtThresholdScores100(t *testing.T) {
	p := policy.Default()
	got := Match(p, breakdown(60, 60, 50, 40), []string{"JavaScript", " React "})
	fe := find(t, got, "Frontend Developer")
	assert.Equal(t, 100.0, fe.EligibilityPercentage)
	assert.Equal(t, "Frontend Developer", got[0].Role)
}

func TestMatchPartial(t *testing.T) {
	p := policy.Default()
	got := Match(p, breakdown(30, 60, 25, 40), []string{"python", "sql"})
	be := find(t, got, "Backend Developer")
	// skill 2/3, fit 0.5*1*0.5*1 = 0.25
	assert.Equal(t, scoring.Round((2.0/3.0*0.55+0.25*0.45)*100, 1), be.EligibilityPercentage)
	assert.Equal(t, []string{"fastapi"}, be.MissingSkills)
	assert.Equal(t, []string{actionCoding, actionInterview, "Learn missing skills: fastapi"}, be.RequiredImprovementActions)
	assert.Equal(t, 60.0, be.ResumeMatchScore)
	assert.Equal(t, 25.0, be.InterviewReadinessScore)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].EligibilityPercentage, got[i].EligibilityPercentage)
	}
	for _, e := range got {
		assert.GreaterOrEqual(t, e.EligibilityPercentage, 0.0)
		assert.LessOrEqual(t, e.EligibilityPercentage, 100.0)
	}
}

func TestActionsCapped(t *testing.T) {
	p := policy.Default()
	got := Match(p, breakdown(0, 0, 0, 0), nil)
	ds := find(t, got, "Data Scientist")
	require.Len(t, ds.RequiredImprovementActions, 4)
	assert.Equal(t, "Learn missing skills: python, pandas, machine learning, sql", ds.RequiredImprovementActions[3])
	assert.Equal(t, 0.0, ds.EligibilityPercentage)
}

func TestKnownSkills(t *testing.T) {
	profile := []byte(`{"skills": ["Go", " React ", 3], "tech": "Docker, ,AWS", "stack": {"x": 1}}`)
	got := KnownSkills(profile, "Built ML pipelines with Pandas and Power BI", []string{"System Design", " "})
	assert.Equal(t, []string{"aws", "docker", "go", "ml", "pandas", "power bi", "react", "system design"}, got)

	assert.Equal(t, []string{"java"}, KnownSkills([]byte("{not json"), "Java", nil))
	assert.Empty(t, KnownSkills(nil, "", nil))
}

func TestPreferredLocation(t *testing.T) {
	assert.Equal(t, DefaultLocation, PreferredLocation(nil, DefaultLocation))
	assert.Equal(t, "Pune", PreferredLocation([]byte(`{"preferred_location":"Pune"}`), DefaultLocation))
	assert.Equal(t, "Berlin", PreferredLocation([]byte(`{"location":"Berlin","preferred_location":"Pune"}`), DefaultLocation))
	assert.Equal(t, DefaultLocation, PreferredLocation([]byte(`[1,2]`), DefaultLocation))
}

func TestLinks(t *testing.T) {
	links := Links("Backend Developer", "India")
	require.Len(t, links, 3)
	assert.Equal(t, "https://www.linkedin.com/jobs/search/?keywords=Backend+Developer+India+entry+level", links[0].URL)
	assert.Equal(t, "https://in.indeed.com/jobs?q=Backend+Developer+India+entry+level", links[1].URL)
	assert.Equal(t, "Backend Developer jobs on Wellfound", links[2].Title)
	assert.True(t, strings.HasPrefix(Links("C++ Dev", "Bengaluru & Pune")[2].URL, "https://wellfound.com/jobs?search=C%2B%2B+Dev+Bengaluru+%26+Pune"))
}

func TestMatchTag(t *testing.T) {
	assert.Equal(t, "Highly Matched", MatchTag(80))
	assert.Equal(t, "Medium Match", MatchTag(79.9))
	assert.Equal(t, "Medium Match", MatchTag(60))
	assert.Equal(t, "Stretch Role", MatchTag(59.9))
}

func TestRecommendationsAndSuggestions(t *testing.T) {
	ranked := Match(policy.Default(), breakdown(70, 70, 70, 70), []string{"react", "javascript"})
	recs := Recommendations(ranked, "India")
	assert.Len(t, recs, 15)
	assert.Equal(t, ranked[0].Role, recs[0].Role)

	active := 5
	sugg := Suggestions(ranked, SuggestionInput{Location: "India", Blocker: "Resume Quality", ActiveDays7: &active, WeakTopics: []string{"graphs", "dp", "trees", "heaps"}})
	require.Len(t, sugg, 3)
	assert.Equal(t, "Strong recent activity (active days last 7d) • Current blocker: Resume Quality • Improve weak topics: graphs, dp, trees", sugg[0].Rationale)
	assert.Len(t, sugg[0].ApplyLinks, 3)

	fallback := Suggestions(ranked, SuggestionInput{Location: "India"})
	assert.Equal(t, "Based on your profile + readiness signals", fallback[0].Rationale)

	assert.Empty(t, Suggestions(nil, SuggestionInput{}))
}
