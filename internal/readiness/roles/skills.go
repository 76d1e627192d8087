package roles

import (
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Normalize trims and case-folds a skill name so "React", "REACT" and "react" compare equal.
func Normalize(skill string) string {
	return folder.String(strings.TrimSpace(skill))
}

var profileSkillKeys = []string{"skills", "tech", "technologies", "stack"}

// resumeKeywords are detected by substring in lowercased resume text.
var resumeKeywords = []string{
	"python", "java", "javascript", "typescript", "react", "node", "express", "fastapi",
	"sql", "mongodb", "sqlite", "docker", "kubernetes", "aws", "azure", "git", "dsa",
	"system design", "ml", "machine learning", "pandas", "numpy", "power bi", "excel",
}

// KnownSkills merges profile skill lists, resume keyword hits and learning topics
// into a sorted, de-duplicated, case-folded list. A malformed profile is ignored.
func KnownSkills(profileJSON []byte, resumeText string, learningTopics []string) []string {
	set := map[string]struct{}{}
	add := func(s string) {
		if n := Normalize(s); n != "" {
			set[n] = struct{}{}
		}
	}

	if len(profileJSON) > 0 {
		var profile map[string]any
		if err := json.Unmarshal(profileJSON, &profile); err == nil {
			for _, key := range profileSkillKeys {
				switch v := profile[key].(type) {
				case []any:
					for _, item := range v {
						if s, ok := item.(string); ok {
							add(s)
						}
					}
				case string:
					for _, s := range strings.Split(v, ",") {
						add(s)
					}
				}
			}
		}
	}

	text := strings.ToLower(resumeText)
	for _, kw := range resumeKeywords {
		if strings.Contains(text, kw) {
			set[kw] = struct{}{}
		}
	}

	for _, topic := range learningTopics {
		add(topic)
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// PreferredLocation reads location or preferred_location from a profile, else fallback.
func PreferredLocation(profileJSON []byte, fallback string) string {
	if len(profileJSON) == 0 {
		return fallback
	}
	var profile map[string]any
	if err := json.Unmarshal(profileJSON, &profile); err != nil {
		return fallback
	}
	for _, key := range []string{"location", "preferred_location"} {
		if s, ok := profile[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return fallback
}
