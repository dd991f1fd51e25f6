package analyzer

import (
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// ExtractFeatures reduces a parsed profile to a flat numeric feature
// vector. Pure and infallible; recomputed on every call.
func (a *Analyzer) ExtractFeatures(p domain.ParsedProfile) domain.FeatureVector {
	technical := 0
	for _, s := range p.Skills {
		ls := strings.ToLower(s)
		if containsAny(ls, a.dict.TechnicalKeywords) {
			technical++
		}
	}

	return domain.FeatureVector{
		"text_length":                 float64(len(p.RawText)),
		"word_count":                  float64(len(strings.Fields(p.RawText))),
		"line_count":                  float64(len(strings.Split(p.RawText, "\n"))),
		"experience_count":            float64(len(p.Experience)),
		"education_count":             float64(len(p.Education)),
		"skills_count":                float64(len(p.Skills)),
		"technical_skills_count":      float64(technical),
		"contact_info_completeness":   float64(p.Personal.Completeness()),
		"flesch_reading_ease":         p.Readability.FleschReadingEase,
		"flesch_kincaid_grade":        p.Readability.FleschKincaidGrade,
		"gunning_fog":                 p.Readability.GunningFog,
		"automated_readability_index": p.Readability.AutomatedReadabilityIndex,
		"quantifiable_achievements":   float64(len(p.Metrics)),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
