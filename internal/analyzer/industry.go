package analyzer

import (
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// generalIndustry is reported when no industry keyword matched at all.
const generalIndustry = "General"

// ClassifyIndustry scores the lowercased text against every industry
// keyword dictionary. A keyword counts once when present as a substring,
// regardless of textual repetition. Ties break by dictionary declaration
// order; confidence is the winning score over the sum of all scores.
func (a *Analyzer) ClassifyIndustry(p domain.ParsedProfile) domain.IndustryResult {
	lower := strings.ToLower(p.RawText)

	scores := make(map[string]int, len(a.dict.Industries))
	best := ""
	bestScore := -1
	total := 0
	for _, ind := range a.dict.Industries {
		score := 0
		for _, kw := range ind.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		scores[ind.Name] = score
		total += score
		// Strict comparison keeps the earliest-declared industry on ties.
		if score > bestScore {
			bestScore = score
			best = ind.Name
		}
	}

	primary := generalIndustry
	if bestScore > 0 {
		primary = best
	}
	denom := total
	if denom < 1 {
		denom = 1
	}
	return domain.IndustryResult{
		PrimaryIndustry: primary,
		IndustryScores:  scores,
		Confidence:      float64(bestScore) / float64(denom),
	}
}
