package analyzer

import (
	"regexp"
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// Quality rubric: per-point multipliers and caps, kept as named
// constants so the rubric is auditable in one place.
const (
	actionWordPoints   = 3
	actionWordsCap     = 25
	quantifiablePoints = 5
	quantifiableCap    = 25
	skillPoints        = 2
	skillsCap          = 20
	experiencePoints   = 3
	experienceCap      = 15
	educationPoints    = 5
	educationCap       = 10
	contactCap         = 5
)

// quantifiableFamilies are the quantifiable-result pattern families; a
// family scores once when it matches anywhere, however often.
var quantifiableFamilies = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`\d+\s*million`),
	regexp.MustCompile(`\d+\s*thousand`),
	regexp.MustCompile(`\d+\s*years?`),
	regexp.MustCompile(`\d+\s*people`),
}

// gradeLadder maps minimum totals to letter grades, highest first.
var gradeLadder = []struct {
	min   int
	grade string
}{
	{90, "A"},
	{80, "B"},
	{70, "C"},
	{60, "D"},
}

// ScoreQuality applies the fixed rubric: six capped components summed to
// a 0-100 total with a letter grade.
func (a *Analyzer) ScoreQuality(p domain.ParsedProfile) domain.ScoreBreakdown {
	lower := strings.ToLower(p.RawText)

	actionHits := 0
	for _, w := range a.dict.ActionWords {
		if strings.Contains(lower, w) {
			actionHits++
		}
	}
	quantHits := 0
	for _, re := range quantifiableFamilies {
		if re.MatchString(lower) {
			quantHits++
		}
	}

	components := map[string]int{
		"action_words":         capped(actionHits*actionWordPoints, actionWordsCap),
		"quantifiable_results": capped(quantHits*quantifiablePoints, quantifiableCap),
		"technical_skills":     capped(len(p.Skills)*skillPoints, skillsCap),
		"experience_depth":     capped(len(p.Experience)*experiencePoints, experienceCap),
		"education":            capped(len(p.Education)*educationPoints, educationCap),
		"contact_completeness": capped(p.Personal.Completeness(), contactCap),
	}

	total := 0
	for _, v := range components {
		total += v
	}
	return domain.ScoreBreakdown{
		TotalScore: total,
		Components: components,
		Grade:      Grade(total),
	}
}

// Grade converts a numeric total to its letter grade.
func Grade(total int) string {
	for _, step := range gradeLadder {
		if total >= step.min {
			return step.grade
		}
	}
	return "F"
}

func capped(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}
