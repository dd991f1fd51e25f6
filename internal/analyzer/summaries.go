package analyzer

import (
	"math"
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// SummarizeSkills buckets skills into the declared categories; the first
// category whose keyword matches wins, anything unmatched lands in
// Technical. Diversity is the share of non-empty categories.
func (a *Analyzer) SummarizeSkills(p domain.ParsedProfile) domain.SkillsBreakdown {
	categories := make(map[string][]string, len(a.dict.SkillCategories))
	for _, c := range a.dict.SkillCategories {
		categories[c.Name] = nil
	}

	for _, skill := range p.Skills {
		lower := strings.ToLower(skill)
		placed := false
		for _, c := range a.dict.SkillCategories {
			if containsAny(lower, c.Keywords) {
				categories[c.Name] = append(categories[c.Name], skill)
				placed = true
				break
			}
		}
		if !placed {
			categories["Technical"] = append(categories["Technical"], skill)
		}
	}

	nonEmpty := 0
	top := ""
	topCount := 0
	for _, c := range a.dict.SkillCategories {
		n := len(categories[c.Name])
		if n > 0 {
			nonEmpty++
		}
		if n > topCount {
			topCount = n
			top = c.Name
		}
	}

	b := domain.SkillsBreakdown{
		Categories:  categories,
		TotalSkills: len(p.Skills),
		TopCategory: top,
	}
	if len(a.dict.SkillCategories) > 0 {
		b.DiversityScore = float64(nonEmpty) / float64(len(a.dict.SkillCategories))
	}
	return b
}

// SummarizeExperience aggregates impact and progression signals over the
// experience entries.
func (a *Analyzer) SummarizeExperience(p domain.ParsedProfile) domain.ExperienceSummary {
	descs := make([]string, 0, len(p.Experience))
	for _, e := range p.Experience {
		descs = append(descs, e.Description)
	}
	all := strings.Join(descs, " ")
	allLower := strings.ToLower(all)

	impact := 0
	for _, w := range a.dict.ImpactWords {
		if strings.Contains(allLower, w) {
			impact++
		}
	}

	// Seniority indicators score by rank: the further down the ladder,
	// the more a matching title contributes.
	progression := 0
	for _, e := range p.Experience {
		title := strings.ToLower(e.Title)
		for i, indicator := range a.dict.ProgressionTitles {
			if strings.Contains(title, indicator) {
				progression += (i + 1) * 2
				break
			}
		}
	}

	s := domain.ExperienceSummary{
		TotalPositions:   len(p.Experience),
		ImpactWordCount:  impact,
		ProgressionScore: progression,
		HasLeadership:    containsAny(allLower, a.dict.LeadershipWords),
	}
	if len(p.Experience) > 0 {
		s.AvgDescriptionLength = float64(len(all)) / float64(len(p.Experience))
	}
	return s
}

// SummarizeEducation resolves the highest matched degree level across
// all education entries.
func (a *Analyzer) SummarizeEducation(p domain.ParsedProfile) domain.EducationSummary {
	highest := "Unknown"
	level := 0
	for _, e := range p.Education {
		degree := strings.ToLower(e.Degree)
		for _, dl := range a.dict.DegreeLevels {
			if strings.Contains(degree, dl.Match) {
				if dl.Score > level {
					level = dl.Score
					highest = titleCase(dl.Match)
				}
				break
			}
		}
	}
	return domain.EducationSummary{
		EducationCount: len(p.Education),
		HighestDegree:  highest,
		LevelScore:     level,
	}
}

// ComplexityScore folds readability, vocabulary richness and sentence
// length into one normalized 0-100 value. Readability is rewarded for
// sitting near the 65-point reading-ease sweet spot.
func (a *Analyzer) ComplexityScore(p domain.ParsedProfile) domain.TextComplexity {
	fre := p.Readability.FleschReadingEase
	richness := p.Quality.VocabularyRichness
	asl := math.Min(p.Quality.AvgSentenceLength, 25)

	score := (100-math.Abs(fre-65))*0.4 +
		richness*100*0.3 +
		(25-asl)/25*30

	return domain.TextComplexity{
		Score:              clamp(score, 0, 100),
		FleschReadingEase:  fre,
		VocabularyRichness: richness,
		AvgSentenceLength:  asl,
	}
}

// KeywordRelevance reports per-keyword occurrence counts and densities
// for the fixed ATS keyword set, plus the capped compatibility score.
func (a *Analyzer) KeywordRelevance(p domain.ParsedProfile) domain.KeywordRelevance {
	lower := strings.ToLower(p.RawText)
	totalWords := len(strings.Fields(lower))

	density := make(map[string]domain.KeywordStat, len(a.dict.ATSKeywords))
	found := 0
	for _, kw := range a.dict.ATSKeywords {
		count := strings.Count(lower, kw)
		stat := domain.KeywordStat{Count: count}
		if totalWords > 0 {
			stat.Density = round2(float64(count) / float64(totalWords) * 100)
		}
		density[kw] = stat
		if count > 0 {
			found++
		}
	}

	return domain.KeywordRelevance{
		Density:       density,
		ATSScore:      capped(found*atsPointsPerKeyword, 100),
		KeywordsFound: found,
	}
}

const atsPointsPerKeyword = 5

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
