// Package analyzer is the heuristic scoring engine and the public entry
// point of the analysis pipeline. It composes text extraction, field
// parsing and lexical statistics into a ParsedProfile, then derives the
// feature vector, industry classification, rubric quality score,
// supporting summaries and the weighted overall score.
//
// Once plain text has been obtained, analysis cannot fail: every
// downstream stage is a pure, total function of the profile, so two runs
// over identical bytes produce identical results.
package analyzer

import (
	"context"
	"time"

	"github.com/fairyhunter13/resume-insight/internal/dictionary"
	"github.com/fairyhunter13/resume-insight/internal/domain"
	"github.com/fairyhunter13/resume-insight/internal/extractor"
	"github.com/fairyhunter13/resume-insight/internal/parser"
	"github.com/fairyhunter13/resume-insight/internal/textstats"
)

// Overall score weights per component, summing to 1.
const (
	weightQuality    = 0.30
	weightComplexity = 0.20
	weightKeywords   = 0.20
	weightSkills     = 0.15
	weightExperience = 0.10
	weightEducation  = 0.05
)

// Component normalization multipliers for the overall formula.
const (
	skillsScorePerSkill     = 5
	experiencePerPosition   = 20
	experiencePerImpactWord = 5
	educationLevelMultiple  = 10
)

// Analyzer runs the whole document-to-scored-analysis pipeline. It holds
// only shared read-only state and is safe for concurrent use; separate
// documents may be analyzed in parallel with no coordination.
type Analyzer struct {
	dict    *dictionary.Set
	extract *extractor.Extractor
	parse   *parser.Parser
	stats   *textstats.Analyzer
	now     func() time.Time
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the timestamp source, mainly for reproducible tests.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New constructs an Analyzer over the shared dictionary set.
func New(dict *dictionary.Set, opts ...Option) *Analyzer {
	a := &Analyzer{
		dict:    dict,
		extract: extractor.New(),
		parse:   parser.New(dict),
		stats:   textstats.New(dict),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze decodes the document and produces the full analysis record.
// The only possible failures are the three extraction error kinds; they
// surface verbatim with no partial result.
func (a *Analyzer) Analyze(ctx context.Context, doc domain.RawDocument) (domain.AnalysisResult, error) {
	text, err := a.extract.Extract(ctx, doc)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return a.AnalyzeText(text), nil
}

// AnalyzeText runs the pipeline over already-extracted plain text. It
// cannot fail: missing fields propagate zeros into the score formulas.
func (a *Analyzer) AnalyzeText(text string) domain.AnalysisResult {
	profile := a.BuildProfile(text)

	industry := a.ClassifyIndustry(profile)
	quality := a.ScoreQuality(profile)
	skills := a.SummarizeSkills(profile)
	experience := a.SummarizeExperience(profile)
	education := a.SummarizeEducation(profile)
	complexity := a.ComplexityScore(profile)
	keywords := a.KeywordRelevance(profile)

	return domain.AnalysisResult{
		Profile:         profile,
		Features:        a.ExtractFeatures(profile),
		Industry:        industry,
		Quality:         quality,
		Skills:          skills,
		Experience:      experience,
		Education:       education,
		Complexity:      complexity,
		Keywords:        keywords,
		Recommendations: a.Recommend(profile, industry),
		OverallScore:    overallScore(quality, complexity, keywords, skills, experience, education),
	}
}

// BuildProfile assembles the immutable ParsedProfile from the field
// extractors and the text quality analyzer.
func (a *Analyzer) BuildProfile(text string) domain.ParsedProfile {
	fields := a.parse.Parse(text)
	quality, readability := a.stats.Analyze(text)

	return domain.ParsedProfile{
		Personal:    fields.Personal,
		Education:   fields.Education,
		Experience:  fields.Experience,
		Skills:      fields.Skills,
		Metrics:     fields.Metrics,
		Quality:     quality,
		Readability: readability,
		RawText:     text,
		ParsedAt:    a.now().UTC(),
	}
}

// overallScore is the fixed weighted sum of six normalized 0-100
// sub-scores, rounded to two decimals and clamped to [0,100].
func overallScore(
	quality domain.ScoreBreakdown,
	complexity domain.TextComplexity,
	keywords domain.KeywordRelevance,
	skills domain.SkillsBreakdown,
	experience domain.ExperienceSummary,
	education domain.EducationSummary,
) float64 {
	skillsScore := float64(capped(skills.TotalSkills*skillsScorePerSkill, 100))
	experienceScore := float64(capped(
		experience.TotalPositions*experiencePerPosition+experience.ImpactWordCount*experiencePerImpactWord, 100))
	educationScore := float64(education.LevelScore * educationLevelMultiple)

	score := float64(quality.TotalScore)*weightQuality +
		complexity.Score*weightComplexity +
		float64(keywords.ATSScore)*weightKeywords +
		skillsScore*weightSkills +
		experienceScore*weightExperience +
		educationScore*weightEducation

	return round2(clamp(score, 0, 100))
}
