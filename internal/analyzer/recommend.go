package analyzer

import "github.com/fairyhunter13/resume-insight/internal/domain"

// recommendationInput carries the signals the advisory rules inspect.
type recommendationInput struct {
	MetricsCount       int
	SkillsCount        int
	ExperienceCount    int
	AvgSentenceLength  float64
	IndustryConfidence float64
}

// advisoryRule pairs a trigger with its fixed advisory string. Rules are
// evaluated in declaration order and each appends at most once.
type advisoryRule struct {
	triggered func(recommendationInput) bool
	advice    string
}

var advisoryRules = []advisoryRule{
	{
		triggered: func(in recommendationInput) bool { return in.MetricsCount < 3 },
		advice:    "Add more quantifiable achievements with specific numbers and percentages",
	},
	{
		triggered: func(in recommendationInput) bool { return in.SkillsCount < 8 },
		advice:    "Include more relevant technical and soft skills",
	},
	{
		triggered: func(in recommendationInput) bool { return in.ExperienceCount < 2 },
		advice:    "Provide more detailed work experience descriptions",
	},
	{
		triggered: func(in recommendationInput) bool { return in.AvgSentenceLength > 25 },
		advice:    "Use shorter, more concise sentences for better readability",
	},
	{
		triggered: func(in recommendationInput) bool { return in.IndustryConfidence < 0.3 },
		advice:    "Focus on industry-specific keywords to improve relevance",
	},
}

// Recommend evaluates the advisory rules in fixed order against the
// profile and its industry classification.
func (a *Analyzer) Recommend(p domain.ParsedProfile, industry domain.IndustryResult) []string {
	in := recommendationInput{
		MetricsCount:       len(p.Metrics),
		SkillsCount:        len(p.Skills),
		ExperienceCount:    len(p.Experience),
		AvgSentenceLength:  p.Quality.AvgSentenceLength,
		IndustryConfidence: industry.Confidence,
	}

	var out []string
	for _, rule := range advisoryRules {
		if rule.triggered(in) {
			out = append(out, rule.advice)
		}
	}
	return out
}
