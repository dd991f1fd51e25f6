package domain

import "time"

// FeatureVector is the flat numeric reduction of a ParsedProfile.
// Recomputed every call, never persisted on its own.
type FeatureVector map[string]float64

// ScoreBreakdown is the rubric-based quality score: capped component
// points summing to a 0-100 total with a letter grade.
type ScoreBreakdown struct {
	TotalScore int            `json:"total_score"`
	Components map[string]int `json:"components"`
	Grade      string         `json:"grade"`
}

// IndustryResult is the keyword-dictionary industry classification.
// Confidence is max score over the sum of all scores, in [0,1].
type IndustryResult struct {
	PrimaryIndustry string         `json:"primary_industry"`
	IndustryScores  map[string]int `json:"industry_scores"`
	Confidence      float64        `json:"confidence"`
}

// SkillsBreakdown groups extracted skills by category.
type SkillsBreakdown struct {
	Categories     map[string][]string `json:"skill_categories"`
	TotalSkills    int                 `json:"total_skills"`
	DiversityScore float64             `json:"diversity_score"`
	TopCategory    string              `json:"top_category,omitempty"`
}

// ExperienceSummary aggregates signals over the experience entries.
type ExperienceSummary struct {
	TotalPositions       int     `json:"total_positions"`
	ImpactWordCount      int     `json:"impact_words_count"`
	ProgressionScore     int     `json:"progression_score"`
	AvgDescriptionLength float64 `json:"avg_description_length"`
	HasLeadership        bool    `json:"has_leadership_experience"`
}

// EducationSummary reports the highest matched degree level.
type EducationSummary struct {
	EducationCount int    `json:"education_count"`
	HighestDegree  string `json:"highest_degree"`
	LevelScore     int    `json:"education_score"`
}

// TextComplexity is the normalized 0-100 complexity score with the
// factors that produced it.
type TextComplexity struct {
	Score              float64 `json:"complexity_score"`
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	VocabularyRichness float64 `json:"vocabulary_richness"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
}

// KeywordStat is occurrence count and per-word density for one ATS keyword.
type KeywordStat struct {
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// KeywordRelevance reports ATS keyword coverage over the raw text.
type KeywordRelevance struct {
	Density       map[string]KeywordStat `json:"keyword_density"`
	ATSScore      int                    `json:"ats_compatibility_score"`
	KeywordsFound int                    `json:"total_keywords_found"`
}

// AnalysisResult is the sole output of the analysis orchestrator, owned
// by the caller after return.
type AnalysisResult struct {
	Profile         ParsedProfile     `json:"profile"`
	Features        FeatureVector     `json:"features"`
	Industry        IndustryResult    `json:"industry_classification"`
	Quality         ScoreBreakdown    `json:"quality_score"`
	Skills          SkillsBreakdown   `json:"skills_analysis"`
	Experience      ExperienceSummary `json:"experience_analysis"`
	Education       EducationSummary  `json:"education_analysis"`
	Complexity      TextComplexity    `json:"text_complexity"`
	Keywords        KeywordRelevance  `json:"keyword_relevance"`
	Recommendations []string          `json:"recommendations"`
	OverallScore    float64           `json:"overall_score"`
}

// AIReview is the structured verdict returned by the external review
// collaborator. The core never depends on it for its own overall score.
type AIReview struct {
	OverallScore         float64            `json:"overall_score"`
	CategoryScores       map[string]float64 `json:"category_scores"`
	Strengths            []string           `json:"strengths"`
	Weaknesses           []string           `json:"weaknesses"`
	Recommendations      []string           `json:"recommendations"`
	IndustryFit          string             `json:"industry_fit"`
	MissingElements      []string           `json:"missing_elements"`
	KeywordAnalysis      string             `json:"keyword_analysis"`
	CareerLevel          string             `json:"career_level_assessment"`
	CompetitiveAdvantage []string           `json:"competitive_advantage"`
	Fallback             bool               `json:"fallback,omitempty"`
}

// Analysis is a stored analysis record: the heuristic result, the
// optional AI review and the combined score, keyed by an opaque id and
// the owning user.
type Analysis struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Filename      string          `json:"filename"`
	Result        AnalysisResult  `json:"result"`
	Review        *AIReview       `json:"ai_review,omitempty"`
	CombinedScore float64         `json:"combined_score"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AnalysisSummary is the listing projection of a stored analysis,
// enough to render a history view without loading the full record.
type AnalysisSummary struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	CombinedScore float64   `json:"combined_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// Ports.

// AnalysisRepository persists analyses and loads them back, scoped to
// the owning user.
type AnalysisRepository interface {
	Create(ctx Context, a Analysis) (string, error)
	GetByID(ctx Context, id, userID string) (Analysis, error)
	ListByUser(ctx Context, userID string) ([]AnalysisSummary, error)
}

// Reviewer submits a parsed profile to the external AI review
// collaborator and returns its structured verdict. Implementations must
// degrade to a documented fallback on malformed responses and to a
// zero-score record once retries are exhausted.
type Reviewer interface {
	Review(ctx Context, p ParsedProfile) (AIReview, error)
}
