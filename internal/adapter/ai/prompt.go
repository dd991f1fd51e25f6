package ai

import (
	"encoding/json"

	"github.com/fairyhunter13/resume-insight/internal/domain"
	"github.com/fairyhunter13/resume-insight/pkg/textx"
)

// rawTextLimit bounds how much of the resume body goes into the prompt.
const rawTextLimit = 3000

const reviewSystemPrompt = `You are an expert resume reviewer and career coach. ` +
	`Evaluate the resume data you are given and respond with a single JSON object ` +
	`with these keys: overall_score (number 1-100), category_scores (object with ` +
	`content_quality, formatting, skills_presentation, experience_description, ` +
	`education_presentation, keywords_optimization, each 1-100), strengths (array of strings), ` +
	`weaknesses (array of strings), recommendations (array of strings), industry_fit (string), ` +
	`missing_elements (array of strings), keyword_analysis (string), ` +
	`career_level_assessment (string), competitive_advantage (array of strings). ` +
	`Respond with JSON only, no surrounding prose.`

// buildReviewPrompt serializes the parsed profile into the user message.
// Raw text is truncated so oversized resumes cannot blow the token
// budget.
func buildReviewPrompt(p domain.ParsedProfile) string {
	payload := map[string]any{
		"personal_info": p.Personal,
		"education":     p.Education,
		"experience":    p.Experience,
		"skills":        p.Skills,
		"metrics":       p.Metrics,
		"raw_text":      textx.Truncate(p.RawText, rawTextLimit),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		// The payload is plain structs and strings; this cannot happen.
		return textx.Truncate(p.RawText, rawTextLimit)
	}
	return "Review this resume and return your verdict as JSON:\n" + string(b)
}
