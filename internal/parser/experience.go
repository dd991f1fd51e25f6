package parser

import (
	"regexp"
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// durationRe matches 4-digit to 4-digit ranges and open-ended
// present/current ranges. Month-year partial dates are intentionally
// unmatched.
var durationRe = regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(\d{4}|present|current)`)

const maxDescriptionLines = 4

// ExtractExperience emits one entry per line that sits inside an
// experience span or independently reads as a job title.
func (p *Parser) ExtractExperience(lines []domain.Line, spans []domain.SectionSpan) []domain.ExperienceEntry {
	var out []domain.ExperienceEntry
	for i, ln := range lines {
		inSpan := spanKindAt(spans, i) == domain.SectionExperience
		if !inSpan && !p.isJobTitle(ln.Text) {
			continue
		}
		out = append(out, domain.ExperienceEntry{
			Title:       ln.Text,
			Company:     findCompany(lines, i),
			Duration:    durationRe.FindString(ln.Text),
			Description: p.describeJob(lines, i),
		})
	}
	return out
}

func (p *Parser) isJobTitle(line string) bool {
	return containsAny(strings.ToLower(line), p.dict.JobTitleKeywords)
}

// findCompany takes the nearest non-empty adjacent line, preferring the
// one above.
func findCompany(lines []domain.Line, idx int) string {
	for _, i := range []int{idx - 1, idx + 1} {
		if i >= 0 && i < len(lines) && lines[i].Text != "" {
			return lines[i].Text
		}
	}
	return ""
}

// describeJob aggregates up to four following lines, stopping at the
// first line that itself reads as a job title.
func (p *Parser) describeJob(lines []domain.Line, idx int) string {
	var parts []string
	for i := idx + 1; i < len(lines) && i <= idx+maxDescriptionLines; i++ {
		if p.isJobTitle(lines[i].Text) {
			break
		}
		parts = append(parts, lines[i].Text)
	}
	return strings.Join(parts, " ")
}
