package parser

import (
	"regexp"
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

var (
	// degreeRe is word-bounded so abbreviations like "b.s." match while
	// substrings inside ordinary words ("manager", "based") do not.
	degreeRe = regexp.MustCompile(`(?i)\b(bachelor|master|phd|b\.?[as]\.?|m\.?[as]\.?|ph\.?d\.?)\b`)
	yearRe   = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ExtractEducation emits one entry per line matching the degree pattern.
// The heuristic applies to every line; section spans do not gate it.
func (p *Parser) ExtractEducation(lines []domain.Line) []domain.EducationEntry {
	var out []domain.EducationEntry
	for i, ln := range lines {
		if !degreeRe.MatchString(ln.Text) {
			continue
		}
		out = append(out, domain.EducationEntry{
			Degree:      ln.Text,
			Institution: p.findInstitution(lines, i),
			Year:        extractYear(ln.Text),
		})
	}
	return out
}

// findInstitution searches the two lines either side of the degree line
// (the degree line included) for an institution cue and returns the
// first hit.
func (p *Parser) findInstitution(lines []domain.Line, idx int) string {
	lo := max(0, idx-2)
	hi := min(len(lines), idx+3)
	for i := lo; i < hi; i++ {
		if containsAny(strings.ToLower(lines[i].Text), p.dict.EducationTriggers) {
			return lines[i].Text
		}
	}
	return ""
}

// extractYear returns the last 4-digit year on the line, or empty.
func extractYear(s string) string {
	matches := yearRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}
