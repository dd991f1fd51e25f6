package parser

import (
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// Lines splits plain text into trimmed, non-empty lines. The index of a
// line is its position in the returned slice, not in the source text;
// nearest-line resolution below operates on these indices.
func Lines(text string) []domain.Line {
	var out []domain.Line
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, domain.Line{Text: l, Index: len(out)})
	}
	return out
}

// Segment tags spans of lines as education or experience sections via a
// single forward scan. A line containing an experience trigger closes
// whatever span is open and opens an experience span at the next line;
// education triggers work symmetrically. Experience triggers win when a
// line contains both. Trigger lines belong to no span, and lines outside
// every span are implicitly SectionNone.
func (p *Parser) Segment(lines []domain.Line) []domain.SectionSpan {
	var spans []domain.SectionSpan

	state := domain.SectionNone
	start := 0

	closeSpan := func(end int) {
		if state != domain.SectionNone && end > start {
			spans = append(spans, domain.SectionSpan{Kind: state, Start: start, End: end})
		}
	}

	for i, ln := range lines {
		lower := strings.ToLower(ln.Text)
		switch {
		case containsAny(lower, p.dict.ExperienceTriggers):
			closeSpan(i)
			state = domain.SectionExperience
			start = i + 1
		case containsAny(lower, p.dict.EducationHeadings) || containsAny(lower, p.dict.EducationTriggers):
			closeSpan(i)
			state = domain.SectionEducation
			start = i + 1
		}
	}
	closeSpan(len(lines))
	return spans
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func spanKindAt(spans []domain.SectionSpan, idx int) domain.SectionKind {
	for _, sp := range spans {
		if sp.Contains(idx) {
			return sp.Kind
		}
	}
	return domain.SectionNone
}
