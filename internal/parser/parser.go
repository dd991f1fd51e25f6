// Package parser turns extracted resume text into structured fields.
//
// Everything in this package is a total function layered on regex
// pattern families, keyword dictionaries and positional assumptions: a
// field that cannot be recovered yields its empty value, never an error.
// Section spans bias interpretation but do not gate extraction; the
// degree and job-title heuristics apply to every line regardless of the
// declared section.
package parser

import (
	"github.com/fairyhunter13/resume-insight/internal/dictionary"
	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// Parser runs the field extractors over resume text using the shared
// dictionary set. It is stateless and safe for concurrent use.
type Parser struct {
	dict *dictionary.Set
}

// New constructs a Parser over the given dictionary set.
func New(dict *dictionary.Set) *Parser { return &Parser{dict: dict} }

// Fields is the structured output of one parse pass.
type Fields struct {
	Personal   domain.PersonalInfo
	Education  []domain.EducationEntry
	Experience []domain.ExperienceEntry
	Skills     []string
	Metrics    []string
	Lines      []domain.Line
	Spans      []domain.SectionSpan
}

// Parse segments the text and runs every field extractor. Extractors are
// independent: each sees the raw text plus the segmented lines and spans.
func (p *Parser) Parse(text string) Fields {
	lines := Lines(text)
	spans := p.Segment(lines)
	return Fields{
		Personal:   p.ExtractPersonal(text),
		Education:  p.ExtractEducation(lines),
		Experience: p.ExtractExperience(lines, spans),
		Skills:     p.ExtractSkills(text),
		Metrics:    ExtractMetrics(text),
		Lines:      lines,
		Spans:      spans,
	}
}
