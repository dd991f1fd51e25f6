// Package domain holds the core entities, ports and error taxonomy of the
// resume analysis pipeline. It stays free of transport, storage and
// framework concerns.
package domain

import (
	"context"
	"time"
)

// DocumentFormat is the caller-declared format of an uploaded resume.
type DocumentFormat string

// Supported document formats.
const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// RawDocument is the ephemeral input to the pipeline: raw bytes plus the
// declared format. It is consumed exactly once by the text extractor.
type RawDocument struct {
	Data     []byte
	Format   DocumentFormat
	Filename string
}

// Line is a trimmed, non-empty line of extracted text. Order is
// meaningful: adjacency drives section and entity association.
type Line struct {
	Text  string
	Index int
}

// SectionKind classifies a span of resume lines.
type SectionKind string

// Section kinds produced by the segmenter.
const (
	SectionEducation  SectionKind = "education"
	SectionExperience SectionKind = "experience"
	SectionNone       SectionKind = "none"
)

// SectionSpan is a contiguous, non-overlapping run of lines tagged with a
// section kind. Start is inclusive, End exclusive, both indices into the
// segmented line slice. A line outside every span is implicitly
// SectionNone.
type SectionSpan struct {
	Kind  SectionKind
	Start int
	End   int
}

// Contains reports whether the line index falls inside the span.
func (s SectionSpan) Contains(idx int) bool { return idx >= s.Start && idx < s.End }

// PersonalInfo carries the contact fields recovered from the resume.
// An empty string means the field was not found; at most one value per
// field, first match wins.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Completeness counts how many of name/email/phone are present (0-3).
func (p PersonalInfo) Completeness() int {
	n := 0
	for _, v := range []string{p.Name, p.Email, p.Phone} {
		if v != "" {
			n++
		}
	}
	return n
}

// EducationEntry is one matched degree line with its resolved context.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ExperienceEntry is one recognized position. Description aggregates up
// to four subsequent non-title lines.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description"`
}

// TextQuality holds lexical statistics over the whole resume text.
type TextQuality struct {
	WordCount          int            `json:"word_count"`
	SentenceCount      int            `json:"sentence_count"`
	UniqueWords        int            `json:"unique_words"`
	AvgSentenceLength  float64        `json:"avg_sentence_length"`
	VocabularyRichness float64        `json:"vocabulary_richness"`
	POSDistribution    map[string]int `json:"pos_distribution"`
}

// Readability holds the four standard readability indices computed over
// the unmodified text.
type Readability struct {
	FleschKincaidGrade        float64 `json:"flesch_kincaid_grade"`
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	GunningFog                float64 `json:"gunning_fog"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
}

// ParsedProfile is the immutable structured record produced by one
// analysis call. Every downstream score is a pure function of it:
// re-running the pipeline over identical bytes yields an identical
// profile (ParsedAt excepted, which is injected by the caller's clock).
type ParsedProfile struct {
	Personal    PersonalInfo      `json:"personal_info"`
	Education   []EducationEntry  `json:"education"`
	Experience  []ExperienceEntry `json:"experience"`
	Skills      []string          `json:"skills"`
	Metrics     []string          `json:"metrics"`
	Quality     TextQuality       `json:"text_analysis"`
	Readability Readability       `json:"readability"`
	RawText     string            `json:"raw_text"`
	ParsedAt    time.Time         `json:"parsed_at"`
}

// Context aliases the standard context so signatures in domain ports read
// uniformly. Adapters and usecases pass context.Context straight through.
type Context = context.Context
