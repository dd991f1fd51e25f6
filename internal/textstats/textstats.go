// Package textstats computes lexical quality statistics and readability
// indices over resume text. All functions are total: degenerate input
// (no words, no sentences) yields zero values, never an error.
package textstats

import (
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/fairyhunter13/resume-insight/internal/dictionary"
	"github.com/fairyhunter13/resume-insight/internal/domain"
)

var (
	wordRe         = regexp.MustCompile(`[A-Za-z0-9]+(?:['’-][A-Za-z0-9]+)*`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]+`)
	alphaOnlyRe    = regexp.MustCompile(`^[A-Za-z]+$`)
)

// Analyzer derives text quality metrics using the shared stopword table.
// Stateless and safe for concurrent use.
type Analyzer struct {
	dict *dictionary.Set
}

// New constructs an Analyzer over the given dictionary set.
func New(dict *dictionary.Set) *Analyzer { return &Analyzer{dict: dict} }

// Analyze tokenizes the text and returns its lexical statistics together
// with the four standard readability indices.
func (a *Analyzer) Analyze(text string) (domain.TextQuality, domain.Readability) {
	words := wordRe.FindAllString(text, -1)
	sentences := countSentences(text)

	// Unique-word statistics run over case-folded alphabetic tokens with
	// stopwords removed, a lexical-diversity proxy.
	filtered := 0
	uniq := make(map[string]struct{})
	for _, w := range words {
		if !alphaOnlyRe.MatchString(w) {
			continue
		}
		lw := strings.ToLower(w)
		if a.dict.IsStopword(lw) {
			continue
		}
		filtered++
		uniq[lw] = struct{}{}
	}

	q := domain.TextQuality{
		WordCount:       len(words),
		SentenceCount:   sentences,
		UniqueWords:     len(uniq),
		POSDistribution: tagDistribution(text),
	}
	if sentences > 0 {
		q.AvgSentenceLength = float64(len(words)) / float64(sentences)
	}
	if filtered > 0 {
		q.VocabularyRichness = float64(len(uniq)) / float64(filtered)
	}

	return q, readability(text, words, sentences)
}

// countSentences applies the standard terminal-punctuation boundary rule.
func countSentences(text string) int {
	n := 0
	for _, part := range sentenceEndRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

// tagDistribution counts part-of-speech tags over the text. A tagger
// failure degrades to an empty distribution.
func tagDistribution(text string) map[string]int {
	dist := make(map[string]int)
	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithSegmentation(false))
	if err != nil {
		return dist
	}
	for _, tok := range doc.Tokens() {
		dist[tok.Tag]++
	}
	return dist
}
