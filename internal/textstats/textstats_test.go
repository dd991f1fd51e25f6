package textstats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-insight/internal/dictionary"
	"github.com/fairyhunter13/resume-insight/internal/textstats"
)

func TestAnalyze_Counts(t *testing.T) {
	t.Parallel()
	a := textstats.New(dictionary.Load())
	q, _ := a.Analyze("The quick brown fox jumps. The quick fox rests!")
	assert.Equal(t, 9, q.WordCount)
	assert.Equal(t, 2, q.SentenceCount)
	// the/The are stopwords; quick, brown, fox, jumps, rests remain.
	assert.Equal(t, 5, q.UniqueWords)
	assert.InDelta(t, 4.5, q.AvgSentenceLength, 1e-9)
	// 7 filtered tokens, 5 distinct.
	assert.InDelta(t, 5.0/7.0, q.VocabularyRichness, 1e-9)
}

func TestAnalyze_EmptyText(t *testing.T) {
	t.Parallel()
	a := textstats.New(dictionary.Load())
	q, r := a.Analyze("")
	assert.Zero(t, q.WordCount)
	assert.Zero(t, q.SentenceCount)
	assert.Zero(t, q.AvgSentenceLength)
	assert.Zero(t, q.VocabularyRichness)
	assert.Zero(t, r.FleschReadingEase)
	assert.Zero(t, r.GunningFog)
}

func TestAnalyze_POSDistribution(t *testing.T) {
	t.Parallel()
	a := textstats.New(dictionary.Load())
	q, _ := a.Analyze("The engineer improved the deployment pipeline.")
	total := 0
	for _, n := range q.POSDistribution {
		total += n
	}
	assert.Positive(t, total)
}

func TestAnalyze_ReadabilityRanges(t *testing.T) {
	t.Parallel()
	a := textstats.New(dictionary.Load())
	simple := "The cat sat. The dog ran. We had fun."
	dense := "Organizational restructuring necessitated comprehensive infrastructural modernization initiatives across heterogeneous operational environments."

	_, rs := a.Analyze(simple)
	_, rd := a.Analyze(dense)
	require.NotZero(t, rs.FleschReadingEase)
	assert.Greater(t, rs.FleschReadingEase, rd.FleschReadingEase)
	assert.Less(t, rs.GunningFog, rd.GunningFog)
	assert.Less(t, rs.FleschKincaidGrade, rd.FleschKincaidGrade)
	assert.Less(t, rs.AutomatedReadabilityIndex, rd.AutomatedReadabilityIndex)
}

func TestAnalyze_Deterministic(t *testing.T) {
	t.Parallel()
	a := textstats.New(dictionary.Load())
	text := "Managed a team of 12 people. Improved revenue by 40%."
	q1, r1 := a.Analyze(text)
	q2, r2 := a.Analyze(text)
	assert.Equal(t, q1, q2)
	assert.Equal(t, r1, r2)
}
