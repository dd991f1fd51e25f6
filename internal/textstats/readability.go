package textstats

import (
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// readability computes the four published indices from word, sentence,
// syllable and character counts. With no words or no sentences every
// index is 0.
func readability(text string, words []string, sentences int) domain.Readability {
	if len(words) == 0 || sentences == 0 {
		return domain.Readability{}
	}

	syllables := 0
	complexWords := 0
	chars := 0
	for _, w := range words {
		s := countSyllables(w)
		syllables += s
		if s >= 3 {
			complexWords++
		}
		chars += len(w)
	}

	wordCount := float64(len(words))
	sentCount := float64(sentences)
	wps := wordCount / sentCount
	spw := float64(syllables) / wordCount

	return domain.Readability{
		FleschReadingEase:         206.835 - 1.015*wps - 84.6*spw,
		FleschKincaidGrade:        0.39*wps + 11.8*spw - 15.59,
		GunningFog:                0.4 * (wps + 100*float64(complexWords)/wordCount),
		AutomatedReadabilityIndex: 4.71*float64(chars)/wordCount + 0.5*wps - 21.43,
	}
}

// countSyllables estimates syllables by counting vowel groups, with the
// usual silent-e correction and a floor of one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
