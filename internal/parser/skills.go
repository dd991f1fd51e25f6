package parser

import (
	"regexp"
	"strings"
)

const maxSkillLength = 50

var (
	skillsHeadingRe = regexp.MustCompile(`(?i)skills?\s*:?`)
	// sectionEndRe terminates a free-text skills block: a blank line or
	// the next capitalized heading.
	sectionEndRe  = regexp.MustCompile(`\n[ \t]*\n|\n[A-Z]`)
	skillDelimsRe = regexp.MustCompile("[,;•\n\t]+")
)

// ExtractSkills unions dictionary matches over the full text with a
// best-effort parse of the skills section, deduplicated preserving first
// insertion order so results are reproducible.
func (p *Parser) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	seen := make(map[string]struct{})
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, skill := range p.dict.Skills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			add(skill)
		}
	}

	for _, tok := range p.skillsSectionTokens(text) {
		add(tok)
	}
	return out
}

// skillsSectionTokens captures the block following a "skills" heading up
// to the next blank line or capitalized heading and splits it on the
// common delimiters.
func (p *Parser) skillsSectionTokens(text string) []string {
	loc := skillsHeadingRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	block := strings.TrimLeft(text[loc[1]:], " \t\n")
	if end := sectionEndRe.FindStringIndex(block); end != nil {
		block = block[:end[0]]
	}

	var toks []string
	for _, tok := range skillDelimsRe.Split(block, -1) {
		tok = strings.TrimSpace(tok)
		if tok != "" && len(tok) < maxSkillLength {
			toks = append(toks, tok)
		}
	}
	return toks
}
