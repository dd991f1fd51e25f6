package parser

import (
	"regexp"
	"strings"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

var (
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
)

// nameStopKeywords disqualify a line from being treated as the
// candidate's name.
var nameStopKeywords = []string{"email", "phone", "address", "@"}

// ExtractPersonal recovers contact fields from the raw text. Each field
// takes its first match only; fields with no match stay empty.
func (p *Parser) ExtractPersonal(text string) domain.PersonalInfo {
	info := domain.PersonalInfo{
		Email:    emailRe.FindString(text),
		Phone:    phoneRe.FindString(text),
		LinkedIn: linkedinRe.FindString(text),
	}

	// The name is assumed to sit near the top: the first of the first
	// five lines with 2-4 tokens and no contact keyword.
	rawLines := strings.Split(text, "\n")
	if len(rawLines) > 5 {
		rawLines = rawLines[:5]
	}
	for _, line := range rawLines {
		line = strings.TrimSpace(line)
		if line == "" || containsAny(strings.ToLower(line), nameStopKeywords) {
			continue
		}
		if n := len(strings.Fields(line)); n >= 2 && n <= 4 {
			info.Name = line
			break
		}
	}
	return info
}
