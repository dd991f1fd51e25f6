package parser

import (
	"regexp"
	"strings"
)

// metricRule is one quantifiable-claim pattern. Rules form an ordered
// table evaluated by a single scan; every match is recorded and
// duplicates are retained, since repeated claims are a signal in
// themselves.
type metricRule struct {
	tag string
	re  *regexp.Regexp
}

var metricRules = []metricRule{
	{"magnitude", regexp.MustCompile(`(?i)\$?(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million|billion|k|thousand|%|percent)`)},
	{"duration", regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(years?|months?|weeks?)`)},
	{"headcount", regexp.MustCompile(`(?i)(\d+)(?:\+|\s+or\s+more|\s+plus)?\s*(people|team|members|employees)`)},
	{"improved", regexp.MustCompile(`(?i)improved?\s+by\s+(\d+(?:\.\d+)?)\s*(%|percent|times|x)`)},
	{"increased", regexp.MustCompile(`(?i)increased?\s+by\s+(\d+(?:\.\d+)?)\s*(%|percent|times|x)`)},
	{"reduced", regexp.MustCompile(`(?i)reduced?\s+by\s+(\d+(?:\.\d+)?)\s*(%|percent|times|x)`)},
}

// ExtractMetrics scans the full text with every metric rule in table
// order and records the captured figure of each match.
func ExtractMetrics(text string) []string {
	var out []string
	for _, rule := range metricRules {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			out = append(out, strings.Join(m[1:], " "))
		}
	}
	return out
}
