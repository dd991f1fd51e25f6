// Package dictionary loads the static keyword tables that drive the
// heuristic extraction and scoring stages. The tables are embedded in the
// binary, parsed exactly once and shared read-only across concurrent
// analyses, so no locking is needed anywhere downstream.
package dictionary

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed dictionaries.yaml
var raw []byte

// Industry is a named keyword list. Slice position is the tie-break
// order for classification.
type Industry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// SkillCategory is a named substring list used to bucket skills; the
// first matching category wins.
type SkillCategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DegreeLevel maps a degree substring to its level score. Entries are
// checked in order and the first match per education entry applies.
type DegreeLevel struct {
	Match string `yaml:"match"`
	Score int    `yaml:"score"`
}

// Set is the full collection of static tables.
type Set struct {
	EducationTriggers  []string        `yaml:"education_triggers"`
	EducationHeadings  []string        `yaml:"education_headings"`
	ExperienceTriggers []string        `yaml:"experience_triggers"`
	JobTitleKeywords   []string        `yaml:"job_title_keywords"`
	Skills             []string        `yaml:"skills"`
	Industries         []Industry      `yaml:"industries"`
	ActionWords        []string        `yaml:"action_words"`
	ImpactWords        []string        `yaml:"impact_words"`
	ProgressionTitles  []string        `yaml:"progression_titles"`
	LeadershipWords    []string        `yaml:"leadership_words"`
	TechnicalKeywords  []string        `yaml:"technical_keywords"`
	ATSKeywords        []string        `yaml:"ats_keywords"`
	SkillCategories    []SkillCategory `yaml:"skill_categories"`
	DegreeLevels       []DegreeLevel   `yaml:"degree_levels"`
	Stopwords          []string        `yaml:"stopwords"`

	stopwordSet map[string]struct{}
}

var (
	once sync.Once
	set  *Set
)

// Load returns the process-wide dictionary set, parsing the embedded
// tables on first use. The embedded data is part of the build, so a
// parse failure is a programming error and panics.
func Load() *Set {
	once.Do(func() {
		s := &Set{}
		if err := yaml.Unmarshal(raw, s); err != nil {
			panic(fmt.Sprintf("dictionary: parse embedded tables: %v", err))
		}
		s.stopwordSet = make(map[string]struct{}, len(s.Stopwords))
		for _, w := range s.Stopwords {
			s.stopwordSet[w] = struct{}{}
		}
		set = s
	})
	return set
}

// IsStopword reports whether the lowercased word is an English stopword.
func (s *Set) IsStopword(w string) bool {
	_, ok := s.stopwordSet[w]
	return ok
}
