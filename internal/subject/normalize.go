// Package subject maps free text subject and category strings onto the
// closed set of canonical subject tags.
package subject

import (
	"strings"
	"unicode"

	"course-recommender/internal/domain"
)

// Rule maps a keyword set to a tag. A rule matches when any keyword does.
//
// Keywords of three characters or more match anywhere in the folded text,
// so "math" matches "mathematics". Shorter keywords are abbreviations and
// only match a whole word, so "it" matches "IT support" but not "literature".
type Rule struct {
	Tag      domain.Subject
	Keywords []string
}

const minSubstringKeyword = 3

// DefaultRules is evaluated top to bottom and the first match wins.
// Order matters: "project management" must be tested before the generic
// "management" keyword of the business rule.
var DefaultRules = []Rule{
	{Tag: domain.SubjectHealth, Keywords: []string{"health"}},
	{Tag: domain.SubjectInformationTechnology, Keywords: []string{"information technology", "it"}},
	{Tag: domain.SubjectMathAndLogic, Keywords: []string{"math", "logic"}},
	{Tag: domain.SubjectArtsAndHumanities, Keywords: []string{"arts", "humanities", "literature"}},
	{Tag: domain.SubjectSocialSciences, Keywords: []string{"social science", "psychology", "history"}},
	{Tag: domain.SubjectLanguageLearning, Keywords: []string{"language"}},
	{Tag: domain.SubjectComputerScience, Keywords: []string{"computer science", "cs", "programming"}},
	{Tag: domain.SubjectDataScience, Keywords: []string{"data science", "analytics"}},
	{Tag: domain.SubjectProjectManagement, Keywords: []string{"project management"}},
	{Tag: domain.SubjectDesign, Keywords: []string{"design"}},
	{Tag: domain.SubjectMarketing, Keywords: []string{"marketing"}},
	{Tag: domain.SubjectBusiness, Keywords: []string{"business", "management", "finance"}},
}

// Normalizer evaluates an ordered rule table.
type Normalizer struct {
	rules []Rule
}

// New returns a normalizer over rules. A nil or empty table uses DefaultRules.
func New(rules []Rule) *Normalizer {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Normalizer{rules: rules}
}

var defaultNormalizer = New(nil)

// Normalize maps raw onto a canonical tag with DefaultRules.
func Normalize(raw string) domain.Subject {
	return defaultNormalizer.Normalize(raw)
}

// Normalize never fails: empty or unmatched input is domain.SubjectOther.
func (n *Normalizer) Normalize(raw string) domain.Subject {
	text := fold(raw)
	if text == "" {
		return domain.SubjectOther
	}
	padded := " " + text + " "
	for _, r := range n.rules {
		if r.matches(text, padded) {
			return r.Tag
		}
	}
	return domain.SubjectOther
}

// Rules returns the table in evaluation order.
func (n *Normalizer) Rules() []Rule {
	out := make([]Rule, len(n.rules))
	copy(out, n.rules)
	return out
}

func (r Rule) matches(text, padded string) bool {
	for _, kw := range r.Keywords {
		if kw == "" {
			continue
		}
		if len(kw) < minSubstringKeyword {
			if strings.Contains(padded, " "+kw+" ") {
				return true
			}
			continue
		}
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// fold lowercases and turns every run of non letter/digit characters into a
// single space, so "Computer-Science" and "computer_science" read the same.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		space = true
	}
	return b.String()
}
