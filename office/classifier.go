// Package office decides who is in the office from Slack statuses and renders
// the reply for the slash command.
package office

import (
	"regexp"
	"strings"

	"github.com/walkure/slack_in_office/directory"
)

// LookupPhrase is the status people set when they work from the office.
const LookupPhrase = "in the office"

// Classification tells how sure we are that a member is in the office.
type Classification int

const (
	Not Classification = iota
	Probably
	ForSure
)

func (c Classification) String() string {
	switch c {
	case ForSure:
		return "for sure"
	case Probably:
		return "probably"
	default:
		return "not in office"
	}
}

// space matches any run of whitespace, including no-break and ideographic
// spaces which \s alone does not cover.
const space = `[\s\p{Z}]*`

// Classifier matches status texts against a phrase, ignoring case and
// letting every space in the phrase match any run of whitespace, including none.
type Classifier struct {
	search *regexp.Regexp
	full   *regexp.Regexp
}

// NewClassifier compiles the matching rules for phrase.
func NewClassifier(phrase string) *Classifier {
	pattern := strings.ReplaceAll(regexp.QuoteMeta(phrase), " ", space)
	return &Classifier{
		search: regexp.MustCompile(`(?i)` + pattern),
		full:   regexp.MustCompile(`(?i)^` + space + pattern + space + `$`),
	}
}

// Classify returns ForSure when text is the phrase itself, Probably when it
// only contains it and Not otherwise.
func (c *Classifier) Classify(text string) Classification {
	if text == "" {
		return Not
	}
	if c.full.MatchString(text) {
		return ForSure
	}
	if c.search.MatchString(text) {
		return Probably
	}
	return Not
}

var defaultClassifier = NewClassifier(LookupPhrase)

// Classify classifies text against LookupPhrase.
func Classify(text string) Classification {
	return defaultClassifier.Classify(text)
}

// Tagged is a member together with its classification.
type Tagged struct {
	directory.Member
	Class Classification
}

// Select classifies members and drops the ones that are not in the office.
func Select(members []directory.Member) []Tagged {
	var tagged []Tagged
	for _, m := range members {
		class := Classify(m.StatusText)
		if class == Not {
			continue
		}
		tagged = append(tagged, Tagged{Member: m, Class: class})
	}
	return tagged
}
