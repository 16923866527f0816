// Package guardrail screens candidate narration for disallowed sexual
// content. The verdict is recomputed per candidate and never cached; any
// match fails the whole string.
package guardrail

import (
	"regexp"

	"golang.org/x/text/cases"
)

// Classifier is the host application's content classifier. Implementations
// must be safe for repeated calls with arbitrary text.
type Classifier interface {
	Forbidden(text string) bool
}

// Hard-banned whole-word patterns covering sexual violence and exploitation
// terms. Matched against case-folded text, so the list stays lowercase.
var bannedPattern = regexp.MustCompile(
	`\b(?:rap(?:e[ds]?|ists?)|molest\w*|incest\w*|bestiality|p(?:ae|e)dophil\w*|sexual (?:assault|abuse|slavery)|sex slave\w*)\b`,
)

// Checker combines the built-in banned list with an optional external
// classifier. The zero value checks built-ins only.
type Checker struct {
	classifier Classifier
}

// NewChecker wraps the classifier; nil means built-ins only.
func NewChecker(classifier Classifier) Checker {
	return Checker{classifier: classifier}
}

// IsForbidden reports whether the text trips the built-in banned list or
// the external classifier. Either alone fails the candidate.
func (c Checker) IsForbidden(text string) bool {
	if bannedPattern.MatchString(cases.Fold().String(text)) {
		return true
	}
	return c.classifier != nil && c.classifier.Forbidden(text)
}
