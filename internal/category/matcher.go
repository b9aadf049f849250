package category

import (
	"fmt"
	"regexp"
)

// Rule maps a description pattern to a category name.
type Rule struct {
	Category string `toml:"category"`
	Pattern  string `toml:"pattern"`
}

type matcher struct {
	re       *regexp.Regexp
	category string
}

// Matcher suggests a category for a transaction description. Rules are
// evaluated in order and the first match wins.
type Matcher struct {
	matchers []matcher
}

func NewMatcher(rules []Rule) (*Matcher, error) {
	matchers := make([]matcher, len(rules))

	for i, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for category %q: %w", rule.Category, err)
		}
		matchers[i] = matcher{
			re:       re,
			category: rule.Category,
		}
	}

	return &Matcher{
		matchers: matchers,
	}, nil
}

func (m *Matcher) Match(description string) string {
	if m == nil {
		return ""
	}

	for _, matcher := range m.matchers {
		if matcher.re.MatchString(description) {
			return matcher.category
		}
	}

	return ""
}
