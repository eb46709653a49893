// Package rules implements the LaTeX syntax-correction pass applied to
// math expressions before they reach the document engine. Rules are pure
// data: ordered (pattern, replacement) pairs compiled once into a Set and
// applied sequentially, each rule rewriting the previous rule's output.
package rules

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrRuleConfig indicates a rewrite rule failed to compile.
// Raised once at load time, never per expression.
var ErrRuleConfig = errors.New("invalid rewrite rule")

// Rule is a single pattern/replacement pair. Pattern is a Go regular
// expression; Replacement may reference capture groups with $1, $2, etc.
type Rule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// compiledRule pairs a compiled pattern with its replacement text.
type compiledRule struct {
	re          *regexp.Regexp
	replacement string
}

// Set is an immutable, ordered collection of compiled rewrite rules.
// Safe for concurrent use; Apply touches no shared mutable state.
type Set struct {
	rules []compiledRule
	src   []Rule
}

// Compile validates and compiles an ordered rule list into a Set.
// Order is preserved exactly: two rules may legitimately interact, with a
// later rule cleaning up residue left by an earlier one.
func Compile(rs []Rule) (*Set, error) {
	compiled := make([]compiledRule, 0, len(rs))
	for i, r := range rs {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d pattern %q: %v", ErrRuleConfig, i, r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, replacement: r.Replacement})
	}
	src := make([]Rule, len(rs))
	copy(src, rs)
	return &Set{rules: compiled, src: src}, nil
}

// MustCompile is like Compile but panics on error.
// Reserved for rule lists known to be valid, such as the embedded defaults.
func MustCompile(rs []Rule) *Set {
	s, err := Compile(rs)
	if err != nil {
		panic("rules: " + err.Error())
	}
	return s
}

// Apply rewrites text by running every rule in list order. Each rule
// replaces all non-overlapping matches of its pattern in the running
// result before the next rule sees it. Text no rule matches passes
// through unchanged; Apply never fails, even on malformed input.
func (s *Set) Apply(text string) string {
	for _, r := range s.rules {
		text = r.re.ReplaceAllString(text, r.replacement)
	}
	return text
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the source rule list, in application order.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.src))
	copy(out, s.src)
	return out
}
