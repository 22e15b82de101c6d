// Package normalizer canonicalizes free-text artist credits into comparable keys.
package normalizer

import (
	"regexp"

	"golang.org/x/text/cases"

	"grammystats/pkg/utils"
)

// Rule names, in application order.
const (
	RuleParentheses = "parentheses"
	RuleBrackets    = "brackets"
	RuleFeaturing   = "featuring"
	RuleAmpersand   = "ampersand"
	RuleCross       = "cross"
	RuleComma       = "comma"
	RuleWhitespace  = "whitespace"
)

// Options selects optional rules.
type Options struct {
	// StrictCommas drops everything after the first comma.
	StrictCommas bool
}

// DefaultOptions returns the canonical rule set.
func DefaultOptions() Options {
	return Options{StrictCommas: true}
}

type rule struct {
	name    string
	pattern *regexp.Regexp
	// repeat reapplies the pattern until the string stops changing.
	repeat bool
}

func (r rule) apply(s string) string {
	for {
		next := r.pattern.ReplaceAllString(s, "")
		if !r.repeat || next == s {
			return next
		}

		s = next
	}
}

// Normalizer applies an ordered list of cleanup rules to artist credits.
// Later rules see the output of earlier ones.
type Normalizer struct {
	rules []rule
}

// New builds a normalizer for the given options.
func New(opts Options) *Normalizer {
	rules := []rule{
		{name: RuleParentheses, pattern: regexp.MustCompile(`\([^()]*\)`), repeat: true},
		{name: RuleBrackets, pattern: regexp.MustCompile(`\[[^\[\]]*\]`), repeat: true},
		{name: RuleFeaturing, pattern: regexp.MustCompile(`(?is)\b(?:featuring|feat|ft)\b\.?.*$`)},
		{name: RuleAmpersand, pattern: regexp.MustCompile(`(?s)&.*$`)},
		{name: RuleCross, pattern: regexp.MustCompile(`(?is)\s+x\s+.*$`)},
	}

	if opts.StrictCommas {
		rules = append(rules, rule{name: RuleComma, pattern: regexp.MustCompile(`(?s),.*$`)})
	}

	return &Normalizer{rules: rules}
}

// Rules returns the active rule names in the order they run.
func (n *Normalizer) Rules() []string {
	names := make([]string, 0, len(n.rules)+1)
	for _, r := range n.rules {
		names = append(names, r.name)
	}

	return append(names, RuleWhitespace)
}

// Normalize returns the primary artist of a credit string.
// Case is preserved; use Key for comparisons.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	// Unicode spaces such as NBSP become plain spaces before any rule runs.
	s := utils.CollapseWhitespace(raw)
	for _, r := range n.rules {
		s = r.apply(s)
	}

	return utils.CollapseWhitespace(s)
}

// NormalizePtr is Normalize for values that may be missing.
func (n *Normalizer) NormalizePtr(raw *string) string {
	if raw == nil {
		return ""
	}

	return n.Normalize(*raw)
}

// Key returns the case-folded canonical key for a credit string.
func (n *Normalizer) Key(raw string) string {
	return Fold(n.Normalize(raw))
}

// Fold applies Unicode case folding.
func Fold(s string) string {
	if s == "" {
		return ""
	}

	return cases.Fold().String(s)
}
