package sanitization

import "regexp"

type (
	// Sanitizer applies its rules, in order, to an input string.
	Sanitizer struct {
		rules []Rule
	}

	// Rule replaces matches of Pattern with Replacement (which may use `$1` style expansion), or with the
	// result of ReplaceFunc when set.
	Rule struct {
		Pattern     *regexp.Regexp
		Replacement string
		ReplaceFunc func(string) string
	}
)

func (s *Sanitizer) Apply(input string) string {
	output := input
	for _, rule := range s.rules {
		if rule.ReplaceFunc != nil {
			output = rule.Pattern.ReplaceAllStringFunc(output, rule.ReplaceFunc)
			continue
		}
		output = rule.Pattern.ReplaceAllString(output, rule.Replacement)
	}
	return output
}

func NewSanitizer(rules ...Rule) *Sanitizer {
	return &Sanitizer{rules: rules}
}
