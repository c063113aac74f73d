// Package pattern translates match options into executable search patterns
// and the argument lists for the external line-matching backends.
package pattern

import (
	"regexp"

	"grepagrip/internal/domain"
)

// Expression builds the extended-regex pattern handed to the external
// backend. Literal queries are escaped so metacharacters match themselves;
// whole-word wraps the escaped literal in word boundaries. Regex queries are
// passed through untouched so the author keeps full control.
func Expression(opts domain.MatchOptions) string {
	if opts.UseRegex {
		return opts.Query
	}
	expr := regexp.QuoteMeta(opts.Query)
	if opts.WholeWord {
		expr = `\b` + expr + `\b`
	}
	return expr
}

// Compile builds the Go-side regex for the same options. Used by the replace
// engine, which must count and substitute with semantics identical to what
// the scan showed the user.
func Compile(opts domain.MatchOptions) (*regexp.Regexp, error) {
	expr := Expression(opts)
	if !opts.CaseSensitive {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}
