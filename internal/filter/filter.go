// Package filter matches record attribute columns against a regular
// expression, for dropping unwanted annotations before sorting.
package filter

import (
	"github.com/coregx/coregex"
)

// Filter is a compiled attribute filter. Safe for concurrent use.
type Filter struct {
	pattern string
	re      *coregex.Regexp
	invert  bool
}

// Compile builds a Filter from pattern. When invert is true, Keep
// drops matching records instead of keeping them.
func Compile(pattern string, invert bool) (*Filter, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Filter{pattern: pattern, re: re, invert: invert}, nil
}

// Keep reports whether a record with the given attribute column
// survives the filter.
func (f *Filter) Keep(attrs string) bool {
	m := f.re.MatchString(attrs)
	if f.invert {
		return !m
	}
	return m
}

// Pattern returns the source pattern the filter was compiled from.
func (f *Filter) Pattern() string {
	return f.pattern
}
