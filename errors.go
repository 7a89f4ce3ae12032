package gffsort

import (
	"fmt"
)

// RecordError reports a malformed record rejected under the strict
// parsing policy: fewer than nine tab-separated fields, or a
// non-integer start coordinate under a mode that compares starts.
type RecordError struct {
	Line   int    // 1-based input line number
	Text   string // the offending line, unmodified
	Reason string // what was wrong with it
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
}

// FilterError reports an attribute filter pattern that failed to
// compile.
type FilterError struct {
	Pattern string
	Message string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %s", e.Pattern, e.Message)
}

// IsRecordError reports whether err is a RecordError.
// Returns (err, true) if so, or (nil, false) otherwise.
func IsRecordError(err error) (*RecordError, bool) {
	if e, ok := err.(*RecordError); ok {
		return e, true
	}
	return nil, false
}
