package error

import (
	"fmt"
	"strings"
)

// SpecError is an error detected in a grammar description. Row is 1-based and
// 0 when the error is not tied to a particular line; Line holds the offending
// source line when one is known.
type SpecError struct {
	Cause      error
	SourceName string
	Row        int
	Line       string
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 {
		fmt.Fprintf(&b, "%v: ", e.Row)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Line != "" {
		fmt.Fprintf(&b, "\n    %v", e.Line)
	}
	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}
