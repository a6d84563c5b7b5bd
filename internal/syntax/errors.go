package syntax

import (
	"fmt"
	"strings"
)

// Error is a diagnostic tied to a byte offset in the source text. It
// is the only error type produced by Tokenize and Parse; the first
// violation aborts compilation, so an Error always describes exactly
// one location.
type Error struct {
	Src string // full source text
	Off int    // byte offset of the offending token
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Off, e.Msg)
}

// Diagnostic renders the caret layout: the source text, then a caret
// under the offending column followed by the message.
func (e *Error) Diagnostic() string {
	return fmt.Sprintf("%s\n%s^ %s\n", e.Src, strings.Repeat(" ", e.Off), e.Msg)
}
