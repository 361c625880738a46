// Package scalar converts persisted text into an integer without failing the
// caller. Decode is pure; Report and DecodeOr write human-readable
// diagnostics to a caller-supplied stream.
//
// A value is accepted only when the entire string is a base-10 integer with
// an optional leading sign. Whitespace anywhere, including a trailing
// newline, is residue. Values outside the range of int are rejected as
// malformed rather than saturated.
package scalar

import (
	"fmt"
	"io"
	"strconv"
)

// Kind tags an Outcome.
type Kind int

const (
	// Empty means the source text was the empty string.
	Empty Kind = iota
	// Malformed means the text was not a complete base-10 integer.
	Malformed
	// Value means the text parsed cleanly.
	Value
	// Absent means there was no resource to decode. Decode never returns
	// it; callers that checked Exists use it to report a missing resource.
	Absent
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Malformed:
		return "malformed"
	case Value:
		return "value"
	case Absent:
		return "absent"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the tagged result of Decode. N is meaningful only for Value;
// Text holds the offending input for Malformed.
type Outcome struct {
	Kind Kind
	N    int
	Text string
}

// OK reports whether the outcome carries a value.
func (o Outcome) OK() bool { return o.Kind == Value }

// Or returns N for a Value outcome and fallback otherwise.
func (o Outcome) Or(fallback int) int {
	if o.Kind == Value {
		return o.N
	}
	return fallback
}

// Diagnostic returns the user-facing message for an Empty or Malformed
// outcome, or "" otherwise. Malformed text is quoted verbatim.
func (o Outcome) Diagnostic() string {
	switch o.Kind {
	case Empty:
		return "Error: Cannot convert empty string to int"
	case Malformed:
		return `Error: Cannot convert "` + o.Text + `" to int`
	default:
		return ""
	}
}

// Decode strictly parses text as a base-10 int.
func Decode(text string) Outcome {
	if text == "" {
		return Outcome{Kind: Empty}
	}
	n, err := strconv.ParseInt(text, 10, strconv.IntSize)
	if err != nil {
		return Outcome{Kind: Malformed, Text: text}
	}
	return Outcome{Kind: Value, N: int(n)}
}

// Encode renders n as the decimal text Decode accepts.
func Encode(n int) string {
	return strconv.Itoa(n)
}

// Report writes the outcome's diagnostic followed by a newline to w. It
// writes nothing for a Value or Absent outcome, or a nil writer.
func Report(w io.Writer, o Outcome) {
	if w == nil || o.Kind == Value || o.Kind == Absent {
		return
	}
	fmt.Fprintln(w, o.Diagnostic())
}

// DecodeOr decodes text, reports a failure to w, and returns the decoded
// value or fallback unchanged.
func DecodeOr(text string, fallback int, w io.Writer) int {
	o := Decode(text)
	Report(w, o)
	return o.Or(fallback)
}
