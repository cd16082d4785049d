// Package regex compiles a small regular-expression surface (literals and
// | * + ? ( )) into postfix (§4.A, Shunting-Yard with explicit
// concatenation) and then into a Thompson NFA (§4.B), with a direct NFA
// simulator (§4.C) for cross-checking against the DFA path.
package regex

import "fmt"

// MalformedRegexError is returned when postfix conversion finds unmatched
// parentheses, or when Thompson construction finds an operator with too
// few operands or ends with more than one NFA left on the stack
// (spec.md §4.A/§4.B, §7).
type MalformedRegexError struct {
	Pattern string
	Reason  string
}

func (e *MalformedRegexError) Error() string {
	return fmt.Sprintf("regex: malformed pattern %q: %s", e.Pattern, e.Reason)
}

func malformed(pattern, reason string) error {
	return &MalformedRegexError{Pattern: pattern, Reason: reason}
}
