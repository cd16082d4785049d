package driver

import (
	"fmt"
	"strings"

	"github.com/nihei9/compilekit/grammar/symbol"
)

// SyntaxError is the fatal error spec.md §7 describes for the driver:
// "ACTION or GOTO missing at a live configuration". ExpectedTerminals
// names every terminal that did have an action in State, for diagnostics
// (SPEC_FULL.md's supplement over the distilled spec).
type SyntaxError struct {
	State             int
	OffendingType     string
	OffendingLexeme   string
	ExpectedTerminals []symbol.Symbol
}

func (e *SyntaxError) Error() string {
	names := make([]string, len(e.ExpectedTerminals))
	for i, s := range e.ExpectedTerminals {
		names[i] = s.Name()
	}
	return fmt.Sprintf("driver: syntax error at state %d: unexpected %s %q (expected one of: %s)",
		e.State, e.OffendingType, e.OffendingLexeme, strings.Join(names, ", "))
}
