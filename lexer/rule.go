// Package lexer builds a minimized, prioritized multi-pattern DFA from a
// set of lexical rules and drives it as a longest-match token generator
// (spec.md §4.D–G): subset construction, token DFA merging, Hopcroft-style
// minimization, and the scanner itself.
package lexer

import (
	"fmt"

	"github.com/nihei9/compilekit/regex"
)

// TokenType names the kind of token a rule produces. It is kept as a
// plain string rather than a closed Go enum since token kinds are
// declared per grammar at construction time (SPEC_FULL.md §7).
type TokenType string

// Rule is one lexical rule: a name, a compiled pattern, and a priority
// used to break ties between rules that match the same prefix
// (spec.md §4.E), grounded on the original implementation's
// LexicalRule.java.
type Rule struct {
	Type     TokenType
	Pattern  string
	Priority int

	// Skip marks a rule whose matches the caller wants dropped from the
	// token output. Scanner.Tokenize does not read it: a caller drops
	// these tokens by passing their types in Tokenize's skip map.
	Skip bool

	nfa *regex.NFA
}

// Compile builds the rule's Thompson NFA from its pattern (spec.md
// §4.A/§4.B). It must be called before the rule is used in Subset or
// BuildTokenDFA.
func (r *Rule) Compile() error {
	postfix, err := regex.ToPostfix(r.Pattern)
	if err != nil {
		return fmt.Errorf("lexer: rule %q: %w", r.Type, err)
	}
	n, err := regex.Thompson(postfix)
	if err != nil {
		return fmt.Errorf("lexer: rule %q: %w", r.Type, err)
	}
	r.nfa = n
	return nil
}

// NewRule compiles and returns a lexical rule in one step.
func NewRule(tokenType TokenType, pattern string, priority int) (*Rule, error) {
	r := &Rule{Type: tokenType, Pattern: pattern, Priority: priority}
	if err := r.Compile(); err != nil {
		return nil, err
	}
	return r, nil
}
