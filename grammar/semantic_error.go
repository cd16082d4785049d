package grammar

import "github.com/nihei9/compilekit/grammar/symbol"

// SemanticError reports a grammar-level defect found by Analyze: a
// production or terminal declared but never reachable from the start
// symbol, or a terminal referenced but never declared. Analyze is a
// supplemental pre-pass (SPEC_FULL.md §7) grounded on
// vartan/grammar/semantic_error.go's static analysis; it never changes the
// construction algorithm in §4.H–K.
type SemanticError struct {
	message string
	Symbol  symbol.Symbol
}

func newSemanticError(message string, sym symbol.Symbol) *SemanticError {
	return &SemanticError{
		message: message,
		Symbol:  sym,
	}
}

func (e *SemanticError) Error() string {
	if e.Symbol.IsNil() {
		return e.message
	}
	return e.message + ": " + e.Symbol.String()
}

var (
	semErrUnusedProduction = "unused production (unreachable from the start symbol)"
	semErrUnusedTerminal   = "unused terminal (declared but never referenced by a reachable production)"
	semErrUndefinedSym     = "undefined symbol referenced in a production"
)

// Analyze runs sanity checks over g that spec.md's construction algorithm
// does not itself require but a complete implementation carries: unused
// productions, unused terminals, and terminals referenced without having
// been declared. Non-terminals that have no production are not reported.
// It never mutates g. Analyze does not reject the
// grammar outright; it returns every finding so a caller can decide.
func Analyze(g *Grammar) []*SemanticError {
	var errs []*SemanticError

	declaredTerms := map[symbol.Symbol]bool{}
	for _, t := range g.Symbols.Terminals() {
		declaredTerms[t] = false
	}

	reachable := map[symbol.Symbol]bool{g.Start(): true}
	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions() {
			if !reachable[p.LHS] {
				continue
			}
			for _, s := range p.RHS {
				if s.IsTerminal() {
					if _, ok := declaredTerms[s]; !ok {
						errs = append(errs, newSemanticError(semErrUndefinedSym, s))
					} else {
						declaredTerms[s] = true
					}
					continue
				}
				if !reachable[s] {
					reachable[s] = true
					changed = true
				}
			}
		}
	}

	for _, p := range g.Productions() {
		if g.IsAugmentedStart(p) {
			continue
		}
		if !reachable[p.LHS] {
			errs = append(errs, newSemanticError(semErrUnusedProduction, p.LHS))
		}
	}
	for t, used := range declaredTerms {
		if !used {
			errs = append(errs, newSemanticError(semErrUnusedTerminal, t))
		}
	}

	return errs
}
