package grammar

import (
	"fmt"

	"github.com/nihei9/compilekit/grammar/symbol"
)

// followEntry is FOLLOW(N): the terminals that can immediately follow N
// in some derivation, plus whether $ can follow N.
type followEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{symbols: map[symbol.Symbol]struct{}{}}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if e.eof {
		return false
	}
	e.eof = true
	return true
}

func (e *followEntry) mergeFirst(fst *firstEntry) bool {
	changed := false
	for s := range fst.symbols {
		if e.add(s) {
			changed = true
		}
	}
	return changed
}

func (e *followEntry) mergeFollow(other *followEntry) bool {
	changed := false
	for s := range other.symbols {
		if e.add(s) {
			changed = true
		}
	}
	if other.eof && e.addEOF() {
		changed = true
	}
	return changed
}

// FollowSet is FOLLOW(N) for every non-terminal N in a grammar, per
// spec.md §4.H.
type FollowSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollowSet(prods *productionSet) *FollowSet {
	flw := &FollowSet{set: map[symbol.Symbol]*followEntry{}}
	for _, p := range prods.all() {
		if _, ok := flw.set[p.LHS]; !ok {
			flw.set[p.LHS] = newFollowEntry()
		}
	}
	return flw
}

func (flw *FollowSet) Of(sym symbol.Symbol) (map[symbol.Symbol]struct{}, bool, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, false, fmt.Errorf("grammar: FOLLOW entry not found for %v", sym)
	}
	return e.symbols, e.eof, nil
}

// ComputeFollowSets runs the fixed-point iteration of spec.md §4.H:
// FOLLOW(start) ⊇ {$}; for every B → α N β, add FIRST(β)\{ε} to
// FOLLOW(N), and FOLLOW(B) to FOLLOW(N) if ε ∈ FIRST(β) or β is empty.
func ComputeFollowSets(g *Grammar, fst *FirstSet) (*FollowSet, error) {
	flw := newFollowSet(g.prods)
	start := g.Start()
	flw.set[start].addEOF()

	for {
		changed := false
		for _, p := range g.Productions() {
			for i, sym := range p.RHS {
				if !sym.IsNonTerminal() {
					continue
				}
				e := flw.set[sym]
				if sym == start {
					if e.addEOF() {
						changed = true
					}
				}
				beta := p.RHS[i+1:]
				fstBeta, err := fst.OfSeq(beta)
				if err != nil {
					return nil, err
				}
				if e.mergeFirst(fstBeta) {
					changed = true
				}
				if fstBeta.empty {
					lhsEntry := flw.set[p.LHS]
					if e.mergeFollow(lhsEntry) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return flw, nil
}
