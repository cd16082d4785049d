package grammar

import (
	"fmt"

	"github.com/nihei9/compilekit/grammar/symbol"
)

// firstEntry is FIRST(X) for one symbol: the terminals that can begin a
// derivation from X, plus whether X can derive ε.
type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{symbols: map[symbol.Symbol]struct{}{}}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if e.empty {
		return false
	}
	e.empty = true
	return true
}

func (e *firstEntry) mergeExceptEmpty(other *firstEntry) bool {
	changed := false
	for s := range other.symbols {
		if e.add(s) {
			changed = true
		}
	}
	return changed
}

// FirstSet is FIRST(N) for every non-terminal N in a grammar, per
// spec.md §4.H.
type FirstSet struct {
	set map[symbol.Symbol]*firstEntry
}

func newFirstSet(prods *productionSet) *FirstSet {
	fst := &FirstSet{set: map[symbol.Symbol]*firstEntry{}}
	for _, p := range prods.all() {
		if _, ok := fst.set[p.LHS]; !ok {
			fst.set[p.LHS] = newFirstEntry()
		}
	}
	return fst
}

func (fst *FirstSet) bySymbol(sym symbol.Symbol) *firstEntry {
	return fst.set[sym]
}

// Of returns FIRST(sym): {sym} for a terminal, {ε} for ε, or the computed
// entry for a non-terminal.
func (fst *FirstSet) Of(sym symbol.Symbol) (map[symbol.Symbol]struct{}, bool) {
	if sym.IsEmpty() {
		return map[symbol.Symbol]struct{}{symbol.Empty: {}}, true
	}
	if sym.IsTerminal() {
		return map[symbol.Symbol]struct{}{sym: {}}, false
	}
	e := fst.bySymbol(sym)
	if e == nil {
		return nil, false
	}
	return e.symbols, e.empty
}

// OfSeq computes FIRST(β) for an arbitrary symbol sequence, per spec.md
// §4.H: "FIRST over a sequence βa is defined analogously; an empty
// sequence yields {ε}."
func (fst *FirstSet) OfSeq(seq symbol.Seq) (*firstEntry, error) {
	entry := newFirstEntry()
	if len(seq) == 0 {
		entry.addEmpty()
		return entry, nil
	}
	for _, sym := range seq {
		if sym.IsEmpty() {
			continue
		}
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}
		e := fst.bySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("grammar: FIRST entry not found for %v", sym)
		}
		entry.mergeExceptEmpty(e)
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

// ComputeFirstSets runs the fixed-point iteration of spec.md §4.H: repeat
// until no entry changes across a full pass over every production, in
// grammar-declared order, per spec.md §5's determinism requirement.
func ComputeFirstSets(g *Grammar) (*FirstSet, error) {
	fst := newFirstSet(g.prods)
	for {
		changed := false
		for _, p := range g.Productions() {
			acc := fst.bySymbol(p.LHS)
			c, err := growFirstFromProduction(fst, acc, p)
			if err != nil {
				return nil, err
			}
			if c {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return fst, nil
}

func growFirstFromProduction(fst *FirstSet, acc *firstEntry, p *Production) (bool, error) {
	if p.IsEmpty() {
		return acc.addEmpty(), nil
	}
	changed := false
	for _, sym := range p.RHS {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed, nil
		}
		e := fst.bySymbol(sym)
		if e == nil {
			return false, fmt.Errorf("grammar: FIRST entry not found for %v", sym)
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed, nil
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed, nil
}
