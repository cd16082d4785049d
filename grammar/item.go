package grammar

import (
	"sort"

	"github.com/cnf/structhash"
	"github.com/nihei9/compilekit/grammar/symbol"
)

// Item is an LR(1) item: (production, dot position, lookahead terminal).
// Equality is structural on all three (spec.md §3), which a plain Go
// struct comparison already gives us since every field is comparable.
type Item struct {
	Prod      ProductionID
	Dot       int
	Lookahead symbol.Symbol
}

// KernelEntry is an LR(1) item stripped of its lookahead (spec.md §3):
// two LR(1) states share a kernel iff their KernelEntry sets are equal.
type KernelEntry struct {
	Prod ProductionID
	Dot  int
}

func (it Item) kernelEntry() KernelEntry {
	return KernelEntry{Prod: it.Prod, Dot: it.Dot}
}

// dottedSymbol returns the symbol immediately after the dot, or
// symbol.Nil if the dot is at the end of the production.
func dottedSymbol(g *Grammar, it Item) symbol.Symbol {
	p := g.Production(it.Prod)
	if it.Dot >= len(p.RHS) {
		return symbol.Nil
	}
	return p.RHS[it.Dot]
}

func isReducible(g *Grammar, it Item) bool {
	p := g.Production(it.Prod)
	return it.Dot >= len(p.RHS)
}

// ItemSet is an LR(1) state: a set of items, keyed for O(1) membership
// tests, plus a stable sorted order for deterministic iteration and
// hashing (spec.md §9's "set-valued map keys" note).
type ItemSet struct {
	items map[Item]struct{}
}

func newItemSet() *ItemSet {
	return &ItemSet{items: map[Item]struct{}{}}
}

func newItemSetFrom(items []Item) *ItemSet {
	s := newItemSet()
	for _, it := range items {
		s.add(it)
	}
	return s
}

// add reports whether it was newly added.
func (s *ItemSet) add(it Item) bool {
	if _, ok := s.items[it]; ok {
		return false
	}
	s.items[it] = struct{}{}
	return true
}

func (s *ItemSet) has(it Item) bool {
	_, ok := s.items[it]
	return ok
}

// sorted returns the set's items in a deterministic order: by production
// id, then dot, then lookahead name. This is the canonical order used to
// compute hash keys and to iterate for table filling.
func (s *ItemSet) sorted() []Item {
	out := make([]Item, 0, len(s.items))
	for it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Prod != b.Prod {
			return a.Prod < b.Prod
		}
		if a.Dot != b.Dot {
			return a.Dot < b.Dot
		}
		return a.Lookahead.Name() < b.Lookahead.Name()
	})
	return out
}

// kernel returns the set's kernel entries (deduplicated, sorted): items
// with the dot past position 0, plus the augmented start item, per the
// GLOSSARY's definition of Kernel. Used to group LR(1) states for
// LALR(1) merging (spec.md §4.J).
func (s *ItemSet) kernel(g *Grammar) []KernelEntry {
	seen := map[KernelEntry]struct{}{}
	var out []KernelEntry
	for it := range s.items {
		if it.Dot == 0 && !g.IsAugmentedStart(g.Production(it.Prod)) {
			continue
		}
		k := it.kernelEntry()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prod != out[j].Prod {
			return out[i].Prod < out[j].Prod
		}
		return out[i].Dot < out[j].Dot
	})
	return out
}

// kernelKey computes a stable, order-independent hash of a (sorted)
// kernel-entry slice using structhash, following spec.md §9's guidance to
// key set-valued deduplication on a canonicalized sorted vector rather
// than identity-based hashing.
func kernelKey(k []KernelEntry) string {
	h, err := structhash.Hash(k, 1)
	if err != nil {
		panic("grammar: hashing a kernel must not fail: " + err.Error())
	}
	return h
}

// itemSetKey computes a stable hash of a full LR(1) item set (sorted),
// used to deduplicate states in the canonical collection (spec.md §4.I).
func itemSetKey(items []Item) string {
	type keyable struct {
		Prod int
		Dot  int
		La   string
	}
	ks := make([]keyable, len(items))
	for i, it := range items {
		ks[i] = keyable{Prod: int(it.Prod), Dot: it.Dot, La: it.Lookahead.Name()}
	}
	h, err := structhash.Hash(ks, 1)
	if err != nil {
		panic("grammar: hashing an item set must not fail: " + err.Error())
	}
	return h
}
