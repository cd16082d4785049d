package grammar

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/nihei9/compilekit/grammar/symbol"
)

// State is one node of the canonical LR(1) collection: an item set plus
// its assigned id. Ids are assigned in BFS discovery order, which spec.md
// §5 requires to be deterministic given a deterministic Σ/production
// order.
type State struct {
	ID    int
	Items *ItemSet
}

// Automaton is the canonical LR(1) collection built by CLOSURE/GOTO
// (spec.md §4.I): the states, the transition function, and the initial
// state.
type Automaton struct {
	States      []*State
	Transitions map[int]map[symbol.Symbol]int
	Initial     int
	grammar     *Grammar
	augStart    *Production
}

// BuildLR1 constructs the canonical LR(1) collection for g. It augments g
// with S' → S (spec.md §4.I) and computes I0 = closure({[S' → •S, $]}).
func BuildLR1(g *Grammar) (*Automaton, error) {
	fst, err := ComputeFirstSets(g)
	if err != nil {
		return nil, err
	}

	augStart, err := g.AugmentedStart()
	if err != nil {
		return nil, err
	}

	a := &Automaton{
		Transitions: map[int]map[symbol.Symbol]int{},
		grammar:     g,
		augStart:    augStart,
	}

	initialItems := closure(g, fst, []Item{{Prod: augStart.ID, Dot: 0, Lookahead: symbol.EOF}})
	byKey := map[string]*State{}

	initial := &State{ID: 0, Items: initialItems}
	a.States = append(a.States, initial)
	byKey[itemSetKey(initialItems.sorted())] = initial
	a.Initial = initial.ID

	// BFS over the canonical collection; enumerating grammar symbols in a
	// fixed order (terminals then non-terminals, both in declaration
	// order) keeps GOTO edge discovery, and therefore state ids,
	// deterministic (spec.md §5).
	symbols := allSymbols(g)

	queue := []*State{initial}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		for _, x := range symbols {
			moved := gotoItems(g, fst, s.Items, x)
			if moved == nil || len(moved.items) == 0 {
				continue
			}
			key := itemSetKey(moved.sorted())
			target, known := byKey[key]
			if !known {
				target = &State{ID: len(a.States), Items: moved}
				a.States = append(a.States, target)
				byKey[key] = target
				queue = append(queue, target)
			}
			if a.Transitions[s.ID] == nil {
				a.Transitions[s.ID] = map[symbol.Symbol]int{}
			}
			a.Transitions[s.ID][x] = target.ID
		}
	}

	return a, nil
}

func allSymbols(g *Grammar) []symbol.Symbol {
	var out []symbol.Symbol
	out = append(out, g.Symbols.Terminals()...)
	out = append(out, g.Symbols.NonTerminals()...)
	return out
}

// closure computes CLOSURE(I) per spec.md §4.I using a worklist so no
// item is reprocessed once its closure has been expanded.
func closure(g *Grammar, fst *FirstSet, seed []Item) *ItemSet {
	set := newItemSetFrom(seed)
	worklist := treeset.NewWith(itemComparator)
	for _, it := range seed {
		worklist.Add(it)
	}

	for !worklist.Empty() {
		it := worklist.Values()[0].(Item)
		worklist.Remove(it)

		b := dottedSymbol(g, it)
		if b.IsNil() || b.IsTerminal() {
			continue
		}

		p := g.Production(it.Prod)
		beta := append(symbol.Seq{}, p.RHS[it.Dot+1:]...)
		betaA := append(beta, it.Lookahead)
		la, err := fst.OfSeq(betaA)
		if err != nil {
			panic(fmt.Sprintf("grammar: closure: %v", err))
		}

		for _, prod := range g.ProductionsFor(b) {
			for a := range la.symbols {
				newItem := Item{Prod: prod.ID, Dot: 0, Lookahead: a}
				if set.add(newItem) {
					worklist.Add(newItem)
				}
			}
		}
	}

	return set
}

func itemComparator(a, b interface{}) int {
	x, y := a.(Item), b.(Item)
	if x.Prod != y.Prod {
		return int(x.Prod) - int(y.Prod)
	}
	if x.Dot != y.Dot {
		return x.Dot - y.Dot
	}
	if x.Lookahead.Name() == y.Lookahead.Name() {
		return 0
	}
	if x.Lookahead.Name() < y.Lookahead.Name() {
		return -1
	}
	return 1
}

// gotoItems computes GOTO(I, X) per spec.md §4.I: advance every item
// dotted at X, then close the result.
func gotoItems(g *Grammar, fst *FirstSet, i *ItemSet, x symbol.Symbol) *ItemSet {
	var moved []Item
	for _, it := range i.sorted() {
		if dottedSymbol(g, it) != x {
			continue
		}
		moved = append(moved, Item{Prod: it.Prod, Dot: it.Dot + 1, Lookahead: it.Lookahead})
	}
	if len(moved) == 0 {
		return nil
	}
	return closure(g, fst, moved)
}

// sortedStateIDs is a small helper the LALR(1) merger uses to keep
// map-iteration-driven output deterministic.
func sortedStateIDs(states map[int]*State) []int {
	ids := make([]int, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
