package grammar

import (
	"sort"

	"github.com/nihei9/compilekit/grammar/symbol"
)

// LALRState is a union of LR(1) item sets that share a kernel (spec.md
// §3, §4.J).
type LALRState struct {
	ID    int
	Items *ItemSet
	// LR1Members are the ids of the canonical-collection states merged
	// into this one, kept for diagnostics.
	LR1Members []int
}

// LALRAutomaton is the LALR(1) automaton produced by merging an
// Automaton's states by kernel equivalence (spec.md §4.J).
type LALRAutomaton struct {
	States      []*LALRState
	Transitions map[int]map[symbol.Symbol]int
	Initial     int
	grammar     *Grammar
}

// MergeLALR1 groups a's states by kernel-entry set and unions the items
// of every group into one LALR(1) state, per spec.md §4.J. Merging twice
// is idempotent: merging an already-merged automaton regroups states
// whose kernels are already pairwise distinct, so every group stays a
// singleton and the result is isomorphic to the input.
func MergeLALR1(g *Grammar, a *Automaton) (*LALRAutomaton, error) {
	// Group LR(1) state ids by kernel key, and remember discovery order
	// (lowest member LR1 id first) so the merged state ids are
	// deterministic given a's own deterministic BFS order.
	groupOf := map[string][]int{}
	var groupOrder []string
	for _, s := range a.States {
		key := kernelKey(s.Items.kernel(g))
		if _, ok := groupOf[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groupOf[key] = append(groupOf[key], s.ID)
	}
	sort.Slice(groupOrder, func(i, j int) bool {
		return minInt(groupOf[groupOrder[i]]) < minInt(groupOf[groupOrder[j]])
	})

	classOf := map[int]int{}
	lalr := &LALRAutomaton{
		Transitions: map[int]map[symbol.Symbol]int{},
		grammar:     g,
	}

	byLR1ID := map[int]*State{}
	for _, s := range a.States {
		byLR1ID[s.ID] = s
	}

	for newID, key := range groupOrder {
		members := groupOf[key]
		sort.Ints(members)

		merged := newItemSet()
		for _, m := range members {
			for _, it := range byLR1ID[m].Items.sorted() {
				merged.add(it)
			}
		}

		lalr.States = append(lalr.States, &LALRState{
			ID:         newID,
			Items:      merged,
			LR1Members: members,
		})
		for _, m := range members {
			classOf[m] = newID
		}
	}

	lalr.Initial = classOf[a.Initial]

	// Rewrite transitions: duplicates on the same (class(s), X) collapse
	// to the same class(t) because kernel-equivalent states share
	// transitions (spec.md §4.J).
	for _, sID := range sortedStateIDs(byLR1ID) {
		edges, ok := a.Transitions[sID]
		if !ok {
			continue
		}
		cs := classOf[sID]
		if lalr.Transitions[cs] == nil {
			lalr.Transitions[cs] = map[symbol.Symbol]int{}
		}
		syms := make([]symbol.Symbol, 0, len(edges))
		for x := range edges {
			syms = append(syms, x)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i].Name() < syms[j].Name() })
		for _, x := range syms {
			ct := classOf[edges[x]]
			lalr.Transitions[cs][x] = ct
		}
	}

	return lalr, nil
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
