package lexer

import "sort"

// pairKey is the canonical (min-id, max-id) ordering spec.md §4.F
// requires for the upper-triangular distinguishability table.
type pairKey struct {
	a, b int
}

func canonicalPair(x, y int) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// unionFind is a small union-find with path compression and naive union,
// used to merge indistinguishable DFA-state pairs (spec.md §4.F step 3).
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y int) {
	rx, ry := uf.find(x), uf.find(y)
	if rx != ry {
		uf.parent[rx] = ry
	}
}

// sameLabel reports whether two DFA states carry the same token label for
// the purposes of minimization: for a plain DFA (both labels nil) states
// are never distinguished by label; for a token DFA, distinct labels
// (including one nil, one not) make the pair distinguishable so token
// identity survives minimization (spec.md §4.F).
func sameLabel(a, b *DFAState) bool {
	if a.Label == nil && b.Label == nil {
		return true
	}
	if a.Label == nil || b.Label == nil {
		return false
	}
	return a.Label.Type == b.Label.Type
}

// Minimize runs table-filling (Hopcroft-style) equivalence-class
// minimization over d, per spec.md §4.F. For a token DFA (states carry
// labels), two states are equivalent only if they also share the same
// token-type label.
func Minimize(d *DFA) *DFA {
	states := append([]*DFAState{}, d.States...)
	sort.Slice(states, func(i, j int) bool { return states[i].ID < states[j].ID })
	n := len(states)

	distinguishable := map[pairKey]bool{}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pk := canonicalPair(states[i].ID, states[j].ID)
			distinguishable[pk] = states[i].IsFinal != states[j].IsFinal || !sameLabel(states[i], states[j])
		}
	}

	for {
		changed := false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pk := canonicalPair(states[i].ID, states[j].ID)
				if distinguishable[pk] {
					continue
				}
				for _, sym := range d.Alphabet {
					t1, ok1 := states[i].Transitions[sym]
					t2, ok2 := states[j].Transitions[sym]
					if ok1 != ok2 {
						distinguishable[pk] = true
						changed = true
						break
					}
					if ok1 && ok2 && t1 != t2 {
						tp := canonicalPair(t1, t2)
						if t1 != t2 && distinguishable[tp] {
							distinguishable[pk] = true
							changed = true
							break
						}
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	uf := newUnionFind(n)
	idToIdx := map[int]int{}
	for idx, s := range states {
		idToIdx[s.ID] = idx
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pk := canonicalPair(states[i].ID, states[j].ID)
			if !distinguishable[pk] {
				uf.union(i, j)
			}
		}
	}

	// Build one representative DFA state per equivalence class, in
	// ascending order of the class's lowest member id, so minimization
	// output is deterministic (spec.md §5, §8 idempotence property).
	classOf := make([]int, n)
	for i := range classOf {
		classOf[i] = uf.find(i)
	}
	var classOrder []int
	seen := map[int]bool{}
	for i := 0; i < n; i++ {
		c := classOf[i]
		if !seen[c] {
			seen[c] = true
			classOrder = append(classOrder, c)
		}
	}
	newID := map[int]int{}
	for i, c := range classOrder {
		newID[c] = i
	}

	out := &DFA{Alphabet: append([]rune{}, d.Alphabet...)}
	for _, c := range classOrder {
		member := states[c]
		ns := &DFAState{
			ID:          newID[c],
			Transitions: map[rune]int{},
			IsFinal:     member.IsFinal,
			Label:       member.Label,
		}
		for sym, target := range member.Transitions {
			ns.Transitions[sym] = newID[classOf[idToIdx[target]]]
		}
		out.States = append(out.States, ns)
	}
	out.Start = newID[classOf[idToIdx[d.Start]]]

	return out
}
