package lexer

import (
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/nihei9/compilekit/regex"
)

// nfaPos identifies one NFA state across a multi-pattern merge: which
// rule it belongs to, and its local id within that rule's NFA. Subset
// construction over a single NFA (spec.md §4.D) is the Rule==0 case of
// the same machinery §4.E's multi-pattern merge uses.
type nfaPos struct {
	Rule  int
	Local regex.StateID
}

// DFAState is an identity-bearing node keyed by the NFA-state set it
// represents (spec.md §3). Label is nil for a non-accepting state, or
// for a plain (non-token) DFA state.
type DFAState struct {
	ID          int
	Transitions map[rune]int
	IsFinal     bool
	Label       *TokenLabel

	nfaSet map[nfaPos]struct{}
}

// TokenLabel is a TokenDfaState's (token-type, priority) pair
// (spec.md §3).
type TokenLabel struct {
	Type     TokenType
	Priority int
}

// DFA is the automaton produced by subset construction (spec.md §4.D) or
// by the multi-pattern token DFA merge (spec.md §4.E).
type DFA struct {
	States   []*DFAState
	Start    int
	Alphabet []rune
}

func (d *DFA) State(id int) *DFAState {
	return d.States[id]
}

// posSetKey computes a canonicalized, order-independent hash of an
// NFA-state-position set with structhash, following spec.md §9's
// requirement that DFA-state deduplication use a stable, non-identity
// hash of the underlying NFA-state set.
func posSetKey(set map[nfaPos]struct{}) string {
	keys := make([]nfaPos, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Rule != keys[j].Rule {
			return keys[i].Rule < keys[j].Rule
		}
		return keys[i].Local < keys[j].Local
	})
	h, err := structhash.Hash(keys, 1)
	if err != nil {
		panic("lexer: hashing an NFA-state set must not fail: " + err.Error())
	}
	return h
}

func epsilonClosure(rules []*regex.NFA, seed map[nfaPos]struct{}) map[nfaPos]struct{} {
	byRule := map[int][]regex.StateID{}
	for p := range seed {
		byRule[p.Rule] = append(byRule[p.Rule], p.Local)
	}
	out := map[nfaPos]struct{}{}
	for ruleIdx, locals := range byRule {
		closure := rules[ruleIdx].EpsilonClosure(locals)
		for local := range closure {
			out[nfaPos{Rule: ruleIdx, Local: local}] = struct{}{}
		}
	}
	return out
}

func move(rules []*regex.NFA, from map[nfaPos]struct{}, sym rune) map[nfaPos]struct{} {
	byRule := map[int][]regex.StateID{}
	for p := range from {
		byRule[p.Rule] = append(byRule[p.Rule], p.Local)
	}
	out := map[nfaPos]struct{}{}
	for ruleIdx, locals := range byRule {
		set := map[regex.StateID]struct{}{}
		for _, l := range locals {
			set[l] = struct{}{}
		}
		for _, target := range rules[ruleIdx].Move(set, sym) {
			out[nfaPos{Rule: ruleIdx, Local: target}] = struct{}{}
		}
	}
	return out
}

// buildDFA is the shared subset-construction engine behind Subset and
// BuildTokenDFA (spec.md §4.D/§4.E): it processes a worklist of DFA
// states, expanding by ε-closure(move(current, σ)) for σ in Σ, assigning
// ids in creation order.
func buildDFA(nfas []*regex.NFA, alphabet []rune, labelFn func(set map[nfaPos]struct{}) (bool, *TokenLabel)) *DFA {
	seed := map[nfaPos]struct{}{}
	for i, n := range nfas {
		seed[nfaPos{Rule: i, Local: n.Start}] = struct{}{}
	}
	initialSet := epsilonClosure(nfas, seed)

	byKey := map[string]*DFAState{}
	d := &DFA{Alphabet: append([]rune{}, alphabet...)}

	newState := func(set map[nfaPos]struct{}) *DFAState {
		isFinal, label := labelFn(set)
		s := &DFAState{
			ID:          len(d.States),
			Transitions: map[rune]int{},
			IsFinal:     isFinal,
			Label:       label,
			nfaSet:      set,
		}
		d.States = append(d.States, s)
		byKey[posSetKey(set)] = s
		return s
	}

	initial := newState(initialSet)
	d.Start = initial.ID

	queue := treeset.NewWith(func(a, b interface{}) int { return a.(*DFAState).ID - b.(*DFAState).ID })
	queue.Add(initial)

	for !queue.Empty() {
		vals := queue.Values()
		cur := vals[0].(*DFAState)
		queue.Remove(cur)

		for _, sym := range alphabet {
			moved := move(nfas, cur.nfaSet, sym)
			if len(moved) == 0 {
				continue
			}
			closed := epsilonClosure(nfas, moved)
			key := posSetKey(closed)
			target, known := byKey[key]
			if !known {
				target = newState(closed)
				queue.Add(target)
			}
			cur.Transitions[sym] = target.ID
		}
	}

	return d
}

// Subset builds a single-pattern DFA from an NFA and an explicit
// alphabet, per spec.md §4.D.
func Subset(n *regex.NFA, alphabet []rune) *DFA {
	return buildDFA([]*regex.NFA{n}, alphabet, func(set map[nfaPos]struct{}) (bool, *TokenLabel) {
		for p := range set {
			if n.State(p.Local).IsFinal {
				return true, nil
			}
		}
		return false, nil
	})
}

// BuildTokenDFA merges rules' NFAs into one prioritized multi-pattern DFA
// per spec.md §4.E: a DFA state is final iff any contained NFA state is
// final, and it is labeled with the rule of strictly maximum priority
// among the matching rules, ties broken by first-declared rule order.
func BuildTokenDFA(rules []*Rule, alphabet []rune) *DFA {
	nfas := make([]*regex.NFA, len(rules))
	for i, r := range rules {
		nfas[i] = r.nfa
	}

	return buildDFA(nfas, alphabet, func(set map[nfaPos]struct{}) (bool, *TokenLabel) {
		bestRule := -1
		for p := range set {
			if !nfas[p.Rule].State(p.Local).IsFinal {
				continue
			}
			if bestRule == -1 {
				bestRule = p.Rule
				continue
			}
			if rules[p.Rule].Priority > rules[bestRule].Priority {
				bestRule = p.Rule
			} else if rules[p.Rule].Priority == rules[bestRule].Priority && p.Rule < bestRule {
				bestRule = p.Rule
			}
		}
		if bestRule == -1 {
			return false, nil
		}
		return true, &TokenLabel{Type: rules[bestRule].Type, Priority: rules[bestRule].Priority}
	})
}
