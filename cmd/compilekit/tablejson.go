package main

import (
	"encoding/json"
	"sort"

	"github.com/nihei9/compilekit/grammar"
)

// actionEntry and gotoEntry give the ACTION/GOTO table a JSON shape that
// survives round-tripping: grammar.Table keys its maps by symbol.Symbol,
// which has no natural JSON key representation, so the persisted form
// (spec.md §6: "Table artifacts (the persisted output)") flattens each
// map to an entry list instead.
type actionEntry struct {
	State      int    `json:"state"`
	Terminal   string `json:"terminal"`
	Kind       string `json:"kind"`
	TargetSate int    `json:"targetState,omitempty"`
	Production int    `json:"production,omitempty"`
}

type gotoEntry struct {
	State       int    `json:"state"`
	NonTerminal string `json:"nonTerminal"`
	TargetState int    `json:"targetState"`
}

type tableDoc struct {
	InitialState int           `json:"initialState"`
	Action       []actionEntry `json:"action"`
	Goto         []gotoEntry   `json:"goto"`
	Conflicts    []string      `json:"conflicts"`
}

func marshalTable(t *grammar.Table) ([]byte, error) {
	doc := tableDoc{
		InitialState: t.InitialState,
		Conflicts:    t.Conflicts,
	}

	states := make([]int, 0, len(t.Action))
	for s := range t.Action {
		states = append(states, s)
	}
	sort.Ints(states)
	for _, s := range states {
		terms := make([]string, 0, len(t.Action[s]))
		bySym := map[string]actionEntry{}
		for sym, act := range t.Action[s] {
			e := actionEntry{State: s, Terminal: sym.Name(), Kind: act.Kind.String()}
			switch act.Kind {
			case grammar.ActionShift:
				e.TargetSate = act.State
			case grammar.ActionReduce:
				e.Production = int(act.Prod)
			}
			terms = append(terms, sym.Name())
			bySym[sym.Name()] = e
		}
		sort.Strings(terms)
		for _, name := range terms {
			doc.Action = append(doc.Action, bySym[name])
		}
	}

	states = states[:0]
	for s := range t.Goto {
		states = append(states, s)
	}
	sort.Ints(states)
	for _, s := range states {
		nonTerms := make([]string, 0, len(t.Goto[s]))
		byName := map[string]int{}
		for sym, target := range t.Goto[s] {
			nonTerms = append(nonTerms, sym.Name())
			byName[sym.Name()] = target
		}
		sort.Strings(nonTerms)
		for _, name := range nonTerms {
			doc.Goto = append(doc.Goto, gotoEntry{State: s, NonTerminal: name, TargetState: byName[name]})
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}
