package grammar

import (
	"strings"
	"testing"
)

func TestBuildTableArithGrammarHasNoConflicts(t *testing.T) {
	g := buildArithGrammar(t)
	a, err := BuildLR1(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lalr, err := MergeLALR1(g, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl, err := BuildTable(g, lalr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Conflicts) != 0 {
		t.Fatalf("expected a conflict-free table, got: %v", tbl.Conflicts)
	}
}

// buildDanglingElseGrammar builds the classic ambiguous:
//   S → if E then S | if E then S else S | a
func buildDanglingElseGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewBuilder()
	s := b.SetStart("S")
	ifTok := b.Terminal("if")
	e := b.Terminal("E")
	then := b.Terminal("then")
	elseTok := b.Terminal("else")
	a := b.Terminal("a")

	must := func(_ *Production, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(b.AddProduction(s, ifTok, e, then, s))
	must(b.AddProduction(s, ifTok, e, then, s, elseTok, s))
	must(b.AddProduction(s, a))

	g, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestBuildTableDanglingElseResolvesToShift(t *testing.T) {
	g := buildDanglingElseGrammar(t)
	a, err := BuildLR1(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lalr, err := MergeLALR1(g, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl, err := BuildTable(g, lalr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tbl.Conflicts) == 0 {
		t.Fatalf("expected a shift/reduce conflict on `else`, found none")
	}
	found := false
	for _, c := range tbl.Conflicts {
		if strings.Contains(c, "shift/reduce") && strings.Contains(c, "else") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a shift/reduce conflict mentioning `else`, got: %v", tbl.Conflicts)
	}

	// Only the state holding [S → if E then S •, else] has the conflict;
	// other states (e.g. after S → a •) legitimately reduce on `else`.
	elseSym, _ := g.Symbols.LookupTerminal("else")
	checked := false
	for _, s := range lalr.States {
		if !s.Items.has(Item{Prod: 0, Dot: 4, Lookahead: elseSym}) {
			continue
		}
		checked = true
		if act := tbl.Action[s.ID][elseSym]; act.Kind != ActionShift {
			t.Fatalf("state %d: `else` resolved to %v, want shift", s.ID, act.Kind)
		}
	}
	if !checked {
		t.Fatalf("no state contains [S → if E then S •, else]")
	}
}
