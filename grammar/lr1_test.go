package grammar

import (
	"testing"

	"github.com/nihei9/compilekit/grammar/symbol"
)

// buildArithGrammar builds the canonical:
//   E → E + T | T
//   T → T * F | F
//   F → ( E ) | id
func buildArithGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewBuilder()
	e := b.SetStart("E")
	tm := b.NonTerminal("T")
	f := b.NonTerminal("F")
	plus := b.Terminal("+")
	star := b.Terminal("*")
	lparen := b.Terminal("(")
	rparen := b.Terminal(")")
	id := b.Terminal("id")

	must := func(_ *Production, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(b.AddProduction(e, e, plus, tm))
	must(b.AddProduction(e, tm))
	must(b.AddProduction(tm, tm, star, f))
	must(b.AddProduction(tm, f))
	must(b.AddProduction(f, lparen, e, rparen))
	must(b.AddProduction(f, id))

	g, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestBuildLR1Deterministic(t *testing.T) {
	g := buildArithGrammar(t)
	a1, err := BuildLR1(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g2 := buildArithGrammar(t)
	a2, err := BuildLR1(g2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a1.States) != len(a2.States) {
		t.Fatalf("state counts differ across identical builds: %d vs %d", len(a1.States), len(a2.States))
	}
	for i := range a1.States {
		if len(a1.States[i].Items.sorted()) != len(a2.States[i].Items.sorted()) {
			t.Fatalf("state %d differs in item count across identical builds", i)
		}
	}
	if a1.Initial != a2.Initial {
		t.Fatalf("initial state differs across identical builds")
	}
}

func TestBuildLR1InitialStateHasAugmentedStartItem(t *testing.T) {
	g := buildArithGrammar(t)
	a, err := BuildLR1(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	augStart, err := g.AugmentedStart()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := 0
	for _, s := range a.States {
		for it := range s.Items.items {
			if it.Prod == augStart.ID && it.Dot == 0 && it.Lookahead == symbol.EOF {
				found++
			}
		}
	}
	if found != 1 {
		t.Fatalf("expected exactly one state containing [S' → •S, $], found %d", found)
	}
}
