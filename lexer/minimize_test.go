package lexer

import "testing"

// TestMinimizeTwoStateStarCollapses reproduces spec.md §8 scenario 6: the
// unminimized subset-construction DFA for "a*" over a single-symbol
// alphabet has two states, an accepting start state and an accepting loop
// state; after minimization only one state should remain.
func TestMinimizeTwoStateStarCollapses(t *testing.T) {
	r := compileRule(t, "A", "a*", 0)
	d := Subset(r.nfa, []rune("a"))
	if len(d.States) != 2 {
		t.Fatalf("Subset(a*): expected a two-state DFA before minimization, got %d", len(d.States))
	}

	min := Minimize(d)
	if len(min.States) != 1 {
		t.Fatalf("Minimize(a*): expected exactly 1 state, got %d", len(min.States))
	}
	if !min.State(min.Start).IsFinal {
		t.Fatalf("Minimize(a*): the sole surviving state must be accepting")
	}
	if !runDFA(min, "") || !runDFA(min, "a") || !runDFA(min, "aaaa") {
		t.Fatalf("Minimize(a*): minimized DFA must still accept a*")
	}
}

func TestMinimizeIsIdempotent(t *testing.T) {
	r := compileRule(t, "A", "a(b|c)*", 0)
	d := Subset(r.nfa, []rune("abc"))

	once := Minimize(d)
	twice := Minimize(once)

	if len(once.States) != len(twice.States) {
		t.Fatalf("Minimize is not idempotent: %d states, then %d", len(once.States), len(twice.States))
	}
}

func TestMinimizePreservesTokenLabels(t *testing.T) {
	ifRule := compileRule(t, "IF", "if", 1)
	identPattern, err := ExpandCharClasses("[A-Za-z_][A-Za-z_0-9]*")
	if err != nil {
		t.Fatalf("ExpandCharClasses: %v", err)
	}
	identRule := compileRule(t, "IDENT", identPattern, 0)

	alphabet := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_")
	d := BuildTokenDFA([]*Rule{identRule, ifRule}, alphabet)
	min := Minimize(d)

	q := min.Start
	var label *TokenLabel
	for _, c := range "if" {
		next, ok := min.State(q).Transitions[c]
		if !ok {
			t.Fatalf("minimized token DFA lost a transition on %q", c)
		}
		q = next
		label = min.State(q).Label
	}
	if label == nil || label.Type != "IF" {
		t.Fatalf("minimization must not merge IF into IDENT's equivalence class, got %#v", label)
	}
}
