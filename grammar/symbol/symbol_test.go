package symbol

import "testing"

func TestSymbolEquality(t *testing.T) {
	a1 := NewTerminal("a")
	a2 := NewTerminal("a")
	if a1 != a2 {
		t.Fatalf("expected structural equality: %#v != %#v", a1, a2)
	}

	n := NewNonTerminal("a")
	if a1 == n {
		t.Fatalf("terminal and non-terminal with the same name must differ: %#v == %#v", a1, n)
	}
}

func TestReservedSymbols(t *testing.T) {
	if !Empty.IsTerminal() || !Empty.IsEmpty() {
		t.Fatalf("ε must be a terminal and IsEmpty: %#v", Empty)
	}
	if !EOF.IsTerminal() || !EOF.IsEOF() {
		t.Fatalf("$ must be a terminal and IsEOF: %#v", EOF)
	}
	if Empty == EOF {
		t.Fatalf("ε and $ must be distinct")
	}
	if !Nil.IsNil() {
		t.Fatalf("zero value must be IsNil")
	}
}

func TestTableInterning(t *testing.T) {
	tab := NewTable()

	a1 := tab.Terminal("a")
	a2 := tab.Terminal("a")
	if a1 != a2 {
		t.Fatalf("expected the same terminal to be returned on repeat calls")
	}

	s := tab.NonTerminal("S")
	if err := tab.SetStart(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab.Start() != s {
		t.Fatalf("expected start symbol to be S")
	}

	if err := tab.SetStart(a1); err == nil {
		t.Fatalf("expected error setting a terminal as the start symbol")
	}

	terms := tab.Terminals()
	if len(terms) != 1 || terms[0] != a1 {
		t.Fatalf("unexpected terminal order: %v", terms)
	}

	if _, ok := tab.LookupTerminal("missing"); ok {
		t.Fatalf("expected lookup of an unregistered terminal to fail")
	}
}
