package grammar

import (
	"testing"

	"github.com/nihei9/compilekit/grammar/symbol"
)

func TestComputeFollowSets(t *testing.T) {
	g := buildExprGrammar(t)
	fst, err := ComputeFirstSets(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flw, err := ComputeFollowSets(g, fst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	add, _ := g.Symbols.LookupTerminal("add")
	mul, _ := g.Symbols.LookupTerminal("mul")
	rparen, _ := g.Symbols.LookupTerminal("r_paren")

	expr, _ := g.Symbols.LookupNonTerminal("expr")
	term, _ := g.Symbols.LookupNonTerminal("term")
	factor, _ := g.Symbols.LookupNonTerminal("factor")

	for _, tt := range []struct {
		name    string
		sym     symbol.Symbol
		want    []symbol.Symbol
		wantEOF bool
	}{
		{"expr", expr, []symbol.Symbol{add, rparen}, true},
		{"term", term, []symbol.Symbol{add, mul, rparen}, true},
		{"factor", factor, []symbol.Symbol{add, mul, rparen}, true},
	} {
		got, eof, err := flw.Of(tt.sym)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if eof != tt.wantEOF {
			t.Errorf("%s: eof = %v, want %v", tt.name, eof, tt.wantEOF)
		}
		if len(got) != len(tt.want) {
			t.Errorf("%s: FOLLOW size = %d, want %d (%v)", tt.name, len(got), len(tt.want), got)
			continue
		}
		for _, w := range tt.want {
			if _, ok := got[w]; !ok {
				t.Errorf("%s: FOLLOW missing %v", tt.name, w)
			}
		}
	}
}
