package specfmt_test

import (
	"strings"
	"testing"

	"github.com/nihei9/compilekit/specfmt"
)

const arithSpec = `
# lexical rules
id = "[A-Za-z_][A-Za-z_0-9]*" ;
ws = " " 0 skip ;
plus = "plus" ;
star = "star" ;

# grammar
E : E plus T ;
E : T ;
T : T star id ;
T : id ;
`

func TestLoadArithSpec(t *testing.T) {
	g, rules, err := specfmt.Load(strings.NewReader(arithSpec))
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if g.Start().Name() != "E" {
		t.Fatalf("expected start symbol E, got %v", g.Start())
	}
	if len(g.Productions()) != 4 {
		t.Fatalf("expected 4 productions, got %d", len(g.Productions()))
	}

	var sawSkip bool
	for _, r := range rules {
		if r.Type == "ws" && r.Skip {
			sawSkip = true
		}
	}
	if !sawSkip {
		t.Fatalf("expected the ws rule to be marked Skip")
	}
	if len(rules) != 4 {
		t.Fatalf("expected 4 lexical rules, got %d", len(rules))
	}
}

func TestLoadRejectsMissingSemicolon(t *testing.T) {
	_, _, err := specfmt.Load(strings.NewReader("E : id\n"))
	if err == nil {
		t.Fatalf("expected an error for a statement missing ';'")
	}
}

func TestLoadRejectsUnterminatedPattern(t *testing.T) {
	_, _, err := specfmt.Load(strings.NewReader(`id = "abc ;` + "\n"))
	if err == nil {
		t.Fatalf("expected an error for an unterminated quoted pattern")
	}
}
