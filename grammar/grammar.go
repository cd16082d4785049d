// Package grammar builds a LALR(1) parsing table from a context-free
// grammar: FIRST/FOLLOW analysis (§4.H), the canonical LR(1) collection
// (§4.I), LALR(1) kernel merging (§4.J), and ACTION/GOTO table filling
// with conflict detection (§4.K).
package grammar

import (
	"fmt"

	"github.com/nihei9/compilekit/grammar/symbol"
)

// Grammar is a set of productions, a designated start symbol, and the
// induced partition of symbols into terminals and non-terminals
// (spec.md §3).
type Grammar struct {
	Symbols *symbol.Table
	prods   *productionSet

	// augStart is the fresh S' → S production added by AugmentedStart; its
	// LHS is the start symbol's name with a '\'' suffix. The suffix is not
	// reserved: a user non-terminal already named that way is reused.
	augStart *Production
}

// Builder assembles a Grammar from productions supplied in caller order;
// that order is preserved as ProductionID and drives every deterministic
// iteration downstream (spec.md §5).
type Builder struct {
	symbols *symbol.Table
	prods   *productionSet
	start   symbol.Symbol
}

func NewBuilder() *Builder {
	return &Builder{
		symbols: symbol.NewTable(),
		prods:   newProductionSet(),
	}
}

func (b *Builder) Terminal(name string) symbol.Symbol {
	return b.symbols.Terminal(name)
}

func (b *Builder) NonTerminal(name string) symbol.Symbol {
	return b.symbols.NonTerminal(name)
}

// SetStart designates the grammar's start symbol.
func (b *Builder) SetStart(name string) symbol.Symbol {
	s := b.symbols.NonTerminal(name)
	b.start = s
	return s
}

// AddProduction registers lhs → rhs. rhs may be empty to denote an
// ε-production; callers that instead pass the literal ε terminal get the
// same normalized result (spec.md §9's open question: normalize ε-RHS at
// load time).
func (b *Builder) AddProduction(lhs symbol.Symbol, rhs ...symbol.Symbol) (*Production, error) {
	if len(rhs) == 1 && rhs[0].IsEmpty() {
		rhs = nil
	}
	return b.prods.add(lhs, rhs)
}

// Build finalizes the grammar. It does not augment the grammar with S';
// callers needing the augmented grammar for LR(1) construction call
// AugmentedStart.
func (b *Builder) Build() (*Grammar, error) {
	if b.start.IsNil() {
		return nil, fmt.Errorf("grammar: no start symbol was set")
	}
	if len(b.prods.all()) == 0 {
		return nil, fmt.Errorf("grammar: a grammar needs at least one production")
	}
	if err := b.symbols.SetStart(b.start); err != nil {
		return nil, err
	}
	return &Grammar{
		Symbols: b.symbols,
		prods:   b.prods,
	}, nil
}

func (g *Grammar) Start() symbol.Symbol {
	return g.Symbols.Start()
}

func (g *Grammar) Productions() []*Production {
	return g.prods.all()
}

func (g *Grammar) Production(id ProductionID) *Production {
	return g.prods.get(id)
}

func (g *Grammar) ProductionsFor(lhs symbol.Symbol) []*Production {
	return g.prods.byLeft(lhs)
}

// AugmentedStart returns the fresh S' → S production LR(1) construction
// needs. It is created lazily and cached on first call.
func (g *Grammar) AugmentedStart() (*Production, error) {
	if g.augStart != nil {
		return g.augStart, nil
	}
	startName := g.Start().Name() + "'"
	augSym := g.Symbols.NonTerminal(startName)
	p, err := g.prods.add(augSym, symbol.Seq{g.Start()})
	if err != nil {
		return nil, err
	}
	g.augStart = p
	return p, nil
}

// IsAugmentedStart reports whether p is the fresh S' → S production; used
// to reject REDUCE(p) actions on it (spec.md §3 invariant) and to
// recognize ACCEPT (spec.md §4.K).
func (g *Grammar) IsAugmentedStart(p *Production) bool {
	return g.augStart != nil && p.ID == g.augStart.ID
}
