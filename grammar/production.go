package grammar

import (
	"fmt"

	"github.com/nihei9/compilekit/grammar/symbol"
)

// ProductionID identifies a production by its declaration order, which is
// also the order the parsing table reports reduce actions by (spec.md §5:
// "iterate productions in grammar-declared order").
type ProductionID int

// Production is an ordered pair (LHS non-terminal, RHS symbol sequence).
// Equality is structural, tracked here by decl order plus a content key so
// two productions with identical LHS/RHS collapse to one ProductionID.
type Production struct {
	ID  ProductionID
	LHS symbol.Symbol
	RHS symbol.Seq
}

// IsEmpty reports whether p is an ε-production, the structural test
// spec.md §3 requires the driver use to derive k=0 on reduce, and
// spec.md §9's open question asks implementations to make explicit.
// AddProduction normalizes a literal ε RHS down to a zero-length RHS, so
// that is the only shape IsEmpty needs to recognize.
func (p *Production) IsEmpty() bool {
	return len(p.RHS) == 0
}

// Len is the number of symbols popped from the parser stack on a reduce by
// this production: 0 for an ε-production, len(RHS) otherwise.
func (p *Production) Len() int {
	if p.IsEmpty() {
		return 0
	}
	return len(p.RHS)
}

func (p *Production) String() string {
	return fmt.Sprintf("%v → %v", p.LHS, p.RHS)
}

func prodKey(lhs symbol.Symbol, rhs symbol.Seq) string {
	k := lhs.Name() + "\x00" + lhs.Kind().String() + "\x01"
	for _, s := range rhs {
		k += s.Name() + "\x00" + s.Kind().String() + "\x01"
	}
	return k
}

// productionSet interns productions by structural content and keeps them
// in declaration order, mirroring vartan/grammar/production.go's
// productionSet but exported at the ID/lookup surface the rest of the
// toolkit needs.
type productionSet struct {
	byKey map[string]*Production
	byID  []*Production
	byLHS map[symbol.Symbol][]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		byKey: map[string]*Production{},
		byLHS: map[symbol.Symbol][]*Production{},
	}
}

// add interns (lhs, rhs), returning the existing Production if an
// identical one was already added.
func (ps *productionSet) add(lhs symbol.Symbol, rhs symbol.Seq) (*Production, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("grammar: production LHS must be a non-nil symbol")
	}
	for _, s := range rhs {
		if s.IsNil() {
			return nil, fmt.Errorf("grammar: production RHS must not contain a nil symbol; LHS: %v", lhs)
		}
	}

	key := prodKey(lhs, rhs)
	if p, ok := ps.byKey[key]; ok {
		return p, nil
	}

	p := &Production{
		ID:  ProductionID(len(ps.byID)),
		LHS: lhs,
		RHS: append(symbol.Seq{}, rhs...),
	}
	ps.byKey[key] = p
	ps.byID = append(ps.byID, p)
	ps.byLHS[lhs] = append(ps.byLHS[lhs], p)
	return p, nil
}

func (ps *productionSet) get(id ProductionID) *Production {
	return ps.byID[id]
}

func (ps *productionSet) byLeft(lhs symbol.Symbol) []*Production {
	return ps.byLHS[lhs]
}

// all returns productions in declaration order, the order every
// fixed-point iteration in this package walks them in to keep
// construction deterministic (spec.md §5).
func (ps *productionSet) all() []*Production {
	return ps.byID
}
