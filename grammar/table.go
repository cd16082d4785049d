package grammar

import (
	"fmt"
	"sort"

	"github.com/nihei9/compilekit/grammar/symbol"
)

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "none"
	}
}

// Action is the tagged union {SHIFT(id), REDUCE(production-id), ACCEPT}
// spec.md §9 asks for; represented as a sum type via a discriminant
// field rather than an interface hierarchy.
type Action struct {
	Kind  ActionKind
	State int          // valid when Kind == ActionShift
	Prod  ProductionID // valid when Kind == ActionReduce
}

// Table is the persisted ACTION/GOTO artifact of spec.md §6: ACTION maps
// state → (terminal → action), GOTO maps state → (non-terminal → state),
// and Conflicts accumulates every conflict spec.md §4.K's resolution
// policy resolved rather than raising an error for.
type Table struct {
	Action       map[int]map[symbol.Symbol]Action
	Goto         map[int]map[symbol.Symbol]int
	Conflicts    []string
	InitialState int
	grammar      *Grammar
}

// BuildTable fills ACTION/GOTO from a LALR(1) automaton per spec.md
// §4.K's rules and conflict-resolution policy.
func BuildTable(g *Grammar, lalr *LALRAutomaton) (*Table, error) {
	_, err := g.AugmentedStart()
	if err != nil {
		return nil, err
	}

	t := &Table{
		Action:       map[int]map[symbol.Symbol]Action{},
		Goto:         map[int]map[symbol.Symbol]int{},
		InitialState: lalr.Initial,
		grammar:      g,
	}

	states := append([]*LALRState{}, lalr.States...)
	sort.Slice(states, func(i, j int) bool { return states[i].ID < states[j].ID })

	// Pass 1: SHIFT actions and GOTO entries, driven directly by the
	// automaton's transition function.
	for _, s := range states {
		edges := lalr.Transitions[s.ID]
		syms := make([]symbol.Symbol, 0, len(edges))
		for x := range edges {
			syms = append(syms, x)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i].Name() < syms[j].Name() })

		for _, x := range syms {
			target := edges[x]
			if x.IsTerminal() {
				t.setAction(s.ID, x, Action{Kind: ActionShift, State: target})
			} else {
				if t.Goto[s.ID] == nil {
					t.Goto[s.ID] = map[symbol.Symbol]int{}
				}
				t.Goto[s.ID][x] = target
			}
		}
	}

	// Pass 2: REDUCE/ACCEPT actions from reducible items, processed in a
	// stable per-state order so conflict resolution is deterministic.
	for _, s := range states {
		for _, it := range s.Items.sorted() {
			if !isReducible(g, it) {
				continue
			}
			p := g.Production(it.Prod)
			if g.IsAugmentedStart(p) {
				if it.Lookahead == symbol.EOF {
					t.setAction(s.ID, symbol.EOF, Action{Kind: ActionAccept})
				}
				continue
			}
			t.setAction(s.ID, it.Lookahead, Action{Kind: ActionReduce, Prod: p.ID})
		}
	}

	return t, nil
}

// setAction writes act into ACTION[state, sym], applying spec.md §4.K's
// conflict-resolution policy and logging every conflict it resolves:
//   - Shift/Reduce: SHIFT wins, REDUCE discarded.
//   - Reduce/Reduce: first REDUCE written wins, later ones discarded.
//   - ACCEPT colliding with anything else: logged, existing action kept
//     unless the cell was empty.
func (t *Table) setAction(state int, sym symbol.Symbol, act Action) {
	if t.Action[state] == nil {
		t.Action[state] = map[symbol.Symbol]Action{}
	}
	existing, ok := t.Action[state][sym]
	if !ok {
		t.Action[state][sym] = act
		return
	}
	if existing == act {
		return
	}

	switch {
	case existing.Kind == ActionShift && act.Kind == ActionReduce:
		t.logConflict(state, sym, "shift/reduce", "kept shift, discarded reduce")
	case existing.Kind == ActionReduce && act.Kind == ActionShift:
		// A grammar-declared shift should never lose to an
		// earlier-written reduce under this policy: overwrite so shift
		// always wins, but still log the conflict.
		t.Action[state][sym] = act
		t.logConflict(state, sym, "shift/reduce", "kept shift, discarded reduce")
	case existing.Kind == ActionReduce && act.Kind == ActionReduce:
		t.logConflict(state, sym, "reduce/reduce", "kept first reduce, discarded later reduce")
	case existing.Kind == ActionAccept || act.Kind == ActionAccept:
		// existing is always set here (the empty-cell case already
		// returned above), so the first-written action wins.
		t.logConflict(state, sym, "accept", fmt.Sprintf("kept %v", existing.Kind))
	default:
		t.logConflict(state, sym, "unknown", fmt.Sprintf("kept %v", existing.Kind))
	}
}

func (t *Table) logConflict(state int, sym symbol.Symbol, kind, resolution string) {
	t.Conflicts = append(t.Conflicts, fmt.Sprintf("state %d, terminal %q: %s conflict (%s)", state, sym.Name(), kind, resolution))
}

// Symbols exposes the grammar's interned symbol table, so a driver holding
// only a Table can still resolve terminal names from a token stream.
func (t *Table) Symbols() *symbol.Table {
	return t.grammar.Symbols
}

// Reduce returns the LHS symbol and the number of stack states a REDUCE
// on production id pops, per spec.md §4.L ("treat ε-singleton as k=0").
func (t *Table) Reduce(id ProductionID) (symbol.Symbol, int) {
	p := t.grammar.Production(id)
	return p.LHS, p.Len()
}

// ExpectedTerminals lists, in a stable order, the terminals ACTION[state]
// has an entry for. Callers use it to build a helpful SyntaxError.
func (t *Table) ExpectedTerminals(state int) []symbol.Symbol {
	edges := t.Action[state]
	syms := make([]symbol.Symbol, 0, len(edges))
	for sym := range edges {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name() < syms[j].Name() })
	return syms
}
