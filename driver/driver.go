package driver

import (
	"fmt"

	"github.com/nihei9/compilekit/grammar"
	"github.com/nihei9/compilekit/grammar/symbol"
)

type inputToken struct {
	Type   symbol.Symbol
	Lexeme string
}

// Run drives table over stream to completion, per spec.md §4.L: push the
// initial state, append $ to the input, and loop SHIFT/REDUCE/ACCEPT
// until the driver accepts or a SyntaxError is raised. No parse tree or
// semantic value is produced (spec.md §6: "no partial AST is produced").
func Run(table *grammar.Table, stream TokenStream) (bool, error) {
	tokens, err := drainTokens(table.Symbols(), stream)
	if err != nil {
		return false, err
	}

	stack := []int{table.InitialState}
	pos := 0

	for {
		s := stack[len(stack)-1]
		cur := tokens[pos]

		act, ok := table.Action[s][cur.Type]
		if !ok {
			return false, &SyntaxError{
				State:             s,
				OffendingType:     cur.Type.Name(),
				OffendingLexeme:   cur.Lexeme,
				ExpectedTerminals: table.ExpectedTerminals(s),
			}
		}

		switch act.Kind {
		case grammar.ActionShift:
			stack = append(stack, act.State)
			pos++

		case grammar.ActionReduce:
			lhs, k := table.Reduce(act.Prod)
			stack = stack[:len(stack)-k]
			top := stack[len(stack)-1]
			g, ok := table.Goto[top][lhs]
			if !ok {
				return false, &SyntaxError{
					State:             top,
					OffendingType:     lhs.Name(),
					OffendingLexeme:   cur.Lexeme,
					ExpectedTerminals: table.ExpectedTerminals(top),
				}
			}
			stack = append(stack, g)

		case grammar.ActionAccept:
			return true, nil

		default:
			return false, fmt.Errorf("driver: state %d, terminal %q: action table has no kind set", s, cur.Type.Name())
		}
	}
}

// drainTokens resolves every (type-name, lexeme) pair from stream against
// the grammar's terminal set and appends the trailing $ token the driver
// owns (spec.md §6).
func drainTokens(symbols *symbol.Table, stream TokenStream) ([]inputToken, error) {
	var tokens []inputToken
	for {
		typeName, lexeme, ok := stream.Next()
		if !ok {
			break
		}
		sym, found := symbols.LookupTerminal(typeName)
		if !found {
			return nil, fmt.Errorf("driver: token stream produced unrecognized terminal type %q", typeName)
		}
		tokens = append(tokens, inputToken{Type: sym, Lexeme: lexeme})
	}
	tokens = append(tokens, inputToken{Type: symbol.EOF, Lexeme: ""})
	return tokens, nil
}
