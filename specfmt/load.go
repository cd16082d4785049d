// Package specfmt loads a grammar and its lexical rules from a minimal
// line-oriented text format. It is intentionally thin: no precedence
// declarations, no lexer modes, no fragments — spec.md scopes the hard
// engineering to automaton construction, not grammar-authoring
// ergonomics, so this is the "external collaborator" grammar loader
// spec.md's overview assumes exists outside the toolkit's core.
package specfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	verr "github.com/nihei9/compilekit/error"
	"github.com/nihei9/compilekit/grammar"
	"github.com/nihei9/compilekit/grammar/symbol"
	"github.com/nihei9/compilekit/lexer"
)

// statementError builds the *verr.SpecError a malformed specfmt statement
// raises, quoting the row it was found on.
func statementError(row int, format string, args ...interface{}) error {
	return verr.New(fmt.Errorf(format, args...), "specfmt", row)
}

// Load reads r as a sequence of `;`-terminated statements of two shapes:
//
//	name = "pattern" [priority] [skip] ;
//	name : sym sym ... ;
//
// A `=` statement declares a lexical rule; `skip` marks its matches as
// suppressed from the driver's token stream (SPEC_FULL.md's Skip
// supplement). A `:` statement declares a production; the first one
// establishes the grammar's start symbol. An RHS name that was declared
// by an earlier `=` statement, or the literal `$`, is a terminal; every
// other bare name is a non-terminal. `ε` denotes an empty right-hand
// side.
func Load(r io.Reader) (*grammar.Grammar, []*lexer.Rule, error) {
	b := grammar.NewBuilder()
	var rules []*lexer.Rule
	terminalNames := map[string]bool{}
	started := false

	sc := bufio.NewScanner(r)
	row := 0
	for sc.Scan() {
		row++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasSuffix(line, ";") {
			return nil, nil, statementError(row, "statement must end with ';'")
		}
		body := strings.TrimSpace(strings.TrimSuffix(line, ";"))

		if strings.Contains(body, `"`) {
			rule, name, err := parseLexicalStatement(body, row)
			if err != nil {
				return nil, nil, err
			}
			terminalNames[name] = true
			b.Terminal(name)
			rules = append(rules, rule)
			continue
		}

		colon := strings.Index(body, ":")
		if colon < 0 {
			return nil, nil, statementError(row, "expected a '=' lexical-rule statement or a ':' production statement")
		}
		lhsName := strings.TrimSpace(body[:colon])
		if lhsName == "" {
			return nil, nil, statementError(row, "production is missing a left-hand side")
		}
		lhs := b.NonTerminal(lhsName)
		if !started {
			b.SetStart(lhsName)
			started = true
		}

		var rhs []symbol.Symbol
		for _, f := range strings.Fields(body[colon+1:]) {
			if f == "ε" {
				continue
			}
			if terminalNames[f] || f == "$" {
				rhs = append(rhs, b.Terminal(f))
			} else {
				rhs = append(rhs, b.NonTerminal(f))
			}
		}
		if _, err := b.AddProduction(lhs, rhs...); err != nil {
			return nil, nil, statementError(row, "%s", err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	g, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return g, rules, nil
}

func parseLexicalStatement(body string, row int) (*lexer.Rule, string, error) {
	eq := strings.Index(body, "=")
	if eq < 0 {
		return nil, "", statementError(row, `expected 'name = "pattern" ...'`)
	}
	name := strings.TrimSpace(body[:eq])
	if name == "" {
		return nil, "", statementError(row, "lexical rule is missing a name")
	}
	rest := strings.TrimSpace(body[eq+1:])
	if !strings.HasPrefix(rest, `"`) {
		return nil, "", statementError(row, "lexical rule pattern must be double-quoted")
	}
	closeIdx := strings.Index(rest[1:], `"`)
	if closeIdx < 0 {
		return nil, "", statementError(row, "unterminated quoted pattern")
	}
	pattern := rest[1 : closeIdx+1]

	priority := 0
	skip := false
	for _, f := range strings.Fields(rest[closeIdx+2:]) {
		if f == "skip" {
			skip = true
			continue
		}
		p, err := strconv.Atoi(f)
		if err != nil {
			return nil, "", statementError(row, "invalid lexical rule modifier %q", f)
		}
		priority = p
	}

	expanded, err := lexer.ExpandCharClasses(pattern)
	if err != nil {
		return nil, "", statementError(row, "%s", err)
	}
	rule, err := lexer.NewRule(lexer.TokenType(name), expanded, priority)
	if err != nil {
		return nil, "", statementError(row, "%s", err)
	}
	rule.Skip = skip
	return rule, name, nil
}
