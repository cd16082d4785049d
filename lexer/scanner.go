package lexer

// Token is one lexeme the scanner emits: its type, the exact substring
// matched, and its rune offsets in the input (spec.md §6: "Ordered
// sequence of (type-name, lexeme)").
type Token struct {
	Type   TokenType
	Lexeme string
	Start  int
	End    int
}

const (
	// TypeUnknown marks a single unmatched character (spec.md §4.G).
	TypeUnknown TokenType = "UNKNOWN"
	// TypeEOF marks the end of input.
	TypeEOF TokenType = "EOF"
)

// Scanner drives a minimized token DFA as a longest-match generator, per
// spec.md §4.G.
type Scanner struct {
	dfa   *DFA
	input []rune
}

func NewScanner(dfa *DFA, input string) *Scanner {
	return &Scanner{dfa: dfa, input: []rune(input)}
}

// Tokenize runs the scanner to completion, dropping every token whose
// type skip maps to true. skip is the only suppression source: Rule.Skip
// is not consulted, and a nil skip keeps every token, whitespace included.
func (s *Scanner) Tokenize(skip map[TokenType]bool) []Token {
	var out []Token
	pos := 0
	for pos < len(s.input) {
		tok, next := s.scanOne(pos)
		pos = next
		if skip[tok.Type] {
			continue
		}
		out = append(out, tok)
	}
	out = append(out, Token{Type: TypeEOF, Start: pos, End: pos})
	return out
}

// scanOne implements one iteration of spec.md §4.G's longest-match loop
// starting at position start: walk the DFA character by character,
// remembering the last accepting state reached, and on a dead transition
// (or end of input) emit the longest accepted lexeme, or a single-
// character UNKNOWN token if no accepting state was ever reached.
func (s *Scanner) scanOne(start int) (Token, int) {
	q := s.dfa.Start
	p := start
	lastAcceptPos := -1
	var lastAcceptLabel *TokenLabel

	if st := s.dfa.State(q); st.IsFinal {
		lastAcceptPos = p
		lastAcceptLabel = st.Label
	}

	for p < len(s.input) {
		c := s.input[p]
		next, ok := s.dfa.State(q).Transitions[c]
		if !ok {
			break
		}
		q = next
		p++
		if st := s.dfa.State(q); st.IsFinal {
			lastAcceptPos = p
			lastAcceptLabel = st.Label
		}
	}

	if lastAcceptPos == -1 {
		return Token{
			Type:   TypeUnknown,
			Lexeme: string(s.input[start : start+1]),
			Start:  start,
			End:    start + 1,
		}, start + 1
	}

	tokType := TypeUnknown
	if lastAcceptLabel != nil {
		tokType = lastAcceptLabel.Type
	}
	return Token{
		Type:   tokType,
		Lexeme: string(s.input[start:lastAcceptPos]),
		Start:  start,
		End:    lastAcceptPos,
	}, lastAcceptPos
}
