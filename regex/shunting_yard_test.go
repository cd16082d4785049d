package regex

import "testing"

func TestToPostfixExplicitConcatenation(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"ab", "ab·"},
		{"a|b", "ab|"},
		{"a*", "a*"},
		{"a(b|c)*", "abc|*·"},
		{"(a|b)c", "ab|c·"},
	}
	for _, tt := range tests {
		got, err := ToPostfix(tt.pattern)
		if err != nil {
			t.Errorf("ToPostfix(%q): unexpected error: %v", tt.pattern, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ToPostfix(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestToPostfixUnmatchedParens(t *testing.T) {
	for _, pattern := range []string{"(a", "a)", "((a)"} {
		if _, err := ToPostfix(pattern); err == nil {
			t.Errorf("ToPostfix(%q): expected an error for unmatched parentheses", pattern)
		}
	}
}

func TestToPostfixEmptyPatternIsMalformed(t *testing.T) {
	if _, err := ToPostfix(""); err == nil {
		t.Fatalf("expected an error for an empty pattern")
	}
}

func TestToPostfixRejectsReservedConcatOperator(t *testing.T) {
	if _, err := ToPostfix(string(concatOp)); err == nil {
		t.Fatalf("expected an error when the reserved concatenation operator appears in input")
	}
}
