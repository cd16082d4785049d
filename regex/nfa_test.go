package regex

import "testing"

func compile(t *testing.T, pattern string) *NFA {
	t.Helper()
	postfix, err := ToPostfix(pattern)
	if err != nil {
		t.Fatalf("ToPostfix(%q): unexpected error: %v", pattern, err)
	}
	n, err := Thompson(postfix)
	if err != nil {
		t.Fatalf("Thompson(%q): unexpected error: %v", postfix, err)
	}
	return n
}

func TestThompsonAcceptsScenario1(t *testing.T) {
	n := compile(t, "a(b|c)*")

	accept := []string{"a", "abbbc", "ac", "abcbc"}
	for _, s := range accept {
		if !n.Accepts(s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}

	reject := []string{"", "b", "ca"}
	for _, s := range reject {
		if n.Accepts(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestThompsonEmptyPostfixIsMalformed(t *testing.T) {
	_, err := Thompson("")
	if err == nil {
		t.Fatalf("expected an error for an empty postfix expression")
	}
}

func TestThompsonInsufficientOperandsIsMalformed(t *testing.T) {
	// "|" with nothing on the stack.
	_, err := Thompson("|")
	if err == nil {
		t.Fatalf("expected an error for an operator with insufficient operands")
	}
}

func TestThompsonDanglingFragmentsIsMalformed(t *testing.T) {
	// Two literals with no combinator between them leaves two fragments
	// on the stack.
	_, err := Thompson("ab")
	if err == nil {
		t.Fatalf("expected an error when more than one NFA remains on the stack")
	}
}

func TestEpsilonClosureOfStarReachesFinal(t *testing.T) {
	n := compile(t, "a*")
	closure := n.EpsilonClosure([]StateID{n.Start})
	if len(closure) == 0 {
		t.Fatalf("expected a non-empty ε-closure of the start state")
	}
	// The closure of a* from the start must reach the (final) end state
	// without consuming input, since a* accepts the empty string.
	if !hasFinal(n, closure) {
		t.Fatalf("expected a* to be accepting on the empty string")
	}
}
