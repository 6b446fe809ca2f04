package repl

import (
	"bytes"
	"testing"

	"nilox/value"
	"nilox/vm"
)

// TestInterpretPerLineMatchesOneShotExecution pins down the REPL's core
// contract without needing a real terminal: each accepted line is handed
// to Interpret independently, the same call path Run uses per iteration.
func TestInterpretPerLineMatchesOneShotExecution(t *testing.T) {
	var out bytes.Buffer
	m := vm.New(value.NewHeap())
	m.Stdout = &out

	if r := m.Interpret("var x = 2;"); r != vm.InterpretOK {
		t.Fatalf("Interpret(var decl) = %v", r)
	}
	if r := m.Interpret("print x + 1;"); r != vm.InterpretOK {
		t.Fatalf("Interpret(print) = %v", r)
	}
	if out.String() != "3\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "3\n")
	}
}

func TestClEscapePrefixRecognized(t *testing.T) {
	for _, line := range []string{"cl", "clear", "close"} {
		if !hasEscapePrefix(line) {
			t.Errorf("expected %q to match the escape prefix", line)
		}
	}
	if !hasEscapePrefix("class Foo {}") {
		t.Error("expected 'class ...' to also match: the check is a bare two-byte prefix test")
	}
}
