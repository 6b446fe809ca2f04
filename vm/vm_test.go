package vm

import (
	"bytes"
	"strings"
	"testing"

	"nilox/value"
)

func run(t *testing.T, source string) (stdout, stderr string, result Result) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	m := New(value.NewHeap())
	m.Stdout = &outBuf
	m.Stderr = &errBuf
	result = m.Interpret(source)
	return outBuf.String(), errBuf.String(), result
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		stdout string
		result Result
	}{
		{"addition", "1 + 2", "3\n", InterpretOK},
		{"grouping and precedence", "-(1 + 2) * 3", "-9\n", InterpretOK},
		{"boolean logic", "!(5 - 4 > 3 * 2 == !nil)", "true\n", InterpretOK},
		{"string concatenation", `"foo" + "bar"`, "foobar\n", InterpretOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, result := run(t, tt.source)
			if result != tt.result {
				t.Errorf("result = %v, want %v (stderr: %s)", result, tt.result, stderr)
			}
			if stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}
		})
	}
}

func TestNegateNonNumberIsRuntimeError(t *testing.T) {
	stdout, stderr, result := run(t, "-true")
	if result != InterpretRuntimeError {
		t.Fatalf("result = %v, want InterpretRuntimeError", result)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "Operand to operator- must be a number.") {
		t.Errorf("stderr = %q, missing expected message", stderr)
	}
	if !strings.Contains(stderr, "[line 1] in script") {
		t.Errorf("stderr = %q, missing the [line #L] in script trailer", stderr)
	}
}

func TestDanglingOperatorIsCompileError(t *testing.T) {
	_, stderr, result := run(t, "1 + ")
	if result != InterpretCompileError {
		t.Fatalf("result = %v, want InterpretCompileError", result)
	}
	if !strings.Contains(stderr, "Expected an expression.") {
		t.Errorf("stderr = %q, missing expected message", stderr)
	}
}

func TestGlobalVariableRoundTrip(t *testing.T) {
	stdout, stderr, result := run(t, `var x = 10; x = x + 5; print x;`)
	if result != InterpretOK {
		t.Fatalf("result = %v, want InterpretOK (stderr: %s)", result, stderr)
	}
	if stdout != "15\n" {
		t.Errorf("stdout = %q, want %q", stdout, "15\n")
	}
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, stderr, result := run(t, "print x;")
	if result != InterpretRuntimeError {
		t.Fatalf("result = %v, want InterpretRuntimeError", result)
	}
	if !strings.Contains(stderr, "Undefined variable 'x'.") {
		t.Errorf("stderr = %q, missing expected message", stderr)
	}
}

func TestVMPersistsGlobalsAcrossInterpretCalls(t *testing.T) {
	var out bytes.Buffer
	m := New(value.NewHeap())
	m.Stdout = &out

	if r := m.Interpret("var counter = 1;"); r != InterpretOK {
		t.Fatalf("first Interpret = %v", r)
	}
	if r := m.Interpret("print counter;"); r != InterpretOK {
		t.Fatalf("second Interpret = %v", r)
	}
	if out.String() != "1\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "1\n")
	}
}

func TestStackDiscipline(t *testing.T) {
	m := New(value.NewHeap())
	var out bytes.Buffer
	m.Stdout = &out
	if r := m.Interpret("1 + 2"); r != InterpretOK {
		t.Fatalf("Interpret = %v", r)
	}
	if !m.stack.IsEmpty() {
		t.Error("expected empty stack after OP_RETURN")
	}
}
