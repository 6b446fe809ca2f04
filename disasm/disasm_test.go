package disasm

import (
	"fmt"
	"strings"
	"testing"

	"nilox/chunk"
	"nilox/value"
)

func TestChunkPrintsHeaderAndInstructions(t *testing.T) {
	c := chunk.New()
	c.WriteConstant(value.Number(5), 1)
	c.WriteByte(byte(chunk.OpReturn), 1)

	var buf strings.Builder
	Chunk(&buf, c, "test chunk")
	out := buf.String()

	if !strings.HasPrefix(out, "=== test chunk ===\n") {
		t.Errorf("missing header, got %q", out)
	}
	if !strings.Contains(out, "OP_LOAD_CONST") {
		t.Errorf("missing OP_LOAD_CONST, got %q", out)
	}
	if !strings.Contains(out, "OP_RETURN") {
		t.Errorf("missing OP_RETURN, got %q", out)
	}
	if !strings.Contains(out, "'5'") {
		t.Errorf("missing resolved constant value, got %q", out)
	}
}

func TestRepeatedLineCollapsesToBar(t *testing.T) {
	c := chunk.New()
	c.WriteByte(byte(chunk.OpNil), 3)
	c.WriteByte(byte(chunk.OpNot), 3)

	var buf strings.Builder
	Chunk(&buf, c, "lines")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	if !strings.Contains(lines[1], "   3 ") {
		t.Errorf("first instruction should show line 3, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "   | ") {
		t.Errorf("second instruction on same line should show '|', got %q", lines[2])
	}
}

func TestLongFormConstantInstruction(t *testing.T) {
	c := chunk.New()
	for i := 0; i < 300; i++ {
		c.AddConstant(value.Number(float64(i)))
	}
	c.WriteConstant(value.Number(999), 1)

	var buf strings.Builder
	Chunk(&buf, c, "long")
	if !strings.Contains(buf.String(), "OP_LOAD_CONST_LONG") {
		t.Errorf("expected long-form opcode, got %q", buf.String())
	}
}

func TestHexDumpEncodesRawInstructionStream(t *testing.T) {
	c := chunk.New()
	c.WriteByte(byte(chunk.OpReturn), 1)

	got := HexDump(c)
	want := fmt.Sprintf("%x", []byte{byte(chunk.OpReturn)})
	if got != want {
		t.Errorf("HexDump = %q, want %q", got, want)
	}
}

func TestUnknownOpcodeReportsOffsetAdvance(t *testing.T) {
	c := chunk.New()
	c.WriteByte(0xFE, 1)
	c.WriteByte(byte(chunk.OpReturn), 1)

	var buf strings.Builder
	offset := Instruction(&buf, c, 0)
	if offset != 1 {
		t.Errorf("offset = %d, want 1", offset)
	}
	if !strings.Contains(buf.String(), "Unknown opcode") {
		t.Errorf("expected unknown opcode message, got %q", buf.String())
	}
}
