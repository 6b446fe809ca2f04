// Package disasm renders a compiled chunk as human-readable text: one line
// per instruction, offset and source line on the left, operands and their
// resolved constant-pool values on the right.
package disasm

import (
	"fmt"
	"io"

	"nilox/chunk"
	"nilox/value"
)

// HexDump renders c's raw instruction stream as a hex string, the format
// the teacher's Compiler.DumpBytecode writes to a ".nic" file.
func HexDump(c *chunk.Chunk) string {
	return fmt.Sprintf("%x", c.Code)
}

// Chunk writes name as a header followed by every instruction in c, in
// order, to w.
func Chunk(w io.Writer, c *chunk.Chunk, name string) {
	fmt.Fprintf(w, "=== %s ===\n", name)
	offset := 0
	for offset < len(c.Code) {
		offset = Instruction(w, c, offset)
	}
}

// Instruction writes a single disassembled instruction at offset and
// returns the offset of the next one. Offsets that repeat the previous
// instruction's source line print "|" instead of the line number, the way
// a column of redundant line numbers would otherwise read.
func Instruction(w io.Writer, c *chunk.Chunk, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)

	line := c.LineForOffset(offset)
	if offset > 0 && line == c.LineForOffset(offset-1) {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", line)
	}

	op := chunk.OpCode(c.Code[offset])
	switch op {
	case chunk.OpReturn, chunk.OpNil, chunk.OpTrue, chunk.OpFalse, chunk.OpNot,
		chunk.OpEqual, chunk.OpGreater, chunk.OpLess, chunk.OpNegate,
		chunk.OpAdd, chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide,
		chunk.OpPop, chunk.OpPrint, chunk.OpHalt:
		return simpleInstruction(w, op, offset)

	case chunk.OpLoadConst, chunk.OpDefineGlobal, chunk.OpGetGlobal, chunk.OpSetGlobal:
		return constInstruction(w, op, c, offset)

	case chunk.OpLoadConstLong, chunk.OpDefineGlobalLong, chunk.OpGetGlobalLong, chunk.OpSetGlobalLong:
		return constLongInstruction(w, op, c, offset)

	default:
		fmt.Fprintf(w, "Unknown opcode: %d\n", op)
		return offset + 1
	}
}

func simpleInstruction(w io.Writer, op chunk.OpCode, offset int) int {
	fmt.Fprintf(w, "%-22s\n", op.String())
	return offset + 1
}

func constInstruction(w io.Writer, op chunk.OpCode, c *chunk.Chunk, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(w, "%-22s %4s %d '%s'\n", op.String(), "idx:", idx, valueString(c, int(idx)))
	return offset + 2
}

func constLongInstruction(w io.Writer, op chunk.OpCode, c *chunk.Chunk, offset int) int {
	idx := c.ReadLong24(offset + 1)
	fmt.Fprintf(w, "%-22s %4s %d '%s'\n", op.String(), "idx:", idx, valueString(c, idx))
	return offset + 4
}

func valueString(c *chunk.Chunk, idx int) string {
	if idx < 0 || idx >= len(c.Constants) {
		return "?"
	}
	return value.Print(c.Constants[idx])
}
