// Package vm implements the bytecode interpreter: a dispatch loop over a
// fixed-size value stack that executes a compiled chunk one instruction
// at a time.
package vm

import (
	"fmt"
	"io"
	"os"

	"nilox/chunk"
	"nilox/compiler"
	"nilox/value"
)

// Result mirrors clox's interpret_result: the three terminal outcomes a
// caller (the REPL, `run`, a test) needs to distinguish to pick an exit
// code.
type Result int

const (
	InterpretOK Result = iota
	InterpretCompileError
	InterpretRuntimeError
)

// VM is the runtime environment bytecode executes in. One VM instance
// keeps the global-variable table and the object heap alive across
// repeated Interpret calls, the way a REPL session needs to.
type VM struct {
	chunk *chunk.Chunk
	ip    int
	stack Stack

	heap    *value.Heap
	globals map[string]value.Value

	Stdout io.Writer
	Stderr io.Writer
}

func New(heap *value.Heap) *VM {
	return &VM{
		heap:    heap,
		globals: make(map[string]value.Value),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Interpret compiles and runs one unit of source. Compile errors are
// written to Stderr and reported as InterpretCompileError without ever
// reaching Run; a chunk that fails to compile is never executed.
func (vm *VM) Interpret(source string) Result {
	ch := chunk.New()
	errs := compiler.New(vm.heap).Compile(source, ch)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(vm.Stderr, e)
		}
		return InterpretCompileError
	}
	return vm.Run(ch)
}

// Run executes an already-compiled chunk. Exposed separately from
// Interpret so the run CLI path (which can write a hex dump between
// compiling and running) and tests can compile and run as separate steps.
func (vm *VM) Run(ch *chunk.Chunk) (result Result) {
	vm.chunk = ch
	vm.ip = 0
	vm.stack.Reset()

	defer func() {
		if r := recover(); r != nil {
			msg, ok := r.(string)
			if !ok {
				panic(r)
			}
			vm.reportRuntimeError(msg)
			result = InterpretRuntimeError
		}
	}()

	for {
		instr := chunk.OpCode(vm.readByte())

		switch instr {
		case chunk.OpReturn:
			v := vm.stack.Pop()
			fmt.Fprintln(vm.Stdout, value.Print(v))
			return InterpretOK

		case chunk.OpHalt:
			return InterpretOK

		case chunk.OpLoadConst:
			vm.stack.Push(vm.chunk.Constants[vm.readByte()])

		case chunk.OpLoadConstLong:
			vm.stack.Push(vm.chunk.Constants[vm.readLong24()])

		case chunk.OpNil:
			vm.stack.Push(value.Nil())

		case chunk.OpTrue:
			vm.stack.Push(value.Bool(true))

		case chunk.OpFalse:
			vm.stack.Push(value.Bool(false))

		case chunk.OpNot:
			vm.stack.Push(value.Bool(vm.stack.Pop().IsFalsey()))

		case chunk.OpNegate:
			if !vm.stack.Peek(0).IsNumber() {
				vm.reportRuntimeError("Operand to operator- must be a number.")
				return InterpretRuntimeError
			}
			vm.stack.Push(value.Number(-vm.stack.Pop().AsNumber()))

		case chunk.OpEqual:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			vm.stack.Push(value.Bool(value.AreEqual(a, b)))

		case chunk.OpGreater, chunk.OpLess:
			if !vm.stack.Peek(0).IsNumber() || !vm.stack.Peek(1).IsNumber() {
				vm.reportRuntimeError("Operands for operator must be numbers.")
				return InterpretRuntimeError
			}
			b, a := vm.stack.Pop().AsNumber(), vm.stack.Pop().AsNumber()
			if instr == chunk.OpGreater {
				vm.stack.Push(value.Bool(a > b))
			} else {
				vm.stack.Push(value.Bool(a < b))
			}

		case chunk.OpAdd:
			if vm.stack.Peek(0).IsString() && vm.stack.Peek(1).IsString() {
				b, a := vm.stack.Pop().AsString(), vm.stack.Pop().AsString()
				vm.stack.Push(value.Obj(vm.heap.NewStringAdopt(a + b)))
				break
			}
			if !vm.stack.Peek(0).IsNumber() || !vm.stack.Peek(1).IsNumber() {
				vm.reportRuntimeError("Operands for operator must be numbers.")
				return InterpretRuntimeError
			}
			b, a := vm.stack.Pop().AsNumber(), vm.stack.Pop().AsNumber()
			vm.stack.Push(value.Number(a + b))

		case chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide:
			if !vm.stack.Peek(0).IsNumber() || !vm.stack.Peek(1).IsNumber() {
				vm.reportRuntimeError("Operands for operator must be numbers.")
				return InterpretRuntimeError
			}
			b, a := vm.stack.Pop().AsNumber(), vm.stack.Pop().AsNumber()
			switch instr {
			case chunk.OpSubtract:
				vm.stack.Push(value.Number(a - b))
			case chunk.OpMultiply:
				vm.stack.Push(value.Number(a * b))
			case chunk.OpDivide:
				vm.stack.Push(value.Number(a / b))
			}

		case chunk.OpPop:
			vm.stack.Pop()

		case chunk.OpPrint:
			fmt.Fprintln(vm.Stdout, value.Print(vm.stack.Pop()))

		case chunk.OpDefineGlobal, chunk.OpDefineGlobalLong:
			name := vm.chunk.Constants[vm.readGlobalIndex(instr)].AsString()
			vm.globals[name] = vm.stack.Pop()

		case chunk.OpGetGlobal, chunk.OpGetGlobalLong:
			name := vm.chunk.Constants[vm.readGlobalIndex(instr)].AsString()
			v, ok := vm.globals[name]
			if !ok {
				vm.reportRuntimeError(fmt.Sprintf("Undefined variable '%s'.", name))
				return InterpretRuntimeError
			}
			vm.stack.Push(v)

		case chunk.OpSetGlobal, chunk.OpSetGlobalLong:
			name := vm.chunk.Constants[vm.readGlobalIndex(instr)].AsString()
			if _, ok := vm.globals[name]; !ok {
				vm.reportRuntimeError(fmt.Sprintf("Undefined variable '%s'.", name))
				return InterpretRuntimeError
			}
			// Assignment is an expression: the value stays on the stack.
			vm.globals[name] = vm.stack.Peek(0)

		default:
			vm.reportRuntimeError(fmt.Sprintf("Unknown opcode %v.", instr))
			return InterpretRuntimeError
		}
	}
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readLong24() int {
	idx := vm.chunk.ReadLong24(vm.ip)
	vm.ip += 3
	return idx
}

// readGlobalIndex decodes the 1-byte or 3-byte constant-pool index that
// follows a global-variable opcode, matching whichever form the compiler
// chose when it emitted it.
func (vm *VM) readGlobalIndex(op chunk.OpCode) int {
	switch op {
	case chunk.OpDefineGlobalLong, chunk.OpGetGlobalLong, chunk.OpSetGlobalLong:
		return vm.readLong24()
	default:
		return int(vm.readByte())
	}
}

func (vm *VM) reportRuntimeError(message string) {
	line := vm.chunk.LineForOffset(vm.ip - 1)
	fmt.Fprintln(vm.Stderr, RuntimeError{Line: line, Message: message}.Error())
}
