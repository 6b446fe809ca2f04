package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"nilox/chunk"
	"nilox/compiler"
	"nilox/disasm"
	"nilox/value"
	"nilox/vm"
)

// runCmd compiles and runs a source file once, the way `lox script.lox`
// does in the book this VM follows.
type runCmd struct {
	dump bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Compile and run a nilox source file" }
func (*runCmd) Usage() string {
	return "run <path>: compile and execute the given file.\n"
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.dump, "dump", false, "write the compiled bytecode as hex to <path> with its extension replaced by .nic")
}

func (r *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "run: expected exactly one file argument")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		return subcommands.ExitFailure
	}

	heap := value.NewHeap()
	ch := chunk.New()
	errs := compiler.New(heap).Compile(string(data), ch)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return subcommands.ExitStatus(65)
	}

	if r.dump {
		if err := writeHexDump(args[0], ch); err != nil {
			fmt.Fprintf(os.Stderr, "run: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	m := vm.New(heap)
	switch m.Run(ch) {
	case vm.InterpretOK:
		return subcommands.ExitSuccess
	default:
		return subcommands.ExitStatus(70)
	}
}

// writeHexDump writes ch's bytecode as hex to sourcePath with its
// extension replaced by ".nic", matching the teacher's DumpBytecode
// naming convention.
func writeHexDump(sourcePath string, ch *chunk.Chunk) error {
	out, err := os.Create(nicPath(sourcePath))
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.WriteString(disasm.HexDump(ch))
	return err
}

func nicPath(sourcePath string) string {
	for i := len(sourcePath) - 1; i >= 0 && sourcePath[i] != '/'; i-- {
		if sourcePath[i] == '.' {
			return sourcePath[:i] + ".nic"
		}
	}
	return sourcePath + ".nic"
}
