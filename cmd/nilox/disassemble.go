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
)

// disassembleCmd compiles a file and prints its bytecode without running
// it, the debug sink spec.md's disassembler is built for.
type disassembleCmd struct {
	dump bool
}

func (*disassembleCmd) Name() string     { return "disassemble" }
func (*disassembleCmd) Synopsis() string { return "Compile a file and print its bytecode" }
func (*disassembleCmd) Usage() string {
	return "disassemble <path>: compile the given file and print its disassembly.\n"
}
func (d *disassembleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&d.dump, "dump", false, "write the compiled bytecode as hex to <path> with its extension replaced by .nic")
}

func (d *disassembleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "disassemble: expected exactly one file argument")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "disassemble: %v\n", err)
		return subcommands.ExitFailure
	}

	ch := chunk.New()
	errs := compiler.New(value.NewHeap()).Compile(string(data), ch)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return subcommands.ExitStatus(65)
	}

	if d.dump {
		if err := writeHexDump(args[0], ch); err != nil {
			fmt.Fprintf(os.Stderr, "disassemble: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	disasm.Chunk(os.Stdout, ch, args[0])
	return subcommands.ExitSuccess
}
