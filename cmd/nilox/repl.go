package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"nilox/internal/repl"
)

// replCmd starts an interactive read-eval-print session.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive nilox session" }
func (*replCmd) Usage() string {
	return "repl: read lines from standard input and interpret each one.\n"
}
func (*replCmd) SetFlags(*flag.FlagSet) {}

func (*replCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	if err := repl.Run(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "repl: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
