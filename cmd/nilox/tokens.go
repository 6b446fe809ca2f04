package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"nilox/lexer"
	"nilox/token"
)

// tokensCmd scans a file and prints its token stream, one per line. It
// never invokes the compiler, so a source file with scanner errors still
// prints its whole token stream: each ERROR token in place, and every
// token after it, through EOF.
type tokensCmd struct{}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "Scan a file and print its token stream" }
func (*tokensCmd) Usage() string {
	return "tokens <path>: scan the given file and print each token.\n"
}
func (*tokensCmd) SetFlags(*flag.FlagSet) {}

func (*tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "tokens: expected exactly one file argument")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokens: %v\n", err)
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	for {
		tok := lex.Scan()
		fmt.Println(tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return subcommands.ExitSuccess
}
