// Package repl drives an interactive nilox session: read one line at a
// time from the terminal, interpret it immediately against a VM that
// stays alive for the whole session, print whatever it produces.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"

	"nilox/value"
	"nilox/vm"
)

const (
	prompt      = "nilox >> "
	historyFile = "/tmp/.nilox_history"
)

// Run starts an interactive session on stdin/stdout. It returns when the
// user exits: Ctrl-D (EOF) or a line starting with "cl" — the same
// undocumented escape the VM this follows has always accepted. Ctrl-C
// discards the current line and prompts again; it does not end the session.
func Run(stdout, stderr io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	m := vm.New(value.NewHeap())
	m.Stdout = stdout
	m.Stderr = stderr

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if hasEscapePrefix(line) {
			return nil
		}

		m.Interpret(line)
	}
}

// hasEscapePrefix reports whether line starts with "cl" — the check is a
// literal two-byte prefix test, so it also fires on any line starting with
// a class declaration, not just the intended exit command.
func hasEscapePrefix(line string) bool {
	return strings.HasPrefix(line, "cl")
}
