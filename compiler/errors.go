package compiler

import "fmt"

// CompileError reports a single failure detected while scanning or
// parsing a source file: an ERROR token the scanner produced, or a rule
// violation the parser caught (a missing ')', a dangling operator, and so
// on). Line follows the "[line L] ..." convention the parser's error
// reporting uses everywhere else.
type CompileError struct {
	Line    int
	Where   string
	Message string
}

func (e CompileError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at %s: %s", e.Line, e.Where, e.Message)
}
