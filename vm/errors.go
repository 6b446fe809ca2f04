package vm

import "fmt"

// RuntimeError is raised once execution is underway: a type mismatch, an
// undefined global, a stack bug. Line is the source line of the
// instruction that faulted.
type RuntimeError struct {
	Line    int
	Message string
}

// Error renders the message followed by the "[line #L] in script" trailer
// every runtime error is required to end with.
func (e RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}
