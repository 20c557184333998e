package core

import "fmt"

// InvariantError is the panic value raised when a precondition of the
// geometry or color algebra is violated. It signals a bug in the caller,
// not a condition to recover from.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Message
}

func invariant(ok bool, format string, args ...interface{}) {
	if !ok {
		panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
	}
}

// Invariant panics with an *InvariantError when ok is false
func Invariant(ok bool, format string, args ...interface{}) {
	invariant(ok, format, args...)
}
