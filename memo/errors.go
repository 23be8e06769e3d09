package memo

import (
	"errors"
	"fmt"
)

// ErrCircularDependency is wrapped by every *CycleError.
var ErrCircularDependency = errors.New("circular dependency")

// ErrInvariantViolation reports a defect in the Memoizer itself, never bad input.
var ErrInvariantViolation = errors.New("memoizer invariant violated")

// CycleError is raised when a key is looked up while its own computation is
// still in progress further up the call stack.
type CycleError struct {
	Key any
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency on key %v", e.Key)
}

func (e *CycleError) Unwrap() error {
	return ErrCircularDependency
}

func invariantViolation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvariantViolation}, args...)...)
}
