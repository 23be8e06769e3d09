package helper

import (
	"errors"
)

// RecoverErrorIs turns a panic whose value is an error matching one of targets
// into *errp. Any other panic is re-raised.
// It must be deferred directly:
//
//	defer helper.RecoverErrorIs(&err, ErrA, ErrB)
func RecoverErrorIs(errp *error, targets ...error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok {
		for _, target := range targets {
			if errors.Is(err, target) {
				*errp = err
				return
			}
		}
	}
	panic(r) // re-raise the panic if it's not the expected error
}
