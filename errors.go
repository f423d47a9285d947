package eonvm

import (
	"errors"
	"fmt"
)

var (
	ErrKeySynthesisFailed = errors.New("key synthesis failed")
	ErrInvalidProof       = errors.New("invalid proof")
	ErrRecordNotOwned     = errors.New("record not owned by caller")
)

// ErrUnsatisfied is the panic value when a witness that evaluated cleanly
// does not satisfy the compiled constraint system.
var ErrUnsatisfied = errors.New("constraint system not satisfied")

// batch verification errors
var (
	ErrNoTransitions          = errors.New("no transitions")
	ErrCoinbaseNotAllowed     = errors.New("coinbase function not allowed")
	ErrTooManyInputs          = errors.New("too many inputs")
	ErrTooManyOutputs         = errors.New("too many outputs")
	ErrVerifyingKeyNotFound   = errors.New("verifying key not found")
	ErrMalformedTransition    = errors.New("malformed transition")
	ErrInvalidTransitionProof = errors.New("invalid transition proof")
)

type TransitionError struct {
	Index    int
	Program  string
	Function string
	Err      error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %d (%s/%s): %v", e.Index, e.Program, e.Function, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }
