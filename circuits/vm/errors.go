package vm

import (
	"errors"
	"fmt"

	"github.com/eon-protocol/eonvm/program"
)

// shape errors
var (
	ErrTypeMismatch               = errors.New("type mismatch")
	ErrWrongInputCount            = errors.New("wrong number of inputs")
	ErrWrongOperandCount          = errors.New("wrong operand count")
	ErrUnsupportedInputKind       = errors.New("unsupported input kind")
	ErrUnsupportedOutputKind      = errors.New("unsupported output kind")
	ErrRecordMustBePrivate        = errors.New("record inputs must be private")
	ErrRecordsCannotBePublic      = errors.New("records cannot be public")
	ErrUnsupportedInstruction     = errors.New("unsupported instruction")
	ErrUnsupportedOperandKind     = errors.New("unsupported operand kind")
	ErrUnsupportedOperandTypes    = errors.New("unsupported operand types")
	ErrUnsupportedRecordMember    = errors.New("unsupported record member")
	ErrMismatchedTernaryOperands  = errors.New("mismatched ternary operands")
	ErrUnsupportedTernaryOperands = errors.New("unsupported ternary operands")
	ErrMissingDestination         = errors.New("missing destination")
)

// register graph errors
var (
	ErrRegisterNotFound    = errors.New("register not found")
	ErrRegisterNotAssigned = errors.New("register not assigned")
	ErrRegisterReassigned  = errors.New("register already assigned")
)

// arithmetic errors
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("overflow")
)

// ErrUnsatisfiedConstraint reports inputs that do not satisfy the circuit
// for a reason the interpreter could not name more precisely.
var ErrUnsatisfiedConstraint = errors.New("unsatisfied constraint")

type InstructionError struct {
	Index  int
	Opcode program.Opcode
	Err    error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction %d (%s): %v", e.Index, e.Opcode, e.Err)
}

func (e *InstructionError) Unwrap() error { return e.Err }

type InputError struct {
	Index    int
	Register string
	Err      error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %d (%s): %v", e.Index, e.Register, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

type OutputError struct {
	Index    int
	Register string
	Err      error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output %d (%s): %v", e.Index, e.Register, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
