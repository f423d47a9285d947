// Package vm interprets a program.Function inside a gnark circuit. The same
// Define code path compiles the constraint system for key synthesis and, run
// by gnark's test engine on concrete values, evaluates the function.
//
// Evaluation imports github.com/consensys/gnark/test, so any binary that
// proves also links the testing package and testify.
package vm

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/eon-protocol/eonvm/program"
)

// Visibility of a circuit value. It is fixed when the value is allocated.
type Visibility uint8

const (
	Input   Visibility = iota + 1 // public input of the circuit
	Witness                       // known to the prover only
)

func (v Visibility) String() string {
	switch v {
	case Input:
		return "input"
	case Witness:
		return "witness"
	}
	return fmt.Sprintf("Visibility(%d)", uint8(v))
}

// Join is the visibility of a value derived from operands. A result is an
// input only when every operand is. Any witness operand makes it a witness,
// since an input computed from private lanes would publish them.
func Join(vs ...Visibility) Visibility {
	for _, v := range vs {
		if v == Witness {
			return Witness
		}
	}
	return Input
}

// Value is what a register holds: a literal or a record, as field element
// lanes inside the circuit. Records are always witnesses.
type Value struct {
	Type   program.Type
	Vis    Visibility
	Vars   []frontend.Variable
	Layout *program.RecordType
}

func (v *Value) Literal() program.LiteralType { return v.Type.Literal }

func (v *Value) IsRecord() bool { return v.Type.IsRecord() }

func literal(t program.LiteralType, vis Visibility, vars ...frontend.Variable) *Value {
	return &Value{Type: program.LiteralOf(t), Vis: vis, Vars: vars}
}

// member projects owner or gates out of a record. The projection shares the
// record's variables.
func (v *Value) member(name string) (*Value, error) {
	if !v.IsRecord() {
		return nil, fmt.Errorf("%w: %s is not a record", ErrTypeMismatch, v.Type)
	}
	switch name {
	case "owner":
		return literal(program.Address, Witness, v.Vars[0:2]...), nil
	case "gates":
		return literal(program.U64, Witness, v.Vars[2]), nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUnsupportedRecordMember, v.Type, name)
}
