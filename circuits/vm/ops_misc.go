package vm

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/eon-protocol/eonvm/program"
)

// cast builds a record of the instruction's target layout from owner, gates
// and one operand per entry, in declaration order.
func cast(_ *Builder, ins *program.Instruction, fn *program.Function, args []*Value) (*Value, error) {
	if ins.Type == nil || !ins.Type.IsRecord() {
		return nil, fmt.Errorf("%w: cast target must be a record type", ErrTypeMismatch)
	}
	layout, err := fn.RecordType(ins.Type.Record)
	if err != nil {
		return nil, err
	}
	if err := arity(args, 2+len(layout.Entries)); err != nil {
		return nil, err
	}
	want := make([]program.LiteralType, 0, len(args))
	want = append(want, program.Address, program.U64)
	for _, e := range layout.Entries {
		want = append(want, e.Type)
	}
	vars := make([]frontend.Variable, 0, layout.Lanes())
	for i, a := range args {
		if a.IsRecord() || a.Literal() != want[i] {
			return nil, fmt.Errorf("%w: operand %d is %s, want %s", ErrTypeMismatch, i, a.Type, want[i])
		}
		vars = append(vars, a.Vars...)
	}
	return &Value{Type: *ins.Type, Vis: Witness, Vars: vars, Layout: layout}, nil
}

// hashPsd2 folds the lanes of every operand into one field element with
// Poseidon2.
func hashPsd2(b *Builder, _ *program.Instruction, _ *program.Function, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: hash needs at least one operand", ErrWrongOperandCount)
	}
	var lanes []frontend.Variable
	vis := make([]Visibility, len(args))
	for i, a := range args {
		if a.IsRecord() {
			return nil, unsupported(args)
		}
		lanes = append(lanes, a.Vars...)
		vis[i] = a.Vis
	}
	return literal(program.Field, Join(vis...), b.hasher().Sum(lanes...)), nil
}
