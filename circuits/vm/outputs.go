package vm

import (
	"fmt"

	"github.com/eon-protocol/eonvm/program"
)

type OutputKind uint8

const (
	OutputPublic OutputKind = iota + 1
	OutputPrivate
	OutputRecord
)

func (k OutputKind) String() string {
	switch k {
	case OutputPublic:
		return "public"
	case OutputPrivate:
		return "private"
	case OutputRecord:
		return "record"
	}
	return fmt.Sprintf("OutputKind(%d)", uint8(k))
}

type Output struct {
	Register string
	Kind     OutputKind
	Value    *Value
}

// Extract reads the declared outputs of fn from bank, in declaration order.
func Extract(bank *Bank, fn *program.Function) ([]Output, error) {
	outs := make([]Output, len(fn.Outputs))
	for i, decl := range fn.Outputs {
		v, err := bank.Get(Register{Name: decl.Register})
		if err == nil {
			outs[i], err = extract(decl, v)
		}
		if err != nil {
			return nil, &OutputError{Index: i, Register: decl.Register, Err: err}
		}
	}
	return outs, nil
}

func extract(decl program.Output, v *Value) (Output, error) {
	out := Output{Register: decl.Register, Value: v}
	if decl.Type != v.Type {
		return out, fmt.Errorf("%w: declared %s, register holds %s", ErrTypeMismatch, decl.Type, v.Type)
	}
	if v.IsRecord() {
		switch decl.Visibility {
		case program.Public:
			return out, ErrRecordsCannotBePublic
		case program.Private, program.Record:
			out.Kind = OutputRecord
			return out, nil
		}
		return out, fmt.Errorf("%w: %s", ErrUnsupportedOutputKind, decl.Visibility)
	}
	if decl.Visibility != program.Public && decl.Visibility != program.Private {
		return out, fmt.Errorf("%w: %s", ErrUnsupportedOutputKind, decl.Visibility)
	}
	// the descriptor follows the value: anything derived only from public
	// inputs is public regardless of the declared label
	if v.Vis == Input {
		out.Kind = OutputPublic
	} else {
		out.Kind = OutputPrivate
	}
	return out, nil
}
