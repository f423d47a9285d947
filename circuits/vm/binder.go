package vm

import (
	"fmt"

	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/eon-protocol/eonvm/program"
)

// Slot says where the lanes of one declared input live in the circuit.
type Slot struct {
	Vis    Visibility
	Offset int
	Lanes  int
	Layout *program.RecordType
}

// Layout maps every declared input of fn to its circuit slot and returns the
// number of public and private lanes. It rejects input kinds the circuit
// cannot carry.
func Layout(fn *program.Function) (slots []Slot, nbPublic, nbPrivate int, err error) {
	slots = make([]Slot, len(fn.Inputs))
	for i, in := range fn.Inputs {
		s := Slot{}
		switch in.Visibility {
		case program.Public:
			s.Vis = Input
		case program.Private, program.Record:
			s.Vis = Witness
		default:
			return nil, 0, 0, &InputError{Index: i, Register: in.Register, Err: fmt.Errorf("%w: %s", ErrUnsupportedInputKind, in.Visibility)}
		}
		if in.Type.IsRecord() {
			if s.Vis == Input {
				return nil, 0, 0, &InputError{Index: i, Register: in.Register, Err: ErrRecordMustBePrivate}
			}
			if s.Layout, err = fn.RecordType(in.Type.Record); err != nil {
				return nil, 0, 0, &InputError{Index: i, Register: in.Register, Err: err}
			}
			s.Lanes = s.Layout.Lanes()
		} else {
			if in.Visibility == program.Record {
				return nil, 0, 0, &InputError{Index: i, Register: in.Register, Err: fmt.Errorf("%w: %s declared as record", ErrTypeMismatch, in.Type)}
			}
			s.Lanes = in.Type.Literal.Lanes()
		}
		if s.Vis == Input {
			s.Offset = nbPublic
			nbPublic += s.Lanes
		} else {
			s.Offset = nbPrivate
			nbPrivate += s.Lanes
		}
		slots[i] = s
	}
	return slots, nbPublic, nbPrivate, nil
}

// Bind allocates every declared input into a fresh bank and constrains each
// value to its declared type.
func Bind(b *Builder, fn *program.Function, public, private []frontend.Variable) (*Bank, error) {
	slots, nbPublic, nbPrivate, err := Layout(fn)
	if err != nil {
		return nil, err
	}
	if len(public) != nbPublic || len(private) != nbPrivate {
		return nil, fmt.Errorf("%w: circuit has %d public and %d private lanes, function needs %d and %d", ErrWrongInputCount, len(public), len(private), nbPublic, nbPrivate)
	}
	bank := NewBank(fn)
	for i, in := range fn.Inputs {
		s := slots[i]
		src := private
		if s.Vis == Input {
			src = public
		}
		vars := src[s.Offset : s.Offset+s.Lanes]
		var v *Value
		if s.Layout != nil {
			v = &Value{Type: in.Type, Vis: Witness, Vars: vars, Layout: s.Layout}
			err = b.constrainRecord(s.Layout, vars)
		} else {
			v = literal(in.Type.Literal, s.Vis, vars...)
			err = b.constrainLiteral(in.Type.Literal, vars)
		}
		if err != nil {
			return nil, &InputError{Index: i, Register: in.Register, Err: err}
		}
		if err := bank.Set(Register{Name: in.Register}, v); err != nil {
			return nil, &InputError{Index: i, Register: in.Register, Err: err}
		}
	}
	return bank, nil
}

func (b *Builder) constrainLiteral(t program.LiteralType, vars []frontend.Variable) error {
	if t == program.Address {
		curve, err := twistededwards.NewEdCurve(b.api, tedwards.BLS12_381)
		if err != nil {
			return err
		}
		curve.AssertIsOnCurve(twistededwards.Point{X: vars[0], Y: vars[1]})
		return nil
	}
	b.rangeCheck(t, vars[0])
	return nil
}

func (b *Builder) constrainRecord(layout *program.RecordType, vars []frontend.Variable) error {
	if err := b.constrainLiteral(program.Address, vars[0:2]); err != nil {
		return err
	}
	b.rangeCheck(program.U64, vars[2])
	off := 3
	for _, e := range layout.Entries {
		n := e.Type.Lanes()
		if err := b.constrainLiteral(e.Type, vars[off:off+n]); err != nil {
			return err
		}
		off += n
	}
	return nil
}
