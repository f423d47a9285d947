package vm

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/eon-protocol/eonvm/plaintext"
	"github.com/eon-protocol/eonvm/program"
)

var FIELD = ecc.BLS12_381.ScalarField()

// Circuit is the gnark circuit of one function. Its public statement is the
// lanes of the public inputs, in declaration order; everything else is
// secret.
type Circuit struct {
	Public  []frontend.Variable `gnark:",public"`
	Private []frontend.Variable `gnark:",secret"`

	Function *program.Function `gnark:"-"`
	Trace    *Trace            `gnark:"-"`
}

// NewCircuit returns an unassigned circuit shaped for fn. It fails on any
// input kind or opcode the interpreter does not support.
func NewCircuit(fn *program.Function) (*Circuit, error) {
	if err := fn.Validate(); err != nil {
		return nil, err
	}
	_, nbPublic, nbPrivate, err := Layout(fn)
	if err != nil {
		return nil, err
	}
	for i, ins := range fn.Instructions {
		if !Supported(ins.Opcode) {
			return nil, &InstructionError{Index: i, Opcode: ins.Opcode, Err: fmt.Errorf("%w: %s", ErrUnsupportedInstruction, ins.Opcode)}
		}
	}
	return &Circuit{
		Public:   make([]frontend.Variable, nbPublic),
		Private:  make([]frontend.Variable, nbPrivate),
		Function: fn,
	}, nil
}

func (c *Circuit) Define(api frontend.API) error {
	b := NewBuilder(api)
	bank, err := Bind(b, c.Function, c.Public, c.Private)
	if err == nil {
		err = Interpret(b, bank, c.Function)
	}
	var outs []Output
	if err == nil {
		outs, err = Extract(bank, c.Function)
	}
	if c.Trace != nil {
		c.Trace.capture(b, bank, outs, err)
	}
	return err
}

// Assign type checks inputs against fn and returns a circuit carrying their
// lanes.
func Assign(fn *program.Function, inputs []plaintext.Value) (*Circuit, error) {
	c, err := NewCircuit(fn)
	if err != nil {
		return nil, err
	}
	if len(inputs) != len(fn.Inputs) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWrongInputCount, len(inputs), len(fn.Inputs))
	}
	slots, _, _, _ := Layout(fn)
	for i, decl := range fn.Inputs {
		lanes, err := inputLanes(decl, slots[i], inputs[i])
		if err != nil {
			return nil, &InputError{Index: i, Register: decl.Register, Err: err}
		}
		dst := c.Private
		if slots[i].Vis == Input {
			dst = c.Public
		}
		for j := range lanes {
			dst[slots[i].Offset+j] = lanes[j].BigInt(new(big.Int))
		}
	}
	return c, nil
}

func inputLanes(decl program.Input, slot Slot, in plaintext.Value) ([]fr.Element, error) {
	switch v := in.(type) {
	case plaintext.Literal:
		if decl.Type.IsRecord() || v.LiteralType() != decl.Type.Literal {
			return nil, fmt.Errorf("%w: declared %s, got %s", ErrTypeMismatch, decl.Type, v.Type())
		}
		return v.Lanes(), nil
	case *plaintext.Record:
		if !decl.Type.IsRecord() {
			return nil, fmt.Errorf("%w: declared %s, got a record", ErrTypeMismatch, decl.Type)
		}
		if err := v.Check(slot.Layout); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		return v.Lanes(), nil
	}
	return nil, fmt.Errorf("%w: unsupported value %T", ErrTypeMismatch, in)
}
