package vm

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/test"
	"github.com/eon-protocol/eonvm/plaintext"
	"github.com/eon-protocol/eonvm/program"
)

var errUnknownValue = errors.New("value not known outside evaluation")

type RegisterValue struct {
	Register Register
	Value    plaintext.Value
}

type OutputValue struct {
	Register string
	Kind     OutputKind
	Value    plaintext.Value
}

// Trace is the result of evaluating a function on concrete inputs: every
// assigned register and the outputs, as plaintext values.
type Trace struct {
	Registers []RegisterValue
	Outputs   []OutputValue

	err error
}

func (t *Trace) Register(name string) (plaintext.Value, bool) {
	for _, r := range t.Registers {
		if r.Register == (Register{Name: name}) {
			return r.Value, true
		}
	}
	return nil, false
}

func (t *Trace) capture(b *Builder, bank *Bank, outs []Output, err error) {
	if err != nil {
		t.err = err
		return
	}
	for _, r := range bank.Registers() {
		v, ok := bank.Lookup(r)
		if !ok {
			continue
		}
		pv, err := b.plain(v)
		if err != nil {
			t.err = fmt.Errorf("register %s: %w", r, err)
			return
		}
		t.Registers = append(t.Registers, RegisterValue{Register: r, Value: pv})
	}
	for _, o := range outs {
		pv, err := b.plain(o.Value)
		if err != nil {
			t.err = fmt.Errorf("output %s: %w", o.Register, err)
			return
		}
		t.Outputs = append(t.Outputs, OutputValue{Register: o.Register, Kind: o.Kind, Value: pv})
	}
}

// plain reads a value back out of the circuit. It only works when every lane
// is known, that is under the test engine.
func (b *Builder) plain(v *Value) (plaintext.Value, error) {
	lanes := make([]fr.Element, len(v.Vars))
	for i, x := range v.Vars {
		n, ok := b.native(x)
		if !ok {
			return nil, errUnknownValue
		}
		lanes[i].SetBigInt(n)
	}
	if v.IsRecord() {
		return plaintext.RecordFromLanes(v.Layout, lanes)
	}
	return plaintext.LiteralFromLanes(v.Literal(), lanes)
}

// Evaluate runs fn on inputs without building a constraint system. It
// returns the trace and the assigned circuit, ready to become a witness.
// Interpreter errors come back typed; any other failed constraint is
// reported as ErrUnsatisfiedConstraint.
func Evaluate(fn *program.Function, inputs []plaintext.Value) (*Trace, *Circuit, error) {
	c, err := Assign(fn, inputs)
	if err != nil {
		return nil, nil, err
	}
	trace := &Trace{}
	c.Trace = trace
	err = test.IsSolved(c, c, FIELD, test.SetAllVariablesAsConstants())
	c.Trace = nil
	if trace.err != nil {
		return nil, nil, trace.err
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsatisfiedConstraint, err)
	}
	return trace, c, nil
}
