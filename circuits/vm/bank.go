package vm

import (
	"fmt"

	"github.com/eon-protocol/eonvm/program"
)

// Register names a bank slot. Member is set for virtual registers that hold
// a record projection such as r0.owner.
type Register struct {
	Name   string
	Member string
}

func (r Register) String() string {
	if r.Member != "" {
		return r.Name + "." + r.Member
	}
	return r.Name
}

// Bank is the register file of one interpretation pass. It keeps insertion
// order and every register is written at most once.
type Bank struct {
	order []Register
	slots map[Register]*Value
}

// NewBank seeds the bank with every register fn refers to: inputs, operand
// registers, destinations and outputs, all unassigned.
func NewBank(fn *program.Function) *Bank {
	b := &Bank{slots: map[Register]*Value{}}
	for _, in := range fn.Inputs {
		b.seed(Register{Name: in.Register})
	}
	for _, ins := range fn.Instructions {
		for _, o := range ins.Operands {
			if o.Kind == program.OperandRegister {
				b.seed(Register{Name: o.Register})
			}
		}
		for _, d := range ins.Destinations {
			b.seed(Register{Name: d})
		}
	}
	for _, out := range fn.Outputs {
		b.seed(Register{Name: out.Register})
	}
	return b
}

func (b *Bank) seed(r Register) {
	if _, ok := b.slots[r]; !ok {
		b.slots[r] = nil
		b.order = append(b.order, r)
	}
}

func (b *Bank) Get(r Register) (*Value, error) {
	v, ok := b.slots[r]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRegisterNotFound, r)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrRegisterNotAssigned, r)
	}
	return v, nil
}

func (b *Bank) Set(r Register, v *Value) error {
	cur, ok := b.slots[r]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRegisterNotFound, r)
	}
	if cur != nil {
		return fmt.Errorf("%w: %s", ErrRegisterReassigned, r)
	}
	b.slots[r] = v
	return nil
}

// Member resolves base.member. The first access projects the record held in
// base and stores the result under its own virtual register; later accesses
// return that same value.
func (b *Bank) Member(base, member string) (*Value, error) {
	key := Register{Name: base, Member: member}
	if v := b.slots[key]; v != nil {
		return v, nil
	}
	rec, err := b.Get(Register{Name: base})
	if err != nil {
		return nil, err
	}
	v, err := rec.member(member)
	if err != nil {
		return nil, err
	}
	b.seed(key)
	b.slots[key] = v
	return v, nil
}

// Registers lists every slot in insertion order.
func (b *Bank) Registers() []Register {
	return append([]Register(nil), b.order...)
}

// Lookup returns the slot content without error classification.
func (b *Bank) Lookup(r Register) (*Value, bool) {
	v, ok := b.slots[r]
	return v, ok && v != nil
}
