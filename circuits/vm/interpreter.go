package vm

import (
	"fmt"

	"github.com/eon-protocol/eonvm/program"
)

// opFunc computes the result of one instruction from its resolved operands.
type opFunc func(b *Builder, ins *program.Instruction, fn *program.Function, args []*Value) (*Value, error)

var opcodes = map[program.Opcode]opFunc{
	program.OpAdd:      arithmetic(addOps),
	program.OpSub:      arithmetic(subOps),
	program.OpMul:      arithmetic(mulOps),
	program.OpDiv:      arithmetic(divOps),
	program.OpGt:       gt,
	program.OpIsEq:     isEq,
	program.OpTernary:  ternary,
	program.OpCast:     cast,
	program.OpHashPsd2: hashPsd2,
}

// Supported reports whether op has a semantic routine.
func Supported(op program.Opcode) bool {
	_, ok := opcodes[op]
	return ok
}

// Interpret runs every instruction of fn once, in order, against bank.
func Interpret(b *Builder, bank *Bank, fn *program.Function) error {
	for i := range fn.Instructions {
		ins := &fn.Instructions[i]
		if err := step(b, bank, fn, ins); err != nil {
			return &InstructionError{Index: i, Opcode: ins.Opcode, Err: err}
		}
	}
	return nil
}

func step(b *Builder, bank *Bank, fn *program.Function, ins *program.Instruction) error {
	op, ok := opcodes[ins.Opcode]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedInstruction, ins.Opcode)
	}
	dst, ok := ins.Destination()
	if !ok {
		return ErrMissingDestination
	}
	args := make([]*Value, len(ins.Operands))
	for i, o := range ins.Operands {
		v, err := resolve(bank, o)
		if err != nil {
			return fmt.Errorf("operand %d: %w", i, err)
		}
		args[i] = v
	}
	res, err := op(b, ins, fn, args)
	if err != nil {
		return err
	}
	return bank.Set(Register{Name: dst}, res)
}

func resolve(bank *Bank, o program.Operand) (*Value, error) {
	if o.Kind != program.OperandRegister {
		return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedOperandKind, o.Kind, o)
	}
	if o.Member != "" {
		return bank.Member(o.Register, o.Member)
	}
	return bank.Get(Register{Name: o.Register})
}

func unsupported(args []*Value) error {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = a.Type.String()
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedOperandTypes, types)
}

// sameLiteral returns the common literal type of two operands, or false when
// either is a record or the types differ.
func sameLiteral(args []*Value) (program.LiteralType, bool) {
	if args[0].IsRecord() || args[1].IsRecord() || args[0].Type != args[1].Type {
		return program.Invalid, false
	}
	return args[0].Literal(), true
}

func arity(args []*Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongOperandCount, len(args), n)
	}
	return nil
}
