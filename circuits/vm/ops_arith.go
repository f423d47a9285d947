package vm

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/eon-protocol/eonvm/program"
)

// binaryFn computes one lane from two same-typed lanes.
type binaryFn func(b *Builder, t program.LiteralType, x, y frontend.Variable) (frontend.Variable, error)

var addOps = map[program.LiteralType]binaryFn{
	program.U8:    addInt,
	program.U16:   addInt,
	program.U32:   addInt,
	program.U64:   addInt,
	program.I8:    addInt,
	program.I16:   addInt,
	program.I32:   addInt,
	program.I64:   addInt,
	program.Field: addField,
}

var subOps = map[program.LiteralType]binaryFn{
	program.U8:    subInt,
	program.U16:   subInt,
	program.U32:   subInt,
	program.U64:   subInt,
	program.I8:    subInt,
	program.I16:   subInt,
	program.I32:   subInt,
	program.I64:   subInt,
	program.Field: subField,
}

var mulOps = map[program.LiteralType]binaryFn{
	program.U8:    mulInt,
	program.U16:   mulInt,
	program.U32:   mulInt,
	program.U64:   mulInt,
	program.I8:    mulInt,
	program.I16:   mulInt,
	program.I32:   mulInt,
	program.I64:   mulInt,
	program.Field: mulField,
}

var divOps = map[program.LiteralType]binaryFn{
	program.U8:    divUnsigned,
	program.U16:   divUnsigned,
	program.U32:   divUnsigned,
	program.U64:   divUnsigned,
	program.I8:    divSigned,
	program.I16:   divSigned,
	program.I32:   divSigned,
	program.I64:   divSigned,
	program.Field: divField,
}

// arithmetic dispatches a two-operand opcode on the operands' common type.
// The result is an input only when both operands are.
func arithmetic(table map[program.LiteralType]binaryFn) opFunc {
	return func(b *Builder, _ *program.Instruction, _ *program.Function, args []*Value) (*Value, error) {
		if err := arity(args, 2); err != nil {
			return nil, err
		}
		t, ok := sameLiteral(args)
		f, found := table[t]
		if !ok || !found {
			return nil, unsupported(args)
		}
		v, err := f(b, t, args[0].Vars[0], args[1].Vars[0])
		if err != nil {
			return nil, err
		}
		return literal(t, Join(args[0].Vis, args[1].Vis), v), nil
	}
}

func addInt(b *Builder, t program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	return b.checked(t, b.api.Add(x, y))
}

func subInt(b *Builder, t program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	return b.checked(t, b.api.Sub(x, y))
}

// operands are at most 64 bits wide, so the product never wraps the field
func mulInt(b *Builder, t program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	return b.checked(t, b.api.Mul(x, y))
}

func divUnsigned(b *Builder, t program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	q, _, err := b.divMod(t.Width(), x, y)
	return q, err
}

// divSigned truncates toward zero. MIN / -1 overflows.
func divSigned(b *Builder, t program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	api := b.api
	ny, yok := b.nativeInt(t, y)
	if yok && ny.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	if nx, ok := b.nativeInt(t, x); ok && yok && !inRange(t, new(big.Int).Quo(nx, ny)) {
		return nil, ErrOverflow
	}
	w := t.Width()
	negX := api.Sub(1, b.bits(t, x)[w-1])
	negY := api.Sub(1, b.bits(t, y)[w-1])
	absX := api.Select(negX, api.Neg(x), x)
	absY := api.Select(negY, api.Neg(y), y)
	q, _, err := b.divMod(w, absX, absY)
	if err != nil {
		return nil, err
	}
	return b.checked(t, api.Select(api.Xor(negX, negY), api.Neg(q), q))
}

func addField(b *Builder, _ program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	return b.api.Add(x, y), nil
}

func subField(b *Builder, _ program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	return b.api.Sub(x, y), nil
}

func mulField(b *Builder, _ program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	return b.api.Mul(x, y), nil
}

func divField(b *Builder, _ program.LiteralType, x, y frontend.Variable) (frontend.Variable, error) {
	if n, ok := b.native(y); ok && n.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	b.api.AssertIsDifferent(y, 0)
	return b.api.Div(x, y), nil
}
