package vm

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/eon-protocol/eonvm/program"
)

// predicateFn computes a boolean lane from two same-typed values.
type predicateFn func(b *Builder, t program.LiteralType, x, y []frontend.Variable) frontend.Variable

var gtOps = map[program.LiteralType]predicateFn{
	program.U8:    gtInt,
	program.U16:   gtInt,
	program.U32:   gtInt,
	program.U64:   gtInt,
	program.I8:    gtInt,
	program.I16:   gtInt,
	program.I32:   gtInt,
	program.I64:   gtInt,
	program.Field: gtField,
}

var isEqOps = map[program.LiteralType]predicateFn{
	program.U8:      isEqLane,
	program.U16:     isEqLane,
	program.U32:     isEqLane,
	program.U64:     isEqLane,
	program.I8:      isEqLane,
	program.I16:     isEqLane,
	program.I32:     isEqLane,
	program.I64:     isEqLane,
	program.Field:   isEqLane,
	program.Boolean: isEqLane,
	program.Address: isEqAddress,
}

// ternary payloads; booleans are not selectable
var selectable = map[program.LiteralType]bool{
	program.U8:      true,
	program.U16:     true,
	program.U32:     true,
	program.U64:     true,
	program.I8:      true,
	program.I16:     true,
	program.I32:     true,
	program.I64:     true,
	program.Field:   true,
	program.Address: true,
}

// gt compares, then reallocates the comparison as a fresh boolean witness
// selected between TRUE and FALSE.
func gt(b *Builder, _ *program.Instruction, _ *program.Function, args []*Value) (*Value, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	t, ok := sameLiteral(args)
	f, found := gtOps[t]
	if !ok || !found {
		return nil, unsupported(args)
	}
	res, err := b.freshBool(f(b, t, args[0].Vars, args[1].Vars))
	if err != nil {
		return nil, err
	}
	return literal(program.Boolean, Witness, res), nil
}

// gtInt reads the top bit of x - y - 1 + 2^w, which is set iff x > y.
// Signed operands are first shifted into [0, 2^w).
func gtInt(b *Builder, t program.LiteralType, x, y []frontend.Variable) frontend.Variable {
	api := b.api
	w := t.Width()
	l, r := x[0], y[0]
	if t.IsSigned() {
		l, r = api.Add(l, offset(t)), api.Add(r, offset(t))
	}
	d := api.Add(api.Sub(l, r, 1), new(big.Int).Lsh(big.NewInt(1), uint(w)))
	return api.ToBinary(d, w+1)[w]
}

func gtField(b *Builder, _ program.LiteralType, x, y []frontend.Variable) frontend.Variable {
	return b.api.IsZero(b.api.Sub(b.api.Cmp(x[0], y[0]), 1))
}

func isEq(b *Builder, _ *program.Instruction, _ *program.Function, args []*Value) (*Value, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	t, ok := sameLiteral(args)
	f, found := isEqOps[t]
	if !ok || !found {
		return nil, unsupported(args)
	}
	return literal(program.Boolean, Join(args[0].Vis, args[1].Vis), f(b, t, args[0].Vars, args[1].Vars)), nil
}

func isEqLane(b *Builder, _ program.LiteralType, x, y []frontend.Variable) frontend.Variable {
	return b.api.IsZero(b.api.Sub(x[0], y[0]))
}

func isEqAddress(b *Builder, _ program.LiteralType, x, y []frontend.Variable) frontend.Variable {
	api := b.api
	return api.And(api.IsZero(api.Sub(x[0], y[0])), api.IsZero(api.Sub(x[1], y[1])))
}

// ternary selects lane by lane, addresses included.
func ternary(b *Builder, _ *program.Instruction, _ *program.Function, args []*Value) (*Value, error) {
	if err := arity(args, 3); err != nil {
		return nil, err
	}
	cond, a, c := args[0], args[1], args[2]
	if cond.IsRecord() || cond.Literal() != program.Boolean {
		return nil, fmt.Errorf("%w: condition is %s", ErrUnsupportedTernaryOperands, cond.Type)
	}
	if a.Type != c.Type {
		return nil, fmt.Errorf("%w: %s and %s", ErrMismatchedTernaryOperands, a.Type, c.Type)
	}
	if a.IsRecord() || !selectable[a.Literal()] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTernaryOperands, a.Type)
	}
	vars := make([]frontend.Variable, len(a.Vars))
	for i := range vars {
		vars[i] = b.api.Select(cond.Vars[0], a.Vars[i], c.Vars[i])
	}
	return literal(a.Literal(), Join(cond.Vis, a.Vis, c.Vis), vars...), nil
}
