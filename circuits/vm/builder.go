package vm

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/eon-protocol/eonvm/circuits/hasher"
	"github.com/eon-protocol/eonvm/plaintext"
	"github.com/eon-protocol/eonvm/program"
)

// Boolean constants that gt results are selected from.
const (
	TRUE  = 1
	FALSE = 0
)

func init() {
	solver.RegisterHint(divModHint, copyHint)
}

// divModHint returns the euclidean quotient and remainder of two
// non-negative integers. A zero divisor yields (0, a); the caller's
// constraints reject it.
func divModHint(_ *big.Int, in, out []*big.Int) error {
	if len(in) != 2 || len(out) != 2 {
		return errors.New("divModHint: expected 2 inputs and 2 outputs")
	}
	if in[1].Sign() == 0 {
		out[0].SetUint64(0)
		out[1].Set(in[0])
		return nil
	}
	out[0].DivMod(in[0], in[1], out[1])
	return nil
}

func copyHint(_ *big.Int, in, out []*big.Int) error {
	if len(in) != len(out) {
		return errors.New("copyHint: input and output counts differ")
	}
	for i := range in {
		out[i].Set(in[i])
	}
	return nil
}

// Builder is the one handle every allocation and constraint of an
// interpretation pass goes through. It is owned by a single Define call.
type Builder struct {
	api   frontend.API
	hash  *hasher.Hasher
	bools []frontend.Variable
}

func NewBuilder(api frontend.API) *Builder {
	return &Builder{api: api}
}

func (b *Builder) API() frontend.API { return b.api }

func (b *Builder) hasher() *hasher.Hasher {
	if b.hash == nil {
		b.hash = hasher.New(b.api)
	}
	return b.hash
}

// native returns the concrete value of v when it is known at this point:
// always under the test engine, only for constants when compiling.
func (b *Builder) native(v frontend.Variable) (*big.Int, bool) {
	return b.api.Compiler().ConstantValue(v)
}

// nativeInt is native read as an integer of type t.
func (b *Builder) nativeInt(t program.LiteralType, v frontend.Variable) (*big.Int, bool) {
	n, ok := b.native(v)
	if !ok {
		return nil, false
	}
	var e fr.Element
	e.SetBigInt(n)
	return plaintext.SignedInt(t, e), true
}

func inRange(t program.LiteralType, n *big.Int) bool {
	lo, hi := plaintext.Bounds(t)
	return n.Cmp(lo) >= 0 && n.Cmp(hi) <= 0
}

func offset(t program.LiteralType) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(t.Width()-1))
}

// bits decomposes v, constrained to be a value of integer type t, into
// t.Width() bits. Signed values are shifted by 2^(w-1) first.
func (b *Builder) bits(t program.LiteralType, v frontend.Variable) []frontend.Variable {
	if t.IsSigned() {
		v = b.api.Add(v, offset(t))
	}
	return b.api.ToBinary(v, t.Width())
}

// rangeCheck constrains v to the domain of t.
func (b *Builder) rangeCheck(t program.LiteralType, v frontend.Variable) {
	switch {
	case t == program.Boolean:
		b.api.AssertIsBoolean(v)
	case t.IsInteger():
		b.bits(t, v)
	}
}

// checked reports ErrOverflow when v is known and outside t, otherwise it
// range checks v.
func (b *Builder) checked(t program.LiteralType, v frontend.Variable) (frontend.Variable, error) {
	if n, ok := b.nativeInt(t, v); ok && t.IsInteger() && !inRange(t, n) {
		return nil, ErrOverflow
	}
	b.rangeCheck(t, v)
	return v, nil
}

// constBools returns the TRUE and FALSE witnesses, allocated on first use and
// pinned to their constants.
func (b *Builder) constBools() (t, f frontend.Variable, err error) {
	if b.bools == nil {
		out, err := b.api.Compiler().NewHint(copyHint, 2, TRUE, FALSE)
		if err != nil {
			return nil, nil, err
		}
		b.api.AssertIsEqual(out[0], TRUE)
		b.api.AssertIsEqual(out[1], FALSE)
		b.bools = out
	}
	return b.bools[0], b.bools[1], nil
}

// freshBool allocates a new witness equal to select(bit, TRUE, FALSE), with
// TRUE and FALSE themselves witnesses.
func (b *Builder) freshBool(bit frontend.Variable) (frontend.Variable, error) {
	t, f, err := b.constBools()
	if err != nil {
		return nil, err
	}
	out, err := b.api.Compiler().NewHint(copyHint, 1, bit)
	if err != nil {
		return nil, err
	}
	b.api.AssertIsEqual(out[0], b.api.Select(bit, t, f))
	return out[0], nil
}

// divMod constrains a = q*b + r with 0 <= r < b, for a and b in [0, 2^w).
func (b *Builder) divMod(w int, x, y frontend.Variable) (q, r frontend.Variable, err error) {
	if n, ok := b.native(y); ok && n.Sign() == 0 {
		return nil, nil, ErrDivisionByZero
	}
	out, err := b.api.Compiler().NewHint(divModHint, 2, x, y)
	if err != nil {
		return nil, nil, err
	}
	q, r = out[0], out[1]
	b.api.ToBinary(q, w)
	b.api.ToBinary(r, w)
	// r < y, which also rules out y = 0
	b.api.ToBinary(b.api.Sub(y, r, 1), w)
	b.api.AssertIsEqual(x, b.api.Add(b.api.Mul(q, y), r))
	return q, r, nil
}
