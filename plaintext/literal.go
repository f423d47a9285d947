// Package plaintext holds user-facing values: typed literals such as "5u64",
// "-3i8", "true", "7field" or an address, and records. It converts them to and
// from the field element lanes a circuit works on.
package plaintext

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eon-protocol/eonvm/accounts"
	"github.com/eon-protocol/eonvm/program"
)

var (
	ErrMalformedLiteral = errors.New("malformed literal")
	ErrOutOfRange       = errors.New("literal out of range")
	ErrLaneCount        = errors.New("wrong number of lanes")
)

// Value is a Literal or a *Record.
type Value interface {
	String() string
	isValue()
}

// Literal is an immutable typed scalar. Integers keep their signed value,
// booleans are 0 or 1 and fields are reduced.
type Literal struct {
	typ  program.LiteralType
	num  big.Int
	addr accounts.Address
}

func (Literal) isValue() {}

func (me Literal) Type() program.Type { return program.LiteralOf(me.typ) }

func (me Literal) LiteralType() program.LiteralType { return me.typ }

// Int returns a copy of the numeric value (integers, booleans and fields).
func (me Literal) Int() *big.Int { return new(big.Int).Set(&me.num) }

func (me Literal) Bool() bool { return me.typ == program.Boolean && me.num.Sign() != 0 }

func (me Literal) Address() accounts.Address { return me.addr }

func (me Literal) Equal(other Literal) bool {
	if me.typ != other.typ {
		return false
	}
	if me.typ == program.Address {
		return me.addr.Equal(other.addr)
	}
	return me.num.Cmp(&other.num) == 0
}

// Bounds returns the inclusive range of an integer type.
func Bounds(t program.LiteralType) (lo, hi *big.Int) {
	w := uint(t.Width())
	if t.IsSigned() {
		hi = new(big.Int).Lsh(big.NewInt(1), w-1)
		lo = new(big.Int).Neg(hi)
		hi.Sub(hi, big.NewInt(1))
		return
	}
	return big.NewInt(0), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), w), big.NewInt(1))
}

func NewInteger(t program.LiteralType, v *big.Int) (Literal, error) {
	if !t.IsInteger() {
		return Literal{}, fmt.Errorf("%w: %v is not an integer type", ErrMalformedLiteral, t)
	}
	lo, hi := Bounds(t)
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return Literal{}, fmt.Errorf("%w: %v%v", ErrOutOfRange, v, t)
	}
	l := Literal{typ: t}
	l.num.Set(v)
	return l, nil
}

// Uint builds an unsigned literal, panicking when v does not fit t.
func Uint(t program.LiteralType, v uint64) Literal {
	l, err := NewInteger(t, new(big.Int).SetUint64(v))
	if err != nil {
		panic(err)
	}
	return l
}

// Int builds a signed literal, panicking when v does not fit t.
func Int(t program.LiteralType, v int64) Literal {
	l, err := NewInteger(t, big.NewInt(v))
	if err != nil {
		panic(err)
	}
	return l
}

func Bool(b bool) Literal {
	l := Literal{typ: program.Boolean}
	if b {
		l.num.SetUint64(1)
	}
	return l
}

func Field(e fr.Element) Literal {
	l := Literal{typ: program.Field}
	e.BigInt(&l.num)
	return l
}

func AddressLiteral(a accounts.Address) Literal {
	return Literal{typ: program.Address, addr: a}
}

func ParseLiteral(s string) (Literal, error) {
	switch {
	case s == "true":
		return Bool(true), nil
	case s == "false":
		return Bool(false), nil
	case strings.HasPrefix(s, accounts.ADDRESS_PREFIX):
		a, err := accounts.ParseAddress(s)
		if err != nil {
			return Literal{}, err
		}
		return AddressLiteral(a), nil
	}
	if digits, ok := strings.CutSuffix(s, "field"); ok {
		var v big.Int
		if _, ok := v.SetString(digits, 10); !ok || v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
			return Literal{}, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
		}
		l := Literal{typ: program.Field}
		l.num.Set(&v)
		return l, nil
	}
	i := strings.LastIndexAny(s, "iu")
	if i <= 0 {
		return Literal{}, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
	}
	t, err := program.ParseLiteralType(s[i:])
	if err != nil || !t.IsInteger() {
		return Literal{}, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
	}
	var v big.Int
	if _, ok := v.SetString(s[:i], 10); !ok {
		return Literal{}, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
	}
	return NewInteger(t, &v)
}

func MustParseLiteral(s string) Literal {
	l, err := ParseLiteral(s)
	if err != nil {
		panic(err)
	}
	return l
}

func (me Literal) String() string {
	switch {
	case me.typ == program.Boolean:
		if me.num.Sign() != 0 {
			return "true"
		}
		return "false"
	case me.typ == program.Address:
		return me.addr.String()
	case me.typ == program.Field:
		return me.num.String() + "field"
	case me.typ.IsInteger():
		return me.num.String() + me.typ.String()
	}
	return "<invalid>"
}

func (me Literal) MarshalText() ([]byte, error) {
	if me.typ == program.Invalid {
		return nil, fmt.Errorf("%w: empty literal", ErrMalformedLiteral)
	}
	return []byte(me.String()), nil
}

func (me *Literal) UnmarshalText(text []byte) error {
	l, err := ParseLiteral(string(text))
	if err != nil {
		return err
	}
	*me = l
	return nil
}

// Lanes encodes the literal as field elements. Negative integers map to
// p - |v|.
func (me Literal) Lanes() []fr.Element {
	if me.typ == program.Address {
		x, y := me.addr.Coordinates()
		return []fr.Element{x, y}
	}
	var e fr.Element
	e.SetBigInt(&me.num)
	return []fr.Element{e}
}

// LiteralFromLanes is the inverse of Lanes. It rejects lanes that do not
// encode a value of type t.
func LiteralFromLanes(t program.LiteralType, lanes []fr.Element) (Literal, error) {
	if len(lanes) != t.Lanes() {
		return Literal{}, fmt.Errorf("%w: %v takes %d, got %d", ErrLaneCount, t, t.Lanes(), len(lanes))
	}
	switch {
	case t == program.Address:
		a, err := accounts.AddressFromCoordinates(lanes[0], lanes[1])
		if err != nil {
			return Literal{}, err
		}
		return AddressLiteral(a), nil
	case t == program.Field:
		return Field(lanes[0]), nil
	case t == program.Boolean:
		if !lanes[0].IsZero() && !lanes[0].IsOne() {
			return Literal{}, fmt.Errorf("%w: boolean lane %s", ErrOutOfRange, lanes[0].String())
		}
		return Bool(lanes[0].IsOne()), nil
	case t.IsInteger():
		return NewInteger(t, SignedInt(t, lanes[0]))
	}
	return Literal{}, fmt.Errorf("%w: type %v", ErrMalformedLiteral, t)
}

// SignedInt reads a lane as an integer of type t: for signed types, values
// above p/2 are negative.
func SignedInt(t program.LiteralType, e fr.Element) *big.Int {
	v := new(big.Int)
	e.BigInt(v)
	if t.IsSigned() {
		half := new(big.Int).Rsh(fr.Modulus(), 1)
		if v.Cmp(half) > 0 {
			v.Sub(v, fr.Modulus())
		}
	}
	return v
}
