// Package accounts derives account keys and addresses on the BLS12-381
// twisted Edwards curve and encrypts record payloads to addresses.
//
// A PrivateKey is a 32 byte seed. The view key is a curve scalar derived from
// it with Poseidon2, the address is viewkey*G, and the PRF key used for
// serial numbers is a second Poseidon2 derivation of the seed.
package accounts

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"github.com/eon-protocol/eonvm/circuits/hasher"
	"github.com/mr-tron/base58"
)

const (
	PRIVATE_KEY_PREFIX = "APrivateKey1"
	VIEW_KEY_PREFIX    = "AViewKey1"
	ADDRESS_PREFIX     = "aleo1"
	SEED_SIZE          = 32
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidViewKey    = errors.New("invalid view key")
	ErrInvalidAddress    = errors.New("invalid address")
)

func curve() twistededwards.CurveParams { return twistededwards.GetEdwardsCurve() }

type PrivateKey struct {
	seed [SEED_SIZE]byte
}

type ViewKey struct {
	scalar big.Int
}

// Address is a point on the twisted Edwards curve. Its coordinates are
// elements of the BLS12-381 scalar field, so circuits carry it as two lanes.
type Address struct {
	point twistededwards.PointAffine
}

func NewPrivateKey(r io.Reader) (PrivateKey, error) {
	if r == nil {
		r = rand.Reader
	}
	var sk PrivateKey
	if _, err := io.ReadFull(r, sk.seed[:]); err != nil {
		return PrivateKey{}, err
	}
	return sk, nil
}

func PrivateKeyFromSeed(seed [SEED_SIZE]byte) PrivateKey { return PrivateKey{seed: seed} }

func (me PrivateKey) seedElement() fr.Element {
	var e fr.Element
	e.SetBytes(me.seed[:])
	return e
}

func (me PrivateKey) ViewKey() ViewKey {
	h := hasher.DomainSum(hasher.DOMAIN_VIEW_KEY, me.seedElement())
	var vk ViewKey
	h.BigInt(&vk.scalar)
	order := curve().Order
	vk.scalar.Mod(&vk.scalar, &order)
	return vk
}

func (me PrivateKey) Address() Address { return me.ViewKey().Address() }

// PRFKey keys serial number derivation.
func (me PrivateKey) PRFKey() fr.Element {
	return hasher.DomainSum(hasher.DOMAIN_PRF_KEY, me.seedElement())
}

// SerialNumber reveals that the record with this commitment was spent without
// revealing which one it was.
func (me PrivateKey) SerialNumber(commitment fr.Element) fr.Element {
	return hasher.DomainSum(hasher.DOMAIN_SERIAL, me.PRFKey(), commitment)
}

func (me PrivateKey) String() string {
	return PRIVATE_KEY_PREFIX + base58.Encode(me.seed[:])
}

func ParsePrivateKey(s string) (PrivateKey, error) {
	raw, ok := strings.CutPrefix(s, PRIVATE_KEY_PREFIX)
	if !ok {
		return PrivateKey{}, fmt.Errorf("%w: missing prefix", ErrInvalidPrivateKey)
	}
	b, err := base58.Decode(raw)
	if err != nil || len(b) != SEED_SIZE {
		return PrivateKey{}, fmt.Errorf("%w: bad encoding", ErrInvalidPrivateKey)
	}
	var sk PrivateKey
	copy(sk.seed[:], b)
	return sk, nil
}

func (me ViewKey) Address() Address {
	params := curve()
	var a Address
	a.point.ScalarMultiplication(&params.Base, &me.scalar)
	return a
}

func (me ViewKey) String() string {
	var buf [fr.Bytes]byte
	me.scalar.FillBytes(buf[:])
	return VIEW_KEY_PREFIX + base58.Encode(buf[:])
}

func ParseViewKey(s string) (ViewKey, error) {
	raw, ok := strings.CutPrefix(s, VIEW_KEY_PREFIX)
	if !ok {
		return ViewKey{}, fmt.Errorf("%w: missing prefix", ErrInvalidViewKey)
	}
	b, err := base58.Decode(raw)
	if err != nil || len(b) != fr.Bytes {
		return ViewKey{}, fmt.Errorf("%w: bad encoding", ErrInvalidViewKey)
	}
	var vk ViewKey
	vk.scalar.SetBytes(b)
	order := curve().Order
	if vk.scalar.Cmp(&order) >= 0 {
		return ViewKey{}, fmt.Errorf("%w: scalar out of range", ErrInvalidViewKey)
	}
	return vk, nil
}

// AddressFromCoordinates rebuilds an address from its circuit lanes.
func AddressFromCoordinates(x, y fr.Element) (Address, error) {
	a := Address{point: twistededwards.PointAffine{X: x, Y: y}}
	if !a.point.IsOnCurve() {
		return Address{}, fmt.Errorf("%w: point not on curve", ErrInvalidAddress)
	}
	return a, nil
}

func (me Address) Coordinates() (x, y fr.Element) { return me.point.X, me.point.Y }

func (me Address) Equal(other Address) bool { return me.point.Equal(&other.point) }

func (me Address) Bytes() [32]byte { return me.point.Bytes() }

func (me Address) String() string {
	b := me.point.Bytes()
	return ADDRESS_PREFIX + base58.Encode(b[:])
}

func ParseAddress(s string) (Address, error) {
	raw, ok := strings.CutPrefix(s, ADDRESS_PREFIX)
	if !ok {
		return Address{}, fmt.Errorf("%w: missing prefix", ErrInvalidAddress)
	}
	b, err := base58.Decode(raw)
	if err != nil {
		return Address{}, fmt.Errorf("%w: bad encoding", ErrInvalidAddress)
	}
	var a Address
	if _, err := a.point.SetBytes(b); err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return a, nil
}

func (me Address) MarshalText() ([]byte, error) { return []byte(me.String()), nil }

func (me *Address) UnmarshalText(text []byte) error {
	a, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*me = a
	return nil
}
