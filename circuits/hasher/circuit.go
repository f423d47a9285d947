// Package hasher provides the Poseidon2 hash used across eonvm, as a gnark
// gadget and as native functions that agree with it. BLS12-381 only.
package hasher

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	poseidonbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
	"github.com/consensys/gnark/frontend"
)

var ErrInvalidSizebuffer = errors.New("the size of the input should match the size of the hash buffer")

// Hasher is the in-circuit Poseidon2 permutation (t=2).
type Hasher struct {
	api        frontend.API
	degreeSBox int
	roundKeys  [][]big.Int
}

// New builds the gadget from the parameters in vars.go.
func New(api frontend.API) *Hasher {
	params := poseidonbls12381.NewParametersWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
	keys := make([][]big.Int, len(params.RoundKeys))
	for i := range keys {
		keys[i] = make([]big.Int, len(params.RoundKeys[i]))
		for j := range keys[i] {
			params.RoundKeys[i][j].BigInt(&keys[i][j])
		}
	}
	return &Hasher{api: api, degreeSBox: poseidonbls12381.DegreeSBox(), roundKeys: keys}
}

func (h *Hasher) sBox(x frontend.Variable) frontend.Variable {
	api := h.api
	switch h.degreeSBox {
	case 3:
		return api.Mul(x, x, x)
	case 5:
		x2 := api.Mul(x, x)
		return api.Mul(x2, x2, x)
	case 7:
		x2 := api.Mul(x, x)
		x3 := api.Mul(x2, x)
		return api.Mul(x3, x3, x)
	case 17:
		x2 := api.Mul(x, x)
		x4 := api.Mul(x2, x2)
		x8 := api.Mul(x4, x4)
		x16 := api.Mul(x8, x8)
		return api.Mul(x16, x)
	}
	panic("unsupported sBox degree")
}

// external MDS for t=2: circ(2, 1)
func (h *Hasher) matExternal(s *[2]frontend.Variable) {
	sum := h.api.Add(s[0], s[1])
	s[0] = h.api.Add(sum, s[0])
	s[1] = h.api.Add(sum, s[1])
}

// internal MDS for t=2: [[2, 1], [1, 3]]
func (h *Hasher) matInternal(s *[2]frontend.Variable) {
	sum := h.api.Add(s[0], s[1])
	s[0] = h.api.Add(s[0], sum)
	s[1] = h.api.Add(h.api.Mul(s[1], 2), sum)
}

func (h *Hasher) addRoundKey(round int, s *[2]frontend.Variable) {
	// partial rounds only carry a key for lane 0
	for i := range h.roundKeys[round] {
		s[i] = h.api.Add(s[i], h.roundKeys[round][i])
	}
}

// Permutation applies Poseidon2 in place.
func (h *Hasher) Permutation(input []frontend.Variable) error {
	if len(input) != WIDTH {
		return ErrInvalidSizebuffer
	}
	s := [2]frontend.Variable{input[0], input[1]}
	h.matExternal(&s)
	half := ROUND_FULL / 2
	round := 0
	for ; round < half; round++ {
		h.addRoundKey(round, &s)
		s[0], s[1] = h.sBox(s[0]), h.sBox(s[1])
		h.matExternal(&s)
	}
	for ; round < half+ROUND_PARTIAL; round++ {
		h.addRoundKey(round, &s)
		s[0] = h.sBox(s[0])
		h.matInternal(&s)
	}
	for ; round < ROUND_FULL+ROUND_PARTIAL; round++ {
		h.addRoundKey(round, &s)
		s[0], s[1] = h.sBox(s[0]), h.sBox(s[1])
		h.matExternal(&s)
	}
	input[0], input[1] = s[0], s[1]
	return nil
}

// Compress returns perm([left,right])[1] + right.
func (h *Hasher) Compress(left, right frontend.Variable) frontend.Variable {
	s := []frontend.Variable{left, right}
	if err := h.Permutation(s); err != nil {
		panic(err)
	}
	return h.api.Add(s[1], right)
}

// Sum folds the values into Compress starting from zero, like the native Sum.
func (h *Hasher) Sum(vals ...frontend.Variable) frontend.Variable {
	var acc frontend.Variable = 0
	for _, v := range vals {
		acc = h.Compress(acc, v)
	}
	return acc
}

// DomainSum is Sum with a leading domain separator.
func (h *Hasher) DomainSum(domain fr.Element, vals ...frontend.Variable) frontend.Variable {
	var d big.Int
	domain.BigInt(&d)
	return h.Compress(&d, h.Sum(vals...))
}
