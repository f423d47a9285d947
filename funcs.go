package eonvm

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eon-protocol/eonvm/circuits/hasher"
	"github.com/eon-protocol/eonvm/plaintext"
	"github.com/eon-protocol/eonvm/program"
	"github.com/eon-protocol/eonvm/srs"
)

// BuildKeys synthesizes the proving and verifying key of fn.
func BuildKeys(fn *program.Function, cache *srs.Cache) (*Pk, *Vk, error) {
	var pk Pk
	if err := pk.Compile(fn, cache); err != nil {
		return nil, nil, err
	}
	return &pk, pk.Vk(), nil
}

// ExecuteFunction builds keys for fn and proves one run on inputs.
func ExecuteFunction(fn *program.Function, inputs []plaintext.Value, cache *srs.Cache) (*Execution, error) {
	pk, _, err := BuildKeys(fn, cache)
	if err != nil {
		return nil, err
	}
	return pk.Prove(inputs)
}

func VerifyProof(vk *Vk, publics []fr.Element, proof *Proof) bool {
	return vk.Valid(proof, publics)
}

// HashString maps an arbitrary string into the field, 31 bytes per element.
func HashString(s string) fr.Element {
	b := []byte(s)
	vals := []fr.Element{fr.NewElement(uint64(len(b)))}
	for len(b) > 0 {
		n := min(len(b), fr.Bytes-1)
		var e fr.Element
		e.SetBytes(b[:n])
		vals = append(vals, e)
		b = b[n:]
	}
	return hasher.Sum(vals...)
}
