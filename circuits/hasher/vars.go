// Poseidon2 parameters shared by the native hasher and the circuit gadget.
package hasher

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
)

const WIDTH = 2
const ROUND_FULL = 8
const ROUND_PARTIAL = 56
const SEED = "EONVM_POSEIDON2_HASH_SEED"

// GetPermutation returns the native Poseidon2 permutation.
var GetPermutation = sync.OnceValue(func() *poseidon2.Permutation {
	return poseidon2.NewPermutationWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
})

// Domain separators. Each is the field element encoding of its tag.
var (
	DOMAIN_COMMITMENT = Domain("eonvm.commitment")
	DOMAIN_SERIAL     = Domain("eonvm.serial")
	DOMAIN_VIEW_KEY   = Domain("eonvm.view_key")
	DOMAIN_PRF_KEY    = Domain("eonvm.prf_key")
	DOMAIN_INPUT      = Domain("eonvm.input")
	DOMAIN_OUTPUT     = Domain("eonvm.output")
	DOMAIN_TRANSITION = Domain("eonvm.transition")
	DOMAIN_VK         = Domain("eonvm.verifying_key")
)

// Domain maps a short ASCII tag (at most 31 bytes) to a field element.
func Domain(tag string) fr.Element {
	if len(tag) > fr.Bytes-1 {
		panic("hasher: domain tag too long: " + tag)
	}
	var e fr.Element
	e.SetBytes([]byte(tag))
	return e
}
