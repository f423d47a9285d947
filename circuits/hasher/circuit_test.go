package hasher

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

type permutationCircuit struct {
	Input  [WIDTH]frontend.Variable
	Output [WIDTH]frontend.Variable `gnark:",public"`
}

func (c *permutationCircuit) Define(api frontend.API) error {
	s := c.Input[:]
	if err := New(api).Permutation(s); err != nil {
		return err
	}
	for i := range s {
		api.AssertIsEqual(c.Output[i], s[i])
	}
	return nil
}

type sumCircuit struct {
	Input  [5]frontend.Variable
	Output frontend.Variable `gnark:",public"`
}

func (c *sumCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.Output, New(api).DomainSum(DOMAIN_COMMITMENT, c.Input[:]...))
	return nil
}

func TestPermutationMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)
	for it := 0; it < 4; it++ {
		var in, out [WIDTH]fr.Element
		for i := range in {
			in[i].SetRandom()
		}
		copy(out[:], in[:])
		if err := GetPermutation().Permutation(out[:]); err != nil {
			t.Fatal(err)
		}
		var witness permutationCircuit
		for i := range in {
			witness.Input[i] = in[i].String()
			witness.Output[i] = out[i].String()
		}
		assert.CheckCircuit(&permutationCircuit{}, test.WithValidAssignment(&witness), test.WithCurves(ecc.BLS12_381))
	}
}

func TestDomainSumMatchesNative(t *testing.T) {
	assert := test.NewAssert(t)
	var in [5]fr.Element
	var witness, wrong sumCircuit
	for i := range in {
		in[i].SetRandom()
		witness.Input[i] = in[i].String()
		wrong.Input[i] = in[i].String()
	}
	want := DomainSum(DOMAIN_COMMITMENT, in[:]...)
	witness.Output = want.String()
	var bad fr.Element
	bad.Add(&want, new(fr.Element).SetOne())
	wrong.Output = bad.String()
	assert.CheckCircuit(&sumCircuit{},
		test.WithValidAssignment(&witness),
		test.WithInvalidAssignment(&wrong),
		test.WithCurves(ecc.BLS12_381))
}

func TestDomainsAreDistinct(t *testing.T) {
	seen := map[fr.Element]bool{}
	for _, d := range []fr.Element{DOMAIN_COMMITMENT, DOMAIN_SERIAL, DOMAIN_VIEW_KEY, DOMAIN_PRF_KEY, DOMAIN_INPUT, DOMAIN_OUTPUT, DOMAIN_TRANSITION, DOMAIN_VK} {
		require.False(t, seen[d])
		seen[d] = true
	}
	require.Panics(t, func() { Domain("a tag that is definitely longer than the field") })
}
