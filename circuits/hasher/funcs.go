// Native (off-circuit) twins of the gadget in circuit.go.
package hasher

import (
	"log"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Compress returns perm([x,y])[1] + y.
func Compress(x, y fr.Element) fr.Element {
	vars := [2]fr.Element{x, y}
	if err := GetPermutation().Permutation(vars[:]); err != nil {
		log.Fatalln(err)
	}
	var ret fr.Element
	ret.Add(&vars[1], &y)
	return ret
}

// Sum folds the values into Compress starting from zero.
func Sum(val ...fr.Element) fr.Element {
	var ret fr.Element
	for _, v := range val {
		ret = Compress(ret, v)
	}
	return ret
}

// DomainSum is Sum with a leading domain separator.
func DomainSum(domain fr.Element, val ...fr.Element) fr.Element {
	return Compress(domain, Sum(val...))
}

// SumBig reduces each integer into the field before hashing. Negative values
// map to p - |v|, matching how the circuit stores signed integers.
func SumBig(val ...*big.Int) fr.Element {
	elems := make([]fr.Element, len(val))
	for i, v := range val {
		elems[i].SetBigInt(v)
	}
	return Sum(elems...)
}

// DecomposeG1 splits a base-field point into (xq,xm,yq,ym) with
// X = xq*r + xm and Y = yq*r + ym, r the scalar field modulus.
func DecomposeG1(val bls12381.G1Affine) [2][2]fr.Element {
	var ixq, ixm, iyq, iym big.Int
	var exq, exm, eyq, eym fr.Element
	val.X.BigInt(&ixq)
	val.Y.BigInt(&iyq)
	ixq.DivMod(&ixq, fr.Modulus(), &ixm)
	iyq.DivMod(&iyq, fr.Modulus(), &iym)
	exq.SetBigInt(&ixq)
	exm.SetBigInt(&ixm)
	eyq.SetBigInt(&iyq)
	eym.SetBigInt(&iym)
	return [2][2]fr.Element{{exq, exm}, {eyq, eym}}
}

// HashG1 is Compress(Compress(xq,xm), Compress(yq,ym)).
func HashG1(val bls12381.G1Affine) fr.Element {
	d := DecomposeG1(val)
	return Compress(Compress(d[0][0], d[0][1]), Compress(d[1][0], d[1][1]))
}
