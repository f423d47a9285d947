package eonvm

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/plonk"
	plonkbls12381 "github.com/consensys/gnark/backend/plonk/bls12-381"
	"github.com/consensys/gnark/backend/witness"
	"github.com/eon-protocol/eonvm/circuits/hasher"
)

// Vk is the verifying key of one function circuit.
type Vk struct {
	vk *plonkbls12381.VerifyingKey
}

func (me *Vk) FromGnarkVerifyingKey(vk plonk.VerifyingKey) error {
	cvk, ok := vk.(*plonkbls12381.VerifyingKey)
	if !ok {
		return fmt.Errorf("verifying key on the wrong curve: %T", vk)
	}
	me.vk = cvk
	return nil
}

func (me *Vk) ToGnarkVerifyingKey() plonk.VerifyingKey {
	return me.vk
}

// NbPublic is the number of public input lanes the circuit expects.
func (me *Vk) NbPublic() int {
	if me.vk == nil {
		return 0
	}
	return int(me.vk.NbPublicVariables)
}

// Verify checks proof against the ordered public input lanes. Any mismatch
// is an error wrapping ErrInvalidProof; it never panics.
func (me *Vk) Verify(proof *Proof, publics []fr.Element) (err error) {
	if me.vk == nil || proof == nil || proof.proof == nil {
		return fmt.Errorf("%w: missing key or proof", ErrInvalidProof)
	}
	if len(publics) != me.NbPublic() {
		return fmt.Errorf("%w: got %d public inputs, want %d", ErrInvalidProof, len(publics), me.NbPublic())
	}
	gp := proof.proof
	points := append([]bls12381.G1Affine{gp.Z, gp.BatchedProof.H, gp.ZShiftedOpening.H}, gp.LRO[:]...)
	points = append(points, gp.H[:]...)
	points = append(points, gp.Bsb22Commitments...)
	for _, p := range points {
		if !p.IsInSubGroup() {
			return fmt.Errorf("%w: G1 not in sub group", ErrInvalidProof)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidProof, r)
		}
	}()
	w, err := publicWitness(publics)
	if err != nil {
		return err
	}
	if err := plonk.Verify(gp, me.vk, w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	return nil
}

// Valid is Verify as a boolean.
func (me *Vk) Valid(proof *Proof, publics []fr.Element) bool {
	return me.Verify(proof, publics) == nil
}

func publicWitness(publics []fr.Element) (witness.Witness, error) {
	w, err := witness.New(FIELD)
	if err != nil {
		return nil, err
	}
	values := make(chan any, len(publics))
	for _, p := range publics {
		values <- p
	}
	close(values)
	if err := w.Fill(len(publics), 0, values); err != nil {
		return nil, err
	}
	return w, nil
}

// ID is a Poseidon2 digest of the key's commitments and shape.
func (me *Vk) ID() fr.Element {
	vk := me.vk
	vals := []fr.Element{
		hasher.HashG1(vk.S[0]), hasher.HashG1(vk.S[1]), hasher.HashG1(vk.S[2]),
		hasher.HashG1(vk.Ql), hasher.HashG1(vk.Qr), hasher.HashG1(vk.Qm), hasher.HashG1(vk.Qo), hasher.HashG1(vk.Qk),
	}
	for _, q := range vk.Qcp {
		vals = append(vals, hasher.HashG1(q))
	}
	for _, ci := range vk.CommitmentConstraintIndexes {
		vals = append(vals, fr.NewElement(ci))
	}
	vals = append(vals, fr.NewElement(vk.Size), fr.NewElement(vk.NbPublicVariables))
	return hasher.DomainSum(hasher.DOMAIN_VK, vals...)
}

func (me *Vk) WriteTo(w io.Writer) (int64, error) {
	return me.vk.WriteTo(w)
}

func (me *Vk) ReadFrom(r io.Reader) (int64, error) {
	vk := plonk.NewVerifyingKey(CURVE)
	n, err := vk.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return n, me.FromGnarkVerifyingKey(vk)
}

func (me *Vk) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := me.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (me *Vk) MarshalText() ([]byte, error) {
	b, err := me.Bytes()
	if err != nil {
		return nil, err
	}
	return []byte(hex.EncodeToString(b)), nil
}

func (me *Vk) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	_, err = me.ReadFrom(bytes.NewReader(b))
	return err
}
