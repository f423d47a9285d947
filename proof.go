package eonvm

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/consensys/gnark/backend/plonk"
	plonkbls12381 "github.com/consensys/gnark/backend/plonk/bls12-381"
)

type Proof struct {
	proof *plonkbls12381.Proof
}

func (me *Proof) ToGnarkProof() plonk.Proof {
	return me.proof
}

func (me *Proof) FromGnarkProof(proof plonk.Proof) error {
	gp, ok := proof.(*plonkbls12381.Proof)
	if !ok {
		return fmt.Errorf("proof on the wrong curve: %T", proof)
	}
	me.proof = gp
	return nil
}

func (me *Proof) WriteTo(w io.Writer) (int64, error) {
	return me.proof.WriteTo(w)
}

func (me *Proof) ReadFrom(r io.Reader) (int64, error) {
	gp := plonk.NewProof(CURVE)
	n, err := gp.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return n, me.FromGnarkProof(gp)
}

func (me *Proof) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := me.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (me *Proof) MarshalText() ([]byte, error) {
	b, err := me.Bytes()
	if err != nil {
		return nil, err
	}
	return []byte(hex.EncodeToString(b)), nil
}

func (me *Proof) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	_, err = me.ReadFrom(bytes.NewReader(b))
	return err
}
