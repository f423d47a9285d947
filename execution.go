package eonvm

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eon-protocol/eonvm/accounts"
	"github.com/eon-protocol/eonvm/circuits/vm"
	"github.com/eon-protocol/eonvm/plaintext"
	"github.com/eon-protocol/eonvm/program"
)

type options struct {
	fee  uint64
	rand io.Reader
}

type Option func(*options)

// WithFee sets the transition fee. The default is zero.
func WithFee(fee uint64) Option {
	return func(o *options) { o.fee = fee }
}

// WithRand sets the source of record nonces, blinding factors and encryption
// randomness. The default is crypto/rand.
func WithRand(r io.Reader) Option {
	return func(o *options) { o.rand = r }
}

func randomElement(r io.Reader) (fr.Element, error) {
	var buf [fr.Bytes]byte
	var e fr.Element
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return e, err
	}
	e.SetBytes(buf[:])
	return e, nil
}

// GenerateExecution runs fn on inputs as the owner of sk, proves the run and
// packages it as a transition.
func GenerateExecution(fn *program.Function, inputs []plaintext.Value, sk accounts.PrivateKey, keys *KeyCache, opts ...Option) (*Transition, error) {
	o := options{rand: rand.Reader}
	for _, opt := range opts {
		opt(&o)
	}
	if len(inputs) != len(fn.Inputs) {
		return nil, fmt.Errorf("%w: got %d, want %d", vm.ErrWrongInputCount, len(inputs), len(fn.Inputs))
	}
	caller := sk.Address()
	for i, in := range inputs {
		if rec, ok := in.(*plaintext.Record); ok && !rec.Owner.Equal(caller) {
			return nil, &vm.InputError{Index: i, Register: fn.Inputs[i].Register, Err: ErrRecordNotOwned}
		}
	}
	pk, err := keys.Keys(fn)
	if err != nil {
		return nil, err
	}
	exec, err := pk.Prove(inputs)
	if err != nil {
		return nil, err
	}

	t := &Transition{Program: fn.Program, Function: fn.Name, Proof: exec.Proof, Fee: o.fee}
	for i, decl := range fn.Inputs {
		desc, err := inputDescriptor(i, decl, inputs[i], sk, o.rand)
		if err != nil {
			return nil, err
		}
		t.Inputs = append(t.Inputs, desc)
	}
	for i, out := range exec.Trace.Outputs {
		desc, err := outputDescriptor(i, out, caller, o.rand)
		if err != nil {
			return nil, err
		}
		t.Outputs = append(t.Outputs, desc)
	}
	t.ID = Field(t.ComputeID())
	return t, nil
}

func inputDescriptor(i int, decl program.Input, v plaintext.Value, sk accounts.PrivateKey, r io.Reader) (Input, error) {
	switch v := v.(type) {
	case *plaintext.Record:
		return Input{Kind: KindRecord, ID: Field(sk.SerialNumber(v.Commitment()))}, nil
	case plaintext.Literal:
		if decl.Visibility == program.Public {
			return Input{Kind: KindPublic, ID: Field(publicInputID(i, v.Lanes())), Value: v.String()}, nil
		}
		blind, err := randomElement(r)
		if err != nil {
			return Input{}, err
		}
		return Input{Kind: KindPrivate, ID: Field(blindedInputID(i, blind, v.Lanes()))}, nil
	}
	return Input{}, fmt.Errorf("input %d: unsupported value %T", i, v)
}

func outputDescriptor(i int, out vm.OutputValue, caller accounts.Address, r io.Reader) (Output, error) {
	switch out.Kind {
	case vm.OutputPublic:
		lit := out.Value.(plaintext.Literal)
		return Output{Kind: KindPublic, ID: Field(publicOutputID(i, lit.Lanes())), Value: lit.String()}, nil
	case vm.OutputPrivate:
		lit := out.Value.(plaintext.Literal)
		blind, err := randomElement(r)
		if err != nil {
			return Output{}, err
		}
		ct, err := accounts.Encrypt(caller, []byte(lit.String()), r)
		if err != nil {
			return Output{}, err
		}
		return Output{Kind: KindPrivate, ID: Field(blindedOutputID(i, blind, lit.Lanes())), Value: hex.EncodeToString(ct)}, nil
	case vm.OutputRecord:
		rec := *out.Value.(*plaintext.Record)
		nonce, err := randomElement(r)
		if err != nil {
			return Output{}, err
		}
		rec.Nonce = nonce
		pt, err := rec.MarshalJSON()
		if err != nil {
			return Output{}, err
		}
		ct, err := accounts.Encrypt(rec.Owner, pt, r)
		if err != nil {
			return Output{}, err
		}
		return Output{Kind: KindRecord, ID: Field(rec.Commitment()), Value: hex.EncodeToString(ct)}, nil
	}
	return Output{}, fmt.Errorf("output %d: unsupported kind %s", i, out.Kind)
}
