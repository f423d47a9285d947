package eonvm

import (
	"encoding/hex"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eon-protocol/eonvm/accounts"
	"github.com/eon-protocol/eonvm/circuits/hasher"
	"github.com/eon-protocol/eonvm/plaintext"
)

// Field is a field element that encodes as 32 big-endian hex bytes.
type Field fr.Element

func (me Field) Element() fr.Element { return fr.Element(me) }

func (me Field) String() string {
	e := fr.Element(me)
	b := e.Bytes()
	return hex.EncodeToString(b[:])
}

func (me Field) MarshalText() ([]byte, error) { return []byte(me.String()), nil }

func (me *Field) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != fr.Bytes {
		return fmt.Errorf("field element must be %d bytes, got %d", fr.Bytes, len(b))
	}
	var e fr.Element
	if err := e.SetBytesCanonical(b); err != nil {
		return err
	}
	*me = Field(e)
	return nil
}

type DescriptorKind string

const (
	KindPublic  DescriptorKind = "public"
	KindPrivate DescriptorKind = "private"
	KindRecord  DescriptorKind = "record"
)

// Input describes one function input inside a transition. Public inputs carry
// their value. Private inputs carry only a blinded hash. Record inputs carry
// the serial number of the spent record as their id.
type Input struct {
	Kind  DescriptorKind `json:"type"`
	ID    Field          `json:"id"`
	Value string         `json:"value,omitempty"`
}

// Output describes one function output. Public outputs carry their value.
// Private outputs and records carry a ciphertext for their owner; a record's
// id is its commitment.
type Output struct {
	Kind  DescriptorKind `json:"type"`
	ID    Field          `json:"id"`
	Value string         `json:"value"`
}

// Transition is the packaged result of one function execution.
type Transition struct {
	ID       Field    `json:"id"`
	Program  string   `json:"program"`
	Function string   `json:"function"`
	Inputs   []Input  `json:"inputs"`
	Outputs  []Output `json:"outputs"`
	Proof    *Proof   `json:"proof"`
	Fee      uint64   `json:"fee"`
}

func publicInputID(index int, lanes []fr.Element) fr.Element {
	return hasher.DomainSum(hasher.DOMAIN_INPUT, append([]fr.Element{fr.NewElement(uint64(index))}, lanes...)...)
}

func blindedInputID(index int, blind fr.Element, lanes []fr.Element) fr.Element {
	return hasher.DomainSum(hasher.DOMAIN_INPUT, append([]fr.Element{fr.NewElement(uint64(index)), blind}, lanes...)...)
}

func publicOutputID(index int, lanes []fr.Element) fr.Element {
	return hasher.DomainSum(hasher.DOMAIN_OUTPUT, append([]fr.Element{fr.NewElement(uint64(index))}, lanes...)...)
}

func blindedOutputID(index int, blind fr.Element, lanes []fr.Element) fr.Element {
	return hasher.DomainSum(hasher.DOMAIN_OUTPUT, append([]fr.Element{fr.NewElement(uint64(index)), blind}, lanes...)...)
}

// ComputeID hashes the program, function, input ids and output ids.
func (t *Transition) ComputeID() fr.Element {
	vals := []fr.Element{HashString(t.Program), HashString(t.Function), fr.NewElement(t.Fee)}
	for _, in := range t.Inputs {
		vals = append(vals, in.ID.Element())
	}
	for _, out := range t.Outputs {
		vals = append(vals, out.ID.Element())
	}
	return hasher.DomainSum(hasher.DOMAIN_TRANSITION, vals...)
}

// Publics rebuilds the public statement from the public input descriptors,
// checking each against its id.
func (t *Transition) Publics() ([]fr.Element, error) {
	var publics []fr.Element
	for i, in := range t.Inputs {
		switch in.Kind {
		case KindPublic:
			lit, err := plaintext.ParseLiteral(in.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: input %d: %v", ErrMalformedTransition, i, err)
			}
			lanes := lit.Lanes()
			if id := publicInputID(i, lanes); !id.Equal((*fr.Element)(&in.ID)) {
				return nil, fmt.Errorf("%w: input %d id does not match its value", ErrMalformedTransition, i)
			}
			publics = append(publics, lanes...)
		case KindPrivate, KindRecord:
		default:
			return nil, fmt.Errorf("%w: input %d has kind %q", ErrMalformedTransition, i, in.Kind)
		}
	}
	return publics, nil
}

// Decrypt opens output i with the view key of its owner. Public outputs are
// returned as they are.
func (t *Transition) Decrypt(vk accounts.ViewKey, i int) (plaintext.Value, error) {
	if i < 0 || i >= len(t.Outputs) {
		return nil, fmt.Errorf("output %d out of range", i)
	}
	out := t.Outputs[i]
	if out.Kind == KindPublic {
		return plaintext.ParseLiteral(out.Value)
	}
	ct, err := hex.DecodeString(out.Value)
	if err != nil {
		return nil, err
	}
	pt, err := vk.Decrypt(ct)
	if err != nil {
		return nil, err
	}
	switch out.Kind {
	case KindPrivate:
		return plaintext.ParseLiteral(string(pt))
	case KindRecord:
		rec := new(plaintext.Record)
		if err := rec.UnmarshalJSON(pt); err != nil {
			return nil, err
		}
		if cm := rec.Commitment(); !cm.Equal((*fr.Element)(&out.ID)) {
			return nil, fmt.Errorf("%w: output %d commitment does not match its record", ErrMalformedTransition, i)
		}
		return rec, nil
	}
	return nil, fmt.Errorf("%w: output %d has kind %q", ErrMalformedTransition, i, out.Kind)
}
