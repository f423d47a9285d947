package program

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnknownRecordType = errors.New("unknown record type")
	ErrMalformedFunction = errors.New("malformed function")
)

type Input struct {
	Register   string     `json:"register"`
	Type       Type       `json:"type"`
	Visibility Visibility `json:"visibility"`
}

type Output struct {
	Register   string     `json:"register"`
	Type       Type       `json:"type"`
	Visibility Visibility `json:"visibility"`
}

// Function is a parsed program function. It is read-only once loaded; the
// circuit and the key cache both rely on its shape staying fixed.
type Function struct {
	Program      string        `json:"program"`
	Name         string        `json:"name"`
	Inputs       []Input       `json:"inputs"`
	Instructions []Instruction `json:"instructions"`
	Outputs      []Output      `json:"outputs"`
	Records      []RecordType  `json:"records,omitempty"`
}

// ID is the "<program>/<function>" locator used by caches and transitions.
func (me *Function) ID() string {
	return me.Program + "/" + me.Name
}

func (me *Function) RecordType(name string) (*RecordType, error) {
	for i := range me.Records {
		if me.Records[i].Name == name {
			return &me.Records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRecordType, name)
}

// Fingerprint digests the canonical JSON form of the function. Two functions
// with the same fingerprint compile to the same constraint system.
func (me *Function) Fingerprint() string {
	data, err := json.Marshal(me)
	if err != nil {
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Validate checks the static shape of the function: names are present, every
// referenced record layout exists and every type is well formed. Register
// graph and operand type errors are left to the interpreter.
func (me *Function) Validate() error {
	if me.Program == "" || me.Name == "" {
		return fmt.Errorf("%w: missing program or function name", ErrMalformedFunction)
	}
	check := func(t Type) error {
		if t.IsRecord() {
			_, err := me.RecordType(t.Record)
			return err
		}
		if t.Literal == Invalid {
			return fmt.Errorf("%w: invalid literal type", ErrMalformedFunction)
		}
		return nil
	}
	for i, in := range me.Inputs {
		if in.Register == "" {
			return fmt.Errorf("%w: input %d has no register", ErrMalformedFunction, i)
		}
		if err := check(in.Type); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}
	for i, out := range me.Outputs {
		if out.Register == "" {
			return fmt.Errorf("%w: output %d has no register", ErrMalformedFunction, i)
		}
		if err := check(out.Type); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}
	for i, ins := range me.Instructions {
		if ins.Type != nil {
			if err := check(*ins.Type); err != nil {
				return fmt.Errorf("instruction %d: %w", i, err)
			}
		}
	}
	for _, r := range me.Records {
		for _, e := range r.Entries {
			if e.Type == Invalid {
				return fmt.Errorf("%w: record %s entry %s", ErrMalformedFunction, r.Name, e.Name)
			}
			if e.Name == "owner" || e.Name == "gates" {
				return fmt.Errorf("%w: record %s redeclares %s", ErrMalformedFunction, r.Name, e.Name)
			}
		}
	}
	return nil
}

func LoadFunction(r io.Reader) (*Function, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var fn Function
	if err := dec.Decode(&fn); err != nil {
		return nil, err
	}
	if err := fn.Validate(); err != nil {
		return nil, err
	}
	return &fn, nil
}

func (me *Function) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(me); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}
