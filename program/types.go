// Package program models a parsed function: typed inputs, register
// instructions and typed outputs. Source text parsing happens elsewhere; this
// package only holds the result and its JSON form.
package program

import (
	"fmt"
	"strings"
)

type LiteralType uint8

const (
	Invalid LiteralType = iota
	Boolean
	Field
	Address
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
)

var literalNames = [...]string{
	Invalid: "invalid",
	Boolean: "boolean",
	Field:   "field",
	Address: "address",
	I8:      "i8",
	I16:     "i16",
	I32:     "i32",
	I64:     "i64",
	U8:      "u8",
	U16:     "u16",
	U32:     "u32",
	U64:     "u64",
}

// LiteralTypes lists every valid literal type in declaration order.
var LiteralTypes = []LiteralType{Boolean, Field, Address, I8, I16, I32, I64, U8, U16, U32, U64}

func (t LiteralType) String() string {
	if int(t) < len(literalNames) {
		return literalNames[t]
	}
	return fmt.Sprintf("LiteralType(%d)", uint8(t))
}

func ParseLiteralType(s string) (LiteralType, error) {
	for _, t := range LiteralTypes {
		if literalNames[t] == s {
			return t, nil
		}
	}
	return Invalid, fmt.Errorf("unknown literal type %q", s)
}

// Width is the bit width of an integer type, 1 for booleans and 0 otherwise.
func (t LiteralType) Width() int {
	switch t {
	case Boolean:
		return 1
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64:
		return 64
	}
	return 0
}

func (t LiteralType) IsInteger() bool { return t >= I8 && t <= U64 }

func (t LiteralType) IsSigned() bool { return t >= I8 && t <= I64 }

// Lanes is the number of field elements a literal of this type occupies in a
// circuit. Addresses are twisted Edwards points (x, y).
func (t LiteralType) Lanes() int {
	if t == Address {
		return 2
	}
	return 1
}

// EntryType is one named, typed slot of a record layout.
type EntryType struct {
	Name string      `json:"name"`
	Type LiteralType `json:"type"`
}

// RecordType is a named record layout. Every record has an owner address and
// a u64 gates amount; Entries are the user-defined fields in declaration order.
type RecordType struct {
	Name    string      `json:"name"`
	Entries []EntryType `json:"entries"`
}

func (r *RecordType) Entry(name string) (EntryType, int, bool) {
	for i, e := range r.Entries {
		if e.Name == name {
			return e, i, true
		}
	}
	return EntryType{}, -1, false
}

// Lanes is the number of field elements a record of this layout occupies:
// owner (2), gates (1) and every entry.
func (r *RecordType) Lanes() int {
	n := Address.Lanes() + U64.Lanes()
	for _, e := range r.Entries {
		n += e.Type.Lanes()
	}
	return n
}

// Type is either a literal type or a reference to a record layout by name.
type Type struct {
	Literal LiteralType
	Record  string
}

func LiteralOf(t LiteralType) Type { return Type{Literal: t} }

func RecordOf(name string) Type { return Type{Record: name} }

func (t Type) IsRecord() bool { return t.Record != "" }

func (t Type) String() string {
	if t.IsRecord() {
		return t.Record + ".record"
	}
	return t.Literal.String()
}

func ParseType(s string) (Type, error) {
	if name, ok := strings.CutSuffix(s, ".record"); ok {
		if name == "" {
			return Type{}, fmt.Errorf("empty record name in %q", s)
		}
		return RecordOf(name), nil
	}
	lit, err := ParseLiteralType(s)
	if err != nil {
		return Type{}, err
	}
	return LiteralOf(lit), nil
}

func (t LiteralType) MarshalText() ([]byte, error) {
	if t == Invalid || int(t) >= len(literalNames) {
		return nil, fmt.Errorf("cannot encode %v", t)
	}
	return []byte(t.String()), nil
}

func (t *LiteralType) UnmarshalText(text []byte) error {
	v, err := ParseLiteralType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.IsRecord() && t.Literal == Invalid {
		return nil, fmt.Errorf("cannot encode empty type")
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Visibility is the declared visibility of an input or output.
type Visibility uint8

const (
	Public Visibility = iota + 1
	Private
	Constant
	Record
	ExternalRecord
)

var visibilityNames = map[Visibility]string{
	Public:         "public",
	Private:        "private",
	Constant:       "constant",
	Record:         "record",
	ExternalRecord: "external_record",
}

func (v Visibility) String() string {
	if s, ok := visibilityNames[v]; ok {
		return s
	}
	return fmt.Sprintf("Visibility(%d)", uint8(v))
}

func ParseVisibility(s string) (Visibility, error) {
	for v, name := range visibilityNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown visibility %q", s)
}

func (v Visibility) MarshalText() ([]byte, error) {
	if _, ok := visibilityNames[v]; !ok {
		return nil, fmt.Errorf("cannot encode %v", v)
	}
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(text []byte) error {
	p, err := ParseVisibility(string(text))
	if err != nil {
		return err
	}
	*v = p
	return nil
}
