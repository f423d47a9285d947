package program

import (
	"fmt"
	"strings"
)

type OperandKind uint8

const (
	OperandRegister OperandKind = iota + 1
	OperandLiteral
	OperandProgramID
	OperandCaller
)

func (k OperandKind) String() string {
	switch k {
	case OperandRegister:
		return "register"
	case OperandLiteral:
		return "literal"
	case OperandProgramID:
		return "program id"
	case OperandCaller:
		return "caller"
	}
	return fmt.Sprintf("OperandKind(%d)", uint8(k))
}

// Operand is one argument of an instruction. Register operands may name a
// record member ("r0.owner"), in which case Member is set.
type Operand struct {
	Kind     OperandKind
	Register string
	Member   string
	Literal  string
	Program  string
}

func Reg(name string) Operand { return Operand{Kind: OperandRegister, Register: name} }

func Member(name, member string) Operand {
	return Operand{Kind: OperandRegister, Register: name, Member: member}
}

func ParseOperand(s string) (Operand, error) {
	switch {
	case s == "":
		return Operand{}, fmt.Errorf("empty operand")
	case s == "self.caller":
		return Operand{Kind: OperandCaller}, nil
	case strings.HasSuffix(s, ".aleo"):
		return Operand{Kind: OperandProgramID, Program: s}, nil
	case isIdentifier(s):
		if s == "true" || s == "false" {
			return Operand{Kind: OperandLiteral, Literal: s}, nil
		}
		return Reg(s), nil
	}
	if base, member, ok := strings.Cut(s, "."); ok && isIdentifier(base) && isIdentifier(member) {
		return Member(base, member), nil
	}
	if c := s[0]; c == '-' || (c >= '0' && c <= '9') || strings.HasPrefix(s, "aleo1") {
		return Operand{Kind: OperandLiteral, Literal: s}, nil
	}
	return Operand{}, fmt.Errorf("malformed operand %q", s)
}

func (o Operand) IsMember() bool { return o.Kind == OperandRegister && o.Member != "" }

func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		if o.Member != "" {
			return o.Register + "." + o.Member
		}
		return o.Register
	case OperandLiteral:
		return o.Literal
	case OperandProgramID:
		return o.Program
	case OperandCaller:
		return "self.caller"
	}
	return "<invalid>"
}

func (o Operand) MarshalText() ([]byte, error) {
	if o.Kind == 0 {
		return nil, fmt.Errorf("cannot encode empty operand")
	}
	return []byte(o.String()), nil
}

func (o *Operand) UnmarshalText(text []byte) error {
	v, err := ParseOperand(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
