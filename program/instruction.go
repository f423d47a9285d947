package program

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Opcode string

const (
	OpAdd      Opcode = "add"
	OpSub      Opcode = "sub"
	OpMul      Opcode = "mul"
	OpDiv      Opcode = "div"
	OpGt       Opcode = "gt"
	OpIsEq     Opcode = "is.eq"
	OpCast     Opcode = "cast"
	OpTernary  Opcode = "ternary"
	OpHashPsd2 Opcode = "hash.psd2"
)

// Instruction is one line of a function body: "add r0 r1 into r2" or
// "cast r0 r1 r2 into r3 as token.record". Type carries the "as" clause.
type Instruction struct {
	Opcode       Opcode    `json:"opcode"`
	Operands     []Operand `json:"operands"`
	Destinations []string  `json:"destinations"`
	Type         *Type     `json:"type,omitempty"`
}

// Destination returns the first destination register. Instructions write a
// single result; extra destinations are ignored.
func (me *Instruction) Destination() (string, bool) {
	if len(me.Destinations) == 0 || me.Destinations[0] == "" {
		return "", false
	}
	return me.Destinations[0], true
}

func (me Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(string(me.Opcode))
	for _, o := range me.Operands {
		sb.WriteByte(' ')
		sb.WriteString(o.String())
	}
	if len(me.Destinations) > 0 {
		sb.WriteString(" into ")
		sb.WriteString(strings.Join(me.Destinations, " "))
	}
	if me.Type != nil {
		sb.WriteString(" as ")
		sb.WriteString(me.Type.String())
	}
	return sb.String()
}

// ParseInstruction reads the textual form produced by String. It is used by
// the CLI and tests to write functions compactly.
func ParseInstruction(s string) (Instruction, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Instruction{}, fmt.Errorf("empty instruction")
	}
	ins := Instruction{Opcode: Opcode(fields[0])}
	mode := 0
	for _, f := range fields[1:] {
		switch {
		case f == "into":
			mode = 1
			continue
		case f == "as":
			mode = 2
			continue
		}
		switch mode {
		case 0:
			o, err := ParseOperand(f)
			if err != nil {
				return Instruction{}, fmt.Errorf("%s: %w", s, err)
			}
			ins.Operands = append(ins.Operands, o)
		case 1:
			ins.Destinations = append(ins.Destinations, f)
		case 2:
			t, err := ParseType(f)
			if err != nil {
				return Instruction{}, fmt.Errorf("%s: %w", s, err)
			}
			ins.Type = &t
		}
	}
	return ins, nil
}

func (me Instruction) MarshalJSON() ([]byte, error) {
	type plain Instruction
	if me.Operands == nil {
		me.Operands = []Operand{}
	}
	if me.Destinations == nil {
		me.Destinations = []string{}
	}
	return json.Marshal(plain(me))
}
