package program

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenFunction(t *testing.T) *Function {
	t.Helper()
	cast, err := ParseInstruction("cast r1 r2 r0.amount into r3 as token.record")
	require.NoError(t, err)
	return &Function{
		Program: "token.aleo",
		Name:    "mint",
		Inputs: []Input{
			{Register: "r0", Type: RecordOf("token"), Visibility: Private},
			{Register: "r1", Type: LiteralOf(Address), Visibility: Private},
			{Register: "r2", Type: LiteralOf(U64), Visibility: Public},
		},
		Instructions: []Instruction{cast},
		Outputs:      []Output{{Register: "r3", Type: RecordOf("token"), Visibility: Private}},
		Records:      []RecordType{{Name: "token", Entries: []EntryType{{Name: "amount", Type: U64}}}},
	}
}

func TestParseOperand(t *testing.T) {
	cases := []struct {
		in   string
		want Operand
	}{
		{"r0", Reg("r0")},
		{"r12.owner", Member("r12", "owner")},
		{"5u64", Operand{Kind: OperandLiteral, Literal: "5u64"}},
		{"-3i8", Operand{Kind: OperandLiteral, Literal: "-3i8"}},
		{"true", Operand{Kind: OperandLiteral, Literal: "true"}},
		{"credits.aleo", Operand{Kind: OperandProgramID, Program: "credits.aleo"}},
		{"self.caller", Operand{Kind: OperandCaller}},
	}
	for _, c := range cases {
		got, err := ParseOperand(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
		require.Equal(t, c.in, got.String())
	}
	_, err := ParseOperand("r0.owner.x")
	require.Error(t, err)
	_, err = ParseOperand("")
	require.Error(t, err)
}

func TestParseType(t *testing.T) {
	for _, lt := range LiteralTypes {
		got, err := ParseType(lt.String())
		require.NoError(t, err)
		require.Equal(t, LiteralOf(lt), got)
	}
	got, err := ParseType("token.record")
	require.NoError(t, err)
	require.True(t, got.IsRecord())
	require.Equal(t, "token", got.Record)

	_, err = ParseType("u128")
	require.Error(t, err)
	_, err = ParseType(".record")
	require.Error(t, err)
}

func TestLiteralTypeWidth(t *testing.T) {
	require.Equal(t, 8, I8.Width())
	require.Equal(t, 64, U64.Width())
	require.Equal(t, 1, Boolean.Width())
	require.Equal(t, 0, Field.Width())
	require.True(t, I32.IsSigned())
	require.False(t, U32.IsSigned())
	require.False(t, Field.IsInteger())
	require.Equal(t, 2, Address.Lanes())
}

func TestParseInstruction(t *testing.T) {
	ins, err := ParseInstruction("add r0 r1 into r2")
	require.NoError(t, err)
	require.Equal(t, OpAdd, ins.Opcode)
	require.Equal(t, []Operand{Reg("r0"), Reg("r1")}, ins.Operands)
	dst, ok := ins.Destination()
	require.True(t, ok)
	require.Equal(t, "r2", dst)
	require.Equal(t, "add r0 r1 into r2", ins.String())

	ins, err = ParseInstruction("gt r0 r1")
	require.NoError(t, err)
	_, ok = ins.Destination()
	require.False(t, ok)
}

func TestFunctionRoundTrip(t *testing.T) {
	fn := tokenFunction(t)
	require.NoError(t, fn.Validate())

	var buf bytes.Buffer
	_, err := fn.WriteTo(&buf)
	require.NoError(t, err)

	got, err := LoadFunction(&buf)
	require.NoError(t, err)
	require.Equal(t, fn, got)
	require.Equal(t, fn.Fingerprint(), got.Fingerprint())
	require.Equal(t, "token.aleo/mint", got.ID())

	rt, err := got.RecordType("token")
	require.NoError(t, err)
	require.Equal(t, 4, rt.Lanes())
	_, idx, ok := rt.Entry("amount")
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func TestFunctionValidate(t *testing.T) {
	fn := tokenFunction(t)
	fn.Records = nil
	require.ErrorIs(t, fn.Validate(), ErrUnknownRecordType)

	fn = tokenFunction(t)
	fn.Records[0].Entries = append(fn.Records[0].Entries, EntryType{Name: "owner", Type: Address})
	require.ErrorIs(t, fn.Validate(), ErrMalformedFunction)

	fn = tokenFunction(t)
	fn.Name = ""
	require.ErrorIs(t, fn.Validate(), ErrMalformedFunction)
}

func TestFingerprintTracksShape(t *testing.T) {
	a := tokenFunction(t)
	b := tokenFunction(t)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	b.Inputs[2].Visibility = Private
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
