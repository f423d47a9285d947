package vm

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test"
	"github.com/eon-protocol/eonvm/accounts"
	"github.com/eon-protocol/eonvm/circuits/hasher"
	"github.com/eon-protocol/eonvm/plaintext"
	"github.com/eon-protocol/eonvm/program"
	"github.com/stretchr/testify/require"
)

var tokenLayout = program.RecordType{Name: "token", Entries: []program.EntryType{{Name: "amount", Type: program.U64}}}

func in(t *testing.T, reg, typ string, vis program.Visibility) program.Input {
	t.Helper()
	ty, err := program.ParseType(typ)
	require.NoError(t, err)
	return program.Input{Register: reg, Type: ty, Visibility: vis}
}

func out(t *testing.T, reg, typ string, vis program.Visibility) program.Output {
	t.Helper()
	ty, err := program.ParseType(typ)
	require.NoError(t, err)
	return program.Output{Register: reg, Type: ty, Visibility: vis}
}

func function(t *testing.T, inputs []program.Input, body []string, outputs []program.Output) *program.Function {
	t.Helper()
	fn := &program.Function{Program: "test.aleo", Name: "main", Inputs: inputs, Outputs: outputs, Records: []program.RecordType{tokenLayout}}
	for _, line := range body {
		ins, err := program.ParseInstruction(line)
		require.NoError(t, err)
		fn.Instructions = append(fn.Instructions, ins)
	}
	return fn
}

func lits(ss ...string) []plaintext.Value {
	vs := make([]plaintext.Value, len(ss))
	for i, s := range ss {
		vs[i] = plaintext.MustParseLiteral(s)
	}
	return vs
}

func address(b byte) accounts.Address {
	var seed [accounts.SEED_SIZE]byte
	seed[31] = b
	return accounts.PrivateKeyFromSeed(seed).Address()
}

func TestAddScenario(t *testing.T) {
	fn := function(t,
		[]program.Input{in(t, "r0", "u16", program.Public), in(t, "r1", "u16", program.Public)},
		[]string{"add r0 r1 into r2"},
		[]program.Output{out(t, "r2", "u16", program.Public)})

	trace, c, err := Evaluate(fn, lits("1u16", "1u16"))
	require.NoError(t, err)
	for reg, want := range map[string]string{"r0": "1u16", "r1": "1u16", "r2": "2u16"} {
		v, ok := trace.Register(reg)
		require.True(t, ok, reg)
		require.Equal(t, want, v.String(), reg)
	}
	require.Len(t, trace.Outputs, 1)
	require.Equal(t, OutputPublic, trace.Outputs[0].Kind)
	require.Equal(t, "2u16", trace.Outputs[0].Value.String())
	require.Len(t, c.Public, 2)
	require.Empty(t, c.Private)
}

func binary(t *testing.T, op, typ string, a, b program.Visibility) *program.Function {
	return function(t,
		[]program.Input{in(t, "r0", typ, a), in(t, "r1", typ, b)},
		[]string{op + " r0 r1 into r2"},
		[]program.Output{out(t, "r2", typ, program.Private)})
}

func TestArithmetic(t *testing.T) {
	native := map[string]func(x, y *big.Int) *big.Int{
		"add": func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) },
		"sub": func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) },
		"mul": func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) },
		"div": func(x, y *big.Int) *big.Int { return new(big.Int).Quo(x, y) },
	}
	operands := map[program.LiteralType][2]int64{
		program.U8: {200, 7}, program.U16: {4000, 13}, program.U32: {70000, 3}, program.U64: {1 << 40, 1 << 20},
		program.I8: {-60, 2}, program.I16: {-300, -7}, program.I32: {100000, -9}, program.I64: {-(1 << 40), 1 << 10},
	}
	for typ, xy := range operands {
		for op, f := range native {
			x, y := big.NewInt(xy[0]), big.NewInt(xy[1])
			want := f(x, y)
			lo, hi := plaintext.Bounds(typ)
			if want.Cmp(lo) < 0 || want.Cmp(hi) > 0 {
				continue
			}
			name := fmt.Sprintf("%s/%s", op, typ)
			t.Run(name, func(t *testing.T) {
				fn := binary(t, op, typ.String(), program.Private, program.Private)
				trace, _, err := Evaluate(fn, lits(x.String()+typ.String(), y.String()+typ.String()))
				require.NoError(t, err)
				require.Equal(t, want.String()+typ.String(), trace.Outputs[0].Value.String())
			})
		}
	}
}

func TestFieldArithmetic(t *testing.T) {
	var x, y, sum, quo fr.Element
	x.SetUint64(10)
	y.SetUint64(4)
	sum.Add(&x, &y)
	quo.Div(&x, &y)

	trace, _, err := Evaluate(binary(t, "add", "field", program.Private, program.Private), lits("10field", "4field"))
	require.NoError(t, err)
	require.Equal(t, plaintext.Field(sum).String(), trace.Outputs[0].Value.String())

	trace, _, err = Evaluate(binary(t, "div", "field", program.Private, program.Private), lits("10field", "4field"))
	require.NoError(t, err)
	require.Equal(t, plaintext.Field(quo).String(), trace.Outputs[0].Value.String())

	_, _, err = Evaluate(binary(t, "div", "field", program.Private, program.Private), lits("10field", "0field"))
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestResultVisibility(t *testing.T) {
	cases := []struct {
		a, b program.Visibility
		want OutputKind
	}{
		{program.Public, program.Public, OutputPublic},
		{program.Private, program.Private, OutputPrivate},
		{program.Public, program.Private, OutputPrivate},
		{program.Private, program.Public, OutputPrivate},
	}
	for _, c := range cases {
		for _, op := range []string{"add", "sub", "mul", "div"} {
			trace, _, err := Evaluate(binary(t, op, "u32", c.a, c.b), lits("12u32", "4u32"))
			require.NoError(t, err)
			require.Equal(t, c.want, trace.Outputs[0].Kind, "%s %v %v", op, c.a, c.b)
		}
	}
}

func TestArithmeticErrors(t *testing.T) {
	cases := []struct {
		op, typ, a, b string
		err           error
	}{
		{"add", "u8", "255u8", "1u8", ErrOverflow},
		{"sub", "u8", "0u8", "1u8", ErrOverflow},
		{"mul", "u16", "300u16", "300u16", ErrOverflow},
		{"add", "i8", "100i8", "100i8", ErrOverflow},
		{"sub", "i8", "-100i8", "100i8", ErrOverflow},
		{"div", "i8", "-128i8", "-1i8", ErrOverflow},
		{"div", "u32", "5u32", "0u32", ErrDivisionByZero},
		{"div", "i64", "5i64", "0i64", ErrDivisionByZero},
	}
	for _, c := range cases {
		_, _, err := Evaluate(binary(t, c.op, c.typ, program.Private, program.Private), lits(c.a, c.b))
		require.ErrorIs(t, err, c.err, "%s %s %s", c.op, c.a, c.b)
		var ie *InstructionError
		require.ErrorAs(t, err, &ie)
		require.Equal(t, program.Opcode(c.op), ie.Opcode)
	}
}

func TestSignedDivisionTruncates(t *testing.T) {
	for _, c := range [][3]string{{"-7i8", "2i8", "-3i8"}, {"7i8", "-2i8", "-3i8"}, {"-7i8", "-2i8", "3i8"}, {"127i8", "-1i8", "-127i8"}, {"-128i8", "1i8", "-128i8"}} {
		trace, _, err := Evaluate(binary(t, "div", "i8", program.Private, program.Private), lits(c[0], c[1]))
		require.NoError(t, err)
		require.Equal(t, c[2], trace.Outputs[0].Value.String(), "%s / %s", c[0], c[1])
	}
}

func compare(t *testing.T, op, typ string) *program.Function {
	return function(t,
		[]program.Input{in(t, "r0", typ, program.Private), in(t, "r1", typ, program.Private)},
		[]string{op + " r0 r1 into r2"},
		[]program.Output{out(t, "r2", "boolean", program.Private)})
}

func TestIsEq(t *testing.T) {
	trace, _, err := Evaluate(compare(t, "is.eq", "u8"), lits("5u8", "5u8"))
	require.NoError(t, err)
	require.Equal(t, "true", trace.Outputs[0].Value.String())

	trace, _, err = Evaluate(compare(t, "is.eq", "u8"), lits("5u8", "3u8"))
	require.NoError(t, err)
	require.Equal(t, "false", trace.Outputs[0].Value.String())

	a, b := plaintext.AddressLiteral(address(1)), plaintext.AddressLiteral(address(2))
	trace, _, err = Evaluate(compare(t, "is.eq", "address"), []plaintext.Value{a, a})
	require.NoError(t, err)
	require.Equal(t, "true", trace.Outputs[0].Value.String())
	trace, _, err = Evaluate(compare(t, "is.eq", "address"), []plaintext.Value{a, b})
	require.NoError(t, err)
	require.Equal(t, "false", trace.Outputs[0].Value.String())
}

func TestGt(t *testing.T) {
	cases := []struct {
		typ, a, b string
		want      bool
	}{
		{"u8", "5u8", "3u8", true},
		{"u8", "3u8", "5u8", false},
		{"u8", "5u8", "5u8", false},
		{"u64", "18446744073709551615u64", "0u64", true},
		{"i8", "-1i8", "-2i8", true},
		{"i8", "-2i8", "1i8", false},
		{"i64", "1i64", "-9223372036854775808i64", true},
		{"field", "9field", "2field", true},
	}
	for _, c := range cases {
		trace, _, err := Evaluate(compare(t, "gt", c.typ), lits(c.a, c.b))
		require.NoError(t, err)
		require.Equal(t, fmt.Sprint(c.want), trace.Outputs[0].Value.String(), "%s > %s", c.a, c.b)
	}
}

func TestGtUnsupportedOperandTypes(t *testing.T) {
	fn := function(t,
		[]program.Input{in(t, "r0", "address", program.Private), in(t, "r1", "u64", program.Private)},
		[]string{"gt r0 r1 into r2"},
		[]program.Output{out(t, "r2", "boolean", program.Private)})
	_, _, err := Evaluate(fn, []plaintext.Value{plaintext.AddressLiteral(address(1)), plaintext.MustParseLiteral("4u64")})
	require.ErrorIs(t, err, ErrUnsupportedOperandTypes)

	_, _, err = Evaluate(compare(t, "gt", "boolean"), lits("true", "false"))
	require.ErrorIs(t, err, ErrUnsupportedOperandTypes)
}

func TestMismatchedWidths(t *testing.T) {
	for _, op := range []string{"add", "sub", "mul", "div", "is.eq", "gt"} {
		fn := function(t,
			[]program.Input{in(t, "r0", "u8", program.Private), in(t, "r1", "u16", program.Private)},
			[]string{op + " r0 r1 into r2"},
			[]program.Output{out(t, "r2", "u8", program.Private)})
		_, _, err := Evaluate(fn, lits("3u8", "4u16"))
		require.ErrorIs(t, err, ErrUnsupportedOperandTypes, op)
		var ie *InstructionError
		require.ErrorAs(t, err, &ie)
		require.Equal(t, program.Opcode(op), ie.Opcode)
	}

	fn := function(t,
		[]program.Input{in(t, "r0", "token.record", program.Private)},
		[]string{"hash.psd2 r0 into r1"},
		[]program.Output{out(t, "r1", "field", program.Private)})
	_, _, err := Evaluate(fn, []plaintext.Value{tokenRecord(address(1), 10, 3)})
	require.ErrorIs(t, err, ErrUnsupportedOperandTypes)
}

func ternaryFn(t *testing.T, a, b string, body string) *program.Function {
	return function(t,
		[]program.Input{in(t, "r0", "boolean", program.Private), in(t, "r1", a, program.Private), in(t, "r2", b, program.Private)},
		[]string{body},
		[]program.Output{out(t, "r3", a, program.Private)})
}

func TestTernary(t *testing.T) {
	fn := ternaryFn(t, "u32", "u32", "ternary r0 r1 r2 into r3")
	trace, _, err := Evaluate(fn, lits("true", "7u32", "9u32"))
	require.NoError(t, err)
	require.Equal(t, "7u32", trace.Outputs[0].Value.String())
	trace, _, err = Evaluate(fn, lits("false", "7u32", "9u32"))
	require.NoError(t, err)
	require.Equal(t, "9u32", trace.Outputs[0].Value.String())

	a, b := address(1), address(2)
	fn = ternaryFn(t, "address", "address", "ternary r0 r1 r2 into r3")
	trace, _, err = Evaluate(fn, []plaintext.Value{plaintext.Bool(false), plaintext.AddressLiteral(a), plaintext.AddressLiteral(b)})
	require.NoError(t, err)
	require.Equal(t, b.String(), trace.Outputs[0].Value.String())

	_, _, err = Evaluate(ternaryFn(t, "u32", "u64", "ternary r0 r1 r2 into r3"), lits("true", "7u32", "9u64"))
	require.ErrorIs(t, err, ErrMismatchedTernaryOperands)

	_, _, err = Evaluate(ternaryFn(t, "boolean", "boolean", "ternary r0 r1 r2 into r3"), lits("true", "true", "false"))
	require.ErrorIs(t, err, ErrUnsupportedTernaryOperands)

	_, _, err = Evaluate(ternaryFn(t, "u32", "u32", "ternary r0 r1 into r3"), lits("true", "7u32", "9u32"))
	require.ErrorIs(t, err, ErrWrongOperandCount)
}

func TestHashMatchesNative(t *testing.T) {
	addr := address(4)
	fn := function(t,
		[]program.Input{in(t, "r0", "u64", program.Private), in(t, "r1", "address", program.Private), in(t, "r2", "boolean", program.Public)},
		[]string{"hash.psd2 r0 r1 r2 into r3"},
		[]program.Output{out(t, "r3", "field", program.Private)})
	trace, _, err := Evaluate(fn, []plaintext.Value{plaintext.Uint(program.U64, 99), plaintext.AddressLiteral(addr), plaintext.Bool(true)})
	require.NoError(t, err)

	x, y := addr.Coordinates()
	want := hasher.Sum(fr.NewElement(99), x, y, fr.NewElement(1))
	require.Equal(t, plaintext.Field(want).String(), trace.Outputs[0].Value.String())
}

func tokenRecord(owner accounts.Address, gates, amount uint64) *plaintext.Record {
	return &plaintext.Record{Owner: owner, Gates: gates, Entries: []plaintext.Entry{{Name: "amount", Value: plaintext.Uint(program.U64, amount)}}}
}

func TestRecordMembersAndCast(t *testing.T) {
	alice, bob := address(1), address(2)
	fn := function(t,
		[]program.Input{in(t, "r0", "token.record", program.Private), in(t, "r1", "address", program.Private), in(t, "r2", "u64", program.Private)},
		[]string{
			"sub r0.gates r2 into r3",
			"is.eq r0.owner r1 into r4",
			"cast r1 r2 r3 into r5 as token.record",
			"cast r0.owner r3 r2 into r6 as token.record",
		},
		[]program.Output{
			out(t, "r5", "token.record", program.Private),
			out(t, "r6", "token.record", program.Record),
			out(t, "r4", "boolean", program.Private),
		})
	trace, _, err := Evaluate(fn, []plaintext.Value{tokenRecord(alice, 10, 0), plaintext.AddressLiteral(bob), plaintext.Uint(program.U64, 4)})
	require.NoError(t, err)
	require.Len(t, trace.Outputs, 3)

	sent := trace.Outputs[0].Value.(*plaintext.Record)
	require.Equal(t, OutputRecord, trace.Outputs[0].Kind)
	require.True(t, sent.Owner.Equal(bob))
	require.Equal(t, uint64(4), sent.Gates)
	amount, _ := sent.Entry("amount")
	require.Equal(t, "6u64", amount.String())

	change := trace.Outputs[1].Value.(*plaintext.Record)
	require.True(t, change.Owner.Equal(alice))
	require.Equal(t, uint64(6), change.Gates)
	require.Equal(t, "false", trace.Outputs[2].Value.String())

	owner, ok := trace.Register("r0")
	require.True(t, ok)
	require.IsType(t, &plaintext.Record{}, owner)
}

func TestRecordErrors(t *testing.T) {
	rec := tokenRecord(address(1), 10, 3)
	recordIn := []program.Input{in(t, "r0", "token.record", program.Private)}

	fn := function(t, recordIn, []string{"add r0.amount r0.gates into r1"}, []program.Output{out(t, "r1", "u64", program.Private)})
	_, _, err := Evaluate(fn, []plaintext.Value{rec})
	require.ErrorIs(t, err, ErrUnsupportedRecordMember)

	fn = function(t, recordIn, []string{"add r0.gates r0.gates into r1", "cast r0.owner r1 r1 into r2 as token.record"}, []program.Output{out(t, "r2", "token.record", program.Public)})
	_, _, err = Evaluate(fn, []plaintext.Value{rec})
	require.ErrorIs(t, err, ErrRecordsCannotBePublic)
	var oe *OutputError
	require.ErrorAs(t, err, &oe)
	require.Equal(t, "r2", oe.Register)

	fn.Outputs[0].Visibility = program.Private
	_, _, err = Evaluate(fn, []plaintext.Value{rec})
	require.NoError(t, err)

	fn = function(t, []program.Input{in(t, "r0", "token.record", program.Public)}, nil, nil)
	_, err = NewCircuit(fn)
	require.ErrorIs(t, err, ErrRecordMustBePrivate)

	fn = function(t, recordIn, []string{"cast r0.owner r0.gates into r1 as token.record"}, nil)
	_, _, err = Evaluate(fn, []plaintext.Value{rec})
	require.ErrorIs(t, err, ErrWrongOperandCount)

	fn = function(t, recordIn, []string{"cast r0.gates r0.gates r0.gates into r1 as token.record"}, nil)
	_, _, err = Evaluate(fn, []plaintext.Value{rec})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestInputErrors(t *testing.T) {
	fn := function(t, []program.Input{in(t, "r0", "u16", program.Constant)}, nil, nil)
	_, err := NewCircuit(fn)
	require.ErrorIs(t, err, ErrUnsupportedInputKind)

	fn = function(t, []program.Input{in(t, "r0", "token.record", program.ExternalRecord)}, nil, nil)
	_, err = NewCircuit(fn)
	require.ErrorIs(t, err, ErrUnsupportedInputKind)

	fn = function(t, []program.Input{in(t, "r0", "u16", program.Public)}, nil, nil)
	_, err = Assign(fn, lits("1u8"))
	require.ErrorIs(t, err, ErrTypeMismatch)
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, 0, ie.Index)

	_, err = Assign(fn, []plaintext.Value{tokenRecord(address(1), 1, 1)})
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Assign(fn, lits("1u16", "2u16"))
	require.ErrorIs(t, err, ErrWrongInputCount)

	fn = function(t, []program.Input{in(t, "r0", "token.record", program.Private)}, nil, nil)
	bad := &plaintext.Record{Owner: address(1), Gates: 1}
	_, err = Assign(fn, []plaintext.Value{bad})
	require.ErrorIs(t, err, ErrTypeMismatch)
	require.ErrorIs(t, err, plaintext.ErrRecordLayout)
}

func TestInstructionErrors(t *testing.T) {
	inputs := []program.Input{in(t, "r0", "u8", program.Private), in(t, "r1", "u8", program.Private)}
	cases := []struct {
		body string
		err  error
	}{
		{"add r0 5u8 into r2", ErrUnsupportedOperandKind},
		{"add r0 self.caller into r2", ErrUnsupportedOperandKind},
		{"add r0 r1", ErrMissingDestination},
		{"add r0 r9 into r2", ErrRegisterNotAssigned},
		{"add r0 r1 into r0", ErrRegisterReassigned},
		{"add r0 r1 r1 into r2", ErrWrongOperandCount},
		{"hash.psd2 into r2", ErrWrongOperandCount},
	}
	for _, c := range cases {
		fn := function(t, inputs, []string{c.body}, nil)
		_, _, err := Evaluate(fn, lits("1u8", "2u8"))
		require.ErrorIs(t, err, c.err, c.body)
	}

	fn := function(t, inputs, []string{"xor r0 r1 into r2"}, nil)
	_, err := NewCircuit(fn)
	require.ErrorIs(t, err, ErrUnsupportedInstruction)
}

func TestBankMemberIsMemoized(t *testing.T) {
	fn := function(t, []program.Input{in(t, "r0", "token.record", program.Private)}, []string{"add r0.gates r0.gates into r1"}, nil)
	bank := NewBank(fn)
	rec := &Value{Type: program.RecordOf("token"), Vis: Witness, Vars: []frontend.Variable{1, 2, 3, 4}, Layout: &tokenLayout}
	require.NoError(t, bank.Set(Register{Name: "r0"}, rec))

	first, err := bank.Member("r0", "gates")
	require.NoError(t, err)
	second, err := bank.Member("r0", "gates")
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 3, first.Vars[0])
	require.Equal(t, Witness, first.Vis)

	owner, err := bank.Member("r0", "owner")
	require.NoError(t, err)
	require.Len(t, owner.Vars, 2)

	_, err = bank.Member("r0", "amount")
	require.ErrorIs(t, err, ErrUnsupportedRecordMember)
	_, err = bank.Member("r1", "gates")
	require.ErrorIs(t, err, ErrRegisterNotAssigned)
	_, err = bank.Get(Register{Name: "r7"})
	require.ErrorIs(t, err, ErrRegisterNotFound)

	// a dotted name is a separate slot from a real register
	regs := bank.Registers()
	require.Contains(t, regs, Register{Name: "r0", Member: "gates"})
	require.NotContains(t, regs, Register{Name: "r0.gates"})
}

func TestCompiles(t *testing.T) {
	fn := function(t,
		[]program.Input{in(t, "r0", "token.record", program.Private), in(t, "r1", "address", program.Private), in(t, "r2", "u64", program.Public), in(t, "r3", "i16", program.Private)},
		[]string{
			"sub r0.gates r2 into r4",
			"div r3 r3 into r5",
			"gt r4 r2 into r6",
			"ternary r6 r4 r2 into r7",
			"hash.psd2 r7 r1 into r8",
			"cast r1 r7 r2 into r9 as token.record",
		},
		[]program.Output{out(t, "r9", "token.record", program.Private), out(t, "r8", "field", program.Private)})

	circuit, err := NewCircuit(fn)
	require.NoError(t, err)
	ccs, err := frontend.Compile(FIELD, scs.NewBuilder, circuit)
	require.NoError(t, err)

	_, assignment, err := Evaluate(fn, []plaintext.Value{tokenRecord(address(1), 10, 1), plaintext.AddressLiteral(address(2)), plaintext.Uint(program.U64, 3), plaintext.Int(program.I16, -5)})
	require.NoError(t, err)
	witness, err := frontend.NewWitness(assignment, FIELD)
	require.NoError(t, err)
	require.NoError(t, ccs.IsSolved(witness))
}

type freshBoolCircuit struct {
	X, Y frontend.Variable
}

func (c *freshBoolCircuit) Define(api frontend.API) error {
	b := NewBuilder(api)
	gt, err := b.freshBool(api.IsZero(c.X))
	if err != nil {
		return err
	}
	bools := b.bools
	lt, err := b.freshBool(api.IsZero(c.Y))
	if err != nil {
		return err
	}
	if len(b.bools) != 2 || &bools[0] != &b.bools[0] {
		return errors.New("TRUE and FALSE reallocated")
	}
	api.AssertIsEqual(gt, 1)
	api.AssertIsEqual(lt, 0)
	return nil
}

func TestFreshBoolSelectsBetweenWitnesses(t *testing.T) {
	assert := test.NewAssert(t)
	assert.NoError(test.IsSolved(&freshBoolCircuit{}, &freshBoolCircuit{X: 0, Y: 5}, FIELD))
	assert.Error(test.IsSolved(&freshBoolCircuit{}, &freshBoolCircuit{X: 1, Y: 5}, FIELD))

	ccs, err := frontend.Compile(FIELD, scs.NewBuilder, &freshBoolCircuit{})
	assert.NoError(err)
	w, err := frontend.NewWitness(&freshBoolCircuit{X: 0, Y: 5}, FIELD)
	assert.NoError(err)
	assert.NoError(ccs.IsSolved(w))
}
