package plaintext

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eon-protocol/eonvm/accounts"
	"github.com/eon-protocol/eonvm/circuits/hasher"
	"github.com/eon-protocol/eonvm/program"
)

var (
	ErrMalformedRecord     = errors.New("malformed record")
	ErrRecordLayout        = errors.New("record does not match layout")
	ErrDuplicateRecordItem = errors.New("duplicate record entry")
)

type Entry struct {
	Name  string
	Value Literal
}

// Record is an owned, value-bearing object. Entries keep their declaration
// order; the JSON form preserves it so a record round-trips byte for byte.
type Record struct {
	Owner   accounts.Address
	Gates   uint64
	Entries []Entry
	Nonce   fr.Element
}

func (*Record) isValue() {}

func (me *Record) Entry(name string) (Literal, bool) {
	for _, e := range me.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return Literal{}, false
}

// Check verifies the record carries exactly the entries of layout, in order
// and with matching types.
func (me *Record) Check(layout *program.RecordType) error {
	if len(me.Entries) != len(layout.Entries) {
		return fmt.Errorf("%w %s: %d entries, want %d", ErrRecordLayout, layout.Name, len(me.Entries), len(layout.Entries))
	}
	for i, e := range layout.Entries {
		got := me.Entries[i]
		if got.Name != e.Name || got.Value.LiteralType() != e.Type {
			return fmt.Errorf("%w %s: entry %d is %s %v, want %s %v", ErrRecordLayout, layout.Name, i, got.Name, got.Value.LiteralType(), e.Name, e.Type)
		}
	}
	return nil
}

// Lanes is owner.x, owner.y, gates, then every entry. The nonce is not part
// of the circuit encoding.
func (me *Record) Lanes() []fr.Element {
	x, y := me.Owner.Coordinates()
	lanes := []fr.Element{x, y, fr.NewElement(me.Gates)}
	for _, e := range me.Entries {
		lanes = append(lanes, e.Value.Lanes()...)
	}
	return lanes
}

// RecordFromLanes rebuilds a record of the given layout. The nonce is zero.
func RecordFromLanes(layout *program.RecordType, lanes []fr.Element) (*Record, error) {
	if len(lanes) != layout.Lanes() {
		return nil, fmt.Errorf("%w: record %s takes %d, got %d", ErrLaneCount, layout.Name, layout.Lanes(), len(lanes))
	}
	owner, err := LiteralFromLanes(program.Address, lanes[:2])
	if err != nil {
		return nil, err
	}
	gates, err := LiteralFromLanes(program.U64, lanes[2:3])
	if err != nil {
		return nil, err
	}
	r := &Record{Owner: owner.Address(), Gates: gates.Int().Uint64()}
	off := 3
	for _, e := range layout.Entries {
		n := e.Type.Lanes()
		v, err := LiteralFromLanes(e.Type, lanes[off:off+n])
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.Name, err)
		}
		r.Entries = append(r.Entries, Entry{Name: e.Name, Value: v})
		off += n
	}
	return r, nil
}

// Commitment binds every lane and the nonce.
func (me *Record) Commitment() fr.Element {
	return hasher.DomainSum(hasher.DOMAIN_COMMITMENT, append(me.Lanes(), me.Nonce)...)
}

func (me *Record) String() string {
	b, err := me.MarshalJSON()
	if err != nil {
		return "<invalid record>"
	}
	return string(b)
}

func (me *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"owner":`)
	if err := writeJSONString(&buf, me.Owner.String()); err != nil {
		return nil, err
	}
	buf.WriteString(`,"gates":`)
	if err := writeJSONString(&buf, Uint(program.U64, me.Gates).String()); err != nil {
		return nil, err
	}
	buf.WriteString(`,"entries":{`)
	for i, e := range me.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, e.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, e.Value.String()); err != nil {
			return nil, err
		}
	}
	nonce := me.Nonce.Bytes()
	buf.WriteString(`},"nonce":`)
	if err := writeJSONString(&buf, hex.EncodeToString(nonce[:])); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func (me *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	var r Record
	seen := map[string]bool{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate key %q", ErrMalformedRecord, key)
		}
		seen[key] = true
		switch key {
		case "owner":
			s, err := stringToken(dec)
			if err != nil {
				return err
			}
			if r.Owner, err = accounts.ParseAddress(s); err != nil {
				return err
			}
		case "gates":
			s, err := stringToken(dec)
			if err != nil {
				return err
			}
			g, err := ParseLiteral(s)
			if err != nil {
				return err
			}
			if g.LiteralType() != program.U64 {
				return fmt.Errorf("%w: gates must be u64, got %s", ErrMalformedRecord, s)
			}
			r.Gates = g.Int().Uint64()
		case "entries":
			if r.Entries, err = readEntries(dec); err != nil {
				return err
			}
		case "nonce":
			s, err := stringToken(dec)
			if err != nil {
				return err
			}
			b, err := hex.DecodeString(s)
			if err != nil || len(b) != fr.Bytes {
				return fmt.Errorf("%w: nonce %q", ErrMalformedRecord, s)
			}
			if err := r.Nonce.SetBytesCanonical(b); err != nil {
				return fmt.Errorf("%w: nonce: %v", ErrMalformedRecord, err)
			}
		default:
			return fmt.Errorf("%w: unknown key %q", ErrMalformedRecord, key)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	for _, k := range []string{"owner", "gates", "entries", "nonce"} {
		if !seen[k] {
			return fmt.Errorf("%w: missing %q", ErrMalformedRecord, k)
		}
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data", ErrMalformedRecord)
	}
	*me = r
	return nil
}

func readEntries(dec *json.Decoder) ([]Entry, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	entries := []Entry{}
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Name == name {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateRecordItem, name)
			}
		}
		s, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		v, err := ParseLiteral(s)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Value: v})
	}
	return entries, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedRecord, want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %v", ErrMalformedRecord, tok)
	}
	return s, nil
}

// ParseValue reads a literal string or a record JSON object.
func ParseValue(s string) (Value, error) {
	if len(s) > 0 && s[0] == '{' {
		var r Record
		if err := r.UnmarshalJSON([]byte(s)); err != nil {
			return nil, err
		}
		return &r, nil
	}
	return ParseLiteral(s)
}
