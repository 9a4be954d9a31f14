//go:build !valstream_noalloc

package valstream

import (
	"math"
	"strconv"
	"strings"
)

// Kind enumerates the variants of an Owned value.
type Kind uint8

const (
	KindNone Kind = iota
	KindI64
	KindU64
	KindF64
	KindBool
	KindChar
	KindStr
	KindSeq
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindI64:
		return "i64"
	case KindU64:
		return "u64"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindStr:
		return "str"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Owned is a self-contained snapshot of a streamed value. It shares no memory
// with the producer it was captured from and implements Value, so it can be
// streamed again any number of times. The zero value is none.
type Owned struct {
	kind    Kind
	bits    uint64 // i64, u64, f64 bits, bool, char
	str     string
	seq     []Owned
	entries []OwnedEntry
}

// OwnedEntry is one key/value pair of an Owned map.
type OwnedEntry struct {
	Key   Owned
	Value Owned
}

func OwnedNone() Owned              { return Owned{} }
func OwnedI64(v int64) Owned        { return Owned{kind: KindI64, bits: uint64(v)} }
func OwnedU64(v uint64) Owned       { return Owned{kind: KindU64, bits: v} }
func OwnedF64(v float64) Owned      { return Owned{kind: KindF64, bits: math.Float64bits(v)} }
func OwnedChar(v rune) Owned        { return Owned{kind: KindChar, bits: uint64(v)} }
func OwnedStr(v string) Owned       { return Owned{kind: KindStr, str: strings.Clone(v)} }
func OwnedSeq(elems ...Owned) Owned { return Owned{kind: KindSeq, seq: elems} }

func OwnedBool(v bool) Owned {
	o := Owned{kind: KindBool}
	if v {
		o.bits = 1
	}
	return o
}

// OwnedMap builds a map preserving entry order.
func OwnedMap(entries ...OwnedEntry) Owned { return Owned{kind: KindMap, entries: entries} }

func (o Owned) Kind() Kind { return o.kind }

func (o Owned) I64() (int64, bool)   { return int64(o.bits), o.kind == KindI64 }
func (o Owned) U64() (uint64, bool)  { return o.bits, o.kind == KindU64 }
func (o Owned) F64() (float64, bool) { return math.Float64frombits(o.bits), o.kind == KindF64 }
func (o Owned) Bool() (bool, bool)   { return o.bits == 1, o.kind == KindBool }
func (o Owned) Char() (rune, bool)   { return rune(o.bits), o.kind == KindChar }
func (o Owned) Str() (string, bool)  { return o.str, o.kind == KindStr }

// Seq returns the elements of a sequence. The slice must not be modified.
func (o Owned) Seq() ([]Owned, bool) { return o.seq, o.kind == KindSeq }

// Entries returns the entries of a map in encounter order. The slice must not
// be modified.
func (o Owned) Entries() ([]OwnedEntry, bool) { return o.entries, o.kind == KindMap }

// Len returns the number of elements or entries, 0 for primitives.
func (o Owned) Len() int {
	switch o.kind {
	case KindSeq:
		return len(o.seq)
	case KindMap:
		return len(o.entries)
	}
	return 0
}

// Stream re-streams the snapshot.
func (o Owned) Stream(d *Driver) error {
	switch o.kind {
	case KindNone:
		return d.None()
	case KindI64:
		return d.I64(int64(o.bits))
	case KindU64:
		return d.U64(o.bits)
	case KindF64:
		return d.F64(math.Float64frombits(o.bits))
	case KindBool:
		return d.Bool(o.bits == 1)
	case KindChar:
		return d.Char(rune(o.bits))
	case KindStr:
		return d.Str(o.str)
	case KindSeq:
		if err := d.SeqBegin(len(o.seq)); err != nil {
			return err
		}
		for i := range o.seq {
			if err := d.SeqElemBegin(); err != nil {
				return err
			}
			if err := o.seq[i].Stream(d); err != nil {
				return err
			}
		}
		return d.SeqEnd()
	case KindMap:
		if err := d.MapBegin(len(o.entries)); err != nil {
			return err
		}
		for i := range o.entries {
			if err := d.MapKeyBegin(); err != nil {
				return err
			}
			if err := o.entries[i].Key.Stream(d); err != nil {
				return err
			}
			if err := d.MapValueBegin(); err != nil {
				return err
			}
			if err := o.entries[i].Value.Stream(d); err != nil {
				return err
			}
		}
		return d.MapEnd()
	}
	return invalidState("owned value of unknown kind " + strconv.Itoa(int(o.kind)))
}

// Equal reports structural equality. Floats compare by bit pattern, so a NaN
// snapshot equals its own re-snapshot.
func (o Owned) Equal(other Owned) bool {
	if o.kind != other.kind || o.bits != other.bits || o.str != other.str {
		return false
	}
	if len(o.seq) != len(other.seq) || len(o.entries) != len(other.entries) {
		return false
	}
	for i := range o.seq {
		if !o.seq[i].Equal(other.seq[i]) {
			return false
		}
	}
	for i := range o.entries {
		if !o.entries[i].Key.Equal(other.entries[i].Key) || !o.entries[i].Value.Equal(other.entries[i].Value) {
			return false
		}
	}
	return true
}

// String renders a compact debug form, e.g. {1: {2: 42}}.
func (o Owned) String() string {
	var b strings.Builder
	o.appendTo(&b)
	return b.String()
}

func (o Owned) appendTo(b *strings.Builder) {
	switch o.kind {
	case KindNone:
		b.WriteString("none")
	case KindI64:
		b.WriteString(strconv.FormatInt(int64(o.bits), 10))
	case KindU64:
		b.WriteString(strconv.FormatUint(o.bits, 10))
	case KindF64:
		b.WriteString(strconv.FormatFloat(math.Float64frombits(o.bits), 'g', -1, 64))
	case KindBool:
		b.WriteString(strconv.FormatBool(o.bits == 1))
	case KindChar:
		b.WriteString(strconv.QuoteRune(rune(o.bits)))
	case KindStr:
		b.WriteString(strconv.Quote(o.str))
	case KindSeq:
		b.WriteByte('[')
		for i := range o.seq {
			if i > 0 {
				b.WriteString(", ")
			}
			o.seq[i].appendTo(b)
		}
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')
		for i := range o.entries {
			if i > 0 {
				b.WriteString(", ")
			}
			o.entries[i].Key.appendTo(b)
			b.WriteString(": ")
			o.entries[i].Value.appendTo(b)
		}
		b.WriteByte('}')
	}
}
