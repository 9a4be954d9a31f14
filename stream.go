package valstream

import "fmt"

// NoHint is the size hint for sequences and maps of unknown length.
const NoHint = -1

// Arguments is an opaque displayable token handed to Stream.Fmt. It is built
// lazily: nothing is formatted until String is called.
type Arguments struct {
	format string
	args   []any
}

// Args captures a format string and its operands.
func Args(format string, args ...any) Arguments { return Arguments{format: format, args: args} }

func (a Arguments) String() string { return fmt.Sprintf(a.format, a.args...) }

// Stream receives the structure of a value. Fmt is the only required method:
// it is the fallback for every primitive whose capability interface the
// consumer does not implement. Structural capabilities that are not
// implemented are treated as successful no-ops.
//
// A consumer declares which kinds of data it understands by the capability
// interfaces it implements. Overriding only U64 and failing Fmt is the way to
// ask "is this value a u64".
type Stream interface {
	Fmt(a Arguments) error
}

type I64Stream interface{ I64(v int64) error }
type U64Stream interface{ U64(v uint64) error }
type F64Stream interface{ F64(v float64) error }
type BoolStream interface{ Bool(v bool) error }
type CharStream interface{ Char(v rune) error }
type StrStream interface{ Str(v string) error }
type NoneStream interface{ None() error }

// SeqStream receives sequences. SeqElem announces that the next item is an
// element. hint is NoHint when the length is unknown.
type SeqStream interface {
	SeqBegin(hint int) error
	SeqElem() error
	SeqEnd() error
}

// MapStream receives maps. MapKey and MapValue announce that the next item is
// a key or a value.
type MapStream interface {
	MapBegin(hint int) error
	MapKey() error
	MapValue() error
	MapEnd() error
}

// MapEntryStream is implemented by consumers that want to know when a key or
// value is about to be streamed as its own nested call sequence. Consumers
// without it receive MapKey/MapValue instead.
type MapEntryStream interface {
	MapKeyBegin() error
	MapValueBegin() error
}

// EndStream is notified once after the root value has been fully reported.
type EndStream interface{ End() error }

// FullStream implements every capability.
type FullStream interface {
	Stream
	I64Stream
	U64Stream
	F64Stream
	BoolStream
	CharStream
	StrStream
	NoneStream
	SeqStream
	MapStream
	MapEntryStream
	EndStream
}

// Base can be embedded by consumers that handle only a few capabilities. Its
// Fmt rejects every value, so a consumer embedding Base and overriding
// nothing accepts nothing.
type Base struct{}

func (Base) Fmt(Arguments) error { return Unsupported("value not supported by this stream") }

// Complete resolves the capabilities of s once and returns a FullStream that
// applies the fallback rules: primitives go to Fmt, structural calls default
// to no-ops, MapKeyBegin/MapValueBegin default to MapKey/MapValue.
func Complete(s Stream) FullStream {
	if f, ok := s.(FullStream); ok {
		return f
	}
	c := &completed{fmt: s}
	c.i64, _ = s.(I64Stream)
	c.u64, _ = s.(U64Stream)
	c.f64, _ = s.(F64Stream)
	c.bool, _ = s.(BoolStream)
	c.char, _ = s.(CharStream)
	c.str, _ = s.(StrStream)
	c.none, _ = s.(NoneStream)
	c.seq, _ = s.(SeqStream)
	c.m, _ = s.(MapStream)
	c.entry, _ = s.(MapEntryStream)
	c.end, _ = s.(EndStream)
	return c
}

type completed struct {
	fmt   Stream
	i64   I64Stream
	u64   U64Stream
	f64   F64Stream
	bool  BoolStream
	char  CharStream
	str   StrStream
	none  NoneStream
	seq   SeqStream
	m     MapStream
	entry MapEntryStream
	end   EndStream
}

func (c *completed) Fmt(a Arguments) error { return c.fmt.Fmt(a) }

func (c *completed) I64(v int64) error {
	if c.i64 != nil {
		return c.i64.I64(v)
	}
	return c.fmt.Fmt(Args("%d", v))
}

func (c *completed) U64(v uint64) error {
	if c.u64 != nil {
		return c.u64.U64(v)
	}
	return c.fmt.Fmt(Args("%d", v))
}

func (c *completed) F64(v float64) error {
	if c.f64 != nil {
		return c.f64.F64(v)
	}
	return c.fmt.Fmt(Args("%v", v))
}

func (c *completed) Bool(v bool) error {
	if c.bool != nil {
		return c.bool.Bool(v)
	}
	return c.fmt.Fmt(Args("%t", v))
}

func (c *completed) Char(v rune) error {
	if c.char != nil {
		return c.char.Char(v)
	}
	return c.fmt.Fmt(Args("%q", v))
}

func (c *completed) Str(v string) error {
	if c.str != nil {
		return c.str.Str(v)
	}
	return c.fmt.Fmt(Args("%q", v))
}

func (c *completed) None() error {
	if c.none != nil {
		return c.none.None()
	}
	return c.fmt.Fmt(Args("none"))
}

func (c *completed) SeqBegin(hint int) error {
	if c.seq == nil {
		return nil
	}
	return c.seq.SeqBegin(hint)
}

func (c *completed) SeqElem() error {
	if c.seq == nil {
		return nil
	}
	return c.seq.SeqElem()
}

func (c *completed) SeqEnd() error {
	if c.seq == nil {
		return nil
	}
	return c.seq.SeqEnd()
}

func (c *completed) MapBegin(hint int) error {
	if c.m == nil {
		return nil
	}
	return c.m.MapBegin(hint)
}

func (c *completed) MapKey() error {
	if c.m == nil {
		return nil
	}
	return c.m.MapKey()
}

func (c *completed) MapValue() error {
	if c.m == nil {
		return nil
	}
	return c.m.MapValue()
}

func (c *completed) MapKeyBegin() error {
	if c.entry != nil {
		return c.entry.MapKeyBegin()
	}
	return c.MapKey()
}

func (c *completed) MapValueBegin() error {
	if c.entry != nil {
		return c.entry.MapValueBegin()
	}
	return c.MapValue()
}

func (c *completed) MapEnd() error {
	if c.m == nil {
		return nil
	}
	return c.m.MapEnd()
}

func (c *completed) End() error {
	if c.end == nil {
		return nil
	}
	return c.end.End()
}
