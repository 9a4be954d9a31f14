package snapshot

import (
	"encoding/binary"
	"math"

	"github.com/reoring/valstream"
	"github.com/reoring/valstream/internal/wire"
)

// bodyWriter is the consumer writing the snapshot body.
type bodyWriter struct {
	buf []byte
}

func (w *bodyWriter) tag(t byte) error {
	w.buf = append(w.buf, t)
	return nil
}

func (w *bodyWriter) uvarint(t byte, v uint64) error {
	w.buf = binary.AppendUvarint(append(w.buf, t), v)
	return nil
}

func (w *bodyWriter) str(s string) error {
	w.buf = append(binary.AppendUvarint(append(w.buf, wire.TagStr), uint64(len(s))), s...)
	return nil
}

// hint encodes NoHint as 0 and n as n+1.
func hint(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n) + 1
}

func (w *bodyWriter) I64(v int64) error {
	w.buf = binary.AppendVarint(append(w.buf, wire.TagI64), v)
	return nil
}

func (w *bodyWriter) F64(v float64) error {
	w.buf = binary.LittleEndian.AppendUint64(append(w.buf, wire.TagF64), math.Float64bits(v))
	return nil
}

func (w *bodyWriter) Fmt(a valstream.Arguments) error { return w.str(a.String()) }
func (w *bodyWriter) Str(v string) error              { return w.str(v) }
func (w *bodyWriter) U64(v uint64) error              { return w.uvarint(wire.TagU64, v) }
func (w *bodyWriter) Char(v rune) error               { return w.uvarint(wire.TagChar, uint64(v)) }
func (w *bodyWriter) Bool(v bool) error               { return w.tag(wire.Bool(v)) }
func (w *bodyWriter) None() error                     { return w.tag(wire.TagNone) }
func (w *bodyWriter) SeqBegin(n int) error            { return w.uvarint(wire.TagSeqBegin, hint(n)) }
func (w *bodyWriter) SeqElem() error                  { return nil }
func (w *bodyWriter) SeqEnd() error                   { return w.tag(wire.TagSeqEnd) }
func (w *bodyWriter) MapBegin(n int) error            { return w.uvarint(wire.TagMapBegin, hint(n)) }
func (w *bodyWriter) MapKey() error                   { return nil }
func (w *bodyWriter) MapValue() error                 { return nil }
func (w *bodyWriter) MapEnd() error                   { return w.tag(wire.TagMapEnd) }

// bodyValue replays a body. Each Stream uses its own cursor.
type bodyValue []byte

func (b bodyValue) Stream(d *valstream.Driver) error {
	r := &bodyReader{b: b}
	if err := r.item(d); err != nil {
		return err
	}
	if r.off != len(r.b) {
		return valstream.Msg("trailing data after snapshot root")
	}
	return nil
}

var errTruncated = valstream.Msg("snapshot body truncated")

type bodyReader struct {
	b   []byte
	off int
}

func (r *bodyReader) readByte() (byte, error) {
	if r.off >= len(r.b) {
		return 0, errTruncated
	}
	c := r.b[r.off]
	r.off++
	return c, nil
}

func (r *bodyReader) peek() (byte, error) {
	if r.off >= len(r.b) {
		return 0, errTruncated
	}
	return r.b[r.off], nil
}

func (r *bodyReader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.b[r.off:])
	if n <= 0 {
		return 0, errTruncated
	}
	r.off += n
	return v, nil
}

func (r *bodyReader) varint() (int64, error) {
	v, n := binary.Varint(r.b[r.off:])
	if n <= 0 {
		return 0, errTruncated
	}
	r.off += n
	return v, nil
}

func (r *bodyReader) hint() (int, error) {
	h, err := r.uvarint()
	if err != nil {
		return 0, err
	}
	if h > math.MaxInt32 {
		return 0, valstream.Errorf("snapshot size hint %d out of range", h-1)
	}
	// Every child takes at least one byte, so no honest hint exceeds what is left.
	return min(int(h)-1, len(r.b)-r.off), nil
}

// item streams one value. Recursion is bounded by the driver's depth check.
func (r *bodyReader) item(d *valstream.Driver) error {
	t, err := r.readByte()
	if err != nil {
		return err
	}
	switch t {
	case wire.TagNone:
		return d.None()
	case wire.TagFalse, wire.TagTrue:
		return d.Bool(t == wire.TagTrue)
	case wire.TagI64:
		v, err := r.varint()
		if err != nil {
			return err
		}
		return d.I64(v)
	case wire.TagU64:
		v, err := r.uvarint()
		if err != nil {
			return err
		}
		return d.U64(v)
	case wire.TagF64:
		if len(r.b)-r.off < 8 {
			return errTruncated
		}
		v := math.Float64frombits(binary.LittleEndian.Uint64(r.b[r.off:]))
		r.off += 8
		return d.F64(v)
	case wire.TagChar:
		v, err := r.uvarint()
		if err != nil {
			return err
		}
		if v > math.MaxInt32 {
			return valstream.Errorf("snapshot char %d out of range", v)
		}
		return d.Char(rune(v))
	case wire.TagStr:
		n, err := r.uvarint()
		if err != nil {
			return err
		}
		if n > uint64(len(r.b)-r.off) {
			return errTruncated
		}
		s := string(r.b[r.off : r.off+int(n)])
		r.off += int(n)
		return d.Str(s)
	case wire.TagSeqBegin:
		return r.seq(d)
	case wire.TagMapBegin:
		return r.mapping(d)
	}
	return valstream.Errorf("unexpected snapshot tag 0x%02x at offset %d", t, r.off-1)
}

func (r *bodyReader) seq(d *valstream.Driver) error {
	h, err := r.hint()
	if err != nil {
		return err
	}
	if err := d.SeqBegin(h); err != nil {
		return err
	}
	for {
		t, err := r.peek()
		if err != nil {
			return err
		}
		if t == wire.TagSeqEnd {
			r.off++
			return d.SeqEnd()
		}
		if err := d.SeqElemBegin(); err != nil {
			return err
		}
		if err := r.item(d); err != nil {
			return err
		}
	}
}

func (r *bodyReader) mapping(d *valstream.Driver) error {
	h, err := r.hint()
	if err != nil {
		return err
	}
	if err := d.MapBegin(h); err != nil {
		return err
	}
	for {
		t, err := r.peek()
		if err != nil {
			return err
		}
		if t == wire.TagMapEnd {
			r.off++
			return d.MapEnd()
		}
		if err := d.MapKeyBegin(); err != nil {
			return err
		}
		if err := r.item(d); err != nil {
			return err
		}
		if t, err = r.peek(); err != nil {
			return err
		}
		if t == wire.TagMapEnd {
			return valstream.Errorf("snapshot map key without value at offset %d", r.off)
		}
		if err := d.MapValueBegin(); err != nil {
			return err
		}
		if err := r.item(d); err != nil {
			return err
		}
	}
}
