package valstream_test

import (
	"fmt"

	"github.com/reoring/valstream"
)

// recorder logs every call it receives. It implements every capability
// except MapEntryStream, so MapKeyBegin/MapValueBegin arrive as MapKey/MapValue.
type recorder struct {
	calls []string
	// failOn makes the named call fail with failErr.
	failOn  string
	failErr error
}

func (r *recorder) rec(call string) error {
	r.calls = append(r.calls, call)
	if r.failOn != "" && call == r.failOn {
		return r.failErr
	}
	return nil
}

func hint(n int) string {
	if n < 0 {
		return "None"
	}
	return fmt.Sprintf("Some(%d)", n)
}

func (r *recorder) Fmt(a valstream.Arguments) error { return r.rec("fmt(" + a.String() + ")") }
func (r *recorder) I64(v int64) error               { return r.rec(fmt.Sprintf("i64(%d)", v)) }
func (r *recorder) U64(v uint64) error              { return r.rec(fmt.Sprintf("u64(%d)", v)) }
func (r *recorder) F64(v float64) error             { return r.rec(fmt.Sprintf("f64(%v)", v)) }
func (r *recorder) Bool(v bool) error               { return r.rec(fmt.Sprintf("bool(%t)", v)) }
func (r *recorder) Char(v rune) error               { return r.rec(fmt.Sprintf("char(%c)", v)) }
func (r *recorder) Str(v string) error              { return r.rec(fmt.Sprintf("str(%s)", v)) }
func (r *recorder) None() error                     { return r.rec("none") }
func (r *recorder) SeqBegin(n int) error            { return r.rec("seq_begin(" + hint(n) + ")") }
func (r *recorder) SeqElem() error                  { return r.rec("seq_elem") }
func (r *recorder) SeqEnd() error                   { return r.rec("seq_end") }
func (r *recorder) MapBegin(n int) error            { return r.rec("map_begin(" + hint(n) + ")") }
func (r *recorder) MapKey() error                   { return r.rec("map_key") }
func (r *recorder) MapValue() error                 { return r.rec("map_value") }
func (r *recorder) MapEnd() error                   { return r.rec("map_end") }
func (r *recorder) End() error                      { return r.rec("end") }

// nestedMap streams {1: {2: 42}}, leaning on the driver's error latch: only
// the last call's error needs to be returned.
var nestedMap = valstream.ValueFunc(func(d *valstream.Driver) error {
	d.MapBegin(1)
	d.MapKey(valstream.U64(1))
	d.MapValueBegin()
	d.MapBegin(1)
	d.MapKey(valstream.U64(2))
	d.MapValue(valstream.U64(42))
	d.MapEnd()
	return d.MapEnd()
})

// nested returns a producer of depth sequences wrapped around 0.
func nested(depth int) valstream.Value {
	if depth == 0 {
		return valstream.U64(0)
	}
	return valstream.Seq{nested(depth - 1)}
}

// nestedMaps returns a producer of depth maps, each with a single entry.
func nestedMaps(depth int) valstream.Value {
	if depth == 0 {
		return valstream.Str("leaf")
	}
	return valstream.Map{{Key: valstream.U64(uint64(depth)), Value: nestedMaps(depth - 1)}}
}
