// Package trace logs every call a consumer receives.
//
// Wrap decorates a consumer: each call is logged at debug level with its
// arguments and the nesting depth, then forwarded. Errors returned by the
// consumer are logged at warn level and passed back unchanged.
package trace

import (
	"github.com/rs/zerolog"

	"github.com/reoring/valstream"
	"github.com/reoring/valstream/internal/logging"
)

// Stream is a logging consumer decorator.
type Stream struct {
	next  valstream.FullStream
	log   zerolog.Logger
	depth int
	calls int
}

var _ valstream.FullStream = (*Stream)(nil)

// Wrap returns s decorated with logger.
func Wrap(s valstream.Stream, logger zerolog.Logger) *Stream {
	return &Stream{next: valstream.Complete(s), log: logger}
}

// Default wraps s with the shared logger configured from VALSTREAM_LOG_*
// environment variables.
func Default(s valstream.Stream) *Stream {
	return Wrap(s, logging.Logger())
}

// Calls returns the number of calls forwarded so far.
func (t *Stream) Calls() int { return t.calls }

func (t *Stream) event(call string) *zerolog.Event {
	return t.log.Debug().Str("call", call).Int("depth", t.depth)
}

func (t *Stream) done(call string, err error) error {
	t.calls++
	if err != nil {
		t.log.Warn().Str("call", call).Int("depth", t.depth).Err(err).Msg("stream call failed")
	}
	return err
}

func (t *Stream) Fmt(a valstream.Arguments) error {
	t.event("fmt").Stringer("value", a).Send()
	return t.done("fmt", t.next.Fmt(a))
}

func (t *Stream) I64(v int64) error {
	t.event("i64").Int64("value", v).Send()
	return t.done("i64", t.next.I64(v))
}

func (t *Stream) U64(v uint64) error {
	t.event("u64").Uint64("value", v).Send()
	return t.done("u64", t.next.U64(v))
}

func (t *Stream) F64(v float64) error {
	t.event("f64").Float64("value", v).Send()
	return t.done("f64", t.next.F64(v))
}

func (t *Stream) Bool(v bool) error {
	t.event("bool").Bool("value", v).Send()
	return t.done("bool", t.next.Bool(v))
}

func (t *Stream) Char(v rune) error {
	t.event("char").Str("value", string(v)).Send()
	return t.done("char", t.next.Char(v))
}

func (t *Stream) Str(v string) error {
	t.event("str").Str("value", v).Send()
	return t.done("str", t.next.Str(v))
}

func (t *Stream) None() error {
	t.event("none").Send()
	return t.done("none", t.next.None())
}

func (t *Stream) SeqBegin(hint int) error {
	t.event("seq_begin").Int("hint", hint).Send()
	t.depth++
	return t.done("seq_begin", t.next.SeqBegin(hint))
}

func (t *Stream) SeqElem() error {
	t.event("seq_elem").Send()
	return t.done("seq_elem", t.next.SeqElem())
}

func (t *Stream) SeqEnd() error {
	t.depth--
	t.event("seq_end").Send()
	return t.done("seq_end", t.next.SeqEnd())
}

func (t *Stream) MapBegin(hint int) error {
	t.event("map_begin").Int("hint", hint).Send()
	t.depth++
	return t.done("map_begin", t.next.MapBegin(hint))
}

func (t *Stream) MapKey() error {
	t.event("map_key").Send()
	return t.done("map_key", t.next.MapKey())
}

func (t *Stream) MapKeyBegin() error {
	t.event("map_key_begin").Send()
	return t.done("map_key_begin", t.next.MapKeyBegin())
}

func (t *Stream) MapValue() error {
	t.event("map_value").Send()
	return t.done("map_value", t.next.MapValue())
}

func (t *Stream) MapValueBegin() error {
	t.event("map_value_begin").Send()
	return t.done("map_value_begin", t.next.MapValueBegin())
}

func (t *Stream) MapEnd() error {
	t.depth--
	t.event("map_end").Send()
	return t.done("map_end", t.next.MapEnd())
}

func (t *Stream) End() error {
	t.event("end").Send()
	return t.done("end", t.next.End())
}
