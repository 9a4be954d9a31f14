// Package fingerprint computes a structural xxhash64 of a streamed value.
//
// Every call contributes its kind and payload, so values of different shape
// or kind hash differently even when their text looks alike. Size hints do
// not contribute, and Fmt arguments hash like strings of their text, so a
// value and its owned snapshot share a fingerprint.
package fingerprint

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/reoring/valstream"
	"github.com/reoring/valstream/internal/wire"
)

// Sum64 streams v and returns its fingerprint.
func Sum64(v valstream.Value) (uint64, error) {
	h := New()
	if err := valstream.StreamValue(v, h); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// Hasher is a consumer accumulating a fingerprint. The zero value is ready to
// use. Streaming several values into one Hasher without Reset hashes them as
// a sequence of roots.
type Hasher struct {
	d       *xxhash.Digest
	scratch [binary.MaxVarintLen64 + 1]byte
}

// New returns an empty Hasher.
func New() *Hasher { return &Hasher{d: xxhash.New()} }

func (h *Hasher) digest() *xxhash.Digest {
	if h.d == nil {
		h.d = xxhash.New()
	}
	return h.d
}

// Reset discards everything hashed so far.
func (h *Hasher) Reset() { h.digest().Reset() }

// Sum64 returns the fingerprint of everything streamed since the last Reset.
func (h *Hasher) Sum64() uint64 { return h.digest().Sum64() }

func (h *Hasher) tag(t byte) error {
	h.scratch[0] = t
	_, _ = h.digest().Write(h.scratch[:1])
	return nil
}

func (h *Hasher) uvarint(t byte, v uint64) error {
	h.scratch[0] = t
	n := binary.PutUvarint(h.scratch[1:], v)
	_, _ = h.digest().Write(h.scratch[:1+n])
	return nil
}

func (h *Hasher) str(s string) error {
	_ = h.uvarint(wire.TagStr, uint64(len(s)))
	_, _ = h.digest().WriteString(s)
	return nil
}

func (h *Hasher) I64(v int64) error {
	h.scratch[0] = wire.TagI64
	n := binary.PutVarint(h.scratch[1:], v)
	_, _ = h.digest().Write(h.scratch[:1+n])
	return nil
}

func (h *Hasher) F64(v float64) error {
	h.scratch[0] = wire.TagF64
	binary.LittleEndian.PutUint64(h.scratch[1:], math.Float64bits(v))
	_, _ = h.digest().Write(h.scratch[:9])
	return nil
}

func (h *Hasher) Fmt(a valstream.Arguments) error { return h.str(a.String()) }
func (h *Hasher) Str(v string) error              { return h.str(v) }
func (h *Hasher) U64(v uint64) error              { return h.uvarint(wire.TagU64, v) }
func (h *Hasher) Char(v rune) error               { return h.uvarint(wire.TagChar, uint64(v)) }
func (h *Hasher) Bool(v bool) error               { return h.tag(wire.Bool(v)) }
func (h *Hasher) None() error                     { return h.tag(wire.TagNone) }
func (h *Hasher) SeqBegin(int) error              { return h.tag(wire.TagSeqBegin) }
func (h *Hasher) SeqElem() error                  { return nil }
func (h *Hasher) SeqEnd() error                   { return h.tag(wire.TagSeqEnd) }
func (h *Hasher) MapBegin(int) error              { return h.tag(wire.TagMapBegin) }
func (h *Hasher) MapKey() error                   { return nil }
func (h *Hasher) MapValue() error                 { return nil }
func (h *Hasher) MapEnd() error                   { return h.tag(wire.TagMapEnd) }
