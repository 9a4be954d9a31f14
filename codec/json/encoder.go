// Package json encodes streamed values as JSON text using go-json.
//
// Maps become objects and sequences arrays. Primitive map keys are rendered
// as strings; sequence or map keys are rejected. None becomes null, chars
// become one-character strings and Fmt arguments become their text as a
// string. Non-finite floats are rejected.
package json

import (
	"bytes"
	"io"
	"math"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/valstream"
)

// Encoder writes one JSON document per Encode call.
type Encoder struct {
	w      io.Writer
	prefix string
	indent string

	stack valstream.Stack
	buf   bytes.Buffer
	delim string
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// SetIndent makes later documents indented the way go-json's Indent does.
func (e *Encoder) SetIndent(prefix, indent string) {
	e.prefix, e.indent = prefix, indent
}

// Encode streams v and writes it followed by a newline. Nothing is written
// when streaming fails.
func (e *Encoder) Encode(v valstream.Value) error {
	e.reset()
	if err := valstream.StreamValue(v, e); err != nil {
		return err
	}
	out := e.buf.Bytes()
	if e.prefix != "" || e.indent != "" {
		var ind bytes.Buffer
		if err := j.Indent(&ind, out, e.prefix, e.indent); err != nil {
			return valstream.Wrap(err)
		}
		out = ind.Bytes()
	}
	out = append(out, '\n')
	if _, err := e.w.Write(out); err != nil {
		return valstream.Wrap(err)
	}
	return nil
}

// Marshal returns the compact JSON encoding of v.
func Marshal(v valstream.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (e *Encoder) reset() {
	e.stack.Clear()
	e.buf.Reset()
	e.delim = ""
}

func nextDelim(pos valstream.Pos) string {
	switch {
	case pos.IsKey():
		return ":"
	case pos.IsValue(), pos.IsElem():
		return ","
	}
	return ""
}

// primitive writes raw at the current position. keyText is used instead when
// the primitive is a map key.
func (e *Encoder) primitive(raw []byte, keyText string) error {
	pos, err := e.stack.Primitive()
	if err != nil {
		return err
	}
	e.buf.WriteString(e.delim)
	if pos.IsKey() {
		if err := e.str(keyText); err != nil {
			return err
		}
	} else {
		e.buf.Write(raw)
	}
	e.delim = nextDelim(pos)
	return nil
}

func (e *Encoder) str(s string) error {
	b, err := j.Marshal(s)
	if err != nil {
		return valstream.Wrap(err)
	}
	e.buf.Write(b)
	return nil
}

func (e *Encoder) quoted(s string) error {
	b, err := j.Marshal(s)
	if err != nil {
		return valstream.Wrap(err)
	}
	return e.primitive(b, s)
}

func (e *Encoder) Fmt(a valstream.Arguments) error { return e.quoted(a.String()) }
func (e *Encoder) Str(v string) error              { return e.quoted(v) }
func (e *Encoder) Char(v rune) error               { return e.quoted(string(v)) }

func (e *Encoder) I64(v int64) error {
	s := strconv.FormatInt(v, 10)
	return e.primitive([]byte(s), s)
}

func (e *Encoder) U64(v uint64) error {
	s := strconv.FormatUint(v, 10)
	return e.primitive([]byte(s), s)
}

func (e *Encoder) F64(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return valstream.Unsupported("JSON cannot represent " + strconv.FormatFloat(v, 'g', -1, 64))
	}
	b, err := j.Marshal(v)
	if err != nil {
		return valstream.Wrap(err)
	}
	return e.primitive(b, string(b))
}

func (e *Encoder) Bool(v bool) error {
	s := strconv.FormatBool(v)
	return e.primitive([]byte(s), s)
}

func (e *Encoder) None() error { return e.primitive([]byte("null"), "null") }

func (e *Encoder) begin(pos valstream.Pos, open byte) error {
	if pos.IsKey() {
		return valstream.Unsupported("JSON object keys must be primitives")
	}
	e.buf.WriteString(e.delim)
	e.buf.WriteByte(open)
	e.delim = ""
	return nil
}

func (e *Encoder) end(pos valstream.Pos, closer byte) {
	e.buf.WriteByte(closer)
	e.delim = nextDelim(pos)
}

func (e *Encoder) SeqBegin(int) error {
	pos, err := e.stack.SeqBegin()
	if err != nil {
		return err
	}
	return e.begin(pos, '[')
}

func (e *Encoder) SeqElem() error { return e.stack.SeqElem() }

func (e *Encoder) SeqEnd() error {
	pos, err := e.stack.SeqEnd()
	if err != nil {
		return err
	}
	e.end(pos, ']')
	return nil
}

func (e *Encoder) MapBegin(int) error {
	pos, err := e.stack.MapBegin()
	if err != nil {
		return err
	}
	return e.begin(pos, '{')
}

func (e *Encoder) MapKey() error   { return e.stack.MapKey() }
func (e *Encoder) MapValue() error { return e.stack.MapValue() }

func (e *Encoder) MapEnd() error {
	pos, err := e.stack.MapEnd()
	if err != nil {
		return err
	}
	e.end(pos, '}')
	return nil
}

func (e *Encoder) End() error { return e.stack.End() }
