// Package yaml encodes streamed values as YAML using yaml.v3 nodes.
//
// Unlike JSON, YAML accepts sequences and mappings as mapping keys, so every
// streamed value is representable. Chars and Fmt arguments become strings.
package yaml

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/valstream"
)

// Encoder writes one YAML document per Encode call.
type Encoder struct {
	w      io.Writer
	indent int
}

// NewEncoder returns an encoder writing to w with yaml.v3's default indent.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// SetIndent changes the number of spaces used per nesting level.
func (e *Encoder) SetIndent(spaces int) { e.indent = spaces }

// Encode streams v and writes it as a YAML document. Nothing is written when
// streaming fails.
func (e *Encoder) Encode(v valstream.Value) error {
	n, err := ToNode(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if e.indent > 0 {
		enc.SetIndent(e.indent)
	}
	if err := enc.Encode(n); err != nil {
		return valstream.Wrap(err)
	}
	if err := enc.Close(); err != nil {
		return valstream.Wrap(err)
	}
	if _, err := e.w.Write(buf.Bytes()); err != nil {
		return valstream.Wrap(err)
	}
	return nil
}

// Marshal returns the YAML encoding of v.
func Marshal(v valstream.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToNode streams v into a yaml.Node tree.
func ToNode(v valstream.Value) (*yaml.Node, error) {
	b := &nodeBuilder{}
	if err := valstream.StreamValue(v, b); err != nil {
		return nil, err
	}
	return b.root, nil
}

// nodeBuilder appends nodes to the innermost open container. Keys and values
// alternate in a mapping's Content, so MapKey and MapValue need no state.
type nodeBuilder struct {
	open []*yaml.Node
	root *yaml.Node
}

func (b *nodeBuilder) put(n *yaml.Node) {
	if len(b.open) == 0 {
		b.root = n
		return
	}
	top := b.open[len(b.open)-1]
	top.Content = append(top.Content, n)
}

func (b *nodeBuilder) scalar(tag, value string) error {
	b.put(&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value})
	return nil
}

func (b *nodeBuilder) Fmt(a valstream.Arguments) error { return b.scalar("!!str", a.String()) }
func (b *nodeBuilder) Str(v string) error              { return b.scalar("!!str", v) }
func (b *nodeBuilder) Char(v rune) error               { return b.scalar("!!str", string(v)) }
func (b *nodeBuilder) I64(v int64) error               { return b.scalar("!!int", strconv.FormatInt(v, 10)) }
func (b *nodeBuilder) U64(v uint64) error              { return b.scalar("!!int", strconv.FormatUint(v, 10)) }
func (b *nodeBuilder) F64(v float64) error             { return b.scalar("!!float", formatFloat(v)) }
func (b *nodeBuilder) Bool(v bool) error               { return b.scalar("!!bool", strconv.FormatBool(v)) }
func (b *nodeBuilder) None() error                     { return b.scalar("!!null", "null") }

// formatFloat keeps integral floats resolvable as !!float.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (b *nodeBuilder) begin(kind yaml.Kind) error {
	n := &yaml.Node{Kind: kind}
	b.put(n)
	b.open = append(b.open, n)
	return nil
}

func (b *nodeBuilder) pop() error {
	b.open = b.open[:len(b.open)-1]
	return nil
}

func (b *nodeBuilder) SeqBegin(int) error { return b.begin(yaml.SequenceNode) }
func (b *nodeBuilder) SeqElem() error     { return nil }
func (b *nodeBuilder) SeqEnd() error      { return b.pop() }
func (b *nodeBuilder) MapBegin(int) error { return b.begin(yaml.MappingNode) }
func (b *nodeBuilder) MapKey() error      { return nil }
func (b *nodeBuilder) MapValue() error    { return nil }
func (b *nodeBuilder) MapEnd() error      { return b.pop() }
