// Package yaml streams YAML documents as valstream values using yaml.v3 nodes.
//
// Mappings stream as maps, sequences as sequences and aliases as the node they
// point to. Mapping keys may themselves be sequences or mappings. Scalars are
// resolved by tag: !!null to none, !!bool to bool, !!int to u64 (i64 when
// negative), !!float to f64 and everything else to str. Integers that do not
// fit 64 bits go through Fmt with their literal text. SourceOpt.Numbers
// applies to !!int and !!float scalars.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/valstream"
)

// DuplicateKeyError reports a duplicate scalar key found in a YAML mapping with
// both the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Bytes returns a Value streaming the single YAML document in b. Input with
// more than one document fails.
func Bytes(b []byte, opts ...valstream.SourceOpt) valstream.Value {
	opt := valstream.FirstSourceOpt(opts)
	return valstream.ValueFunc(func(d *valstream.Driver) error {
		if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
			return valstream.Errorf("input exceeds %d bytes", opt.MaxBytes)
		}
		docs := NewDocuments(bytes.NewReader(b), opt)
		root, err := docs.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return valstream.Msg("empty input")
			}
			return valstream.Wrap(err)
		}
		if _, err := docs.next(); !errors.Is(err, io.EOF) {
			if err != nil {
				return valstream.Wrap(err)
			}
			return valstream.Msg("trailing data after top-level value")
		}
		return Node(root, opt).Stream(d)
	})
}

// Node returns a Value streaming an already decoded yaml.Node.
func Node(n *yaml.Node, opts ...valstream.SourceOpt) valstream.Value {
	w := walker{opt: valstream.FirstSourceOpt(opts)}
	return valstream.ValueFunc(func(d *valstream.Driver) error { return w.node(d, n) })
}

// Documents reads a multi-document YAML stream one document at a time.
type Documents struct {
	dec *yaml.Decoder
	opt valstream.SourceOpt
}

// NewDocuments constructs a Documents reader over r.
func NewDocuments(r io.Reader, opts ...valstream.SourceOpt) *Documents {
	return &Documents{dec: yaml.NewDecoder(r), opt: valstream.FirstSourceOpt(opts)}
}

// Next returns the next document as a Value. It returns (nil, io.EOF) when the
// stream is exhausted. The returned Value can be streamed any number of times.
func (s *Documents) Next() (valstream.Value, error) {
	root, err := s.next()
	if err != nil {
		return nil, err
	}
	return Node(root, s.opt), nil
}

func (s *Documents) next() (*yaml.Node, error) {
	var root yaml.Node
	if err := s.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return &root, nil
}

type walker struct {
	opt valstream.SourceOpt
}

func (w walker) node(d *valstream.Driver, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return d.None()
		}
		return w.node(d, n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return d.None()
		}
		return w.node(d, n.Alias)
	case yaml.MappingNode:
		return w.mapping(d, n)
	case yaml.SequenceNode:
		if err := d.SeqBegin(len(n.Content)); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := d.SeqElemBegin(); err != nil {
				return err
			}
			if err := w.node(d, c); err != nil {
				return err
			}
		}
		return d.SeqEnd()
	case yaml.ScalarNode:
		return w.scalar(d, n)
	}
	return d.None()
}

func (w walker) mapping(d *valstream.Driver, n *yaml.Node) error {
	if err := d.MapBegin(len(n.Content) / 2); err != nil {
		return err
	}
	var first map[string][2]int
	if w.opt.OnDuplicateKey != valstream.SeverityIgnore {
		first = make(map[string][2]int, len(n.Content)/2)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if first != nil && k.Kind == yaml.ScalarNode {
			if pos, dup := first[k.Value]; dup {
				issue := valstream.Wrap(&DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column})
				if w.opt.OnDuplicateKey == valstream.SeverityError {
					return issue
				}
				if w.opt.OnIssue != nil {
					w.opt.OnIssue(issue)
				}
			} else {
				first[k.Value] = [2]int{k.Line, k.Column}
			}
		}
		if err := d.MapKeyBegin(); err != nil {
			return err
		}
		if err := w.node(d, k); err != nil {
			return err
		}
		if err := d.MapValueBegin(); err != nil {
			return err
		}
		if err := w.node(d, v); err != nil {
			return err
		}
	}
	return d.MapEnd()
}

func (w walker) scalar(d *valstream.Driver, n *yaml.Node) error {
	tag := n.ShortTag()
	if tag == "!!int" || tag == "!!float" {
		switch w.opt.Numbers {
		case valstream.NumberText:
			return d.Fmt(valstream.Args("%s", n.Value))
		case valstream.NumberFloat64:
			tag = "!!float"
		}
	}
	switch tag {
	case "!!null":
		return d.None()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return d.Str(n.Value)
		}
		return d.Bool(b)
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			if i < 0 {
				return d.I64(i)
			}
			return d.U64(uint64(i))
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return d.U64(u)
		}
		return d.Fmt(valstream.Args("%s", n.Value))
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return d.Fmt(valstream.Args("%s", n.Value))
		}
		return d.F64(f)
	}
	return d.Str(n.Value)
}
