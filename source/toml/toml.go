// Package toml streams TOML documents as valstream values using
// BurntSushi/toml.
//
// A document streams as a map. Table keys are sorted since the decoded form
// does not keep document order. With NumberAuto, non-negative integers stream
// as u64, negative ones as i64 and floats as f64, like the other sources.
// Date and time values stream as RFC 3339 text. Duplicate keys are always an
// error in TOML, so SourceOpt.OnDuplicateKey is ignored.
package toml

import (
	"os"
	"slices"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/reoring/valstream"
)

// Bytes returns a Value streaming the TOML document in b.
func Bytes(b []byte, opts ...valstream.SourceOpt) valstream.Value {
	opt := valstream.FirstSourceOpt(opts)
	return valstream.ValueFunc(func(d *valstream.Driver) error {
		if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
			return valstream.Errorf("input exceeds %d bytes", opt.MaxBytes)
		}
		var doc map[string]any
		if _, err := toml.Decode(string(b), &doc); err != nil {
			return valstream.Wrap(err)
		}
		return d.Value(convert(doc, opt.Numbers))
	})
}

// File returns a Value streaming the TOML file at path. The file is read on
// every Stream.
func File(path string, opts ...valstream.SourceOpt) valstream.Value {
	return valstream.ValueFunc(func(d *valstream.Driver) error {
		b, err := os.ReadFile(path)
		if err != nil {
			return valstream.Wrap(err)
		}
		return d.Value(Bytes(b, opts...))
	})
}

func convert(x any, mode valstream.NumberMode) valstream.Value {
	switch t := x.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		m := make(valstream.Map, 0, len(keys))
		for _, k := range keys {
			m = append(m, valstream.Entry{Key: valstream.Str(k), Value: convert(t[k], mode)})
		}
		return m
	case []map[string]any:
		s := make(valstream.Seq, len(t))
		for i := range t {
			s[i] = convert(t[i], mode)
		}
		return s
	case []any:
		s := make(valstream.Seq, len(t))
		for i := range t {
			s[i] = convert(t[i], mode)
		}
		return s
	case int64:
		switch mode {
		case valstream.NumberFloat64:
			return valstream.F64(float64(t))
		case valstream.NumberText:
			return text(strconv.FormatInt(t, 10))
		}
		if t < 0 {
			return valstream.I64(t)
		}
		return valstream.U64(uint64(t))
	case float64:
		if mode == valstream.NumberText {
			return text(strconv.FormatFloat(t, 'g', -1, 64))
		}
		return valstream.F64(t)
	}
	return valstream.Of(x)
}

// text streams a number through Fmt.
type text string

func (t text) Stream(d *valstream.Driver) error { return d.Fmt(valstream.Args("%s", string(t))) }
