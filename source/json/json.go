// Package json streams JSON documents as valstream values using go-json.
//
// Objects stream as maps with string keys, arrays as sequences, strings as
// str, booleans as bool and null as none. Numbers follow SourceOpt.Numbers.
package json

import (
	"bytes"
	"io"
	"strconv"
	"sync"

	"github.com/reoring/valstream"
	eng "github.com/reoring/valstream/internal/engine"
)

// SizeError reports input larger than SourceOpt.MaxBytes.
type SizeError struct{ Limit int64 }

func (e *SizeError) Error() string {
	return "input exceeds " + strconv.FormatInt(e.Limit, 10) + " bytes"
}

// Bytes returns a Value streaming the single JSON document in b. It can be
// streamed any number of times.
func Bytes(b []byte, opts ...valstream.SourceOpt) valstream.Value {
	return bytesValue{b: b, opt: valstream.FirstSourceOpt(opts)}
}

type bytesValue struct {
	b   []byte
	opt valstream.SourceOpt
}

func (v bytesValue) Stream(d *valstream.Driver) error {
	if v.opt.MaxBytes > 0 && int64(len(v.b)) > v.opt.MaxBytes {
		return valstream.Wrap(&SizeError{Limit: v.opt.MaxBytes})
	}
	return emit(d, bytes.NewReader(v.b), v.opt)
}

// Reader returns a Value streaming the single JSON document read from r.
// The reader is consumed by the first Stream; later attempts fail.
func Reader(r io.Reader, opts ...valstream.SourceOpt) valstream.Value {
	return &readerValue{r: r, opt: valstream.FirstSourceOpt(opts)}
}

type readerValue struct {
	mu   sync.Mutex
	r    io.Reader
	opt  valstream.SourceOpt
	used bool
}

func (v *readerValue) Stream(d *valstream.Driver) error {
	v.mu.Lock()
	used := v.used
	v.used = true
	v.mu.Unlock()
	if used {
		return valstream.Msg("json reader already consumed")
	}
	return emit(d, v.r, v.opt)
}

func emit(d *valstream.Driver, r io.Reader, opt valstream.SourceOpt) error {
	var src eng.TokenSource = newTokenSource(r, opt.MaxBytes)
	src = eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: opt.OnDuplicateKey,
		IssueSink:   opt.OnIssue,
	})
	return eng.EmitDocument(src, d, opt.Numbers)
}
