package json

import (
	"errors"
	"io"

	"github.com/reoring/valstream"
	eng "github.com/reoring/valstream/internal/engine"
)

// Elements reads a top-level JSON array from r and calls fn with each
// element in turn, without holding the whole array in memory. The Value
// passed to fn is only valid during the call and can be streamed once;
// elements fn does not stream are skipped. An error from fn stops the
// iteration and is returned as is.
//
// Duplicate keys are reported with pointers rooted at the array, e.g. /3/id.
func Elements(r io.Reader, fn func(i int, v valstream.Value) error, opts ...valstream.SourceOpt) error {
	opt := valstream.FirstSourceOpt(opts)
	var src eng.TokenSource = newTokenSource(r, opt.MaxBytes)
	src = eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: opt.OnDuplicateKey,
		IssueSink:   opt.OnIssue,
	})

	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return valstream.Msg("empty input")
		}
		return valstream.Wrap(err)
	}
	if tok.Kind != eng.KindBeginArray {
		return valstream.Msg("expected a top-level JSON array")
	}

	for i := 0; ; i++ {
		tok, err := src.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return valstream.Wrap(err)
		}
		if tok.Kind == eng.KindEndArray {
			break
		}
		sub := eng.NewSubtreeSource(src, tok)
		used := false
		v := valstream.ValueFunc(func(d *valstream.Driver) error {
			if used {
				return valstream.Msg("json array element already consumed")
			}
			used = true
			return eng.EmitDocument(sub, d, opt.Numbers)
		})
		if err := fn(i, v); err != nil {
			return err
		}
		if err := sub.Drain(); err != nil {
			return valstream.Wrap(err)
		}
	}

	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return valstream.Wrap(err)
		}
		return valstream.Msg("trailing data after top-level value")
	}
	return nil
}
