package engine

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/reoring/valstream"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// EmitDocument streams exactly one value from src into d and requires the
// source to be exhausted afterwards.
func EmitDocument(src TokenSource, d *valstream.Driver, mode valstream.NumberMode) error {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return valstream.Msg("empty input")
		}
		return valstream.Wrap(err)
	}
	if err := emitValue(src, d, tok, mode); err != nil {
		return err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return valstream.Wrap(err)
		}
		return valstream.Msg("trailing data after top-level value")
	}
	return nil
}

// emitValue streams the value starting at tok. Recursion is bounded by the
// driver's MaxDepth: the first begin past it fails.
func emitValue(src TokenSource, d *valstream.Driver, tok Token, mode valstream.NumberMode) error {
	switch tok.Kind {
	case KindBeginObject:
		return emitObject(src, d, mode)
	case KindBeginArray:
		return emitArray(src, d, mode)
	case KindString:
		return d.Str(tok.String)
	case KindNumber:
		return EmitNumber(d, tok.Number, mode)
	case KindBool:
		return d.Bool(tok.Bool)
	case KindNull:
		return d.None()
	default:
		return valstream.Wrap(io.ErrUnexpectedEOF)
	}
}

func emitObject(src TokenSource, d *valstream.Driver, mode valstream.NumberMode) error {
	if err := d.MapBegin(valstream.NoHint); err != nil {
		return err
	}
	for {
		tok, err := next(src)
		if err != nil {
			return err
		}
		if tok.Kind == KindEndObject {
			return d.MapEnd()
		}
		if tok.Kind != KindKey {
			return valstream.Wrap(io.ErrUnexpectedEOF)
		}
		if err := d.MapKeyBegin(); err != nil {
			return err
		}
		if err := d.Str(tok.String); err != nil {
			return err
		}
		vt, err := next(src)
		if err != nil {
			return err
		}
		if err := d.MapValueBegin(); err != nil {
			return err
		}
		if err := emitValue(src, d, vt, mode); err != nil {
			return err
		}
	}
}

func emitArray(src TokenSource, d *valstream.Driver, mode valstream.NumberMode) error {
	if err := d.SeqBegin(valstream.NoHint); err != nil {
		return err
	}
	for {
		tok, err := next(src)
		if err != nil {
			return err
		}
		if tok.Kind == KindEndArray {
			return d.SeqEnd()
		}
		if err := d.SeqElemBegin(); err != nil {
			return err
		}
		if err := emitValue(src, d, tok, mode); err != nil {
			return err
		}
	}
}

// next reads a token inside a container, where EOF means truncated input.
func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, valstream.Wrap(io.ErrUnexpectedEOF)
		}
		return Token{}, valstream.Wrap(err)
	}
	return tok, nil
}

// EmitNumber streams a numeric literal according to mode.
func EmitNumber(d *valstream.Driver, text string, mode valstream.NumberMode) error {
	switch mode {
	case valstream.NumberText:
		return d.Fmt(valstream.Args("%s", text))
	case valstream.NumberFloat64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return valstream.Wrap(err)
		}
		return d.F64(f)
	}
	if isInteger(text) {
		if strings.HasPrefix(text, "-") {
			if i, err := strconv.ParseInt(text, 10, 64); err == nil {
				return d.I64(i)
			}
		} else if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return d.U64(u)
		}
		// Too large for 64 bits: keep the digits.
		return d.Fmt(valstream.Args("%s", text))
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return valstream.Wrap(err)
	}
	if math.IsInf(f, 0) {
		return d.Fmt(valstream.Args("%s", text))
	}
	return d.F64(f)
}

func isInteger(text string) bool {
	if text == "" || text == "-" {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '-' && i == 0 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
