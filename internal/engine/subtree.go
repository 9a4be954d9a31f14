package engine

import (
	"errors"
	"io"
)

// SubtreeSource replays a preloaded first token and then the rest of the
// same value from inner. It returns io.EOF once the value is complete, so a
// single element of a larger document can be emitted with EmitDocument.
type SubtreeSource struct {
	inner       TokenSource
	first       Token
	firstServed bool
	depth       int
	done        bool
}

// NewSubtreeSource constructs a subtree source starting at first, which has
// already been read from inner.
func NewSubtreeSource(inner TokenSource, first Token) *SubtreeSource {
	return &SubtreeSource{inner: inner, first: first}
}

func (s *SubtreeSource) NextToken() (Token, error) {
	if s.done {
		return Token{}, io.EOF
	}
	tok := s.first
	if s.firstServed {
		var err error
		if tok, err = s.inner.NextToken(); err != nil {
			return Token{}, err
		}
	}
	s.firstServed = true
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		s.depth++
	case KindEndObject, KindEndArray:
		s.depth--
	}
	if s.depth <= 0 {
		s.done = true
	}
	return tok, nil
}

// Drain consumes whatever is left of the subtree.
func (s *SubtreeSource) Drain() error {
	for {
		if _, err := s.NextToken(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (s *SubtreeSource) Location() int64 { return s.inner.Location() }
