package valstream_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/valstream"
	"github.com/reoring/valstream/i18n"
)

func TestError_Messages(t *testing.T) {
	assert.Equal(t, "boom", valstream.Msg("boom").Error())
	assert.Equal(t, "not a u64", valstream.Unsupported("not a u64").Error())
	assert.Equal(t, "nesting depth exceeded", valstream.ErrDepthExceeded.Error())
	assert.Equal(t, "unexpected EOF", valstream.Wrap(io.ErrUnexpectedEOF).Error())
	assert.Equal(t, "read 3: unexpected EOF", valstream.Errorf("read %d: %w", 3, io.ErrUnexpectedEOF).Error())

	e := &valstream.Error{Code: valstream.CodeUnsupported, Message: "bad key", Cause: io.EOF}
	assert.Equal(t, "bad key: EOF", e.Error())
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("outer: %w", valstream.Unsupported("not a u64"))
	assert.ErrorIs(t, err, valstream.ErrUnsupported)
	assert.NotErrorIs(t, err, valstream.ErrInvalidState)

	wrapped := valstream.Wrap(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
	assert.Equal(t, valstream.CodeCustom, wrapped.Code)

	assert.ErrorIs(t, valstream.Errorf("x: %w", io.EOF), io.EOF)
}

func TestWrap_KeepsExistingError(t *testing.T) {
	orig := valstream.Unsupported("nope")
	assert.Same(t, orig, valstream.Wrap(fmt.Errorf("ctx: %w", orig)))
	assert.Nil(t, valstream.Wrap(nil))
}

func TestAsError(t *testing.T) {
	_, ok := valstream.AsError(nil)
	assert.False(t, ok)
	_, ok = valstream.AsError(errors.New("plain"))
	assert.False(t, ok)

	e, ok := valstream.AsError(fmt.Errorf("wrap: %w", valstream.Msg("inner")))
	require.True(t, ok)
	assert.Equal(t, "inner", e.Message)
}

func TestError_TranslatedCode(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	assert.Equal(t, "ネストの深さが上限を超えました", valstream.ErrDepthExceeded.Error())
}
