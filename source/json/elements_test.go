//go:build !valstream_noalloc

package json_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/valstream"
	jsonsrc "github.com/reoring/valstream/source/json"
)

func TestElements(t *testing.T) {
	in := `[{"id": "ok1"}, 2, [true], {"id": "ok2"}]`
	var got []string
	err := jsonsrc.Elements(strings.NewReader(in), func(i int, v valstream.Value) error {
		if i == 1 {
			return nil // skipped without streaming
		}
		o, err := valstream.FromValue(v)
		if err != nil {
			return err
		}
		got = append(got, o.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{`{"id": "ok1"}`, `[true]`, `{"id": "ok2"}`}, got)
}

func TestElements_SingleUseValue(t *testing.T) {
	err := jsonsrc.Elements(strings.NewReader(`[1]`), func(_ int, v valstream.Value) error {
		_, err := valstream.FromValue(v)
		require.NoError(t, err)
		_, err = valstream.FromValue(v)
		assert.EqualError(t, err, "json array element already consumed")
		return nil
	})
	require.NoError(t, err)
}

func TestElements_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := jsonsrc.Elements(strings.NewReader(`[1, 2, 3]`), func(int, valstream.Value) error {
		calls++
		return stop
	})
	assert.Same(t, stop, err)
	assert.Equal(t, 1, calls)
}

func TestElements_DuplicatePaths(t *testing.T) {
	var issues []string
	err := jsonsrc.Elements(strings.NewReader(`[{}, {"id": 1, "id": 2}]`), func(_ int, v valstream.Value) error {
		_, err := valstream.FromValue(v)
		return err
	}, valstream.SourceOpt{
		OnDuplicateKey: valstream.SeverityWarn,
		OnIssue:        func(err error) { issues = append(issues, err.Error()) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"key 'id' duplicated at /1/id"}, issues)
}

func TestElements_Errors(t *testing.T) {
	noop := func(int, valstream.Value) error { return nil }

	assert.EqualError(t, jsonsrc.Elements(strings.NewReader(`{"a": 1}`), noop), "expected a top-level JSON array")
	assert.EqualError(t, jsonsrc.Elements(strings.NewReader(``), noop), "empty input")
	assert.EqualError(t, jsonsrc.Elements(strings.NewReader(`[] []`), noop), "trailing data after top-level value")
	assert.Error(t, jsonsrc.Elements(strings.NewReader(`[1, {`), noop))
}
