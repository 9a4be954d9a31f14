//go:build !valstream_noalloc

package yaml_test

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/valstream"
	yamlsrc "github.com/reoring/valstream/source/yaml"
)

func TestBytes_Document(t *testing.T) {
	doc := `
name: demo
replicas: 3
offset: -2
ratio: 0.25
enabled: true
missing: ~
tags: [a, b]
`
	got, err := valstream.FromValue(yamlsrc.Bytes([]byte(doc)))
	require.NoError(t, err)
	assert.Equal(t, `{"name": "demo", "replicas": 3, "offset": -2, "ratio": 0.25, "enabled": true, "missing": none, "tags": ["a", "b"]}`, got.String())

	entries, _ := got.Entries()
	assert.Equal(t, valstream.KindU64, entries[1].Value.Kind())
	assert.Equal(t, valstream.KindI64, entries[2].Value.Kind())
}

func TestBytes_Scalars(t *testing.T) {
	cases := []struct {
		in   string
		want valstream.Owned
	}{
		{`0x1F`, valstream.OwnedU64(31)},
		{`"42"`, valstream.OwnedStr("42")},
		{`null`, valstream.OwnedNone()},
		{`false`, valstream.OwnedBool(false)},
		{`18446744073709551615`, valstream.OwnedU64(math.MaxUint64)},
		{`2024-01-02`, valstream.OwnedStr("2024-01-02")},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := valstream.FromValue(yamlsrc.Bytes([]byte(tc.in)))
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s", got)
		})
	}

	got, err := valstream.FromValue(yamlsrc.Bytes([]byte(`.inf`)))
	require.NoError(t, err)
	f, ok := got.F64()
	require.True(t, ok)
	assert.True(t, math.IsInf(f, 1))
}

func TestBytes_NumberModes(t *testing.T) {
	got, err := valstream.FromValue(yamlsrc.Bytes([]byte(`[1, 2.5]`), valstream.SourceOpt{Numbers: valstream.NumberFloat64}))
	require.NoError(t, err)
	assert.True(t, valstream.OwnedSeq(valstream.OwnedF64(1), valstream.OwnedF64(2.5)).Equal(got))

	got, err = valstream.FromValue(yamlsrc.Bytes([]byte(`[1, 2.50]`), valstream.SourceOpt{Numbers: valstream.NumberText}))
	require.NoError(t, err)
	assert.Equal(t, `["1", "2.50"]`, got.String())
}

func TestBytes_ComplexKeys(t *testing.T) {
	doc := `
? [a, b]
: pair
? {k: 1}
: nested
`
	got, err := valstream.FromValue(yamlsrc.Bytes([]byte(doc)))
	require.NoError(t, err)
	assert.Equal(t, `{["a", "b"]: "pair", {"k": 1}: "nested"}`, got.String())
}

func TestBytes_Aliases(t *testing.T) {
	doc := `
base: &b {x: 1}
copy: *b
`
	got, err := valstream.FromValue(yamlsrc.Bytes([]byte(doc)))
	require.NoError(t, err)
	assert.Equal(t, `{"base": {"x": 1}, "copy": {"x": 1}}`, got.String())
}

func TestBytes_Errors(t *testing.T) {
	_, err := valstream.FromValue(yamlsrc.Bytes(nil))
	assert.EqualError(t, err, "empty input")

	_, err = valstream.FromValue(yamlsrc.Bytes([]byte("a: 1\n---\nb: 2\n")))
	assert.EqualError(t, err, "trailing data after top-level value")

	_, err = valstream.FromValue(yamlsrc.Bytes([]byte("a: [1, 2\n")))
	assert.Error(t, err)

	_, err = valstream.FromValue(yamlsrc.Bytes([]byte("a: 1\n"), valstream.SourceOpt{MaxBytes: 2}))
	assert.EqualError(t, err, "input exceeds 2 bytes")

	deep := strings.Repeat("[", valstream.MaxDepth+1) + strings.Repeat("]", valstream.MaxDepth+1)
	_, err = valstream.FromValue(yamlsrc.Bytes([]byte(deep)))
	assert.ErrorIs(t, err, valstream.ErrDepthExceeded)
}

func TestBytes_DuplicateKeys(t *testing.T) {
	doc := []byte("a: 1\nb: 2\na: 3\n")

	var issues []error
	got, err := valstream.FromValue(yamlsrc.Bytes(doc, valstream.SourceOpt{
		OnDuplicateKey: valstream.SeverityWarn,
		OnIssue:        func(err error) { issues = append(issues, err) },
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
	require.Len(t, issues, 1)
	assert.EqualError(t, issues[0], `duplicate YAML key "a" at 3:1 (first at 1:1)`)

	_, err = valstream.FromValue(yamlsrc.Bytes(doc, valstream.SourceOpt{OnDuplicateKey: valstream.SeverityError}))
	var dup *yamlsrc.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 3, dup.Line)
}

func TestDocuments(t *testing.T) {
	docs := yamlsrc.NewDocuments(strings.NewReader("a: 1\n---\n- x\n"))
	var out []string
	for {
		v, err := docs.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		o, err := valstream.FromValue(v)
		require.NoError(t, err)
		out = append(out, o.String())
	}
	assert.Equal(t, []string{`{"a": 1}`, `["x"]`}, out)
}
