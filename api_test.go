package valstream_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/valstream"
)

func TestStreamValue_NestedMapCallOrder(t *testing.T) {
	r := &recorder{}
	require.NoError(t, valstream.StreamValue(nestedMap, r))

	want := []string{
		"map_begin(Some(1))",
		"map_key", "u64(1)",
		"map_value", "map_begin(Some(1))",
		"map_key", "u64(2)",
		"map_value", "u64(42)",
		"map_end",
		"map_end",
		"end",
	}
	assert.Equal(t, want, r.calls)
}

func TestStreamValue_Primitives(t *testing.T) {
	tests := []struct {
		name string
		v    valstream.Value
		want string
	}{
		{"i64", valstream.I64(-7), "i64(-7)"},
		{"u64", valstream.U64(7), "u64(7)"},
		{"f64", valstream.F64(1.5), "f64(1.5)"},
		{"bool", valstream.Bool(true), "bool(true)"},
		{"char", valstream.Char('x'), "char(x)"},
		{"str", valstream.Str("hi"), "str(hi)"},
		{"none", valstream.None, "none"},
		{"nil value", nil, "none"},
		{"fmt", valstream.ValueFunc(func(d *valstream.Driver) error {
			return d.Fmt(valstream.Args("%d-%s", 1, "a"))
		}), "fmt(1-a)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			require.NoError(t, valstream.StreamValue(tt.v, r))
			assert.Equal(t, []string{tt.want, "end"}, r.calls)
		})
	}
}

func TestStreamValue_MapValueWithoutKey(t *testing.T) {
	r := &recorder{}
	v := valstream.ValueFunc(func(d *valstream.Driver) error {
		if err := d.MapBegin(valstream.NoHint); err != nil {
			return err
		}
		return d.MapValue(valstream.U64(1))
	})

	err := valstream.StreamValue(v, r)
	require.ErrorIs(t, err, valstream.ErrInvalidState)
	assert.Equal(t, []string{"map_begin(None)"}, r.calls, "the invalid call must not reach the consumer")
}

func TestStreamValue_DepthBound(t *testing.T) {
	t.Run("seq at max depth", func(t *testing.T) {
		require.NoError(t, valstream.StreamValue(nested(valstream.MaxDepth), &recorder{}))
	})
	t.Run("seq beyond max depth", func(t *testing.T) {
		err := valstream.StreamValue(nested(valstream.MaxDepth+1), &recorder{})
		require.ErrorIs(t, err, valstream.ErrDepthExceeded)
	})
	t.Run("map at max depth", func(t *testing.T) {
		require.NoError(t, valstream.StreamValue(nestedMaps(valstream.MaxDepth), &recorder{}))
	})
	t.Run("map beyond max depth", func(t *testing.T) {
		err := valstream.StreamValue(nestedMaps(valstream.MaxDepth+1), &recorder{})
		require.ErrorIs(t, err, valstream.ErrDepthExceeded)
	})
}

func TestStreamValue_Unterminated(t *testing.T) {
	r := &recorder{}
	v := valstream.ValueFunc(func(d *valstream.Driver) error {
		if err := d.SeqBegin(2); err != nil {
			return err
		}
		return d.SeqElem(valstream.U64(1))
	})

	err := valstream.StreamValue(v, r)
	require.ErrorIs(t, err, valstream.ErrUnterminated)
	assert.NotContains(t, r.calls, "end", "End must not fire on an unbalanced stream")
}

func TestStreamValue_Balanced(t *testing.T) {
	r := &recorder{}
	v := valstream.Seq{valstream.U64(1), valstream.Seq{}, valstream.Map{}}
	require.NoError(t, valstream.StreamValue(v, r))
	assert.Equal(t, "end", r.calls[len(r.calls)-1])
}

func TestStreamValue_FirstErrorIsLatched(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{failOn: "u64(2)", failErr: boom}

	var laterErrs []error
	v := valstream.ValueFunc(func(d *valstream.Driver) error {
		d.SeqBegin(3)
		d.SeqElem(valstream.U64(1))
		d.SeqElem(valstream.U64(2))
		laterErrs = append(laterErrs, d.SeqElem(valstream.U64(3)), d.SeqEnd())
		return nil
	})

	err := valstream.StreamValue(v, r)
	require.Equal(t, boom, err, "the consumer's error is returned verbatim")
	for _, e := range laterErrs {
		assert.Equal(t, boom, e)
	}
	assert.Equal(t, []string{"seq_begin(Some(3))", "seq_elem", "u64(1)", "seq_elem", "u64(2)"}, r.calls)
}

func TestStreamValue_ProducerError(t *testing.T) {
	r := &recorder{}
	v := valstream.ValueFunc(func(d *valstream.Driver) error {
		if err := d.SeqBegin(valstream.NoHint); err != nil {
			return err
		}
		return valstream.Msg("producer gave up")
	})

	err := valstream.StreamValue(v, r)
	e, ok := valstream.AsError(err)
	require.True(t, ok)
	assert.Equal(t, valstream.CodeCustom, e.Code)
	assert.Equal(t, "producer gave up", err.Error())
}

func TestStreamValue_SecondRootRejected(t *testing.T) {
	v := valstream.ValueFunc(func(d *valstream.Driver) error {
		if err := d.U64(1); err != nil {
			return err
		}
		return d.U64(2)
	})
	require.ErrorIs(t, valstream.StreamValue(v, &recorder{}), valstream.ErrInvalidState)
}

// u64Only implements only the u64 capability on top of Base.
type u64Only struct {
	valstream.Base
	got      []uint64
	fallback int
}

func (s *u64Only) U64(v uint64) error {
	s.got = append(s.got, v)
	return nil
}

func (s *u64Only) Fmt(valstream.Arguments) error {
	s.fallback++
	return valstream.Unsupported("not a u64")
}

func TestStreamValue_PrimitivePassthrough(t *testing.T) {
	s := &u64Only{}
	require.NoError(t, valstream.StreamValue(valstream.U64(42), s))
	assert.Equal(t, []uint64{42}, s.got)
	assert.Zero(t, s.fallback)

	s = &u64Only{}
	err := valstream.StreamValue(valstream.Str("42"), s)
	require.ErrorIs(t, err, valstream.ErrUnsupported)
	assert.Equal(t, 1, s.fallback)
	assert.Empty(t, s.got)
}

func TestIs_ProbesCapability(t *testing.T) {
	assert.True(t, valstream.Is(valstream.U64(42), &u64Only{}))
	assert.True(t, valstream.Is(valstream.Of(uint8(3)), &u64Only{}))
	assert.False(t, valstream.Is(valstream.I64(42), &u64Only{}))
	assert.False(t, valstream.Is(valstream.Of("42"), &u64Only{}))
}

// fmtOnly implements nothing but the fallback.
type fmtOnly struct{ out []string }

func (s *fmtOnly) Fmt(a valstream.Arguments) error {
	s.out = append(s.out, a.String())
	return nil
}

func TestStreamValue_FallbackChain(t *testing.T) {
	s := &fmtOnly{}
	v := valstream.Seq{
		valstream.I64(-1), valstream.U64(2), valstream.F64(0.5), valstream.Bool(false),
		valstream.Char('c'), valstream.Str("s"), valstream.None,
	}
	require.NoError(t, valstream.StreamValue(v, s), "structural calls default to no-ops")
	assert.Equal(t, []string{"-1", "2", "0.5", "false", "'c'", `"s"`, "none"}, s.out)
}

func TestStreamValue_BaseRejectsEverything(t *testing.T) {
	err := valstream.StreamValue(valstream.U64(1), &struct{ valstream.Base }{})
	require.ErrorIs(t, err, valstream.ErrUnsupported)

	require.NoError(t, valstream.StreamValue(valstream.Seq{}, &struct{ valstream.Base }{}),
		"an empty sequence never reaches the fallback")
}

// entryRecorder also implements MapEntryStream.
type entryRecorder struct{ recorder }

func (r *entryRecorder) MapKeyBegin() error   { return r.rec("map_key_begin") }
func (r *entryRecorder) MapValueBegin() error { return r.rec("map_value_begin") }

func TestStreamValue_MapEntryCapability(t *testing.T) {
	r := &entryRecorder{}
	require.NoError(t, valstream.StreamValue(nestedMap, r))
	assert.Equal(t, []string{
		"map_begin(Some(1))",
		"map_key", "u64(1)",
		"map_value_begin", "map_begin(Some(1))",
		"map_key", "u64(2)",
		"map_value", "u64(42)",
		"map_end",
		"map_end",
		"end",
	}, r.calls)
}
