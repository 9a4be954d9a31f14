// Package snapshot persists streamed values in a compact binary form.
//
// A snapshot is the magic "VSNP", a version byte, the compression type, the
// little-endian xxhash64 of the uncompressed body and the (possibly
// compressed) body. The body is a pre-order list of tagged items; maps list
// keys and values alternately. Fmt arguments are stored as strings.
//
// Decode returns a Value that replays the body into any consumer, so a
// snapshot can be fed straight into an encoder without building a tree.
package snapshot

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/reoring/valstream"
	"github.com/reoring/valstream/compress"
)

const (
	magic   = "VSNP"
	version = 1

	headerSize = len(magic) + 1 + 1 + 8
)

type options struct {
	compression compress.CompressionType
}

// Option configures Marshal.
type Option func(*options)

// WithCompression selects the body compression. The default is
// compress.CompressionNone.
func WithCompression(ct compress.CompressionType) Option {
	return func(o *options) { o.compression = ct }
}

// Marshal streams v and returns its snapshot. A value that streams nothing
// fails with valstream.ErrInvalidState.
func Marshal(v valstream.Value, opts ...Option) ([]byte, error) {
	o := options{compression: compress.CompressionNone}
	for _, opt := range opts {
		opt(&o)
	}
	codec, err := compress.CreateCodec(o.compression, "snapshot")
	if err != nil {
		return nil, valstream.Wrap(err)
	}

	w := &bodyWriter{}
	if err := valstream.StreamValue(v, w); err != nil {
		return nil, err
	}
	if len(w.buf) == 0 {
		return nil, &valstream.Error{Code: valstream.CodeInvalidState, Message: "value streamed nothing"}
	}
	body, err := codec.Compress(w.buf)
	if err != nil {
		return nil, valstream.Wrap(err)
	}

	out := make([]byte, 0, headerSize+len(body))
	out = append(out, magic...)
	out = append(out, version, byte(o.compression))
	out = binary.LittleEndian.AppendUint64(out, xxhash.Sum64(w.buf))
	return append(out, body...), nil
}

// Decode verifies the snapshot header and checksum and returns a Value
// replaying the body. The Value can be streamed any number of times; a
// malformed body fails the stream.
func Decode(data []byte) (valstream.Value, error) {
	if len(data) < headerSize || !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return nil, valstream.Msg("not a valstream snapshot")
	}
	if v := data[len(magic)]; v != version {
		return nil, valstream.Errorf("unsupported snapshot version %d", v)
	}
	ct := compress.CompressionType(data[len(magic)+1])
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, valstream.Wrap(err)
	}
	sum := binary.LittleEndian.Uint64(data[len(magic)+2 : headerSize])
	body, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return nil, valstream.Wrap(err)
	}
	if xxhash.Sum64(body) != sum {
		return nil, valstream.Msg("snapshot checksum mismatch")
	}
	if ct == compress.CompressionNone {
		body = bytes.Clone(body)
	}
	return bodyValue(body), nil
}
