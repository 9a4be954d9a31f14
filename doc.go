// Package valstream streams the structure of values from producers to
// consumers that know nothing about each other's concrete types.
//
// - Value is implemented by producers; Stream (plus optional capability
//   interfaces) by consumers.
// - StreamValue connects the two through a Driver that validates every call
//   against a fixed-depth Stack, so consumers only see well-formed calls.
// - Owned captures a streamed value into a detached tree that can be streamed
//   again (not available with the valstream_noalloc build tag).
//
// Design policy:
// - Keep the protocol in the root package; sources live under source/,
//   encoders under codec/, and token plumbing under internal/.
// - The core never allocates while validating and never logs; use the trace
//   package to observe a stream.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	err := valstream.StreamValue(valstream.Of(data), consumer)
//	snap, err := valstream.FromValue(jsonsrc.Bytes(raw))
//	out, err := jsoncodec.Marshal(snap)
//
package valstream
