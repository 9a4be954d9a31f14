//go:build !valstream_noalloc

package snapshot

import "github.com/reoring/valstream"

// Unmarshal decodes a snapshot into an owned tree.
func Unmarshal(data []byte) (valstream.Owned, error) {
	v, err := Decode(data)
	if err != nil {
		return valstream.Owned{}, err
	}
	return valstream.FromValue(v)
}
