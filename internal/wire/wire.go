// Package wire holds the item tags shared by the snapshot body format and
// the structural fingerprint.
package wire

const (
	TagNone     byte = 0x00
	TagI64      byte = 0x01 // zig-zag varint
	TagU64      byte = 0x02 // uvarint
	TagF64      byte = 0x03 // 8 bytes little endian
	TagFalse    byte = 0x04
	TagTrue     byte = 0x05
	TagChar     byte = 0x06 // uvarint
	TagStr      byte = 0x07 // uvarint length + bytes
	TagSeqBegin byte = 0x08 // uvarint hint+1
	TagSeqEnd   byte = 0x09
	TagMapBegin byte = 0x0A // uvarint hint+1
	TagMapEnd   byte = 0x0B
)

// Bool returns the tag for b.
func Bool(b bool) byte {
	if b {
		return TagTrue
	}
	return TagFalse
}
