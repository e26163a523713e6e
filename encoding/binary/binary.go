// Package binary narrows the standard library's encoding/binary down to
// the byte-order values the XIM codec actually switches on: its own
// Reader/Writer in ../../cursor.go index straight into byte slices, so
// none of the stdlib package's stream-oriented Read/Write helpers apply
// here.
package binary

import "encoding/binary"

type ByteOrder binary.ByteOrder

var (
	BigEndian    ByteOrder = binary.BigEndian
	LittleEndian ByteOrder = binary.LittleEndian

	// NativeEndian is the byte order of the host the process runs on.
	// The XIM wire format is native-endian: peers on the same machine
	// always agree, and the Connect handshake's endian tag lets the
	// receiver reject a mismatched frame instead of guessing.
	NativeEndian ByteOrder = binary.NativeEndian
)
