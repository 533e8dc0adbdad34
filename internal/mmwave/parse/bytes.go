package parse

import (
	"encoding/binary"
	"math"
)

// magicPattern is the 8-byte synchronisation word the IWR6843 firmware writes
// at the start of every output frame. It never changes across firmware
// revisions and is the only way to find frame boundaries in the raw stream.
var magicPattern = [MagicSize]byte{0x02, 0x01, 0x04, 0x03, 0x06, 0x05, 0x08, 0x07}

// Uint32 decodes a little-endian unsigned 32-bit integer. The caller
// guarantees a 4-byte window.
func Uint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// Uint16 decodes a little-endian unsigned 16-bit integer. The caller
// guarantees a 2-byte window.
func Uint16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// Float32 decodes a little-endian IEEE-754 single-precision float. The caller
// guarantees a 4-byte window.
func Float32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// MatchesMagic reports whether the first MagicSize bytes of b equal the frame
// synchronisation pattern. b must be at least MagicSize bytes long.
func MatchesMagic(b []byte) bool {
	for i, want := range magicPattern {
		if b[i] != want {
			return false
		}
	}
	return true
}

// FindMagic scans buf for the first occurrence of the synchronisation pattern
// and returns its offset, or -1 when the buffer contains no frame start.
// First match wins; there is no resynchronisation heuristic beyond that.
func FindMagic(buf []byte) int {
	for i := 0; i+MagicSize <= len(buf); i++ {
		if MatchesMagic(buf[i : i+MagicSize]) {
			return i
		}
	}
	return -1
}
