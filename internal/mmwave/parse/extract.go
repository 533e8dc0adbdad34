// Package parse decodes the binary output stream of a TI IWR6843 mmWave radar
// sensor into detected-object records.
//
// The sensor writes frames back-to-back on its data UART. Each frame is:
//
//	├── Magic word (8 bytes)  - 0x02 0x01 0x04 0x03 0x06 0x05 0x08 0x07
//	├── Header (40 bytes incl. magic) - packet length, frame number,
//	│   CPU cycle time, detected-object count, TLV count, sub-frame number
//	│   (all uint32 little-endian at fixed offsets)
//	└── TLV sub-blocks - each an 8-byte sub-header (type, length uint32 LE)
//	    followed by `length` payload bytes:
//	      type 1: detected points, 16 bytes per object (x, y, z, v float32 LE)
//	      type 7: point side info, 4 bytes per object (snr, noise uint16 LE)
//
// The decoder recognises exactly the type-1 then type-7 sequence; any other
// type or ordering is skipped without effect. It is a pure function of the
// buffer it is handed: no I/O, no state across calls, safe to run concurrently
// on independent buffers. A frame split across two reads is never reassembled;
// the caller hands over whatever bytes the current poll produced and a partial
// frame classifies as truncated.
package parse

import (
	"github.com/banshee-data/mmwave.report/internal/mmwave"
)

// Frame layout constants for the IWR6843 output format.
const (
	MagicSize  = 8  // magic word length in bytes
	HeaderSize = 40 // full header length in bytes, magic word included

	tlvHeaderSize = 8 // type (uint32) + length (uint32)

	// TLV type tags emitted by the mmWave demo firmware.
	tlvTypeDetectedPoints = 1 // per-object kinematics: x, y, z, v
	tlvTypeSideInfo       = 7 // per-object signal quality: snr, noise

	pointSize    = 16 // one detected point: 4 × float32
	sideInfoSize = 4  // one side-info entry: 2 × uint16
)

// Decode locates, validates and decodes one frame in buf. On a passing frame
// it returns the populated detections (one per slot declared by the header,
// possibly zero) and StatusPass. On any failure it returns a nil slice and the
// status naming the failed check. Each call re-scans from the start of the
// buffer it is given.
func Decode(buf []byte) ([]mmwave.DetectedObject, FrameStatus) {
	_, objects, status := DecodeFrame(buf)
	return objects, status
}

// DecodeFrame is Decode plus the parsed header, for callers that record frame
// metadata alongside the detections without parsing the buffer twice. The
// header is as parsed, whether or not the status passes.
func DecodeFrame(buf []byte) (FrameHeader, []mmwave.DetectedObject, FrameStatus) {
	hdr := ParseFrameHeader(buf)
	status := Classify(buf, hdr)
	if !status.Pass() {
		return hdr, nil, status
	}
	return hdr, decodeTLVs(buf, hdr), status
}

// decodeTLVs walks the two expected sub-blocks after the header and fills the
// detection slots in declared order. Only called for a header the validator
// passed, so the declared frame is known to fit inside buf; the declared TLV
// lengths and object count are still untrusted, so every payload read is
// bounds-guarded and slot allocation is capped below.
func decodeTLVs(buf []byte, hdr FrameHeader) []mmwave.DetectedObject {
	// The declared count is capped by how many kinematics entries the
	// declared packet could physically carry; slots beyond that could never
	// be filled, and an absurd count must not drive the allocation.
	count := int(hdr.NumDetectedObjects)
	if limit := (int(hdr.PacketLength) - HeaderSize - tlvHeaderSize) / pointSize; count > limit {
		count = limit
	}
	if count < 0 {
		count = 0
	}
	objects := make([]mmwave.DetectedObject, count)

	tlvStart := hdr.StartOffset + HeaderSize
	if tlvStart+tlvHeaderSize > len(buf) {
		return objects
	}
	tlvType := Uint32(buf[tlvStart:])
	tlvLen := Uint32(buf[tlvStart+4:])

	// The length sanity bound (declared payload shorter than the whole
	// packet) matches the firmware's own framing rules and rejects garbage
	// length fields cheaply.
	if tlvType == tlvTypeDetectedPoints && tlvLen < hdr.PacketLength {
		offset := tlvStart + tlvHeaderSize
		for i := range objects {
			if offset+pointSize > len(buf) {
				break
			}
			x := Float32(buf[offset:])
			y := Float32(buf[offset+4:])
			z := Float32(buf[offset+8:])
			v := Float32(buf[offset+12:])

			objects[i].X = x
			objects[i].Y = y
			objects[i].Z = z
			objects[i].V = v
			objects[i].Range = mmwave.Range(x, y, z)
			objects[i].Azimuth = mmwave.Azimuth(x, y)
			objects[i].Elevation = mmwave.Elevation(x, y, z)

			offset += pointSize
		}
	}

	// The side-info block is located from the declared type-1 length, not
	// from the bytes consumed above. The firmware keeps the two in agreement;
	// if they ever disagree the side-info read below simply finds a
	// non-matching type tag and is skipped.
	tlvStart += tlvHeaderSize + int(tlvLen)
	if tlvStart+tlvHeaderSize > len(buf) {
		return objects
	}
	tlvType = Uint32(buf[tlvStart:])

	if tlvType == tlvTypeSideInfo {
		offset := tlvStart + tlvHeaderSize
		for i := range objects {
			if offset+sideInfoSize > len(buf) {
				break
			}
			objects[i].SNR = Uint16(buf[offset:])
			objects[i].Noise = Uint16(buf[offset+2:])
			offset += sideInfoSize
		}
	}

	return objects
}
