package parse

// FrameStatus classifies a located frame header against the buffer it lives
// in. StatusPass is the only value that authorises TLV decoding; every other
// value names the specific integrity check that failed, so callers can tell
// "no data yet" apart from a corrupted or truncated frame.
type FrameStatus int

const (
	// StatusPass means the header is self-consistent with the buffer and
	// decoding may proceed.
	StatusPass FrameStatus = iota
	// StatusNoSync means the buffer contains no magic word at all.
	StatusNoSync
	// StatusTruncatedFrame means the declared frame extends past the end of
	// the available buffer, or the buffer ends inside the 40-byte header.
	StatusTruncatedFrame
	// StatusInvalidSubFrame means the header's sub-frame index exceeds the
	// device maximum of 3 (four sub-frames, zero-indexed).
	StatusInvalidSubFrame
	// StatusBoundaryMismatch means the magic word expected at the declared
	// end of this frame was checkable but absent.
	StatusBoundaryMismatch
)

// Pass reports whether the frame may be decoded.
func (s FrameStatus) Pass() bool { return s == StatusPass }

func (s FrameStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusNoSync:
		return "no-sync"
	case StatusTruncatedFrame:
		return "truncated-frame"
	case StatusInvalidSubFrame:
		return "invalid-sub-frame"
	case StatusBoundaryMismatch:
		return "boundary-mismatch"
	default:
		return "unknown"
	}
}

// maxSubFrame is the highest valid sub-frame index. The device partitions a
// frame into at most four sub-frames.
const maxSubFrame = 3

// Classify runs the integrity checks for a located header against the buffer
// it was parsed from. A trustworthy frame is one whose header is
// self-consistent with the available bytes and whose declared boundary is
// corroborated by the next frame's magic word when that position is in range;
// the frame format carries no checksum, so this is the strongest check
// available.
func Classify(buf []byte, hdr FrameHeader) FrameStatus {
	if hdr.StartOffset < 0 {
		return StatusNoSync
	}
	if hdr.StartOffset+HeaderSize > len(buf) {
		return StatusTruncatedFrame
	}
	if hdr.SubFrameNumber > maxSubFrame {
		return StatusInvalidSubFrame
	}
	if hdr.StartOffset+int(hdr.PacketLength) > len(buf) {
		return StatusTruncatedFrame
	}

	// When the buffer extends at least a magic word past the declared end of
	// this frame, the next frame's magic word must start there.
	next := hdr.StartOffset + int(hdr.PacketLength)
	if next+MagicSize <= len(buf) && !MatchesMagic(buf[next:next+MagicSize]) {
		return StatusBoundaryMismatch
	}

	return StatusPass
}
