package parse

// Frame header byte offsets relative to the magic word. All fields are
// unsigned 32-bit little-endian. Offsets 0-7 are the magic word itself and
// offsets 8-11 (firmware version) are not needed by this pipeline.
const (
	offsetPacketLength   = 12
	offsetFrameNumber    = 20
	offsetTimeCPUCycles  = 24
	offsetNumDetectedObj = 28
	offsetNumTLV         = 32
	offsetSubFrameNumber = 36
)

// FrameHeader is the fixed-layout header at the start of every sensor frame.
// It is produced once per located magic word and read-only afterwards.
// StartOffset is -1 when no magic word was found in the buffer; field values
// are only meaningful for a header the validator classifies as a pass.
type FrameHeader struct {
	StartOffset        int
	PacketLength       uint32
	FrameNumber        uint32
	TimeCPUCycles      uint32
	NumDetectedObjects uint32
	NumTLV             uint32
	SubFrameNumber     uint32
}

// sentinelHeader marks a buffer in which no frame start was found.
var sentinelHeader = FrameHeader{StartOffset: -1}

// ParseFrameHeader locates the magic word in buf and extracts the fixed-offset
// header fields. When no magic word is present, or the buffer ends before the
// 40-byte header completes, the returned header carries only the locate result
// and the validator rejects it.
func ParseFrameHeader(buf []byte) FrameHeader {
	start := FindMagic(buf)
	if start < 0 {
		return sentinelHeader
	}
	if start+HeaderSize > len(buf) {
		// Header truncated by the read boundary. Keep the offset so the
		// validator can report truncation rather than a missing sync.
		return FrameHeader{StartOffset: start}
	}

	return FrameHeader{
		StartOffset:        start,
		PacketLength:       Uint32(buf[start+offsetPacketLength:]),
		FrameNumber:        Uint32(buf[start+offsetFrameNumber:]),
		TimeCPUCycles:      Uint32(buf[start+offsetTimeCPUCycles:]),
		NumDetectedObjects: Uint32(buf[start+offsetNumDetectedObj:]),
		NumTLV:             Uint32(buf[start+offsetNumTLV:]),
		SubFrameNumber:     Uint32(buf[start+offsetSubFrameNumber:]),
	}
}
