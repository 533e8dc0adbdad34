package main

import (
	"encoding/binary"
	"math"
)

// Offsets and sizes of the IWR6843 frame layout used to synthesize the dev
// mode fixture. These mirror the wire format decoded by internal/mmwave/parse.
const (
	demoHeaderSize    = 40
	demoTLVHeaderSize = 8
	demoPointSize     = 16
	demoSideInfoSize  = 4
)

var demoMagic = []byte{0x02, 0x01, 0x04, 0x03, 0x06, 0x05, 0x08, 0x07}

type demoPoint struct {
	x, y, z, v float32
	snr, noise uint16
}

// demoFrame builds one wire-format frame containing two synthetic detections:
// a slow-moving target dead ahead and a stationary one off to the right.
func demoFrame() []byte {
	points := []demoPoint{
		{x: 0, y: 4.2, z: 0.3, v: -0.8, snr: 180, noise: 25},
		{x: 2.5, y: 3.1, z: 0, v: 0, snr: 95, noise: 40},
	}

	packetLength := demoHeaderSize +
		demoTLVHeaderSize + len(points)*demoPointSize +
		demoTLVHeaderSize + len(points)*demoSideInfoSize

	buf := make([]byte, 0, packetLength)
	buf = append(buf, demoMagic...)

	hdr := make([]byte, demoHeaderSize-len(demoMagic))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(packetLength)) // offset 12
	binary.LittleEndian.PutUint32(hdr[12:], 1)                   // offset 20: frame number
	binary.LittleEndian.PutUint32(hdr[16:], 600000000)           // offset 24: cpu cycles
	binary.LittleEndian.PutUint32(hdr[20:], uint32(len(points))) // offset 28: object count
	binary.LittleEndian.PutUint32(hdr[24:], 2)                   // offset 32: tlv count
	binary.LittleEndian.PutUint32(hdr[28:], 0)                   // offset 36: sub-frame
	buf = append(buf, hdr...)

	tlv := make([]byte, demoTLVHeaderSize)
	binary.LittleEndian.PutUint32(tlv[0:], 1) // detected points
	binary.LittleEndian.PutUint32(tlv[4:], uint32(len(points)*demoPointSize))
	buf = append(buf, tlv...)
	for _, p := range points {
		var payload [demoPointSize]byte
		binary.LittleEndian.PutUint32(payload[0:], math.Float32bits(p.x))
		binary.LittleEndian.PutUint32(payload[4:], math.Float32bits(p.y))
		binary.LittleEndian.PutUint32(payload[8:], math.Float32bits(p.z))
		binary.LittleEndian.PutUint32(payload[12:], math.Float32bits(p.v))
		buf = append(buf, payload[:]...)
	}

	binary.LittleEndian.PutUint32(tlv[0:], 7) // side info
	binary.LittleEndian.PutUint32(tlv[4:], uint32(len(points)*demoSideInfoSize))
	buf = append(buf, tlv...)
	for _, p := range points {
		var payload [demoSideInfoSize]byte
		binary.LittleEndian.PutUint16(payload[0:], p.snr)
		binary.LittleEndian.PutUint16(payload[2:], p.noise)
		buf = append(buf, payload[:]...)
	}

	return buf
}
