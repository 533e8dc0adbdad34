// Package mmwave holds the domain types shared across the mmWave radar
// ingest pipeline: detected objects produced by the frame decoder, the
// coordinate geometry used to derive angles from Cartesian measurements,
// and per-frame summary statistics.
package mmwave

// DetectedObject is one radar detection extracted from a sensor frame.
// Coordinate convention matches the sensor frame: X=right, Y=forward
// (boresight), Z=up, all in meters. V is the radial velocity in m/s
// (negative = approaching).
//
// The decoder allocates one zeroed DetectedObject per slot declared by the
// frame header and populates it in two passes: the kinematics sub-block sets
// X, Y, Z, V and the derived Range/Azimuth/Elevation; the quality sub-block
// sets SNR and Noise. Both sub-blocks index slots by position, so they must
// agree on object count and ordering.
type DetectedObject struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	V float32 `json:"v"`

	// Derived from X/Y/Z at decode time.
	Range     float32 `json:"range_m"`
	Azimuth   float32 `json:"azimuth_deg"`
	Elevation float32 `json:"elevation_deg"`

	// Reported by the sensor's quality sub-block, in 0.1 dB units.
	SNR   uint16 `json:"snr"`
	Noise uint16 `json:"noise"`
}
