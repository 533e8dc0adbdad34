package mmwave

import "gonum.org/v1/gonum/stat"

// FrameStats summarises the detections of a single decoded frame. It is what
// the API serves for quick health checks without shipping every detection.
type FrameStats struct {
	Count       int     `json:"count"`
	MeanSNR     float64 `json:"mean_snr"`
	StdDevSNR   float64 `json:"stddev_snr"`
	MeanNoise   float64 `json:"mean_noise"`
	MinRange    float64 `json:"min_range_m"`
	MaxRange    float64 `json:"max_range_m"`
	MeanRange   float64 `json:"mean_range_m"`
	StdDevRange float64 `json:"stddev_range_m"`
}

// Summarize computes FrameStats over a slice of detections. An empty or nil
// slice yields a zero-valued FrameStats with Count 0.
func Summarize(objects []DetectedObject) FrameStats {
	if len(objects) == 0 {
		return FrameStats{}
	}

	snrs := make([]float64, len(objects))
	noises := make([]float64, len(objects))
	ranges := make([]float64, len(objects))
	for i, obj := range objects {
		snrs[i] = float64(obj.SNR)
		noises[i] = float64(obj.Noise)
		ranges[i] = float64(obj.Range)
	}

	s := FrameStats{
		Count:     len(objects),
		MeanNoise: stat.Mean(noises, nil),
		MinRange:  ranges[0],
		MaxRange:  ranges[0],
	}
	s.MeanSNR, s.StdDevSNR = stat.MeanStdDev(snrs, nil)
	s.MeanRange, s.StdDevRange = stat.MeanStdDev(ranges, nil)

	// MeanStdDev reports NaN for single-sample inputs; stats should stay
	// finite so they serialise cleanly as JSON.
	if len(objects) == 1 {
		s.StdDevSNR = 0
		s.StdDevRange = 0
	}

	for _, r := range ranges[1:] {
		if r < s.MinRange {
			s.MinRange = r
		}
		if r > s.MaxRange {
			s.MaxRange = r
		}
	}
	return s
}
