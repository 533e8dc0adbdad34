package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	for _, u := range ValidUnits {
		if !IsValid(u) {
			t.Errorf("IsValid(%q) = false, want true", u)
		}
	}
	for _, u := range []string{"", "knots", "MPH"} {
		if IsValid(u) {
			t.Errorf("IsValid(%q) = true, want false", u)
		}
	}
}

func TestConvertVelocity(t *testing.T) {
	tests := []struct {
		name   string
		mps    float64
		target string
		want   float64
	}{
		{"mps passthrough", 10, MPS, 10},
		{"to mph", 10, MPH, 22.369362920544},
		{"to kmph", 10, KMPH, 36},
		{"kph alias", 10, KPH, 36},
		{"unknown unit falls back to mps", 10, "furlongs", 10},
		{"negative approaching velocity", -5, KMPH, -18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertVelocity(tt.mps, tt.target); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConvertVelocity(%v, %q) = %v, want %v", tt.mps, tt.target, got, tt.want)
			}
		})
	}
}
