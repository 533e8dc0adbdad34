package mmwave

import (
	"math"
	"testing"
)

func approxEqual(a, b float32, tol float64) bool {
	return math.Abs(float64(a)-float64(b)) <= tol
}

func TestRange(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
		want    float32
	}{
		{"origin", 0, 0, 0, 0},
		{"unit cube diagonal", 1, 1, 1, 1.7320508},
		{"pythagorean", 3, 4, 0, 5},
		{"negative components", -3, -4, 0, 5},
		{"axis aligned", 0, 12.5, 0, 12.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Range(tt.x, tt.y, tt.z); !approxEqual(got, tt.want, 1e-4) {
				t.Errorf("Range(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
			}
		})
	}
}

func TestAzimuth(t *testing.T) {
	tests := []struct {
		name string
		x, y float32
		want float32
	}{
		{"boresight", 0, 5, 0},
		{"45 degrees right", 1, 1, 45},
		{"45 degrees left", -1, 1, -45},
		{"on positive x axis", 5, 0, 90},
		{"on negative x axis", -5, 0, -90},
		{"origin saturates positive", 0, 0, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Azimuth(tt.x, tt.y); !approxEqual(got, tt.want, 1e-4) {
				t.Errorf("Azimuth(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestElevation(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
		want    float32
	}{
		{"level", 3, 4, 0, 0},
		{"straight up", 0, 0, 5, 90},
		{"straight down", 0, 0, -5, -90},
		{"45 degrees up", 0, 1, 1, 45},
		{"45 degrees down", 1, 0, -1, -45},
		{"unit cube diagonal", 1, 1, 1, 35.26439},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Elevation(tt.x, tt.y, tt.z); !approxEqual(got, tt.want, 1e-4) {
				t.Errorf("Elevation(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
			}
		})
	}
}
