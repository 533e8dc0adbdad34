package mmwave

import "math"

// degreesPerRadian converts radians to degrees (180/pi).
const degreesPerRadian = 180.0 / math.Pi

// Range returns the Euclidean distance from the sensor to the point (x, y, z),
// in the same units as the inputs (meters for this sensor).
func Range(x, y, z float32) float32 {
	return float32(math.Sqrt(float64(x)*float64(x) + float64(y)*float64(y) + float64(z)*float64(z)))
}

// Azimuth returns the horizontal angle of the point relative to boresight in
// degrees. Positive azimuth is to the sensor's right. When y is exactly zero
// the point lies on the sensor's X axis and the angle saturates at ±90.
func Azimuth(x, y float32) float32 {
	if y != 0 {
		return float32(degreesPerRadian * math.Atan(float64(x)/float64(y)))
	}
	if x < 0 {
		return -90.0
	}
	return 90.0
}

// Elevation returns the vertical angle of the point relative to the horizontal
// plane in degrees. A point directly above or below the sensor (x and y both
// zero) saturates at ±90.
func Elevation(x, y, z float32) float32 {
	if x == 0 && y == 0 {
		if z < 0 {
			return -90.0
		}
		return 90.0
	}
	horiz := math.Sqrt(float64(x)*float64(x) + float64(y)*float64(y))
	return float32(degreesPerRadian * math.Atan(float64(z)/horiz))
}
