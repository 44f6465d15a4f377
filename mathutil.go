package sketch

// Lerp interpolates linearly between start and stop. amt 0 yields start
// and 1 yields stop; values outside [0, 1] extrapolate.
func Lerp(start, stop, amt float64) float64 {
	return start + (stop-start)*amt
}

// LerpPoint interpolates linearly between two points.
func LerpPoint(start, stop Point, amt float64) Point {
	return start.Lerp(stop, amt)
}

// Map re-maps value from the range [start1, stop1] to [start2, stop2].
// The value is not clamped. An empty source range is an *ArgumentError.
func Map(value, start1, stop1, start2, stop2 float64) (float64, error) {
	if start1 == stop1 {
		return 0, argError("Map", "empty source range [%v, %v]", start1, stop1)
	}
	return start2 + (stop2-start2)*(value-start1)/(stop1-start1), nil
}
