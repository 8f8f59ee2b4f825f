package mathutil

import "math"

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits v to [lo, hi] (search: int-math).
func IntClamp(v, lo, hi int) int {
	return IntMin(IntMax(v, lo), hi)
}

// FloorInt floors a float to an int. Finite values saturate at the int32
// range. NaN and infinities map to math.MinInt so range checks against them
// always fail.
func FloorInt(v float64) int {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return math.MinInt
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Floor(v))
}

// ClampByte truncates v into a color channel value.
func ClampByte(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// RoundHalfUp rounds .5 toward positive infinity, so -0.5 becomes 0.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
