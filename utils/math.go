package utils

import (
	"math"
)

// Fl is the floating point type used for percentages and ratios.
// Geometry itself is computed on whole pixels.
type Fl = float32

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func MaxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// ClampInt returns v restricted to [low, high].
func ClampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

func Floor(x Fl) Fl {
	return Fl(math.Floor(float64(x)))
}

// Ceil returns the smallest integer not less than x.
func Ceil(x Fl) int {
	return int(math.Ceil(float64(x)))
}

// Round rounds a length to the nearest whole pixel.
func Round(f Fl) int {
	return int(math.Round(float64(f)))
}
