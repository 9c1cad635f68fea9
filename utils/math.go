// Package utils contains scalar helpers shared by the math packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Clamp returns v limited to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeAcos is math.Acos with its argument clamped to [-1, 1], so that
// floating round-off slightly outside the domain cannot produce NaN.
func SafeAcos(v float64) float64 {
	return math.Acos(Clamp(v, -1, 1))
}

// Float64AlmostEqual compares two float64s within a given tolerance.
func Float64AlmostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// WrapPi wraps an angle in radians to the interval [-pi, pi).
func WrapPi(theta float64) float64 {
	theta += math.Pi
	theta -= math.Floor(theta/(2*math.Pi)) * 2 * math.Pi
	return theta - math.Pi
}
