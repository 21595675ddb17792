// File: real.go
// Title: Real Number Helpers
// Description: Floor division, modulo, nth roots and finiteness checks.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18

package mathx

import (
	"math"
)

// IsFinite reports whether x is neither NaN nor an infinity
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// IsInteger reports whether x is a finite whole number
func IsInteger(x float64) bool {
	return IsFinite(x) && x == math.Trunc(x)
}

// FloorDiv returns floor(a / b). The caller guarantees b != 0.
func FloorDiv(a, b float64) float64 {
	return math.Floor(a / b)
}

// FloorMod returns a - b*floor(a/b); the result has the sign of b.
// The caller guarantees b != 0.
func FloorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// NthRoot returns the real n-th root of x.
// ok is false when no real root exists: n is zero, or x is negative and n is
// not an odd integer.
func NthRoot(x, n float64) (root float64, ok bool) {
	if n == 0 || !IsFinite(n) || !IsFinite(x) {
		return 0, false
	}
	if x < 0 {
		if !IsInteger(n) || math.Mod(math.Abs(n), 2) != 1 {
			return 0, false
		}
		return -math.Pow(-x, 1/n), true
	}
	if x == 0 && n < 0 {
		return 0, false
	}
	return math.Pow(x, 1/n), true
}
