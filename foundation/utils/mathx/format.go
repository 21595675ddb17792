// File: format.go
// Title: Rounding and Formatting
// Description: Rounds values to a number of decimal places and formats them
//              without trailing zeros for display.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18

package mathx

import (
	"math"
	"strconv"
)

// Round rounds x half away from zero to the given number of decimal places.
// Negative places leave x unchanged.
func Round(x float64, places int) float64 {
	if places < 0 || !IsFinite(x) {
		return x
	}
	scale := math.Pow(10, float64(places))
	scaled := x * scale
	if math.IsInf(scaled, 0) {
		// Too large to carry fractional digits anyway
		return x
	}
	return math.Round(scaled) / scale
}

// Format renders x rounded to places decimals with trailing zeros removed.
// Negative zero prints as "0".
func Format(x float64, places int) string {
	r := Round(x, places)
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
