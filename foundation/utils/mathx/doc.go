// Package mathx provides real-number helpers for the calculator.
//
// Package: mathx
// Title: mRW Math Utilities
// Description: Floating point helpers the standard math package does not
//              cover directly: floor division with a matching modulo, real
//              nth roots (odd roots of negative numbers included), rounding
//              to a number of decimal places and compact formatting.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Decimal arithmetic for financial values
// - 2026-10-18 v0.2.0: Replaced decimal types with float64 helpers for the calculator
//
// Usage:
//
//	q := mathx.FloorDiv(-7, 2)   // -4
//	r := mathx.FloorMod(-7, 2)   // 1
//	x, ok := mathx.NthRoot(-8, 3) // -2, true
//	s := mathx.Format(1.0/3, 4)  // "0.3333"
package mathx
