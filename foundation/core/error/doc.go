// Package error provides structured error handling for meinRECHENWERK.
//
// Package: error
// Title: mRW Error Handling Framework
// Description: Errors with codes, severity, operation context and details.
//              Errors with the same code match each other through errors.Is,
//              so packages can declare coded sentinels and still return
//              errors that carry the concrete operands or file paths.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-18 v0.2.0: Code based errors.Is matching, arithmetic and history codes
//
// Usage:
//
//	var ErrDivisionByZero = mrwerror.New("division by zero").WithCode(mrwerror.CodeDivisionByZero)
//
//	err := mrwerror.New("cannot divide 5 by zero").
//		WithCode(mrwerror.CodeDivisionByZero).
//		WithOperation("divide").
//		WithDetail("operand_a", 5.0)
//
//	errors.Is(err, ErrDivisionByZero) // true
package error
