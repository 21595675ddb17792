package calculator

import (
	mrwerror "github.com/msto63/mRW/foundation/core/error"
)

// Sentinel errors. Concrete errors returned by this package carry the same
// code plus operands and context, and match these through errors.Is.
var (
	ErrUnknownOperation = mrwerror.New("unknown operation").WithCode(mrwerror.CodeUnknownOperation)
	ErrDivisionByZero   = mrwerror.New("division by zero").WithCode(mrwerror.CodeDivisionByZero)
	ErrDomain           = mrwerror.New("result is not a real number").WithCode(mrwerror.CodeDomainError)
	ErrInvalidInput     = mrwerror.New("invalid input").WithCode(mrwerror.CodeInvalidInput)
	ErrNothingToUndo    = mrwerror.New("nothing to undo").WithCode(mrwerror.CodeNothingToUndo)
	ErrNothingToRedo    = mrwerror.New("nothing to redo").WithCode(mrwerror.CodeNothingToRedo)
	ErrPersistence      = mrwerror.New("persistence failure").WithCode(mrwerror.CodePersistence)
	ErrCorruptData      = mrwerror.New("corrupt history data").WithCode(mrwerror.CodeDataCorruption)
)

func divisionByZero(op Operator, a float64) error {
	return mrwerror.Newf("division by zero: %s(%v, 0)", op, a).
		WithCode(mrwerror.CodeDivisionByZero).
		WithOperation(string(op)).
		WithDetail("operand_a", a)
}

func domainError(op Operator, a, b float64, reason string) error {
	return mrwerror.New(reason).
		WithCode(mrwerror.CodeDomainError).
		WithOperation(string(op)).
		WithDetail("operand_a", a).
		WithDetail("operand_b", b)
}

// InvalidInput returns an ErrInvalidInput error for a rejected operand or
// entry. It is exported for the REPL, which parses operands before they reach
// the registry.
func InvalidInput(format string, args ...interface{}) error {
	return mrwerror.Newf(format, args...).WithCode(mrwerror.CodeInvalidInput)
}
