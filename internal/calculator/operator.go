package calculator

import (
	"strings"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
)

// Operator names one of the supported two-operand operations.
type Operator string

const (
	OpAdd          Operator = "add"
	OpSubtract     Operator = "subtract"
	OpMultiply     Operator = "multiply"
	OpDivide       Operator = "divide"
	OpPower        Operator = "power"
	OpModulo       Operator = "modulo"
	OpIntDivide    Operator = "intdivide"
	OpAbsoluteDiff Operator = "absolutediff"
	OpRoot         Operator = "root"
	OpPercent      Operator = "percent"
)

// Operators returns all operators in their documented order.
func Operators() []Operator {
	return []Operator{
		OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower,
		OpModulo, OpIntDivide, OpAbsoluteDiff, OpRoot, OpPercent,
	}
}

// ParseOperator resolves an operator name, ignoring case and surrounding space.
func ParseOperator(name string) (Operator, error) {
	op := Operator(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := operations[op]; !ok {
		return "", mrwerror.Newf("unknown operation: %s", name).
			WithCode(mrwerror.CodeUnknownOperation).
			WithDetail("name", name)
	}
	return op, nil
}

// IsOperator reports whether name is a known operator.
func IsOperator(name string) bool {
	_, err := ParseOperator(name)
	return err == nil
}

func (o Operator) String() string {
	return string(o)
}
