package calculator

import (
	"fmt"
	"time"

	"github.com/msto63/mRW/foundation/utils/mathx"
)

// DefaultPrecision is the number of decimal places used when printing.
const DefaultPrecision = 10

// Calculation is one performed operation. It is a value: copies never share
// state, and Result always holds what the registry computed for the operands
// (or what was persisted, for loaded records).
type Calculation struct {
	Operator  Operator
	OperandA  float64
	OperandB  float64
	Result    float64
	Timestamp time.Time
}

// Format renders the calculation as "op(a, b) = result" using precision
// decimal places.
func (c Calculation) Format(precision int) string {
	return fmt.Sprintf("%s(%s, %s) = %s",
		c.Operator,
		mathx.Format(c.OperandA, precision),
		mathx.Format(c.OperandB, precision),
		mathx.Format(c.Result, precision),
	)
}

func (c Calculation) String() string {
	return c.Format(DefaultPrecision)
}

// Equal reports whether two calculations describe the same record.
func (c Calculation) Equal(other Calculation) bool {
	return c.Operator == other.Operator &&
		c.OperandA == other.OperandA &&
		c.OperandB == other.OperandB &&
		c.Result == other.Result &&
		c.Timestamp.Equal(other.Timestamp)
}
