package calculator

import (
	"math"
	"time"

	"github.com/msto63/mRW/foundation/utils/mathx"
)

// operation is one entry of the operator lookup table.
type operation struct {
	description string
	apply       func(op Operator, a, b float64) (float64, error)
}

var operations = map[Operator]operation{
	OpAdd: {
		description: "Add two numbers",
		apply: func(_ Operator, a, b float64) (float64, error) {
			return a + b, nil
		},
	},
	OpSubtract: {
		description: "Subtract the second number from the first",
		apply: func(_ Operator, a, b float64) (float64, error) {
			return a - b, nil
		},
	},
	OpMultiply: {
		description: "Multiply two numbers",
		apply: func(_ Operator, a, b float64) (float64, error) {
			return a * b, nil
		},
	},
	OpDivide: {
		description: "Divide the first number by the second",
		apply: func(op Operator, a, b float64) (float64, error) {
			if b == 0 {
				return 0, divisionByZero(op, a)
			}
			return a / b, nil
		},
	},
	OpPower: {
		description: "Raise the first number to the power of the second",
		apply: func(op Operator, a, b float64) (float64, error) {
			if a == 0 && b < 0 {
				return 0, domainError(op, a, b, "zero cannot be raised to a negative power")
			}
			if a < 0 && !mathx.IsInteger(b) {
				return 0, domainError(op, a, b, "negative base with a fractional exponent has no real result")
			}
			return math.Pow(a, b), nil
		},
	},
	OpModulo: {
		description: "Remainder of floor division (sign follows the divisor)",
		apply: func(op Operator, a, b float64) (float64, error) {
			if b == 0 {
				return 0, divisionByZero(op, a)
			}
			return mathx.FloorMod(a, b), nil
		},
	},
	OpIntDivide: {
		description: "Floor division, rounded toward negative infinity",
		apply: func(op Operator, a, b float64) (float64, error) {
			if b == 0 {
				return 0, divisionByZero(op, a)
			}
			return mathx.FloorDiv(a, b), nil
		},
	},
	OpAbsoluteDiff: {
		description: "Absolute difference of two numbers",
		apply: func(_ Operator, a, b float64) (float64, error) {
			return math.Abs(a - b), nil
		},
	},
	OpRoot: {
		description: "The second-number root of the first number",
		apply: func(op Operator, a, b float64) (float64, error) {
			if b == 0 {
				return 0, domainError(op, a, b, "root of degree zero is undefined")
			}
			r, ok := mathx.NthRoot(a, b)
			if !ok {
				return 0, domainError(op, a, b, "root has no real result")
			}
			return r, nil
		},
	},
	OpPercent: {
		description: "The first number as a percentage of the second",
		apply: func(op Operator, a, b float64) (float64, error) {
			if b == 0 {
				return 0, divisionByZero(op, a)
			}
			return (a / b) * 100, nil
		},
	},
}

// Describe returns the help text of an operator.
func Describe(op Operator) string {
	return operations[op].description
}

// DefaultMaxInput bounds operand magnitude unless configured otherwise.
const DefaultMaxInput = 1e300

// Registry is the operation factory. It validates operands and builds
// Calculation values; it never touches a History.
type Registry struct {
	maxInput float64
	now      func() time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMaxInput rejects operands whose absolute value exceeds max.
func WithMaxInput(max float64) RegistryOption {
	return func(r *Registry) {
		if max > 0 {
			r.maxInput = max
		}
	}
}

// WithClock sets the clock used to timestamp calculations.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates an operation registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		maxInput: DefaultMaxInput,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxInput returns the largest accepted operand magnitude.
func (r *Registry) MaxInput() float64 {
	return r.maxInput
}

// Compute validates the request and returns the resulting calculation.
// The result depends only on name, a and b.
func (r *Registry) Compute(name string, a, b float64) (Calculation, error) {
	op, err := ParseOperator(name)
	if err != nil {
		return Calculation{}, err
	}

	if err := r.ValidateOperand(a); err != nil {
		return Calculation{}, err
	}
	if err := r.ValidateOperand(b); err != nil {
		return Calculation{}, err
	}

	result, err := operations[op].apply(op, a, b)
	if err != nil {
		return Calculation{}, err
	}
	if !mathx.IsFinite(result) {
		return Calculation{}, domainError(op, a, b, "result is out of range")
	}

	return Calculation{
		Operator:  op,
		OperandA:  a,
		OperandB:  b,
		Result:    result,
		Timestamp: r.now().UTC(),
	}, nil
}

// ValidateOperand checks that v is finite and within the configured bound.
func (r *Registry) ValidateOperand(v float64) error {
	if !mathx.IsFinite(v) {
		return InvalidInput("operand must be a finite number: %v", v)
	}
	if math.Abs(v) > r.maxInput {
		return InvalidInput("value exceeds maximum allowed: %v", v)
	}
	return nil
}
