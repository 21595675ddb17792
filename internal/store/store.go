// Package store implements the history persistence gateway: flat CSV and
// YAML history files written atomically.
package store

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
	"github.com/msto63/mRW/foundation/utils/filex"
	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/internal/calculator"
)

// Gateway persists a calculation history to a single file.
type Gateway interface {
	calculator.Gateway

	// Path returns the file the gateway reads and writes.
	Path() string
}

// Open returns the gateway for path, chosen by file extension. Files ending
// in .yaml or .yml use YAML; everything else uses CSV.
func Open(path string) (Gateway, error) {
	if strings.TrimSpace(path) == "" {
		return nil, mrwerror.New("history file path is empty").
			WithCode(mrwerror.CodeInvalidConfig)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLFile(path), nil
	default:
		return NewCSVFile(path), nil
	}
}

// save writes the output of encode atomically and classifies failures.
func save(path string, encode func(w io.Writer) error) error {
	if err := filex.WriteAtomic(path, 0644, encode); err != nil {
		return persistenceError("save", path, err)
	}
	return nil
}

func persistenceError(op, path string, cause error) error {
	return mrwerror.Wrap(cause, fmt.Sprintf("failed to %s history %s", op, path)).
		WithCode(mrwerror.CodePersistence).
		WithOperation(op).
		WithDetail("path", path)
}

func corruptError(path string, row int, format string, args ...interface{}) error {
	return mrwerror.Newf("%s: row %d: %s", path, row, fmt.Sprintf(format, args...)).
		WithCode(mrwerror.CodeDataCorruption).
		WithOperation("load").
		WithDetail("path", path).
		WithDetail("row", row)
}

// record validates a decoded row and turns it into a calculation. The
// persisted result is kept as is.
func record(path string, row int, op string, a, b, result float64) (calculator.Calculation, error) {
	operator, err := calculator.ParseOperator(op)
	if err != nil {
		return calculator.Calculation{}, corruptError(path, row, "unknown operator %q", op)
	}
	for _, v := range []float64{a, b, result} {
		if !mathx.IsFinite(v) {
			return calculator.Calculation{}, corruptError(path, row, "non-finite number")
		}
	}
	return calculator.Calculation{
		Operator: operator,
		OperandA: a,
		OperandB: b,
		Result:   result,
	}, nil
}
