package store

import (
	"errors"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/msto63/mRW/internal/calculator"
)

// yamlDocument is the on-disk layout of a YAML history file.
type yamlDocument struct {
	SavedAt time.Time    `yaml:"saved_at"`
	History []yamlRecord `yaml:"history"`
}

type yamlRecord struct {
	Operator  string    `yaml:"operator"`
	OperandA  *float64  `yaml:"operand_a"`
	OperandB  *float64  `yaml:"operand_b"`
	Result    *float64  `yaml:"result"`
	Timestamp time.Time `yaml:"timestamp,omitempty"`
}

// YAMLFile stores the history as a YAML document.
type YAMLFile struct {
	path string
	now  func() time.Time
}

// NewYAMLFile creates a YAML gateway for path.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path, now: time.Now}
}

// Path returns the history file path.
func (f *YAMLFile) Path() string {
	return f.path
}

// Save writes entries in chronological order.
func (f *YAMLFile) Save(entries []calculator.Calculation) error {
	doc := yamlDocument{
		SavedAt: f.now().UTC(),
		History: make([]yamlRecord, 0, len(entries)),
	}
	for _, c := range entries {
		a, b, r := c.OperandA, c.OperandB, c.Result
		doc.History = append(doc.History, yamlRecord{
			Operator:  c.Operator.String(),
			OperandA:  &a,
			OperandB:  &b,
			Result:    &r,
			Timestamp: c.Timestamp,
		})
	}

	return save(f.path, func(out io.Writer) error {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return err
		}
		return enc.Close()
	})
}

// Load reads the history.
func (f *YAMLFile) Load() ([]calculator.Calculation, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, persistenceError("load", f.path, err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, corruptError(f.path, 0, "%v", typeErr)
		}
		return nil, corruptError(f.path, 0, "invalid document: %v", err)
	}

	entries := make([]calculator.Calculation, 0, len(doc.History))
	for i, rec := range doc.History {
		row := i + 1
		if rec.OperandA == nil || rec.OperandB == nil || rec.Result == nil {
			return nil, corruptError(f.path, row, "missing operand or result")
		}
		calc, err := record(f.path, row, rec.Operator, *rec.OperandA, *rec.OperandB, *rec.Result)
		if err != nil {
			return nil, err
		}
		if !rec.Timestamp.IsZero() {
			calc.Timestamp = rec.Timestamp.UTC()
		}
		entries = append(entries, calc)
	}
	return entries, nil
}
