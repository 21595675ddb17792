package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/mRW/internal/calculator"
	"github.com/msto63/mRW/internal/store"
)

func runSession(t *testing.T, calc *calculator.Calculator, cfg Config, input string) string {
	t.Helper()
	if calc == nil {
		calc = calculator.New(calculator.Options{})
	}
	if cfg.Precision == 0 {
		cfg.Precision = calculator.DefaultPrecision
	}

	var out bytes.Buffer
	s := New(calc, strings.NewReader(input), &out, cfg, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String()
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("output does not contain %q:\n%s", w, output)
		}
	}
}

func TestSessionMessages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"addition prompted", "add\n2\n3\nexit\n", []string{"Result: 5\n"}},
		{"addition inline", "add 2 3\nexit\n", []string{"Result: 5\n"}},
		{"partial inline", "multiply 4\n2.5\nexit\n", []string{"Result: 10\n"}},
		{"precision", "divide 1 3\nexit\n", []string{"Result: 0.3333333333\n"}},
		{"clear", "clear\nexit\n", []string{"History cleared\n"}},
		{"undo", "add 2 3\nundo\nexit\n", []string{"Operation undone\n"}},
		{"undo empty", "undo\nexit\n", []string{"Nothing to undo\n"}},
		{"redo", "add 2 3\nundo\nredo\nexit\n", []string{"Operation redone\n"}},
		{"redo empty", "redo\nexit\n", []string{"Nothing to redo\n"}},
		{"history empty", "history\nexit\n", []string{"No calculations in history\n"}},
		{"history", "add 1 2\nhistory\nexit\n", []string{"Calculation History:\n", "1. add(1, 2) = 3\n"}},
		{"help", "help\nexit\n", []string{"Available commands:", "absolutediff", "undo", "cancel"}},
		{"unknown", "sqrt 4\nexit\n", []string{"Unknown command: 'sqrt'. Type 'help' for available commands.\n"}},
		{"case insensitive", "ADD 2 3\nexit\n", []string{"Result: 5\n"}},
		{"invalid number", "add two 3\nexit\n", []string{"Error: invalid number: 'two'\n"}},
		{"domain error", "root -16 2\nexit\n", []string{"Error: root has no real result\n"}},
		{"too many operands", "add 2 3 4\nexit\n", []string{"Error: add takes two operands, got 3\n"}},
		{"exit", "exit\n", []string{"Goodbye!\n"}},
		{"eof", "add 2 3\n", []string{"Input terminated. Exiting...\n"}},
		{"eof at prompt", "add\n2\n", []string{"Input terminated. Exiting...\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runSession(t, nil, Config{}, tt.input)
			assertContains(t, out, tt.want...)
		})
	}
}

func TestSessionUndoScenario(t *testing.T) {
	calc := calculator.New(calculator.Options{})
	out := runSession(t, calc, Config{}, "add 2 3\nsubtract 10 4\nundo\nhistory\nexit\n")

	assertContains(t, out, "1. add(2, 3) = 5\n")
	if strings.Contains(out, "2. ") {
		t.Errorf("history still shows the undone entry:\n%s", out)
	}
	if calc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", calc.Len())
	}
}

func TestSessionDivisionByZero(t *testing.T) {
	calc := calculator.New(calculator.Options{})
	out := runSession(t, calc, Config{}, "divide 5 0\nexit\n")

	assertContains(t, out, "Error: division by zero: divide(5, 0)\n")
	if calc.Len() != 0 || calc.UndoCount() != 0 {
		t.Errorf("state changed: len=%d undo=%d", calc.Len(), calc.UndoCount())
	}
}

func TestSessionCancel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cfg   Config
	}{
		{"first operand", "add\ncancel\nexit\n", Config{}},
		{"second operand", "add\n2\nCANCEL\nexit\n", Config{}},
		{"inline", "add 2 cancel\nexit\n", Config{}},
		{"custom word", "add\nabbrechen\nexit\n", Config{CancelWord: "abbrechen"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := calculator.New(calculator.Options{})
			if _, err := calc.Calculate("add", 1, 1); err != nil {
				t.Fatal(err)
			}
			if err := calc.Undo(); err != nil {
				t.Fatal(err)
			}
			beforeLen, beforeUndo, beforeRedo := calc.Len(), calc.UndoCount(), calc.RedoCount()

			out := runSession(t, calc, tt.cfg, tt.input)

			assertContains(t, out, "Operation cancelled\n")
			if calc.Len() != beforeLen || calc.UndoCount() != beforeUndo || calc.RedoCount() != beforeRedo {
				t.Errorf("state changed: len %d->%d undo %d->%d redo %d->%d",
					beforeLen, calc.Len(), beforeUndo, calc.UndoCount(), beforeRedo, calc.RedoCount())
			}
		})
	}
}

func TestSessionSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	gw, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	first := calculator.New(calculator.Options{Gateway: gw})
	out := runSession(t, first, Config{}, "power 2 8\nsave\nexit\n")
	assertContains(t, out, "History saved successfully\n")

	second := calculator.New(calculator.Options{Gateway: gw})
	out = runSession(t, second, Config{}, "load\nhistory\nexit\n")
	assertContains(t, out, "History loaded successfully\n", "1. power(2, 8) = 256\n")
}

func TestSessionLoadErrors(t *testing.T) {
	gw, _ := store.Open(filepath.Join(t.TempDir(), "missing.csv"))
	calc := calculator.New(calculator.Options{Gateway: gw})

	out := runSession(t, calc, Config{}, "load\nexit\n")
	assertContains(t, out, "Error loading history: ")

	out = runSession(t, calculator.New(calculator.Options{}), Config{}, "save\nexit\n")
	assertContains(t, out, "Error saving history: ")
}

func TestSessionAutoSaveOnExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	gw, _ := store.Open(path)
	calc := calculator.New(calculator.Options{Gateway: gw})

	out := runSession(t, calc, Config{AutoSave: true}, "add 2 3\nexit\n")
	assertContains(t, out, "History saved successfully.\nGoodbye!\n")

	loaded, err := gw.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("saved %d entries, want 1", len(loaded))
	}
}

func TestSessionExtraOperandsLeaveState(t *testing.T) {
	calc := calculator.New(calculator.Options{})
	out := runSession(t, calc, Config{}, "add 2 3 4\nexit\n")

	if strings.Contains(out, "Result:") {
		t.Errorf("extra operand was ignored:\n%s", out)
	}
	if calc.Len() != 0 || calc.UndoCount() != 0 {
		t.Errorf("state changed: len=%d undo=%d", calc.Len(), calc.UndoCount())
	}
}

func TestSessionWarnsWhenAutoSaveFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	gw, err := store.Open(filepath.Join(blocker, "history.csv"))
	if err != nil {
		t.Fatal(err)
	}
	calc := calculator.New(calculator.Options{Gateway: gw})
	calc.Subscribe("autosave", calculator.AutoSaveListener(gw))

	out := runSession(t, calc, Config{}, "add 2 3\nexit\n")

	assertContains(t, out, "Warning: autosave failed after calculated: ", "Result: 5\n")
	if calc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", calc.Len())
	}
}

func TestSessionContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := New(calculator.New(calculator.Options{}), strings.NewReader("add 2 3\n"), &out, Config{}, nil)
	if err := s.Run(ctx); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestPlainStyles(t *testing.T) {
	st := PlainStyles()
	if got := st.render(DefaultStyles().Result, "Result: 5"); got != "Result: 5" {
		t.Errorf("render() = %q", got)
	}
}
