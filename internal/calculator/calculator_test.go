package calculator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	mrwlog "github.com/msto63/mRW/foundation/core/log"
)

type memoryGateway struct {
	saved   []Calculation
	saves   int
	loadErr error
	saveErr error
}

func (g *memoryGateway) Save(entries []Calculation) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.saves++
	g.saved = append([]Calculation(nil), entries...)
	return nil
}

func (g *memoryGateway) Load() ([]Calculation, error) {
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	return append([]Calculation(nil), g.saved...), nil
}

func mustCalculate(t *testing.T, c *Calculator, op string, a, b float64) Calculation {
	t.Helper()
	calc, err := c.Calculate(op, a, b)
	if err != nil {
		t.Fatalf("Calculate(%s, %v, %v) error = %v", op, a, b, err)
	}
	return calc
}

func TestCalculatorAppendOrder(t *testing.T) {
	c := New(Options{})
	for i := 1; i <= 5; i++ {
		mustCalculate(t, c, "add", float64(i), 0)
	}

	history := c.History()
	if len(history) != 5 {
		t.Fatalf("Len = %d, want 5", len(history))
	}
	for i, calc := range history {
		if calc.OperandA != float64(i+1) {
			t.Errorf("history[%d].OperandA = %v, want %v", i, calc.OperandA, i+1)
		}
	}
}

func TestCalculatorUndoRedoRoundTrip(t *testing.T) {
	c := New(Options{})
	mustCalculate(t, c, "add", 2, 3)
	mustCalculate(t, c, "subtract", 10, 4)
	after := c.History()

	if err := c.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	history := c.History()
	if len(history) != 1 || history[0].String() != "add(2, 3) = 5" {
		t.Fatalf("history after undo = %v", history)
	}

	if err := c.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	restored := c.History()
	if len(restored) != len(after) {
		t.Fatalf("history after redo has %d entries, want %d", len(restored), len(after))
	}
	for i := range after {
		if !restored[i].Equal(after[i]) {
			t.Errorf("entry %d = %v, want %v", i, restored[i], after[i])
		}
	}
}

func TestCalculatorUndoEmpty(t *testing.T) {
	c := New(Options{})
	if err := c.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
	if err := c.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCalculatorMutationAfterUndoClearsRedo(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Calculator)
	}{
		{"calculate", func(c *Calculator) { _, _ = c.Calculate("multiply", 2, 2) }},
		{"clear", func(c *Calculator) { c.Clear() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{})
			mustCalculate(t, c, "add", 1, 1)
			if err := c.Undo(); err != nil {
				t.Fatal(err)
			}
			tt.mutate(c)
			if err := c.Redo(); !errors.Is(err, ErrNothingToRedo) {
				t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
			}
		})
	}
}

func TestCalculatorFailedCalculationLeavesState(t *testing.T) {
	c := New(Options{})
	events := 0
	c.Subscribe("count", ListenerFunc(func(Event) error { events++; return nil }))

	if _, err := c.Calculate("divide", 5, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("Calculate() error = %v, want ErrDivisionByZero", err)
	}
	if c.Len() != 0 || c.UndoCount() != 0 || c.RedoCount() != 0 {
		t.Errorf("state changed: len=%d undo=%d redo=%d", c.Len(), c.UndoCount(), c.RedoCount())
	}
	if events != 0 {
		t.Errorf("events = %d, want 0", events)
	}
}

func TestCalculatorClearIsUndoable(t *testing.T) {
	c := New(Options{})
	mustCalculate(t, c, "add", 2, 3)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len() after clear = %d", c.Len())
	}
	if err := c.Undo(); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() after undo = %d, want 1", c.Len())
	}
}

func TestCalculatorSaveLoad(t *testing.T) {
	gw := &memoryGateway{}
	c := New(Options{Gateway: gw})
	mustCalculate(t, c, "add", 2, 3)
	mustCalculate(t, c, "power", 2, 8)

	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fresh := New(Options{Gateway: gw})
	mustCalculate(t, fresh, "subtract", 1, 1)
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := c.History()
	got := fresh.History()
	if len(got) != len(want) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Load is a mutating command.
	if err := fresh.Undo(); err != nil {
		t.Fatal(err)
	}
	if h := fresh.History(); len(h) != 1 || h[0].Operator != OpSubtract {
		t.Errorf("history after undoing load = %v", h)
	}
}

func TestCalculatorSaveLoadTimed(t *testing.T) {
	var buf bytes.Buffer
	logger := mrwlog.NewWithConfig(mrwlog.Config{
		Level:  mrwlog.LevelDebug,
		Format: mrwlog.FormatText,
		Output: &buf,
	})

	c := New(Options{Gateway: &memoryGateway{}, Logger: logger})
	mustCalculate(t, c, "add", 2, 3)
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}
	if err := c.Load(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, op := range []string{"operation=history.save", "operation=history.load"} {
		if !strings.Contains(out, op) {
			t.Errorf("log missing %q:\n%s", op, out)
		}
	}
}

func TestCalculatorLoadFailureLeavesState(t *testing.T) {
	gw := &memoryGateway{loadErr: ErrCorruptData}
	c := New(Options{Gateway: gw})
	mustCalculate(t, c, "add", 1, 2)

	if err := c.Load(); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("Load() error = %v, want ErrCorruptData", err)
	}
	if c.Len() != 1 || c.UndoCount() != 1 {
		t.Errorf("state changed: len=%d undo=%d", c.Len(), c.UndoCount())
	}
}

func TestCalculatorWithoutGateway(t *testing.T) {
	c := New(Options{})
	if err := c.Save(); !errors.Is(err, ErrPersistence) {
		t.Errorf("Save() error = %v, want ErrPersistence", err)
	}
	if err := c.Load(); !errors.Is(err, ErrPersistence) {
		t.Errorf("Load() error = %v, want ErrPersistence", err)
	}
}

func TestCalculatorEvents(t *testing.T) {
	c := New(Options{})
	var kinds []string
	c.Subscribe("record", ListenerFunc(func(e Event) error {
		kinds = append(kinds, e.Kind.String())
		if e.Kind == EventCalculated && e.Calculation == nil {
			t.Error("calculated event without calculation")
		}
		return nil
	}))

	mustCalculate(t, c, "add", 1, 1)
	c.Clear()
	_ = c.Undo()
	_ = c.Redo()

	if got, want := strings.Join(kinds, ","), "calculated,cleared,undone,redone"; got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}

func TestListenerFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := mrwlog.NewWithConfig(mrwlog.Config{
		Level:  mrwlog.LevelDebug,
		Format: mrwlog.FormatText,
		Output: &buf,
	})

	gw := &memoryGateway{saveErr: errors.New("read-only file system")}
	c := New(Options{Logger: logger})
	c.Subscribe("autosave", AutoSaveListener(gw))

	if _, err := c.Calculate("add", 2, 3); err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if !strings.Contains(buf.String(), "listener failed") {
		t.Errorf("expected failure log, got %q", buf.String())
	}
}

func TestOnListenerFailure(t *testing.T) {
	saveErr := errors.New("read-only file system")
	c := New(Options{})
	c.Subscribe("autosave", AutoSaveListener(&memoryGateway{saveErr: saveErr}))

	var (
		gotListener string
		gotKind     EventKind
		gotErr      error
	)
	c.OnListenerFailure(func(listener string, event Event, err error) {
		gotListener, gotKind, gotErr = listener, event.Kind, err
	})

	mustCalculate(t, c, "add", 2, 3)

	if gotListener != "autosave" || gotKind != EventCalculated || !errors.Is(gotErr, saveErr) {
		t.Errorf("handler got (%q, %v, %v)", gotListener, gotKind, gotErr)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestAutoSaveListenerSkipsLoad(t *testing.T) {
	gw := &memoryGateway{}
	c := New(Options{Gateway: gw})
	c.Subscribe("autosave", AutoSaveListener(gw))

	mustCalculate(t, c, "add", 2, 3)
	if gw.saves != 1 || len(gw.saved) != 1 {
		t.Fatalf("saves = %d, saved = %d", gw.saves, len(gw.saved))
	}
	if err := c.Load(); err != nil {
		t.Fatal(err)
	}
	if gw.saves != 1 {
		t.Errorf("load triggered a save")
	}
}

func TestLoggingListener(t *testing.T) {
	var buf bytes.Buffer
	logger := mrwlog.NewWithConfig(mrwlog.Config{
		Level:  mrwlog.LevelInfo,
		Format: mrwlog.FormatLogfmt,
		Output: &buf,
	})

	c := New(Options{})
	c.Subscribe("log", LoggingListener(logger))
	mustCalculate(t, c, "multiply", 6, 7)

	out := buf.String()
	for _, want := range []string{"history changed", `event="calculated"`, `operator="multiply"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestCalculatorInitialHistory(t *testing.T) {
	initial := []Calculation{{Operator: OpAdd, OperandA: 2, OperandB: 3, Result: 5}}
	c := New(Options{History: initial})

	initial[0].Result = 99
	if h := c.History(); len(h) != 1 || h[0].Result != 5 {
		t.Errorf("History() = %v", h)
	}
	if err := c.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
}
