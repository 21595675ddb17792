// Package calculator implements the history management core of the calculator.
//
// The core is built from four collaborating parts, all driven from a single
// goroutine through the Calculator context object:
//
// # Operations
//
// The Registry maps an Operator to a pure arithmetic function and produces
// Calculation values. It validates the operator name and the operand domain
// (division by zero, non-real roots) before anything is recorded.
//
// # History
//
// History is the append-only, chronological list of calculations. Only Clear
// and Restore replace the sequence as a whole; entries are never edited.
//
// # Undo and Redo
//
// The UndoManager keeps two stacks of Snapshots (full copies of the history):
//
//	calc.Calculate("add", 2, 3)      // past: [[]]          future: []
//	calc.Calculate("subtract", 10, 4) // past: [[], [add]]   future: []
//	calc.Undo()                       // past: [[]]          future: [[add, subtract]]
//	calc.Redo()                       // past: [[], [add]]   future: []
//
// Every mutating command records the pre-mutation snapshot after validation
// and before the change, so a failed command never touches the stacks.
//
// # Notifications
//
// The Hub fans every mutation out to listeners in subscription order. Listener
// errors and panics are reported through the failure handler and never reach
// the caller. Built-in listeners log events and auto-save the history.
package calculator
