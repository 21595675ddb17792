package calculator

// DefaultMaxUndo is the default depth of the undo stack.
const DefaultMaxUndo = 1000

// UndoManager keeps the past and future snapshot stacks. It holds copies only
// and never touches the live history.
type UndoManager struct {
	past       []Snapshot
	future     []Snapshot
	maxEntries int
}

// NewUndoManager creates a manager keeping at most maxEntries snapshots on
// the undo stack. Non-positive values select DefaultMaxUndo.
func NewUndoManager(maxEntries int) *UndoManager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxUndo
	}
	return &UndoManager{maxEntries: maxEntries}
}

// RecordBeforeMutation pushes the pre-mutation state and discards the redo
// stack. Every mutating command except undo and redo calls it right before
// applying its change.
func (m *UndoManager) RecordBeforeMutation(current Snapshot) {
	m.past = append(m.past, current)
	m.future = nil

	if len(m.past) > m.maxEntries {
		excess := len(m.past) - m.maxEntries
		m.past = append([]Snapshot(nil), m.past[excess:]...)
	}
}

// Undo returns the state to restore. current is moved onto the redo stack.
func (m *UndoManager) Undo(current Snapshot) (Snapshot, error) {
	if len(m.past) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}

	top := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = append(m.future, current)
	return top, nil
}

// Redo returns the state to restore. current is moved onto the undo stack.
func (m *UndoManager) Redo(current Snapshot) (Snapshot, error) {
	if len(m.future) == 0 {
		return Snapshot{}, ErrNothingToRedo
	}

	top := m.future[len(m.future)-1]
	m.future = m.future[:len(m.future)-1]
	m.past = append(m.past, current)
	return top, nil
}

// CanUndo reports whether Undo would succeed.
func (m *UndoManager) CanUndo() bool {
	return len(m.past) > 0
}

// CanRedo reports whether Redo would succeed.
func (m *UndoManager) CanRedo() bool {
	return len(m.future) > 0
}

// UndoCount returns the depth of the undo stack.
func (m *UndoManager) UndoCount() int {
	return len(m.past)
}

// RedoCount returns the depth of the redo stack.
func (m *UndoManager) RedoCount() int {
	return len(m.future)
}

// MaxEntries returns the undo stack bound.
func (m *UndoManager) MaxEntries() int {
	return m.maxEntries
}

// Reset drops both stacks.
func (m *UndoManager) Reset() {
	m.past = nil
	m.future = nil
}
