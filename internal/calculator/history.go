package calculator

import "time"

// History is the ordered log of performed calculations. Insertion order is
// chronological order. Entries are only ever appended; Clear and Restore
// replace the whole sequence.
type History struct {
	entries []Calculation
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds a calculation to the end of the history.
func (h *History) Append(c Calculation) {
	h.entries = append(h.entries, c)
}

// All returns the calculations in chronological order. The returned slice is
// a copy.
func (h *History) All() []Calculation {
	out := make([]Calculation, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of calculations.
func (h *History) Len() int {
	return len(h.entries)
}

// Last returns the most recent calculation.
func (h *History) Last() (Calculation, bool) {
	if len(h.entries) == 0 {
		return Calculation{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Clear removes all calculations.
func (h *History) Clear() {
	h.entries = nil
}

// Snapshot captures the current sequence.
func (h *History) Snapshot() Snapshot {
	return NewSnapshot(h.entries)
}

// Restore replaces the sequence with the contents of s.
func (h *History) Restore(s Snapshot) {
	h.entries = s.Entries()
}

// Snapshot is an immutable copy of a history at a point in time.
type Snapshot struct {
	entries []Calculation
	takenAt time.Time
}

// NewSnapshot copies entries into a new snapshot.
func NewSnapshot(entries []Calculation) Snapshot {
	s := Snapshot{takenAt: time.Now().UTC()}
	if len(entries) > 0 {
		s.entries = make([]Calculation, len(entries))
		copy(s.entries, entries)
	}
	return s
}

// Entries returns a copy of the captured calculations.
func (s Snapshot) Entries() []Calculation {
	out := make([]Calculation, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of captured calculations.
func (s Snapshot) Len() int {
	return len(s.entries)
}

// TakenAt returns the capture time.
func (s Snapshot) TakenAt() time.Time {
	return s.takenAt
}
