package calculator

import (
	mrwerror "github.com/msto63/mRW/foundation/core/error"
	mrwlog "github.com/msto63/mRW/foundation/core/log"
)

// Gateway persists a calculation history.
type Gateway interface {
	Save(entries []Calculation) error
	Load() ([]Calculation, error)
}

// Options configures a Calculator.
type Options struct {
	// Registry computes calculations. Defaults to NewRegistry().
	Registry *Registry

	// Gateway backs Save and Load. Optional.
	Gateway Gateway

	// MaxUndo bounds the undo stack. Defaults to DefaultMaxUndo.
	MaxUndo int

	// Logger receives listener failures. Defaults to a no-op logger.
	Logger *mrwlog.Logger

	// History is the initial history, typically read from disk at startup.
	// It is not undoable.
	History []Calculation
}

// Calculator is the history context: the live history, its undo manager and
// the notification hub. Commands validate first and record the pre-mutation
// snapshot only when the mutation is certain to happen.
//
// A Calculator is driven by one goroutine; it is not safe for concurrent use.
type Calculator struct {
	registry *Registry
	gateway  Gateway
	history  *History
	undo     *UndoManager
	hub      *Hub
	logger   *mrwlog.Logger

	onFailure FailureHandler
}

// New creates a Calculator with an empty history.
func New(opts Options) *Calculator {
	c := &Calculator{
		registry: opts.Registry,
		gateway:  opts.Gateway,
		history:  NewHistory(),
		undo:     NewUndoManager(opts.MaxUndo),
		logger:   opts.Logger,
	}
	if len(opts.History) > 0 {
		c.history.Restore(NewSnapshot(opts.History))
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.logger == nil {
		c.logger = mrwlog.Nop()
	}
	c.hub = NewHub(c.reportFailure)
	return c
}

// Calculate computes op(a, b) and appends it to the history.
func (c *Calculator) Calculate(op string, a, b float64) (Calculation, error) {
	calc, err := c.registry.Compute(op, a, b)
	if err != nil {
		return Calculation{}, err
	}

	c.undo.RecordBeforeMutation(c.history.Snapshot())
	c.history.Append(calc)

	c.hub.Notify(Event{Kind: EventCalculated, Snapshot: c.history.Snapshot(), Calculation: &calc})
	return calc, nil
}

// Clear empties the history. Clearing is undoable.
func (c *Calculator) Clear() {
	c.undo.RecordBeforeMutation(c.history.Snapshot())
	c.history.Clear()
	c.hub.Notify(Event{Kind: EventCleared, Snapshot: c.history.Snapshot()})
}

// Undo restores the history to its state before the last mutating command.
func (c *Calculator) Undo() error {
	previous, err := c.undo.Undo(c.history.Snapshot())
	if err != nil {
		return err
	}
	c.history.Restore(previous)
	c.hub.Notify(Event{Kind: EventUndone, Snapshot: c.history.Snapshot()})
	return nil
}

// Redo reapplies the last undone command.
func (c *Calculator) Redo() error {
	next, err := c.undo.Redo(c.history.Snapshot())
	if err != nil {
		return err
	}
	c.history.Restore(next)
	c.hub.Notify(Event{Kind: EventRedone, Snapshot: c.history.Snapshot()})
	return nil
}

// Save writes the history through the gateway.
func (c *Calculator) Save() error {
	if c.gateway == nil {
		return mrwerror.New("no persistence gateway configured").
			WithCode(mrwerror.CodePersistence).
			WithOperation("save")
	}

	entries := c.history.All()
	timer := c.logger.StartTimer("history.save")
	err := c.gateway.Save(entries)
	timer.Stop(mrwlog.Fields{"entries": len(entries), "ok": err == nil})
	return err
}

// Load replaces the history with the gateway's contents. The replaced
// history can be restored with Undo. On failure nothing changes.
func (c *Calculator) Load() error {
	if c.gateway == nil {
		return mrwerror.New("no persistence gateway configured").
			WithCode(mrwerror.CodePersistence).
			WithOperation("load")
	}

	timer := c.logger.StartTimer("history.load")
	entries, err := c.gateway.Load()
	timer.Stop(mrwlog.Fields{"entries": len(entries), "ok": err == nil})
	if err != nil {
		return err
	}

	c.undo.RecordBeforeMutation(c.history.Snapshot())
	c.history.Restore(NewSnapshot(entries))
	c.hub.Notify(Event{Kind: EventLoaded, Snapshot: c.history.Snapshot()})
	return nil
}

// History returns the calculations in chronological order.
func (c *Calculator) History() []Calculation {
	return c.history.All()
}

// Len returns the history length.
func (c *Calculator) Len() int {
	return c.history.Len()
}

// Subscribe registers a listener on the notification hub.
func (c *Calculator) Subscribe(name string, listener Listener) *Subscription {
	return c.hub.Subscribe(name, listener)
}

// OnListenerFailure sets a handler called after a listener failure has been
// logged. A nil handler only logs.
func (c *Calculator) OnListenerFailure(handler FailureHandler) {
	c.onFailure = handler
}

// Hub returns the notification hub.
func (c *Calculator) Hub() *Hub {
	return c.hub
}

// Registry returns the operation registry.
func (c *Calculator) Registry() *Registry {
	return c.registry
}

// UndoCount returns the undo stack depth.
func (c *Calculator) UndoCount() int {
	return c.undo.UndoCount()
}

// RedoCount returns the redo stack depth.
func (c *Calculator) RedoCount() int {
	return c.undo.RedoCount()
}

func (c *Calculator) reportFailure(listener string, event Event, err error) {
	c.logger.WarnWithErr("listener failed", err, mrwlog.Fields{
		"listener": listener,
		"event":    event.Kind.String(),
	})
	if c.onFailure != nil {
		c.onFailure(listener, event, err)
	}
}
