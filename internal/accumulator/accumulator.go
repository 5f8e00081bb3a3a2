package accumulator

import "sync"

// Accumulator holds a running value and the undo/redo history of the
// commands applied to it. The value and both stacks are guarded by one
// mutex and always change together.
type Accumulator struct {
	mu sync.Mutex

	value     float64
	undoStack []Command
	redoStack []Command

	historyLimit int
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithInitialValue sets the starting value. The default is 0.
func WithInitialValue(v float64) Option {
	return func(a *Accumulator) {
		a.value = v
	}
}

// WithHistoryLimit bounds the undo stack to n entries, dropping the oldest
// once exceeded. n <= 0 means unbounded.
func WithHistoryLimit(n int) Option {
	return func(a *Accumulator) {
		if n < 0 {
			n = 0
		}
		a.historyLimit = n
	}
}

// New creates an accumulator.
func New(opts ...Option) *Accumulator {
	a := &Accumulator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add adds v to the current value.
func (a *Accumulator) Add(v float64) {
	a.mustExecute(Command{Kind: Add, Operand: v})
}

// Subtract subtracts v from the current value.
func (a *Accumulator) Subtract(v float64) {
	a.mustExecute(Command{Kind: Subtract, Operand: v})
}

// Multiply multiplies the current value by v.
func (a *Accumulator) Multiply(v float64) {
	a.mustExecute(Command{Kind: Multiply, Operand: v})
}

// Divide divides the current value by v. Dividing by zero returns
// ErrInvalidOperand and leaves the accumulator untouched.
func (a *Accumulator) Divide(v float64) error {
	return a.Execute(Command{Kind: Divide, Operand: v})
}

// Execute applies cmd, pushes it onto the undo stack and discards any redo
// history. An invalid command changes nothing.
func (a *Accumulator) Execute(cmd Command) error {
	_, err := a.ExecuteStep(cmd)
	return err
}

// Step describes one state transition, captured under the same lock that
// applied it.
type Step struct {
	Command   Command
	Before    float64
	After     float64
	UndoDepth int
	RedoDepth int
}

// ExecuteStep is Execute, additionally reporting the transition it made.
func (a *Accumulator) ExecuteStep(cmd Command) (Step, error) {
	if err := cmd.Validate(); err != nil {
		return Step{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	before := a.value
	a.value = cmd.Apply(a.value)
	a.pushLocked(cmd)
	a.redoStack = nil
	return a.stepLocked(cmd, before), nil
}

func (a *Accumulator) stepLocked(cmd Command, before float64) Step {
	return Step{
		Command:   cmd,
		Before:    before,
		After:     a.value,
		UndoDepth: len(a.undoStack),
		RedoDepth: len(a.redoStack),
	}
}

func (a *Accumulator) mustExecute(cmd Command) {
	if err := a.Execute(cmd); err != nil {
		panic(err)
	}
}

// pushLocked appends to the undo stack and enforces the history limit.
func (a *Accumulator) pushLocked(cmd Command) {
	a.undoStack = append(a.undoStack, cmd)
	if a.historyLimit > 0 && len(a.undoStack) > a.historyLimit {
		excess := len(a.undoStack) - a.historyLimit
		a.undoStack = append([]Command(nil), a.undoStack[excess:]...)
	}
}

// Undo reverts the most recent command. It reports false and does nothing
// when there is nothing to undo.
func (a *Accumulator) Undo() bool {
	_, ok := a.UndoStep()
	return ok
}

// UndoStep is Undo, additionally reporting the transition it made. On an
// empty undo stack the Step describes the unchanged state.
func (a *Accumulator) UndoStep() (Step, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.undoStack) == 0 {
		return a.stepLocked(Command{}, a.value), false
	}

	before := a.value
	cmd := a.undoStack[len(a.undoStack)-1]
	a.undoStack = a.undoStack[:len(a.undoStack)-1]
	a.value = cmd.Revert(a.value)
	a.redoStack = append(a.redoStack, cmd)
	return a.stepLocked(cmd, before), true
}

// Redo reapplies the most recently undone command. It reports false and
// does nothing when there is nothing to redo.
func (a *Accumulator) Redo() bool {
	_, ok := a.RedoStep()
	return ok
}

// RedoStep is Redo, additionally reporting the transition it made. On an
// empty redo stack the Step describes the unchanged state.
func (a *Accumulator) RedoStep() (Step, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.redoStack) == 0 {
		return a.stepLocked(Command{}, a.value), false
	}

	before := a.value
	cmd := a.redoStack[len(a.redoStack)-1]
	a.redoStack = a.redoStack[:len(a.redoStack)-1]
	a.value = cmd.Apply(a.value)
	a.pushLocked(cmd)
	return a.stepLocked(cmd, before), true
}

// Value returns the current value.
func (a *Accumulator) Value() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

// CanUndo returns true if undo is available.
func (a *Accumulator) CanUndo() bool {
	return a.UndoDepth() > 0
}

// CanRedo returns true if redo is available.
func (a *Accumulator) CanRedo() bool {
	return a.RedoDepth() > 0
}

// UndoDepth returns the number of commands that can be undone.
func (a *Accumulator) UndoDepth() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.undoStack)
}

// RedoDepth returns the number of commands that can be redone.
func (a *Accumulator) RedoDepth() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.redoStack)
}

// Clear drops both history stacks. The current value is kept.
func (a *Accumulator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.undoStack = nil
	a.redoStack = nil
}

// Snapshot is a consistent copy of an accumulator's state. Stacks are
// ordered bottom to top.
type Snapshot struct {
	Value float64
	Undo  []Command
	Redo  []Command
}

// Snapshot returns a copy of the value and both stacks taken under one lock.
func (a *Accumulator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Snapshot{
		Value: a.value,
		Undo:  append([]Command{}, a.undoStack...),
		Redo:  append([]Command{}, a.redoStack...),
	}
}
