package calculator

import "sync"

// Engine owns one calculator State and serialises events on it. Every method
// applies exactly one event under the lock and returns the new display.
type Engine struct {
	mu    sync.Mutex
	state State
}

// NewEngine returns an engine showing "0".
func NewEngine() *Engine {
	return &Engine{}
}

// Update runs f under the lock and returns the new display. Everything f does
// is observed by other callers as a single event.
func (e *Engine) Update(f func(State) State) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = f(e.state)
	return e.state.Display()
}

// InputDigit appends a digit, or starts a new numeral.
func (e *Engine) InputDigit(d Digit) string {
	return e.Update(func(s State) State { return s.InputDigit(d) })
}

// InputDecimal adds a decimal point to the numeral being entered.
func (e *Engine) InputDecimal() string {
	return e.Update(State.InputDecimal)
}

// Clear resets the engine to "0".
func (e *Engine) Clear() string {
	return e.Update(State.Clear)
}

// ToggleSign negates the displayed numeral.
func (e *Engine) ToggleSign() string {
	return e.Update(State.ToggleSign)
}

// Percent divides the displayed numeral by 100.
func (e *Engine) Percent() string {
	return e.Update(State.Percent)
}

// ApplyOperator sets the pending operator, evaluating a completed one first.
func (e *Engine) ApplyOperator(op Operator) string {
	return e.Update(func(s State) State { return s.ApplyOperator(op) })
}

// Equals evaluates the pending operation.
func (e *Engine) Equals() string {
	return e.Update(State.Equals)
}

// Press applies a single parsed key.
func (e *Engine) Press(k Key) string {
	return e.Update(func(s State) State { return s.Press(k) })
}

// Display returns the current display without changing state.
func (e *Engine) Display() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Display()
}

// Snapshot returns a consistent view of the engine's state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}
