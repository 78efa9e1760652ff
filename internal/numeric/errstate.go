// Package numeric tracks floating-point error conditions raised while fitting.
//
// Go never traps on IEEE exceptions, so "raising" here means the state
// reports the first offending value as an error from Check. The mode is held by
// an ErrState value owned by the caller; nothing in this package is global.
package numeric

import (
	"fmt"
	"math"
)

// Mode selects how an ErrState reacts to a non-finite value.
type Mode int

const (
	// Raise makes Check return an error for the first non-finite value.
	Raise Mode = iota
	// Warn counts the condition and flags it for the caller to log.
	Warn
	// Ignore counts the condition silently.
	Ignore
)

func (m Mode) String() string {
	switch m {
	case Raise:
		return "raise"
	case Warn:
		return "warn"
	case Ignore:
		return "ignore"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Category groups floating-point conditions the same way IEEE 754 does.
type Category string

const (
	Invalid Category = "invalid" // NaN
	Divide  Category = "divide"  // ±Inf
)

// Error is returned by Check when the state is in Raise mode.
type Error struct {
	Category Category
	Op       string
	Value    float64
}

func (e *Error) Error() string {
	return fmt.Sprintf("floating point %s in %s: %v", e.Category, e.Op, e.Value)
}

// ErrState is a mutable floating-point error-reporting state.
// The zero value is in Raise mode. It is not safe for concurrent use; give each
// goroutine its own state (see Child) and Merge the counts afterwards.
type ErrState struct {
	mode   Mode
	counts map[Category]int
	warned bool
}

// NewErrState returns a state in the given mode.
func NewErrState(mode Mode) *ErrState {
	return &ErrState{mode: mode}
}

func (s *ErrState) Mode() Mode { return s.mode }

// Scope switches the state to mode and returns a func restoring the previous
// mode. Callers defer the returned func so every exit path restores it.
func (s *ErrState) Scope(mode Mode) (restore func()) {
	prev := s.mode
	s.mode = mode
	return func() { s.mode = prev }
}

// Child returns an independent state with the same mode and no counts.
func (s *ErrState) Child() *ErrState {
	return &ErrState{mode: s.mode}
}

// Merge adds the counts of o into s.
func (s *ErrState) Merge(o *ErrState) {
	if o == nil {
		return
	}
	for c, n := range o.counts {
		s.add(c, n)
	}
	s.warned = s.warned || o.warned
}

// Check classifies v. It returns a non-nil error only in Raise mode.
func (s *ErrState) Check(op string, v float64) error {
	var c Category
	switch {
	case math.IsNaN(v):
		c = Invalid
	case math.IsInf(v, 0):
		c = Divide
	default:
		return nil
	}
	s.add(c, 1)
	switch s.mode {
	case Raise:
		return &Error{Category: c, Op: op, Value: v}
	case Warn:
		s.warned = true
	}
	return nil
}

// CheckAll runs Check over vs and stops at the first error.
func (s *ErrState) CheckAll(op string, vs []float64) error {
	for _, v := range vs {
		if err := s.Check(op, v); err != nil {
			return err
		}
	}
	return nil
}

// Count reports how many values of category c were seen.
func (s *ErrState) Count(c Category) int { return s.counts[c] }

// Warned reports whether any condition was seen while in Warn mode.
func (s *ErrState) Warned() bool { return s.warned }

// Reset clears counts and the warned flag, keeping the mode.
func (s *ErrState) Reset() {
	s.counts = nil
	s.warned = false
}

func (s *ErrState) add(c Category, n int) {
	if s.counts == nil {
		s.counts = make(map[Category]int)
	}
	s.counts[c] += n
}
