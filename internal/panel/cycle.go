// Package panel holds the form state and submission cycle of every panel:
// content generation, quiz, grading, admin templates, ideas, help, upload
// and history.
package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iksnae/studymind/internal/api"
)

var (
	// ErrMissingInput is returned before any network call when a required field is empty
	ErrMissingInput = errors.New("required input is missing")

	// ErrInFlight is returned when a panel is submitted while its previous submission runs
	ErrInFlight = errors.New("a submission is already in flight")
)

func missingInput(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, field)
}

// State is a step of the submission cycle
type State int

const (
	Idle State = iota
	Submitting
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Cycle is the Idle → Submitting → Settled state of one panel. At most one
// submission is in flight; the last successful result is kept until a later
// success replaces it.
type Cycle[T any] struct {
	mu        sync.Mutex
	state     State
	result    T
	hasResult bool
	err       error
}

// Submit validates, then runs call. validate may be nil.
func (c *Cycle[T]) Submit(ctx context.Context, validate func() error, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if validate != nil {
		if err := validate(); err != nil {
			return zero, err
		}
	}

	c.mu.Lock()
	if c.state == Submitting {
		c.mu.Unlock()
		return zero, ErrInFlight
	}
	c.state = Submitting
	c.mu.Unlock()

	res, err := call(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Settled
	c.err = err
	if err != nil {
		return zero, err
	}
	c.result = res
	c.hasResult = true
	return res, nil
}

// State returns the current step
func (c *Cycle[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the last successful result and whether there is one
func (c *Cycle[T]) Result() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.hasResult
}

// Err returns the error of the last settled submission
func (c *Cycle[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Failure renders the last error for display, or "" after a success
func (c *Cycle[T]) Failure() string {
	return api.Describe(c.Err())
}

// Set replaces the result without a submission, for example with text loaded from a file
func (c *Cycle[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = v
	c.hasResult = true
}
