// Package flow implements the page orchestration contract every screen
// follows: load, display, edit through a modal, submit, and reconcile
// by reloading from the backend. The controller never patches local
// state after a mutation; the backend's answer is the only truth.
package flow

import (
	"context"
	"time"

	"github.com/mvallesteros/rumbo/internal/common"
)

// Phase is the page lifecycle state.
type Phase string

const (
	// PhaseIdle is the state before the first load.
	PhaseIdle Phase = "idle"
	// PhaseLoading means a fetch is in flight.
	PhaseLoading Phase = "loading"
	// PhaseLoaded means the page holds fresh data.
	PhaseLoaded Phase = "loaded"
	// PhaseSubmitting means a mutation is in flight.
	PhaseSubmitting Phase = "submitting"
	// PhaseError means the last operation failed; the banner auto-clears.
	PhaseError Phase = "error"
)

// errorDisplayDuration is how long an error banner stays up before the
// page recovers to its last good state, acknowledged or not.
const errorDisplayDuration = 5 * time.Second

// Controller drives one entity page. It is not safe for concurrent use;
// pages are single-threaded by contract. Fetch is the one exception: it
// only runs the loader, so pages may call it from a worker goroutine
// and apply the result with FinishLoad on their own goroutine.
type Controller[T any] struct {
	errorAt   time.Time
	now       func() time.Time
	loader    func(ctx context.Context) ([]T, error)
	editing   *T
	lastError string
	records   []T
	phase     Phase
	loaded    bool
	modalOpen bool
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithClock injects a clock, used by tests to drive the banner timeout.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Controller[T]) { c.now = now }
}

// NewController creates a page controller around a collection loader.
func NewController[T any](loader func(ctx context.Context) ([]T, error), opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		loader: loader,
		phase:  PhaseIdle,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the collection. On failure the page keeps its previous
// records and shows the error banner.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.BeginLoad()
	return c.FinishLoad(c.loader(ctx))
}

// BeginLoad marks a fetch in flight without running it. Pages that do
// their own fetching off the page goroutine pair it with Fetch and
// FinishLoad, keeping all state transitions on the page goroutine.
func (c *Controller[T]) BeginLoad() {
	c.phase = PhaseLoading
}

// Fetch runs the loader without touching page state, so it may run off
// the page goroutine.
func (c *Controller[T]) Fetch(ctx context.Context) ([]T, error) {
	return c.loader(ctx)
}

// FinishLoad applies the outcome of a fetch started with BeginLoad.
func (c *Controller[T]) FinishLoad(records []T, err error) error {
	if err != nil {
		c.fail(err)
		return err
	}
	c.records = records
	c.loaded = true
	c.phase = PhaseLoaded
	return nil
}

// Records returns the last successfully loaded collection.
func (c *Controller[T]) Records() []T {
	return c.records
}

// Phase returns the current lifecycle phase. An expired error banner
// reverts to the last good state on read.
func (c *Controller[T]) Phase() Phase {
	c.clearExpiredError()
	return c.phase
}

// ErrorMessage returns the active banner message, if any.
func (c *Controller[T]) ErrorMessage() (string, bool) {
	c.clearExpiredError()
	if c.phase != PhaseError {
		return "", false
	}
	return c.lastError, true
}

// OpenEditor opens the modal form. A nil entity means "create new".
func (c *Controller[T]) OpenEditor(entity *T) {
	c.modalOpen = true
	c.editing = entity
}

// CloseEditor dismisses the modal without submitting.
func (c *Controller[T]) CloseEditor() {
	c.modalOpen = false
	c.editing = nil
}

// Editing returns the entity under edit while the modal is open; nil
// with true means the modal is in create mode.
func (c *Controller[T]) Editing() (*T, bool) {
	return c.editing, c.modalOpen
}

// Submit runs the modal's mutation and reconciles by reloading the full
// collection. The modal closes only on success.
func (c *Controller[T]) Submit(ctx context.Context, mutation func(ctx context.Context) error) error {
	c.phase = PhaseSubmitting
	if err := mutation(ctx); err != nil {
		c.fail(err)
		return err
	}
	c.CloseEditor()
	return c.Load(ctx)
}

// Mutate runs a non-modal mutation (delete, toggle, complete) with the
// same reload-after-success contract as Submit.
func (c *Controller[T]) Mutate(ctx context.Context, op func(ctx context.Context) error) error {
	c.BeginMutation()
	if err := c.FinishMutation(op(ctx)); err != nil {
		return err
	}
	return c.Load(ctx)
}

// BeginMutation marks a mutation in flight without running it, the
// async counterpart of Mutate. A nil error handed to FinishMutation
// leaves the page in PhaseSubmitting; the caller reconciles by starting
// a load.
func (c *Controller[T]) BeginMutation() {
	c.phase = PhaseSubmitting
}

// FinishMutation applies the outcome of a mutation started with
// BeginMutation.
func (c *Controller[T]) FinishMutation(err error) error {
	if err != nil {
		c.fail(err)
		return err
	}
	return nil
}

func (c *Controller[T]) fail(err error) {
	c.phase = PhaseError
	c.lastError = common.UserMessage(err, "Algo salió mal. Intenta de nuevo.")
	c.errorAt = c.now()
}

func (c *Controller[T]) clearExpiredError() {
	if c.phase != PhaseError {
		return
	}
	if c.now().Sub(c.errorAt) < errorDisplayDuration {
		return
	}
	c.lastError = ""
	if c.loaded {
		c.phase = PhaseLoaded
	} else {
		c.phase = PhaseIdle
	}
}
