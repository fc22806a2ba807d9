package tui

import "github.com/mvallesteros/rumbo/internal/model"

// refreshedMsg carries the outcome of a fetch back to the event loop,
// where it is applied to the controller.
type refreshedMsg struct {
	records []model.RecurringTransaction
	err     error
}

// mutationDoneMsg carries the outcome of a toggle or deactivate back to
// the event loop; a nil error triggers the reconciling reload there.
type mutationDoneMsg struct {
	err error
}
