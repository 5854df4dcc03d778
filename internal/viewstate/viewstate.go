package viewstate

import (
	"sync"

	"intelvest/internal/apperrors"
)

type Status string

const (
	Status_Idle    Status = "idle"
	Status_Loading Status = "loading"
	Status_Ready   Status = "ready"
	Status_Error   Status = "error"
)

// View is one immutable observation of a view's state. Ready carries the
// last normalized + derived snapshot; Error carries the failure kind and a
// human-readable reason. Warnings flag partial data on an otherwise Ready
// view.
type View[T any] struct {
	Status       Status
	Data         T
	ErrorKind    apperrors.Kind
	ErrorMessage string
	Warnings     []string
}

func (v View[T]) Partial() bool {
	return v.Status == Status_Ready && len(v.Warnings) > 0
}

// ViewState is the per-view state machine: Idle -> Loading -> {Ready,
// Error}. A new trigger always re-enters Loading, whatever the current
// state.
//
// Every cycle gets a generation number from Begin. Resolve and Fail discard
// results whose generation no longer matches - that is what keeps a
// late-arriving response for a stale symbol from overwriting the state
// after a newer cycle has settled.
type ViewState[T any] struct {
	mu         sync.Mutex
	generation uint64
	view       View[T]
}

func New[T any]() *ViewState[T] {
	return &ViewState[T]{
		view: View[T]{Status: Status_Idle},
	}
}

// Begin transitions to Loading and returns the generation tag for this
// cycle. The previous Ready data stays visible until the cycle settles.
func (s *ViewState[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.view.Status = Status_Loading
	s.view.ErrorKind = ""
	s.view.ErrorMessage = ""
	s.view.Warnings = nil
	return s.generation
}

// Resolve publishes Ready data for the given generation. Returns false if
// the cycle has been superseded, in which case nothing changes.
func (s *ViewState[T]) Resolve(generation uint64, data T, warnings []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.view = View[T]{
		Status:   Status_Ready,
		Data:     data,
		Warnings: warnings,
	}
	return true
}

// Fail publishes an Error for the given generation. Returns false if the
// cycle has been superseded.
func (s *ViewState[T]) Fail(generation uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	var zero T
	s.view = View[T]{
		Status:       Status_Error,
		Data:         zero,
		ErrorKind:    apperrors.KindOf(err),
		ErrorMessage: apperrors.MessageOf(err),
	}
	return true
}

// Current returns a copy of the latest published view.
func (s *ViewState[T]) Current() View[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}
