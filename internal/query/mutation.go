package query

import (
	"context"
	"sync"
)

// Mutation owns the loading flag of one mutating call path (create, update
// or delete). The flag is set before the service call and cleared in every
// outcome. Mutations never surface success feedback themselves; callers
// inspect the returned result and fire their own toast.
type Mutation struct {
	handler        *Handler
	onUnauthorized func()

	mu      sync.Mutex
	loading bool
}

// NewMutation creates a mutation controller routing errors through handler
// with onUnauthorized bound for 401 responses.
func NewMutation(handler *Handler, onUnauthorized func()) *Mutation {
	return &Mutation{handler: handler, onUnauthorized: onUnauthorized}
}

// IsLoading reports whether a call is in flight.
func (m *Mutation) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Mutation) begin() {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
}

func (m *Mutation) end() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// RunMutation invokes fn under m's loading flag. On error the zero value
// and false are returned after the error has been routed through the
// handler; the error itself is never re-thrown past this boundary.
func RunMutation[T any](ctx context.Context, m *Mutation, fn func(context.Context) (T, error)) (T, bool) {
	m.begin()
	defer m.end()

	result, err := fn(ctx)
	if err != nil {
		m.handler.Handle(err, m.onUnauthorized)
		var zero T
		return zero, false
	}

	return result, true
}
