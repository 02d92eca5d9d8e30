// Package query implements the client-side data layer: list controllers
// with pagination, filtering and debounced search, mutation controllers
// with loading-flag discipline, and the single error-handling policy that
// turns any failed call into a user-facing toast and routes 401 responses
// into session teardown.
//
// Controllers are safe for concurrent use and runtime-agnostic: the TUI
// drives them from bubbletea's message loop, CLI actions and tests drive
// them directly.
package query
