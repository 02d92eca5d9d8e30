// Package ui implements the terminal interface: a bubbletea model over the
// list and mutation controllers, plus the shared toast and modal state that
// every screen reports through.
package ui
