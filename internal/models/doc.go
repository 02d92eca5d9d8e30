// Package models defines the catalog domain types shared across services,
// query controllers, the CLI, and the TUI.
//
// All records are server-owned; the client only holds transient copies and
// never assigns ids. Form types carry the writable field set for create and
// update calls, filter types carry list-query state.
package models
