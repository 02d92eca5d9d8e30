// Package session owns the client-side auth state machine and its durable
// storage.
//
// A store starts unknown, verifies any persisted token against the backend
// exactly once, and settles as authenticated or anonymous. Login and logout
// transition unconditionally and persist synchronously, so a process
// restart never loses an established session. Persisted credentials are
// cleared on any verification failure, not only on an explicit 401.
package session
