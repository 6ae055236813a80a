// Package common defines shared constants and sentinel errors used across
// client and dev-backend layers of Luggify. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Remote gateway errors.
	ErrNetwork  = errors.New("network error")
	ErrServer   = errors.New("server error")
	ErrNotFound = errors.New("not found")

	// Local store errors.
	ErrLocalNotFound = errors.New("not found locally")

	// Caller input errors (empty city query, malformed dates, empty slug).
	ErrValidation = errors.New("validation error")

	// Sync lifecycle errors. ErrPendingSync is returned from write paths that
	// kept the local edits but could not confirm them with the server.
	ErrPendingSync    = errors.New("changes not synced yet")
	ErrSyncInProgress = errors.New("sync already in progress")
)
