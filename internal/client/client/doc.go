// Package client contains client-side building blocks for Luggify.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic gateway contract (see the Client interface) to the
//     Luggify backend: city search, checklist generation, fetch, state patch,
//     delete, owner listings and saving an owned copy.
//  2. A concrete REST/JSON implementation (see HTTPClient) that issues one
//     request per call, honours the caller's context and a configured timeout,
//     never retries, and maps transport and HTTP failures to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations,
//     NewRepositories) wiring an SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Failures are reported with the sentinels from package common so callers
// can match them with errors.Is: ErrNetwork when no response arrived
// (timeouts and DNS failures included), ErrNotFound for 404, ErrServer for
// any other non-2xx status (the concrete *ServerError carries the status
// and body) and ErrValidation for caller input rejected before sending.
// DeleteChecklist reports success on 404.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honour cancellation.
//
// See Also
//
//   - Interface:  Client
//   - HTTP impl:  HTTPClient
//   - DB helpers: InitDatabase, RunMigrations, NewRepositories
package client
