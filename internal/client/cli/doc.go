// Package cli provides the interactive Luggify command-line client.
//
// It wires the checklist sync engine, user preferences and an interactive
// REPL that keeps working offline. Typical flow: generate or open a
// checklist, edit it (every edit is stored locally at once), then save to
// push the edit state when the backend is reachable.
//
// Key features:
//   - Generate checklists for a trip and seed them with default items
//   - List / Open / Delete checklists, local copies first
//   - Check, remove, add and reset items in the open checklist
//   - Save, sync pending edits, share an owned copy, refresh the forecast
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
