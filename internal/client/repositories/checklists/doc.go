// Package checklists provides the client-side persistence layer for
// checklist documents.
//
// # Overview
//
// Repository describes the durable key-value collection the sync engine
// works against: one row per slug holding the JSON-serialized Checklist and
// a needs_sync flag mirrored into its own column so pending rows can be
// selected without decoding every body.
//
// SQLiteRepository implements Repository over the client's SQLite database.
// Multi-statement operations (ReplaceAll, Update) run inside a single
// transaction through dbx.WithTx, so a read-modify-write of one checklist is
// atomic with respect to other writers.
//
// # Corrupt rows
//
// A row whose body no longer decodes is treated as absent: listings skip it
// and point lookups report common.ErrLocalNotFound. The optional corrupt-row
// handler (WithCorruptHandler) is told about every skipped row.
//
// Typical Usage
//
//	repo := checklists.NewSQLiteRepository(db)
//	_ = repo.Upsert(ctx, &c)
//	all, _ := repo.GetAll(ctx)
//	one, _ := repo.GetBySlug(ctx, "abc123")
//	pend, _ := repo.GetAllPending(ctx)
//	_ = repo.DeleteBySlug(ctx, "abc123")
package checklists
