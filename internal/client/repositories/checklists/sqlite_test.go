package checklists

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE checklists (
  slug       TEXT PRIMARY KEY,
  body       TEXT NOT NULL,
  needs_sync INTEGER NOT NULL DEFAULT 0,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`)
	require.NoError(t, err)
	return db
}

func sample(slug string) *models.Checklist {
	return &models.Checklist{
		Slug:      slug,
		City:      "Paris",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-05",
		Items:     []string{"Passport", "Socks"},
	}
}

func TestUpsert_InsertAndOverwrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, sample("abc123")))

	c := sample("abc123")
	c.CheckedItems = []string{"Passport"}
	c.NeedsSync = true
	require.NoError(t, r.Upsert(ctx, c))

	got, err := r.GetBySlug(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, []string{"Passport"}, got.CheckedItems)
	assert.True(t, got.NeedsSync)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM checklists`).Scan(&n))
	assert.Equal(t, 1, n, "one row per slug")
}

func TestUpsert_EmptySlugRejected(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	err := r.Upsert(context.Background(), &models.Checklist{})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestGetBySlug_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	_, err := r.GetBySlug(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrLocalNotFound)
}

func TestDeleteBySlug_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Upsert(ctx, sample("x")))

	require.NoError(t, r.DeleteBySlug(ctx, "x"))
	require.NoError(t, r.DeleteBySlug(ctx, "x"))

	_, err := r.GetBySlug(ctx, "x")
	require.ErrorIs(t, err, common.ErrLocalNotFound)
}

func TestGetAll_SkipsCorruptRows(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	var reported []string
	r := NewSQLiteRepository(db, WithCorruptHandler(func(slug string, err error) {
		reported = append(reported, slug)
	}))
	require.NoError(t, r.Upsert(ctx, sample("good")))
	_, err := db.Exec(`INSERT INTO checklists(slug, body, needs_sync) VALUES ('bad', '{not json', 0)`)
	require.NoError(t, err)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "good", all[0].Slug)
	assert.Equal(t, []string{"bad"}, reported)

	_, err = r.GetBySlug(ctx, "bad")
	require.ErrorIs(t, err, common.ErrLocalNotFound)
}

func TestGetAllPending_ReturnsOnlyDirty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	p1 := sample("p1")
	p1.NeedsSync = true
	p2 := sample("p2")
	p2.NeedsSync = true
	require.NoError(t, r.Upsert(ctx, p1))
	require.NoError(t, r.Upsert(ctx, p2))
	require.NoError(t, r.Upsert(ctx, sample("clean")))

	got, err := r.GetAllPending(ctx)
	require.NoError(t, err)

	slugs := make(map[string]struct{})
	for _, c := range got {
		slugs[c.Slug] = struct{}{}
		assert.True(t, c.NeedsSync)
	}
	assert.Equal(t, map[string]struct{}{"p1": {}, "p2": {}}, slugs)
}

func TestReplaceAll_SwapsCollection(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Upsert(ctx, sample("old")))

	require.NoError(t, r.ReplaceAll(ctx, []models.Checklist{*sample("a"), *sample("b")}))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	var slugs []string
	for _, c := range all {
		slugs = append(slugs, c.Slug)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, slugs)
}

func TestReplaceAll_RollsBackOnBadItem(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Upsert(ctx, sample("keep")))

	err := r.ReplaceAll(ctx, []models.Checklist{*sample("a"), {}})
	require.Error(t, err)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].Slug)
}

func TestUpdate_ReadModifyWrite(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Upsert(ctx, sample("abc123")))

	got, err := r.Update(ctx, "abc123", func(c *models.Checklist) error {
		c.CheckedItems = append(c.CheckedItems, "Passport")
		c.NeedsSync = true
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Passport"}, got.CheckedItems)

	stored, err := r.GetBySlug(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, []string{"Passport"}, stored.CheckedItems)
	assert.True(t, stored.NeedsSync)
}

func TestUpdate_FnErrorLeavesRowUntouched(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Upsert(ctx, sample("abc123")))

	boom := errors.New("boom")
	_, err := r.Update(ctx, "abc123", func(c *models.Checklist) error {
		c.City = "Rome"
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := r.GetBySlug(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Paris", stored.City)
}

func TestUpdate_MissingSlug(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	_, err := r.Update(context.Background(), "nope", func(c *models.Checklist) error { return nil })
	require.ErrorIs(t, err, common.ErrLocalNotFound)
}
