package checklists

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/common"
	"github.com/dmitrijs2005/luggify/internal/dbx"
)

// Option configures a SQLiteRepository.
type Option func(*SQLiteRepository)

// WithCorruptHandler registers fn to be told about rows that fail to decode.
func WithCorruptHandler(fn func(slug string, err error)) Option {
	return func(r *SQLiteRepository) { r.onCorrupt = fn }
}

// SQLiteRepository implements Repository on top of the local SQLite database.
type SQLiteRepository struct {
	db        *sql.DB
	onCorrupt func(slug string, err error)
}

// NewSQLiteRepository returns a SQLiteRepository bound to db.
func NewSQLiteRepository(db *sql.DB, opts ...Option) *SQLiteRepository {
	r := &SQLiteRepository{db: db}
	for _, o := range opts {
		o(r)
	}
	return r
}

const selectColumns = `select slug, body, needs_sync from checklists`

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Checklist, error) {
	return r.list(ctx, r.db, selectColumns+` order by updated_at desc, slug`)
}

func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]models.Checklist, error) {
	return r.list(ctx, r.db, selectColumns+` where needs_sync=1 order by updated_at desc, slug`)
}

func (r *SQLiteRepository) GetBySlug(ctx context.Context, slug string) (*models.Checklist, error) {
	return r.get(ctx, r.db, slug)
}

func (r *SQLiteRepository) Upsert(ctx context.Context, c *models.Checklist) error {
	return r.upsert(ctx, r.db, c)
}

func (r *SQLiteRepository) DeleteBySlug(ctx context.Context, slug string) error {
	if _, err := r.db.ExecContext(ctx, `delete from checklists where slug=?`, slug); err != nil {
		return fmt.Errorf("failed to delete checklist %s: %w", slug, err)
	}
	return nil
}

// ReplaceAll deletes every row and inserts items inside one transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.Checklist) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from checklists`); err != nil {
			return fmt.Errorf("failed to clear checklists: %w", err)
		}
		for i := range items {
			if err := r.upsert(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Update(ctx context.Context, slug string, fn UpdateFunc) (*models.Checklist, error) {
	return dbx.WithTxValue(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Checklist, error) {
		c, err := r.get(ctx, tx, slug)
		if err != nil {
			return nil, err
		}
		if err := fn(c); err != nil {
			return nil, err
		}
		c.Slug = slug
		if err := r.upsert(ctx, tx, c); err != nil {
			return nil, err
		}
		return c, nil
	})
}

func (r *SQLiteRepository) upsert(ctx context.Context, db dbx.DBTX, c *models.Checklist) error {
	if c.Slug == "" {
		return fmt.Errorf("%w: checklist slug is empty", common.ErrValidation)
	}
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode checklist %s: %w", c.Slug, err)
	}
	query := `insert into checklists (slug, body, needs_sync, updated_at)
			values (?, ?, ?, CURRENT_TIMESTAMP)
			on conflict(slug) do update set body = excluded.body,
				needs_sync = excluded.needs_sync,
				updated_at = excluded.updated_at
	`
	if _, err := db.ExecContext(ctx, query, c.Slug, string(body), c.NeedsSync); err != nil {
		return fmt.Errorf("failed to upsert checklist %s: %w", c.Slug, err)
	}
	return nil
}

func (r *SQLiteRepository) get(ctx context.Context, db dbx.DBTX, slug string) (*models.Checklist, error) {
	var (
		s         string
		body      string
		needsSync bool
	)
	err := db.QueryRowContext(ctx, selectColumns+` where slug=?`, slug).Scan(&s, &body, &needsSync)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checklist %s: %w", slug, common.ErrLocalNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select checklist %s: %w", slug, err)
	}
	c, err := r.decode(s, body, needsSync)
	if err != nil {
		return nil, fmt.Errorf("checklist %s: %w", slug, common.ErrLocalNotFound)
	}
	return c, nil
}

func (r *SQLiteRepository) list(ctx context.Context, db dbx.DBTX, query string) ([]models.Checklist, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select checklists: %w", err)
	}
	defer rows.Close()

	result := make([]models.Checklist, 0)
	for rows.Next() {
		var (
			slug      string
			body      string
			needsSync bool
		)
		if err := rows.Scan(&slug, &body, &needsSync); err != nil {
			return nil, fmt.Errorf("failed to scan checklist row: %w", err)
		}
		c, err := r.decode(slug, body, needsSync)
		if err != nil {
			continue
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checklist rows: %w", err)
	}
	return result, nil
}

// decode parses a stored body. The slug and needs_sync columns win over the
// copies inside the JSON document.
func (r *SQLiteRepository) decode(slug, body string, needsSync bool) (*models.Checklist, error) {
	var c models.Checklist
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		if r.onCorrupt != nil {
			r.onCorrupt(slug, err)
		}
		return nil, err
	}
	c.Slug = slug
	c.NeedsSync = needsSync
	return &c, nil
}
