package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/luggify/internal/client/migrations"
	"github.com/dmitrijs2005/luggify/internal/client/repositories/checklists"
	"github.com/dmitrijs2005/luggify/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories groups the local repositories opened over one database.
type Repositories struct {
	Metadata   metadata.Repository
	Checklists checklists.Repository
}

// NewRepositories binds the local repositories to db.
func NewRepositories(db *sql.DB, opts ...checklists.Option) *Repositories {
	return &Repositories{
		Metadata:   metadata.NewSQLiteRepository(db),
		Checklists: checklists.NewSQLiteRepository(db, opts...),
	}
}

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite database at dsn and migrates it. The pool is
// limited to one connection so transactions serialize instead of failing
// with SQLITE_BUSY.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
