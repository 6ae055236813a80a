// Package localstore is the error-absorbing view of the checklist
// repository that the sync engine works against.
//
// Persistence failures never reach the caller: they are logged at warn
// level and reported as "did not happen" (a false return or an empty
// result), leaving the caller's in-memory copy as the source of truth for
// that request.
package localstore

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/client/repositories/checklists"
	"github.com/dmitrijs2005/luggify/internal/common"
	"github.com/dmitrijs2005/luggify/internal/logging"
)

type Store struct {
	repo checklists.Repository
	log  logging.Logger
}

func New(repo checklists.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{repo: repo, log: log.With("component", "localstore")}
}

// GetAll returns every readable checklist; empty on any failure.
func (s *Store) GetAll(ctx context.Context) []models.Checklist {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read checklists", "error", err)
		return []models.Checklist{}
	}
	return all
}

// Pending returns the checklists with unsynced local edits.
func (s *Store) Pending(ctx context.Context) []models.Checklist {
	pending, err := s.repo.GetAllPending(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read pending checklists", "error", err)
		return []models.Checklist{}
	}
	return pending
}

// Get looks up slug. The bool is false when the checklist is absent,
// unreadable, or the store failed.
func (s *Store) Get(ctx context.Context, slug string) (models.Checklist, bool) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, common.ErrLocalNotFound) {
			s.log.Warn(ctx, "failed to read checklist", "slug", slug, "error", err)
		}
		return models.Checklist{}, false
	}
	return *c, true
}

// Put overwrites the whole record stored under c.Slug. Callers build the
// merged record beforehand.
func (s *Store) Put(ctx context.Context, c models.Checklist) bool {
	if err := s.repo.Upsert(ctx, &c); err != nil {
		s.log.Warn(ctx, "failed to store checklist", "slug", c.Slug, "error", err)
		return false
	}
	return true
}

// Delete removes slug. Absent slugs are fine.
func (s *Store) Delete(ctx context.Context, slug string) bool {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		s.log.Warn(ctx, "failed to delete checklist", "slug", slug, "error", err)
		return false
	}
	return true
}

// ReplaceAll atomically swaps the stored collection for items.
func (s *Store) ReplaceAll(ctx context.Context, items []models.Checklist) bool {
	if err := s.repo.ReplaceAll(ctx, items); err != nil {
		s.log.Warn(ctx, "failed to replace checklists", "count", len(items), "error", err)
		return false
	}
	return true
}

// Update runs fn against the latest stored copy of slug and persists the
// result in one transaction. It returns the stored result, or false when
// slug is absent or the store failed.
func (s *Store) Update(ctx context.Context, slug string, fn func(*models.Checklist)) (models.Checklist, bool) {
	c, err := s.repo.Update(ctx, slug, func(c *models.Checklist) error {
		fn(c)
		return nil
	})
	if err != nil {
		if !errors.Is(err, common.ErrLocalNotFound) {
			s.log.Warn(ctx, "failed to update checklist", "slug", slug, "error", err)
		}
		return models.Checklist{}, false
	}
	return *c, true
}
