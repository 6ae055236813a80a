package checklists

import (
	"context"

	"github.com/dmitrijs2005/luggify/internal/client/models"
)

// UpdateFunc mutates a checklist loaded inside Update's transaction.
// Returning an error aborts the update and rolls the transaction back.
type UpdateFunc func(c *models.Checklist) error

// Repository describes persistence operations for Checklist documents keyed
// by slug.
type Repository interface {
	// GetAll returns every decodable checklist, most recently written first.
	GetAll(ctx context.Context) ([]models.Checklist, error)

	// GetBySlug returns one checklist or common.ErrLocalNotFound.
	GetBySlug(ctx context.Context, slug string) (*models.Checklist, error)

	// Upsert inserts or fully overwrites the checklist stored under c.Slug.
	Upsert(ctx context.Context, c *models.Checklist) error

	// DeleteBySlug removes a checklist. Deleting a missing slug is not an error.
	DeleteBySlug(ctx context.Context, slug string) error

	// ReplaceAll atomically swaps the whole collection for items.
	ReplaceAll(ctx context.Context, items []models.Checklist) error

	// GetAllPending returns checklists with NeedsSync set.
	GetAllPending(ctx context.Context) ([]models.Checklist, error)

	// Update loads slug, applies fn and writes the result back in one
	// transaction. It returns common.ErrLocalNotFound if slug is absent.
	Update(ctx context.Context, slug string, fn UpdateFunc) (*models.Checklist, error)
}
