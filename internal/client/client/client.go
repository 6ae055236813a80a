package client

import (
	"context"

	"github.com/dmitrijs2005/luggify/internal/client/models"
)

// Client is the remote gateway to the Luggify backend. Every call maps to
// one HTTP endpoint; implementations never retry.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SearchCities(ctx context.Context, prefix string) ([]models.City, error)
	Generate(ctx context.Context, req models.PackingRequest) (*models.Checklist, error)
	FetchChecklist(ctx context.Context, slug string) (*models.Checklist, error)
	PatchState(ctx context.Context, slug string, state models.StateUpdate) (*models.Checklist, error)
	DeleteChecklist(ctx context.Context, slug string) error
	ListChecklists(ctx context.Context, ownerID string) ([]models.Checklist, error)
	SaveOwned(ctx context.Context, req models.SaveRequest) (*models.Checklist, error)
}
