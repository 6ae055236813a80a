package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/luggify/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/luggify/internal/common"
	"github.com/google/uuid"
)

// PreferencesService keeps per-device settings: the owner id checklists are
// saved under and the items added to every newly generated checklist.
type PreferencesService interface {
	// OwnerID returns the stored owner id, generating and storing one on
	// first use.
	OwnerID(ctx context.Context) (string, error)
	SetOwnerID(ctx context.Context, id string) error
	DefaultItems(ctx context.Context) ([]string, error)
	AddDefaultItem(ctx context.Context, item string) ([]string, error)
	RemoveDefaultItem(ctx context.Context, item string) ([]string, error)
}

type preferencesService struct {
	repo metadata.Repository
}

func NewPreferencesService(repo metadata.Repository) PreferencesService {
	return &preferencesService{repo: repo}
}

func (p *preferencesService) OwnerID(ctx context.Context) (string, error) {
	v, err := p.repo.Get(ctx, metadata.KeyOwnerID)
	if err != nil {
		return "", fmt.Errorf("read owner id: %w", err)
	}
	if len(v) > 0 {
		return string(v), nil
	}

	id := uuid.NewString()
	if err := p.repo.Set(ctx, metadata.KeyOwnerID, []byte(id)); err != nil {
		return "", fmt.Errorf("store owner id: %w", err)
	}
	return id, nil
}

func (p *preferencesService) SetOwnerID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: owner id is empty", common.ErrValidation)
	}
	if err := p.repo.Set(ctx, metadata.KeyOwnerID, []byte(id)); err != nil {
		return fmt.Errorf("store owner id: %w", err)
	}
	return nil
}

func (p *preferencesService) DefaultItems(ctx context.Context) ([]string, error) {
	v, err := p.repo.Get(ctx, metadata.KeyDefaultItems)
	if err != nil {
		return nil, fmt.Errorf("read default items: %w", err)
	}
	items := make([]string, 0)
	if len(v) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(v, &items); err != nil {
		// An unreadable list is treated as empty and replaced on next write.
		return make([]string, 0), nil
	}
	return items, nil
}

func (p *preferencesService) AddDefaultItem(ctx context.Context, item string) ([]string, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, fmt.Errorf("%w: item is empty", common.ErrValidation)
	}
	items, err := p.DefaultItems(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(items, item) {
		return items, nil
	}
	return p.store(ctx, append(items, item))
}

func (p *preferencesService) RemoveDefaultItem(ctx context.Context, item string) ([]string, error) {
	items, err := p.DefaultItems(ctx)
	if err != nil {
		return nil, err
	}
	item = strings.TrimSpace(item)
	if !slices.Contains(items, item) {
		return items, nil
	}
	return p.store(ctx, slices.DeleteFunc(items, func(s string) bool { return s == item }))
}

func (p *preferencesService) store(ctx context.Context, items []string) ([]string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode default items: %w", err)
	}
	if err := p.repo.Set(ctx, metadata.KeyDefaultItems, b); err != nil {
		return nil, fmt.Errorf("store default items: %w", err)
	}
	return items, nil
}
