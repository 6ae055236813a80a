// Package services contains application services for the Luggify client.
// This file defines the checklist sync engine: generation, the fetch and
// list read paths with local fallback, local mutations and pushing dirty
// checklists to the backend.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/luggify/internal/client/client"
	"github.com/dmitrijs2005/luggify/internal/client/localstore"
	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/common"
	"github.com/dmitrijs2005/luggify/internal/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultSyncConcurrency bounds SyncAllPending when no limit is configured.
const DefaultSyncConcurrency = 4

// Mutation edits a checklist in place. It must not keep the pointer.
type Mutation func(c *models.Checklist)

// SyncOutcome is the result of pushing one checklist.
type SyncOutcome struct {
	Slug string
	Err  error
}

// ListResult is the answer of GetMyChecklists.
type ListResult struct {
	// Local is the snapshot read before any network work.
	Local []models.Checklist
	// Merged is what the caller should show. It equals Local when the
	// device is offline or the fetch failed.
	Merged []models.Checklist
	// Offline is set when the remote list could not be consulted and a
	// local snapshot is shown instead.
	Offline bool
	// Err is set only when there was nothing local to fall back to.
	Err error
}

// ChecklistService reconciles the local checklist store with the backend.
//
// Contract:
//   - Read paths (GetChecklist, GetMyChecklists) fall back to local copies
//     whenever the backend cannot be reached.
//   - ApplyLocal persists a mutation with NeedsSync set before returning.
//   - Sync never rolls back local edits; a failed push returns an error
//     wrapping common.ErrPendingSync and leaves the checklist dirty.
//   - Delete always succeeds locally; the remote delete is best-effort.
type ChecklistService interface {
	Generate(ctx context.Context, req models.PackingRequest) (models.Checklist, error)
	GetChecklist(ctx context.Context, slug string) (models.Checklist, error)
	OpenChecklist(ctx context.Context, slug string) (models.Checklist, error)
	LocalChecklist(ctx context.Context, slug string) (models.Checklist, bool)
	ApplyLocal(ctx context.Context, base models.Checklist, mutate Mutation) models.Checklist
	Sync(ctx context.Context, slug string) (models.Checklist, error)
	SyncChecklist(ctx context.Context, local models.Checklist) (models.Checklist, error)
	SyncAllPending(ctx context.Context) []SyncOutcome
	GetMyChecklists(ctx context.Context, ownerID string, firstPaint func([]models.Checklist)) ListResult
	Delete(ctx context.Context, slug string)
	SaveOwned(ctx context.Context, c models.Checklist, ownerID string) (models.Checklist, error)
	RefreshForecast(ctx context.Context, slug string) (models.Checklist, error)
	SearchCities(ctx context.Context, prefix string) ([]models.City, error)
	State(ctx context.Context, slug string) models.SyncState
}

// Option configures the checklist service.
type Option func(*checklistService)

// WithSyncConcurrency limits how many checklists SyncAllPending pushes at
// once. Values below one are ignored.
func WithSyncConcurrency(n int) Option {
	return func(s *checklistService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

type checklistService struct {
	client      client.Client
	store       *localstore.Store
	conn        Connectivity
	log         logging.Logger
	concurrency int

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewChecklistService wires the engine to its gateway, local store and
// connectivity probe.
func NewChecklistService(c client.Client, store *localstore.Store, conn Connectivity, log logging.Logger, opts ...Option) ChecklistService {
	if log == nil {
		log = logging.Nop()
	}
	s := &checklistService{
		client:      c,
		store:       store,
		conn:        conn,
		log:         log.With("component", "sync"),
		concurrency: DefaultSyncConcurrency,
		inflight:    make(map[string]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *checklistService) Generate(ctx context.Context, req models.PackingRequest) (models.Checklist, error) {
	if err := req.Validate(); err != nil {
		return models.Checklist{}, err
	}

	remote, err := s.client.Generate(ctx, req)
	if err != nil {
		return models.Checklist{}, fmt.Errorf("generate checklist: %w", err)
	}

	c := remote.Clone()
	c.Normalize()
	c.NeedsSync = false
	if !s.store.Put(ctx, c) {
		s.log.Warn(ctx, "generated checklist kept in memory only", "slug", c.Slug)
	}
	s.log.Info(ctx, "checklist generated", "slug", c.Slug, "items", len(c.Items))
	return c, nil
}

func (s *checklistService) GetChecklist(ctx context.Context, slug string) (models.Checklist, error) {
	remote, err := s.client.FetchChecklist(ctx, slug)
	if err != nil {
		if local, ok := s.store.Get(ctx, slug); ok {
			s.log.Info(ctx, "serving local copy", "slug", slug, "error", err)
			return local, nil
		}
		return models.Checklist{}, fmt.Errorf("get checklist %s: %w", slug, err)
	}

	merged := remote.Clone()
	merged.Slug = slug
	merged.NeedsSync = false
	merged.Normalize()

	// The stored copy is re-read inside the transaction so an edit made
	// while the fetch was in flight is not overwritten.
	stored, ok := s.store.Update(ctx, slug, func(cur *models.Checklist) {
		if cur.NeedsSync {
			return
		}
		merged.DailyForecast = merged.DailyForecast.Or(cur.DailyForecast)
		*cur = merged
	})
	if ok {
		return stored, nil
	}

	if !s.store.Put(ctx, merged) {
		s.log.Warn(ctx, "fetched checklist kept in memory only", "slug", slug)
	}
	return merged, nil
}

func (s *checklistService) OpenChecklist(ctx context.Context, slug string) (models.Checklist, error) {
	if local, ok := s.store.Get(ctx, slug); ok && local.NeedsSync && s.conn.IsOnline(ctx) {
		if _, err := s.Sync(ctx, slug); err != nil {
			s.log.Warn(ctx, "sync on open failed", "slug", slug, "error", err)
		}
	}
	return s.GetChecklist(ctx, slug)
}

func (s *checklistService) LocalChecklist(ctx context.Context, slug string) (models.Checklist, bool) {
	return s.store.Get(ctx, slug)
}

// ApplyLocal applies mutate to the latest stored copy of base.Slug and marks
// it dirty in one transaction. When the store cannot take the write, the
// mutation is applied to base and the result returned unpersisted.
func (s *checklistService) ApplyLocal(ctx context.Context, base models.Checklist, mutate Mutation) models.Checklist {
	apply := func(c *models.Checklist) {
		mutate(c)
		c.Normalize()
		c.NeedsSync = true
	}

	if c, ok := s.store.Update(ctx, base.Slug, apply); ok {
		return c
	}

	c := base.Clone()
	apply(&c)
	if !s.store.Put(ctx, c) {
		s.log.Warn(ctx, "local edit kept in memory only", "slug", c.Slug)
	}
	return c
}

func (s *checklistService) Sync(ctx context.Context, slug string) (models.Checklist, error) {
	local, ok := s.store.Get(ctx, slug)
	if !ok {
		return models.Checklist{}, fmt.Errorf("sync %s: %w", slug, common.ErrLocalNotFound)
	}
	return s.SyncChecklist(ctx, local)
}

// SyncChecklist pushes local's edit state. On success the server echo is
// merged, keeping the local forecast, and stored clean; if local was edited
// again during the push, the newer edits are kept and stay dirty.
func (s *checklistService) SyncChecklist(ctx context.Context, local models.Checklist) (models.Checklist, error) {
	slug := local.Slug
	if !s.begin(slug) {
		return local, fmt.Errorf("sync %s: %w", slug, common.ErrSyncInProgress)
	}
	defer s.end(slug)

	echo, err := s.client.PatchState(ctx, slug, local.State())
	if err != nil {
		s.log.Warn(ctx, "sync failed, keeping local edits", "slug", slug, "error", err)
		return local, fmt.Errorf("sync %s: %w: %w", slug, common.ErrPendingSync, err)
	}

	merged := mergeEcho(local, *echo)

	stored, ok := s.store.Update(ctx, slug, func(cur *models.Checklist) {
		if !sameState(cur, &local) {
			return
		}
		*cur = merged
	})
	if !ok {
		// Deleted during the push, or the store is failing. Either way the
		// echo is not written back.
		return merged, nil
	}
	if stored.NeedsSync {
		s.log.Info(ctx, "checklist edited during sync, staying dirty", "slug", slug)
	} else {
		s.log.Info(ctx, "checklist synced", "slug", slug)
	}
	return stored, nil
}

func (s *checklistService) SyncAllPending(ctx context.Context) []SyncOutcome {
	pending := s.store.Pending(ctx)
	outcomes := make([]SyncOutcome, len(pending))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, c := range pending {
		g.Go(func() error {
			_, err := s.SyncChecklist(ctx, c)
			outcomes[i] = SyncOutcome{Slug: c.Slug, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	if len(pending) > 0 {
		s.log.Info(ctx, "pending sweep finished", "pushed", len(pending)-failed, "failed", failed)
	}
	return outcomes
}

func (s *checklistService) GetMyChecklists(ctx context.Context, ownerID string, firstPaint func([]models.Checklist)) ListResult {
	local := s.store.GetAll(ctx)
	if firstPaint != nil {
		firstPaint(cloneAll(local))
	}
	res := ListResult{Local: local, Merged: local}

	if !s.conn.IsOnline(ctx) {
		res.Offline = true
		return res
	}

	current := local
	if slices.ContainsFunc(local, func(c models.Checklist) bool { return c.NeedsSync }) {
		s.SyncAllPending(ctx)
		current = s.store.GetAll(ctx)
	}

	remote, err := s.client.ListChecklists(ctx, ownerID)
	if err != nil {
		if len(current) > 0 {
			// current reflects the sweep, so pushed entries are no longer
			// shown as pending.
			s.log.Info(ctx, "list fetch failed, showing local snapshot", "error", err)
			res.Offline = true
			res.Merged = current
			return res
		}
		res.Err = fmt.Errorf("list checklists: %w", err)
		return res
	}

	merged := mergeList(current, remote)
	if !s.store.ReplaceAll(ctx, merged) {
		s.log.Warn(ctx, "merged list kept in memory only", "count", len(merged))
	}
	res.Merged = merged
	return res
}

func (s *checklistService) Delete(ctx context.Context, slug string) {
	s.store.Delete(ctx, slug)

	if err := s.client.DeleteChecklist(ctx, slug); err != nil {
		s.log.Info(ctx, "remote delete failed, ignoring", "slug", slug, "error", err)
	}
}

// SaveOwned stores c under ownerID on the backend. When the backend assigns
// a new slug the old local record is dropped.
func (s *checklistService) SaveOwned(ctx context.Context, c models.Checklist, ownerID string) (models.Checklist, error) {
	remote, err := s.client.SaveOwned(ctx, models.NewSaveRequest(c, ownerID))
	if err != nil {
		return c, fmt.Errorf("save checklist %s: %w", c.Slug, err)
	}

	saved := remote.Clone()
	saved.DailyForecast = saved.DailyForecast.Or(c.DailyForecast)
	saved.Normalize()
	saved.NeedsSync = false

	if c.Slug != "" && c.Slug != saved.Slug {
		s.store.Delete(ctx, c.Slug)
	}
	if !s.store.Put(ctx, saved) {
		s.log.Warn(ctx, "saved checklist kept in memory only", "slug", saved.Slug)
	}
	return saved, nil
}

// RefreshForecast regenerates the trip of slug only to read its forecast and
// caches that forecast locally. The regenerated checklist itself is
// discarded and the dirty flag is left alone.
func (s *checklistService) RefreshForecast(ctx context.Context, slug string) (models.Checklist, error) {
	local, ok := s.store.Get(ctx, slug)
	if !ok {
		return models.Checklist{}, fmt.Errorf("refresh forecast %s: %w", slug, common.ErrLocalNotFound)
	}

	fresh, err := s.client.Generate(ctx, local.ForTrip())
	if err != nil {
		return local, fmt.Errorf("refresh forecast %s: %w", slug, err)
	}
	forecast := fresh.DailyForecast.Or(local.DailyForecast)

	updated, ok := s.store.Update(ctx, slug, func(cur *models.Checklist) {
		cur.DailyForecast = forecast
	})
	if !ok {
		local.DailyForecast = forecast
		return local, nil
	}
	return updated, nil
}

func (s *checklistService) SearchCities(ctx context.Context, prefix string) ([]models.City, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("%w: city prefix is empty", common.ErrValidation)
	}
	cities, err := s.client.SearchCities(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("search cities: %w", err)
	}
	return cities, nil
}

func (s *checklistService) State(ctx context.Context, slug string) models.SyncState {
	s.mu.Lock()
	_, syncing := s.inflight[slug]
	s.mu.Unlock()
	if syncing {
		return models.SyncStateSyncing
	}

	if c, ok := s.store.Get(ctx, slug); ok && c.NeedsSync {
		return models.SyncStateDirty
	}
	return models.SyncStateClean
}

func (s *checklistService) begin(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[slug]; busy {
		return false
	}
	s.inflight[slug] = struct{}{}
	return true
}

func (s *checklistService) end(slug string) {
	s.mu.Lock()
	delete(s.inflight, slug)
	s.mu.Unlock()
}

// IsPending reports whether err only means the edits are still waiting for
// the server.
func IsPending(err error) bool {
	return errors.Is(err, common.ErrPendingSync)
}
