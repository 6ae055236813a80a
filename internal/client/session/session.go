// Package session holds the editing state of one open checklist.
//
// A Session turns user actions (check, remove, add, reset, save) into
// checklist mutations. Every mutation goes through the engine's ApplyLocal,
// so it is persisted with the dirty flag set before the call returns.
// Observers receive Snapshots through Subscribe instead of reading shared
// UI state.
package session

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/client/services"
	"github.com/dmitrijs2005/luggify/internal/common"
)

// Engine is the part of services.ChecklistService a session needs.
type Engine interface {
	OpenChecklist(ctx context.Context, slug string) (models.Checklist, error)
	ApplyLocal(ctx context.Context, base models.Checklist, mutate services.Mutation) models.Checklist
	Sync(ctx context.Context, slug string) (models.Checklist, error)
	SyncChecklist(ctx context.Context, local models.Checklist) (models.Checklist, error)
}

// Snapshot is an immutable view of the session.
type Snapshot struct {
	Checklist models.Checklist
	Visible   []string
	State     models.SyncState
}

// Checked reports whether item is currently checked.
func (s Snapshot) Checked(item string) bool { return s.Checklist.IsChecked(item) }

type Session struct {
	engine Engine

	mu      sync.Mutex
	current models.Checklist
	syncing bool
	subs    map[int]chan Snapshot
	nextSub int
	closed  bool
}

// New starts a session on c.
func New(engine Engine, c models.Checklist) *Session {
	return &Session{
		engine:  engine,
		current: c.Clone(),
		subs:    make(map[int]chan Snapshot),
	}
}

// Open loads slug through the engine, pushing pending edits first when
// possible, and starts a session on the result.
func Open(ctx context.Context, engine Engine, slug string) (*Session, error) {
	c, err := engine.OpenChecklist(ctx, slug)
	if err != nil {
		return nil, err
	}
	return New(engine, c), nil
}

func (s *Session) Slug() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Slug
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that receives the latest Snapshot after every
// change. Slow readers only miss intermediate snapshots. The returned func
// cancels the subscription and closes the channel.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close ends every subscription.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// ToggleChecked flips item's checked state. Items that are not visible are
// accepted but never stay checked.
func (s *Session) ToggleChecked(ctx context.Context, item string) Snapshot {
	return s.apply(ctx, func(c *models.Checklist) {
		if c.IsChecked(item) {
			c.CheckedItems = without(c.CheckedItems, item)
			return
		}
		c.CheckedItems = append(c.CheckedItems, item)
	})
}

// RemoveItem drops a user-added item outright and tombstones a base item.
// The item is unchecked either way.
func (s *Session) RemoveItem(ctx context.Context, item string) Snapshot {
	return s.apply(ctx, func(c *models.Checklist) {
		switch {
		case slices.Contains(c.AddedItems, item):
			c.AddedItems = without(c.AddedItems, item)
		case slices.Contains(c.Items, item) && !slices.Contains(c.RemovedItems, item):
			c.RemovedItems = append(c.RemovedItems, item)
		}
		c.CheckedItems = without(c.CheckedItems, item)
	})
}

// AddItem adds text as a user item. It reports false, and changes nothing,
// when the trimmed text is empty or already visible.
func (s *Session) AddItem(ctx context.Context, text string) (Snapshot, bool) {
	return s.AddItems(ctx, text)
}

// AddItems adds every new text in one mutation. Texts naming a tombstoned
// base item restore it instead of duplicating it.
func (s *Session) AddItems(ctx context.Context, texts ...string) (Snapshot, bool) {
	cur := s.Snapshot()

	fresh := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" || cur.Checklist.IsVisible(t) || slices.Contains(fresh, t) {
			continue
		}
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return cur, false
	}

	return s.apply(ctx, func(c *models.Checklist) {
		for _, t := range fresh {
			switch {
			case c.IsVisible(t):
				// added meanwhile
			case slices.Contains(c.Items, t):
				c.RemovedItems = without(c.RemovedItems, t)
			default:
				c.AddedItems = append(c.AddedItems, t)
			}
		}
	}), true
}

// ResetChecked unchecks everything. It marks the checklist dirty even when
// nothing was checked.
func (s *Session) ResetChecked(ctx context.Context) Snapshot {
	return s.apply(ctx, func(c *models.Checklist) {
		c.CheckedItems = []string{}
	})
}

// SaveState pushes the checklist and adopts the server's echo. On failure
// the local edits stay in place and dirty; the error wraps
// common.ErrPendingSync.
func (s *Session) SaveState(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.syncing {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, common.ErrSyncInProgress
	}
	s.syncing = true
	local := s.current.Clone()
	s.publishLocked()
	s.mu.Unlock()

	synced, err := s.engine.Sync(ctx, local.Slug)
	if errors.Is(err, common.ErrLocalNotFound) {
		// The edit never reached the store; push the in-memory copy.
		synced, err = s.engine.SyncChecklist(ctx, local)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = false
	if err == nil {
		s.current = synced.Clone()
	}
	s.publishLocked()
	return s.snapshotLocked(), err
}

func (s *Session) apply(ctx context.Context, m services.Mutation) Snapshot {
	base := s.Snapshot().Checklist

	updated := s.engine.ApplyLocal(ctx, base, m)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = updated.Clone()
	s.publishLocked()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	c := s.current.Clone()
	state := models.SyncStateClean
	switch {
	case s.syncing:
		state = models.SyncStateSyncing
	case c.NeedsSync:
		state = models.SyncStateDirty
	}
	return Snapshot{Checklist: c, Visible: c.VisibleItems(), State: state}
}

func (s *Session) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func without(items []string, item string) []string {
	return slices.DeleteFunc(slices.Clone(items), func(s string) bool { return s == item })
}
