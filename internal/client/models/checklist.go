// Package models defines the client-side checklist model shared by the local
// store, the remote gateway and the sync engine.
package models

import "slices"

// Checklist is a packing list generated for one trip. It is persisted locally
// in full and synced with the backend by slug.
type Checklist struct {
	// Slug is the backend-assigned identity. The client never changes it.
	Slug string `json:"slug"`

	// City, StartDate and EndDate describe the trip. Changing them means
	// generating a new checklist.
	City      string `json:"city"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Items is the originally generated (base) list, server-authoritative.
	Items []string `json:"items"`

	ItemsByCategory map[string][]string `json:"items_by_category,omitempty"`
	AvgTemp         *float64            `json:"avg_temp,omitempty"`
	Conditions      []string            `json:"conditions,omitempty"`

	// CheckedItems and RemovedItems have set semantics; order is irrelevant.
	// RemovedItems are tombstones over Items.
	CheckedItems []string `json:"checked_items"`
	RemovedItems []string `json:"removed_items"`

	// AddedItems are user-authored items, in insertion order.
	AddedItems []string `json:"added_items"`

	DailyForecast Forecast `json:"daily_forecast"`

	// NeedsSync marks local mutations not yet confirmed by the server.
	// It never leaves the device.
	NeedsSync bool `json:"needsSync"`
}

// VisibleItems returns (Items − RemovedItems) ++ AddedItems.
func (c *Checklist) VisibleItems() []string {
	removed := toSet(c.RemovedItems)
	out := make([]string, 0, len(c.Items)+len(c.AddedItems))
	for _, it := range c.Items {
		if _, ok := removed[it]; ok {
			continue
		}
		out = append(out, it)
	}
	return append(out, c.AddedItems...)
}

// IsVisible reports whether item is part of VisibleItems.
func (c *Checklist) IsVisible(item string) bool {
	if slices.Contains(c.AddedItems, item) {
		return true
	}
	return slices.Contains(c.Items, item) && !slices.Contains(c.RemovedItems, item)
}

// IsChecked reports whether item is marked done.
func (c *Checklist) IsChecked(item string) bool {
	return slices.Contains(c.CheckedItems, item)
}

// Normalize restores the model invariants in place: set fields hold no
// duplicates, AddedItems never repeats a base item, AddedItems and
// RemovedItems are disjoint, and CheckedItems only references visible items.
// A base item found in AddedItems keeps its tombstone, if any.
func (c *Checklist) Normalize() {
	c.RemovedItems = dedupe(c.RemovedItems)

	base := toSet(c.Items)
	c.AddedItems = slices.DeleteFunc(dedupe(c.AddedItems), func(s string) bool {
		_, ok := base[s]
		return ok
	})

	added := toSet(c.AddedItems)
	c.RemovedItems = slices.DeleteFunc(c.RemovedItems, func(s string) bool {
		_, ok := added[s]
		return ok
	})

	visible := toSet(c.VisibleItems())
	c.CheckedItems = slices.DeleteFunc(dedupe(c.CheckedItems), func(s string) bool {
		_, ok := visible[s]
		return !ok
	})
}

// Clone returns a deep copy so callers can mutate it without aliasing.
func (c Checklist) Clone() Checklist {
	out := c
	out.Items = slices.Clone(c.Items)
	out.CheckedItems = slices.Clone(c.CheckedItems)
	out.RemovedItems = slices.Clone(c.RemovedItems)
	out.AddedItems = slices.Clone(c.AddedItems)
	out.Conditions = slices.Clone(c.Conditions)
	out.DailyForecast = c.DailyForecast.Clone()
	if c.AvgTemp != nil {
		v := *c.AvgTemp
		out.AvgTemp = &v
	}
	if c.ItemsByCategory != nil {
		out.ItemsByCategory = make(map[string][]string, len(c.ItemsByCategory))
		for k, v := range c.ItemsByCategory {
			out.ItemsByCategory[k] = slices.Clone(v)
		}
	}
	return out
}

// State returns the edit state in the shape of the PATCH body.
func (c *Checklist) State() StateUpdate {
	return StateUpdate{
		CheckedItems: orEmpty(c.CheckedItems),
		RemovedItems: orEmpty(c.RemovedItems),
		AddedItems:   orEmpty(c.AddedItems),
		Items:        orEmpty(c.Items),
	}
}

// SyncState is the per-checklist reconciliation state.
type SyncState string

const (
	SyncStateClean   SyncState = "clean"
	SyncStateDirty   SyncState = "dirty"
	SyncStateSyncing SyncState = "syncing"
)

func toSet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
