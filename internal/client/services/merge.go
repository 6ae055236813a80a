package services

import (
	"slices"

	"github.com/dmitrijs2005/luggify/internal/client/models"
)

// mergeEcho folds the server's answer to a state push into the pushed local
// copy. Server fields win; fields the echo leaves out are taken from local,
// and the forecast is kept unless the server sent one.
func mergeEcho(local, echo models.Checklist) models.Checklist {
	m := echo.Clone()
	l := local.Clone()

	m.Slug = local.Slug
	if m.City == "" {
		m.City = l.City
	}
	if m.StartDate == "" {
		m.StartDate = l.StartDate
	}
	if m.EndDate == "" {
		m.EndDate = l.EndDate
	}
	if m.Items == nil {
		m.Items = l.Items
	}
	if m.ItemsByCategory == nil {
		m.ItemsByCategory = l.ItemsByCategory
	}
	if m.AvgTemp == nil {
		m.AvgTemp = l.AvgTemp
	}
	if m.Conditions == nil {
		m.Conditions = l.Conditions
	}
	m.DailyForecast = m.DailyForecast.Or(l.DailyForecast)

	m.Normalize()
	m.NeedsSync = false
	return m
}

// mergeList builds the new local snapshot from the server list. A dirty
// local copy wins over its server counterpart, and dirty copies the server
// does not know about are kept.
func mergeList(local, remote []models.Checklist) []models.Checklist {
	bySlug := make(map[string]models.Checklist, len(local))
	for _, c := range local {
		bySlug[c.Slug] = c
	}

	out := make([]models.Checklist, 0, len(remote))
	seen := make(map[string]struct{}, len(remote))
	for _, r := range remote {
		if _, dup := seen[r.Slug]; dup || r.Slug == "" {
			continue
		}
		seen[r.Slug] = struct{}{}

		l, ok := bySlug[r.Slug]
		if ok && l.NeedsSync {
			out = append(out, l)
			continue
		}

		m := r.Clone()
		if ok {
			m.DailyForecast = m.DailyForecast.Or(l.DailyForecast)
		}
		m.Normalize()
		m.NeedsSync = false
		out = append(out, m)
	}

	for _, l := range local {
		if _, ok := seen[l.Slug]; !ok && l.NeedsSync {
			out = append(out, l)
		}
	}
	return out
}

// sameState reports whether a and b carry identical edit state.
func sameState(a, b *models.Checklist) bool {
	sa, sb := a.State(), b.State()
	return slices.Equal(sa.Items, sb.Items) &&
		slices.Equal(sa.CheckedItems, sb.CheckedItems) &&
		slices.Equal(sa.RemovedItems, sb.RemovedItems) &&
		slices.Equal(sa.AddedItems, sb.AddedItems)
}

func cloneAll(in []models.Checklist) []models.Checklist {
	out := make([]models.Checklist, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
