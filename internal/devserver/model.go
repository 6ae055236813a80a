// Package devserver is an in-memory Luggify backend for local development
// and end-to-end tests. It speaks the same HTTP/JSON contract as the
// production service but keeps everything in a map and generates packing
// lists from a fixed catalog.
package devserver

// Checklist is the stored form of one checklist.
type Checklist struct {
	Slug            string              `json:"slug"`
	City            string              `json:"city"`
	StartDate       string              `json:"start_date"`
	EndDate         string              `json:"end_date"`
	Items           []string            `json:"items"`
	ItemsByCategory map[string][]string `json:"items_by_category,omitempty"`
	AvgTemp         *float64            `json:"avg_temp,omitempty"`
	Conditions      []string            `json:"conditions,omitempty"`
	CheckedItems    []string            `json:"checked_items"`
	RemovedItems    []string            `json:"removed_items"`
	AddedItems      []string            `json:"added_items"`
	OwnerID         string              `json:"tg_user_id,omitempty"`

	forecast []DailyForecast
}

// DailyForecast is one day of the generated weather annex.
type DailyForecast struct {
	Date      string  `json:"date"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
}

// generated is the answer of POST /generate-packing-list; only generation
// returns the forecast.
type generated struct {
	Checklist
	DailyForecast []DailyForecast `json:"daily_forecast"`
}

type city struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	FullName string  `json:"fullName"`
}

type packingRequest struct {
	City      string `json:"city"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type stateUpdate struct {
	CheckedItems []string `json:"checked_items"`
	RemovedItems []string `json:"removed_items"`
	AddedItems   []string `json:"added_items"`
	Items        []string `json:"items"`
}

type saveRequest struct {
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Items        []string `json:"items"`
	AvgTemp      *float64 `json:"avg_temp"`
	Conditions   []string `json:"conditions"`
	CheckedItems []string `json:"checked_items"`
	RemovedItems []string `json:"removed_items"`
	AddedItems   []string `json:"added_items"`
	OwnerID      string   `json:"tg_user_id"`
}

func (c *Checklist) clone() Checklist {
	out := *c
	out.Items = uniqueStrings(c.Items)
	out.Conditions = uniqueStrings(c.Conditions)
	out.CheckedItems = uniqueStrings(c.CheckedItems)
	out.RemovedItems = uniqueStrings(c.RemovedItems)
	out.AddedItems = uniqueStrings(c.AddedItems)
	out.forecast = append([]DailyForecast(nil), c.forecast...)
	if c.AvgTemp != nil {
		v := *c.AvgTemp
		out.AvgTemp = &v
	}
	if c.ItemsByCategory != nil {
		out.ItemsByCategory = make(map[string][]string, len(c.ItemsByCategory))
		for k, v := range c.ItemsByCategory {
			out.ItemsByCategory[k] = uniqueStrings(v)
		}
	}
	return out
}

// uniqueStrings copies s without duplicates. It never returns nil, so
// lists encode as [].
func uniqueStrings(s []string) []string {
	out := make([]string, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
