package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/luggify/internal/common"
)

// City is one geocoding autocomplete hit.
type City struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	FullName string  `json:"fullName"`
}

// PackingRequest asks the backend to generate a checklist for a trip.
type PackingRequest struct {
	City      string `json:"city"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Validate checks the city is set and both dates are ISO YYYY-MM-DD with the
// end not before the start. Errors wrap common.ErrValidation.
func (r PackingRequest) Validate() error {
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("%w: city is required", common.ErrValidation)
	}
	start, err := time.Parse(common.DateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start date %q: expected YYYY-MM-DD", common.ErrValidation, r.StartDate)
	}
	end, err := time.Parse(common.DateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end date %q: expected YYYY-MM-DD", common.ErrValidation, r.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s", common.ErrValidation, r.EndDate, r.StartDate)
	}
	return nil
}

// StateUpdate is the body of PATCH /checklist/{slug}/state.
type StateUpdate struct {
	CheckedItems []string `json:"checked_items"`
	RemovedItems []string `json:"removed_items"`
	AddedItems   []string `json:"added_items"`
	Items        []string `json:"items"`
}

// SaveRequest is the body of POST /save-tg-checklist: the checklist fields
// owned by the user plus the owner id.
type SaveRequest struct {
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Items        []string `json:"items"`
	AvgTemp      *float64 `json:"avg_temp,omitempty"`
	Conditions   []string `json:"conditions,omitempty"`
	CheckedItems []string `json:"checked_items"`
	RemovedItems []string `json:"removed_items"`
	AddedItems   []string `json:"added_items"`
	OwnerID      string   `json:"tg_user_id"`
}

// NewSaveRequest builds the save body for c on behalf of ownerID.
func NewSaveRequest(c Checklist, ownerID string) SaveRequest {
	st := c.State()
	return SaveRequest{
		City:         c.City,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Items:        st.Items,
		AvgTemp:      c.AvgTemp,
		Conditions:   c.Conditions,
		CheckedItems: st.CheckedItems,
		RemovedItems: st.RemovedItems,
		AddedItems:   st.AddedItems,
		OwnerID:      ownerID,
	}
}

// ForTrip returns the generation request that reproduces c's trip.
func (c Checklist) ForTrip() PackingRequest {
	return PackingRequest{City: c.City, StartDate: c.StartDate, EndDate: c.EndDate}
}
