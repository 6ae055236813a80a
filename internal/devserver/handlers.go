package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

const citySearchLimit = 10

type errorBody struct {
	Detail string `json:"detail"`
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Luggify backend is running"})
}

func (s *Server) citiesAutocomplete(w http.ResponseWriter, r *http.Request) {
	prefix := strings.TrimSpace(r.URL.Query().Get("namePrefix"))
	if prefix == "" {
		writeError(w, http.StatusUnprocessableEntity, "namePrefix is required")
		return
	}
	writeJSON(w, http.StatusOK, searchCities(prefix, citySearchLimit))
}

func (s *Server) generatePackingList(w http.ResponseWriter, r *http.Request) {
	var req packingRequest
	if !decode(w, r, &req) {
		return
	}
	req.City = strings.TrimSpace(req.City)
	if req.City == "" {
		writeError(w, http.StatusUnprocessableEntity, "city is required")
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "end_date must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusUnprocessableEntity, "end_date is before start_date")
		return
	}

	forecast := forecastFor(req.City, start, end)
	items, byCategory, avg, conditions := buildList(forecast)

	c := s.store.create(Checklist{
		City:            req.City,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Items:           items,
		ItemsByCategory: byCategory,
		AvgTemp:         &avg,
		Conditions:      conditions,
		CheckedItems:    []string{},
		RemovedItems:    []string{},
		AddedItems:      []string{},
		forecast:        forecast,
	})
	s.logger.Info(r.Context(), "checklist generated", "slug", c.Slug, "city", c.City, "items", len(c.Items))
	writeJSON(w, http.StatusOK, generated{Checklist: c, DailyForecast: c.forecast})
}

func (s *Server) getChecklist(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.get(mux.Vars(r)["slug"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) patchState(w http.ResponseWriter, r *http.Request) {
	var st stateUpdate
	if !decode(w, r, &st) {
		return
	}
	slug := mux.Vars(r)["slug"]
	c, err := s.store.update(slug, func(c *Checklist) { applyState(c, st) })
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.logger.Debug(r.Context(), "checklist state updated", "slug", slug, "checked", len(c.CheckedItems))
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteChecklist(w http.ResponseWriter, r *http.Request) {
	if err := s.store.delete(mux.Vars(r)["slug"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ownerChecklists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.byOwner(mux.Vars(r)["owner"]))
}

func (s *Server) saveOwned(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decode(w, r, &req) {
		return
	}
	req.OwnerID = strings.TrimSpace(req.OwnerID)
	if req.OwnerID == "" {
		writeError(w, http.StatusUnprocessableEntity, "tg_user_id is required")
		return
	}
	if strings.TrimSpace(req.City) == "" {
		writeError(w, http.StatusUnprocessableEntity, "city is required")
		return
	}
	c := s.store.saveOwned(req)
	s.logger.Info(r.Context(), "checklist saved", "slug", c.Slug, "owner", c.OwnerID)
	writeJSON(w, http.StatusOK, c)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return false
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
