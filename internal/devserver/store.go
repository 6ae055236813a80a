package devserver

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var errNotFound = errors.New("checklist not found")

// store keeps checklists in memory. Lists are returned newest first.
type store struct {
	mu      sync.RWMutex
	byslug  map[string]*Checklist
	order   []string
	newSlug func() string
}

func newStore(newSlug func() string) *store {
	if newSlug == nil {
		newSlug = randomSlug
	}
	return &store{byslug: make(map[string]*Checklist), newSlug: newSlug}
}

func randomSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// create assigns a fresh slug to c and stores it.
func (s *store) create(c Checklist) Checklist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(c)
}

func (s *store) createLocked(c Checklist) Checklist {
	c.Slug = s.newSlug()
	for {
		if _, taken := s.byslug[c.Slug]; !taken {
			break
		}
		c.Slug = s.newSlug()
	}
	stored := c.clone()
	s.byslug[c.Slug] = &stored
	s.order = append(s.order, c.Slug)
	return stored.clone()
}

func (s *store) get(slug string) (Checklist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byslug[slug]
	if !ok {
		return Checklist{}, errNotFound
	}
	return c.clone(), nil
}

// update applies fn to the stored checklist under the write lock.
func (s *store) update(slug string, fn func(c *Checklist)) (Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byslug[slug]
	if !ok {
		return Checklist{}, errNotFound
	}
	fn(c)
	c.Slug = slug
	return c.clone(), nil
}

func (s *store) delete(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byslug[slug]; !ok {
		return errNotFound
	}
	delete(s.byslug, slug)
	for i, v := range s.order {
		if v == slug {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// byOwner returns the checklists saved under owner, newest first.
func (s *store) byOwner(owner string) []Checklist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Checklist, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		c := s.byslug[s.order[i]]
		if c.OwnerID == owner {
			out = append(out, c.clone())
		}
	}
	return out
}

// saveOwned stores an owned copy. An owner keeps one checklist per trip,
// so saving the same city and dates again updates it in place.
func (s *store) saveOwned(req saveRequest) Checklist {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slug := range s.order {
		c := s.byslug[slug]
		if c.OwnerID == req.OwnerID && c.City == req.City && c.StartDate == req.StartDate && c.EndDate == req.EndDate {
			applySave(c, req)
			return c.clone()
		}
	}

	var c Checklist
	applySave(&c, req)
	return s.createLocked(c)
}

func applySave(c *Checklist, req saveRequest) {
	c.OwnerID = req.OwnerID
	c.City = req.City
	c.StartDate = req.StartDate
	c.EndDate = req.EndDate
	if len(req.Items) > 0 {
		c.Items = uniqueStrings(req.Items)
	}
	if req.AvgTemp != nil {
		v := *req.AvgTemp
		c.AvgTemp = &v
	}
	if req.Conditions != nil {
		c.Conditions = uniqueStrings(req.Conditions)
	}
	c.CheckedItems = uniqueStrings(req.CheckedItems)
	c.RemovedItems = uniqueStrings(req.RemovedItems)
	c.AddedItems = uniqueStrings(req.AddedItems)
}

func applyState(c *Checklist, st stateUpdate) {
	c.CheckedItems = uniqueStrings(st.CheckedItems)
	c.RemovedItems = uniqueStrings(st.RemovedItems)
	c.AddedItems = uniqueStrings(st.AddedItems)
	if len(st.Items) > 0 {
		c.Items = uniqueStrings(st.Items)
	}
}
