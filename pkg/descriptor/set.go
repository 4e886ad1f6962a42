package descriptor

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Set collects finished class descriptors and answers the queries the
// framework side asks of them. Expansion of independent classes may run
// concurrently, so Set is safe for concurrent use.
type Set struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewSet creates an empty descriptor set
func NewSet() *Set {
	return &Set{classes: make(map[string]*Class)}
}

// Add stores a class descriptor, replacing any previous one with the same
// name
func (s *Set) Add(c *Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[c.Name] = c
}

// ByName looks a class descriptor up
func (s *Set) ByName(name string) (*Class, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.classes[name]
	return c, ok
}

// Classes returns every descriptor, sorted by class name
func (s *Set) Classes() []*Class {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Class, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AllRoutes returns every route across the set with class prefixes applied,
// in class-name order
func (s *Set) AllRoutes() []RouteEntry {
	var out []RouteEntry
	for _, c := range s.Classes() {
		for _, r := range c.Routes {
			r.Path = r.FullPath(c.RoutePrefix)
			out = append(out, r)
		}
	}
	return out
}

// RoutesByMethod returns every route using the given HTTP method
func (s *Set) RoutesByMethod(method string) []RouteEntry {
	var out []RouteEntry
	for _, r := range s.AllRoutes() {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

// RouteByID resolves one route entry by its identity tag
func (s *Set) RouteByID(id uuid.UUID) (RouteEntry, bool) {
	for _, r := range s.AllRoutes() {
		if r.ID == id {
			return r, true
		}
	}
	return RouteEntry{}, false
}

// ColumnsFor returns the column entries of one class, or nil
func (s *Set) ColumnsFor(class string) []ColumnEntry {
	c, ok := s.ByName(class)
	if !ok {
		return nil
	}
	return c.Columns
}
