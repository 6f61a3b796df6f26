package devserver

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/idilsaglam/laptopstore/internal/apperror"
	"github.com/idilsaglam/laptopstore/internal/model"
	"github.com/idilsaglam/laptopstore/internal/store/jsonstore"
)

// Store is the in-memory catalogue behind the dev server.
// When path is set every mutation is written back through jsonstore.
type Store struct {
	mu      sync.RWMutex
	laptops map[int64]model.Laptop
	nextID  int64
	path    string
}

// Query narrows Search. Nil fields are not applied.
type Query struct {
	Name     *string
	Brand    *string
	MaxPrice *float64
}

// NewStore builds a store from seed. Records without an ID get one after the
// highest seeded ID; a later record with a duplicate ID replaces the earlier.
func NewStore(seed []model.Laptop) *Store {
	s := &Store{laptops: make(map[int64]model.Laptop, len(seed))}
	for _, l := range seed {
		if l.ID > s.nextID {
			s.nextID = l.ID
		}
	}
	for _, l := range seed {
		if l.ID <= 0 {
			s.nextID++
			l.ID = s.nextID
		}
		s.laptops[l.ID] = l
	}
	return s
}

// OpenStore seeds a store from path and keeps it in sync with that file.
func OpenStore(path string) (*Store, error) {
	seed, err := jsonstore.Load(path)
	if err != nil {
		return nil, err
	}
	if err := checkSeed(seed); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s := NewStore(seed)
	s.path = path
	return s, nil
}

func (s *Store) List() []model.Laptop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Store) Get(id int64) (model.Laptop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.laptops[id]
	if !ok {
		return model.Laptop{}, apperror.NotFound("laptop", id)
	}
	return l, nil
}

func (s *Store) Create(l model.Laptop) (model.Laptop, error) {
	if err := validate(l); err != nil {
		return model.Laptop{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.nextID + 1
	s.laptops[l.ID] = l
	if err := s.persistLocked(); err != nil {
		delete(s.laptops, l.ID)
		return model.Laptop{}, err
	}
	s.nextID = l.ID
	return l, nil
}

func (s *Store) Update(id int64, l model.Laptop) (model.Laptop, error) {
	if err := validate(l); err != nil {
		return model.Laptop{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.laptops[id]
	if !ok {
		return model.Laptop{}, apperror.NotFound("laptop", id)
	}
	l.ID = id
	s.laptops[id] = l
	if err := s.persistLocked(); err != nil {
		s.laptops[id] = prev
		return model.Laptop{}, err
	}
	return l, nil
}

func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.laptops[id]
	if !ok {
		return apperror.NotFound("laptop", id)
	}
	delete(s.laptops, id)
	if err := s.persistLocked(); err != nil {
		s.laptops[id] = prev
		return err
	}
	return nil
}

// Search matches name and brand case-insensitively and caps the price.
func (s *Store) Search(q Query) []model.Laptop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Laptop{}
	for _, l := range s.sortedLocked() {
		if q.Name != nil && !containsFold(l.Name, *q.Name) {
			continue
		}
		if q.Brand != nil && !containsFold(l.Brand, *q.Brand) {
			continue
		}
		if q.MaxPrice != nil && l.Price > *q.MaxPrice {
			continue
		}
		out = append(out, l)
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (s *Store) sortedLocked() []model.Laptop {
	out := make([]model.Laptop, 0, len(s.laptops))
	for _, l := range s.laptops {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// checkSeed rejects a snapshot in which two records share an ID.
func checkSeed(seed []model.Laptop) error {
	seen := make(map[int64]bool, len(seed))
	for _, l := range seed {
		if l.ID <= 0 {
			continue
		}
		if seen[l.ID] {
			return apperror.Conflict("laptop", l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}

// persistLocked writes the catalogue back; callers undo their change on error.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	return jsonstore.Save(s.path, s.sortedLocked())
}

func validate(l model.Laptop) error {
	switch {
	case strings.TrimSpace(l.Name) == "":
		return apperror.ValidationFailed("name", "Name is required.")
	case strings.TrimSpace(l.Brand) == "":
		return apperror.ValidationFailed("brand", "Brand is required.")
	case l.Price < 0:
		return apperror.ValidationFailed("price", "Price must not be negative.")
	}
	return nil
}
