package catalog

import (
	"slices"
	"sync"
)

// Snapshot is the in-memory catalog a browsing session filters against.
// Readers get stable copies, writers come from the sync listener or the
// admin endpoints.
type Snapshot struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
	types      []Type
	brands     []Brand
	countries  []Country
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		products:   []Product{},
		categories: []Category{},
		types:      []Type{},
		brands:     []Brand{},
		countries:  []Country{},
	}
}

func (s *Snapshot) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Snapshot) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *Snapshot) Types() []Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.types)
}

func (s *Snapshot) Brands() []Brand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.brands)
}

func (s *Snapshot) Countries() []Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.countries)
}

func (s *Snapshot) GetProduct(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Id == id {
			return p, true
		}
	}
	return Product{}, false
}

func (s *Snapshot) ProductCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Replace swaps in a full catalog, nil slices become empty so callers never
// see a nil product list.
func (s *Snapshot) Replace(products []Product, categories []Category, types []Type, brands []Brand, countries []Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = orEmpty(products)
	s.categories = orEmpty(categories)
	s.types = orEmpty(types)
	s.brands = orEmpty(brands)
	s.countries = orEmpty(countries)
}

func (s *Snapshot) UpsertProduct(p Product) {
	if p.Id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].Id == p.Id {
			s.products[i] = p
			return
		}
	}
	s.products = append(s.products, p)
}

func (s *Snapshot) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.products)
	s.products = slices.DeleteFunc(s.products, func(p Product) bool {
		return p.Id == id
	})
	return len(s.products) != before
}

func (s *Snapshot) UpsertCategory(c Category) {
	if c.Id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].Id == c.Id {
			s.categories[i] = c
			return
		}
	}
	s.categories = append(s.categories, c)
}

func (s *Snapshot) UpsertType(t Type) {
	if t.Id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.types {
		if s.types[i].Id == t.Id {
			s.types[i] = t
			return
		}
	}
	s.types = append(s.types, t)
}

func (s *Snapshot) UpsertBrand(b Brand) {
	if b.Id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.brands {
		if s.brands[i].Id == b.Id {
			s.brands[i] = b
			return
		}
	}
	s.brands = append(s.brands, b)
}

func (s *Snapshot) UpsertCountry(c Country) {
	if c.Id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.countries {
		if s.countries[i].Id == c.Id {
			s.countries[i] = c
			return
		}
	}
	s.countries = append(s.countries, c)
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
