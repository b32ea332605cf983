package filter

import "maps"

// Dimension names one facet of the catalog. Anything else passed where a
// Dimension is expected is silently ignored by the reducer.
type Dimension string

const (
	DimensionCategory Dimension = "category"
	DimensionType     Dimension = "type"
	DimensionBrand    Dimension = "brand"
	DimensionCountry  Dimension = "country"
)

type IdSet map[string]struct{}

func (s IdSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IdSet) Intersects(ids []string) bool {
	for _, id := range ids {
		if _, ok := s[id]; ok {
			return true
		}
	}
	return false
}

func MakeIdSet(ids ...string) IdSet {
	set := make(IdSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// PriceRange bounds the list price, nil means unbounded on that side. An
// inverted range is legal and simply matches nothing.
type PriceRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// State is the full filter selection for one listing view. Values are treated
// as immutable, every reducer below returns a fresh State and never touches
// its input. Ids that no longer exist in the catalog are kept as-is, they
// just match zero products.
type State struct {
	Categories    IdSet      `json:"categories"`
	Types         IdSet      `json:"types"`
	Brands        IdSet      `json:"brands"`
	Countries     IdSet      `json:"countries"`
	Price         PriceRange `json:"price"`
	Query         string     `json:"query"`
	SortBy        string     `json:"sortBy"`
	SortDirection string     `json:"sortDirection"`
}

const (
	DefaultSortBy        = "name"
	DefaultSortDirection = "asc"
)

// Reset returns the canonical empty state. Every default state in the
// codebase comes from here, never from a hand-assembled literal.
func Reset() State {
	return State{
		Categories:    IdSet{},
		Types:         IdSet{},
		Brands:        IdSet{},
		Countries:     IdSet{},
		Price:         PriceRange{},
		Query:         "",
		SortBy:        DefaultSortBy,
		SortDirection: DefaultSortDirection,
	}
}

func (s State) set(dimension Dimension) (IdSet, bool) {
	switch dimension {
	case DimensionCategory:
		return s.Categories, true
	case DimensionType:
		return s.Types, true
	case DimensionBrand:
		return s.Brands, true
	case DimensionCountry:
		return s.Countries, true
	}
	return nil, false
}

func (s State) withSet(dimension Dimension, set IdSet) State {
	switch dimension {
	case DimensionCategory:
		s.Categories = set
	case DimensionType:
		s.Types = set
	case DimensionBrand:
		s.Brands = set
	case DimensionCountry:
		s.Countries = set
	}
	return s
}

// ToggleFilter adds or removes a single id on one dimension. An unknown
// dimension returns the state unchanged.
func ToggleFilter(s State, dimension Dimension, id string, selected bool) State {
	current, ok := s.set(dimension)
	if !ok {
		return s
	}
	if selected == current.Has(id) {
		return s
	}
	next := maps.Clone(current)
	if next == nil {
		next = IdSet{}
	}
	if selected {
		next[id] = struct{}{}
	} else {
		delete(next, id)
	}
	return s.withSet(dimension, next)
}

// SetPriceRange replaces the range wholesale. There is no min<=max check, an
// inverted range yields an empty result downstream.
func SetPriceRange(s State, min, max *float64) State {
	s.Price = PriceRange{Min: min, Max: max}
	return s
}

// SetSearchQuery stores the query verbatim, trimming and case folding happen
// at match time.
func SetSearchQuery(s State, query string) State {
	s.Query = query
	return s
}

// without blanks one dimension's selection, used by the facet availability
// calculator to compute options ignoring the dimension itself.
func (s State) without(dimension Dimension) State {
	return s.withSet(dimension, IdSet{})
}

func (s State) HasSelection() bool {
	return len(s.Categories) > 0 || len(s.Types) > 0 || len(s.Brands) > 0 ||
		len(s.Countries) > 0 || s.Price.Min != nil || s.Price.Max != nil || s.Query != ""
}
