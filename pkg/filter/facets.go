package filter

import (
	"github.com/sam12-4/liquor-online/pkg/catalog"
)

// Facet availability. For each dimension the selectable values are computed
// against every other active predicate, ignoring the dimension's own
// selection so a user can always widen within the facet they are working in.
// Nothing here caches across states, catalogs are small enough that
// recomputing on every change is the simpler contract.

// AvailableValues returns the ids still reachable on one dimension: apply
// every predicate except the one for dimension, then union the dimension ids
// of the surviving products. Price and search stay applied.
func AvailableValues(dimension Dimension, s State, products []catalog.Product) IdSet {
	surviving := Match(s.without(dimension), products)
	available := IdSet{}
	for i := range surviving {
		for _, id := range dimensionIds(dimension, &surviving[i]) {
			available[id] = struct{}{}
		}
	}
	return available
}

// CountFor is the number rendered as "(N)" next to a facet option: products
// matching all other active filters plus a hypothetical selection of value
// on dimension.
func CountFor(dimension Dimension, value string, s State, products []catalog.Product) int {
	return MatchCount(ToggleFilter(s, dimension, value, true), products)
}

// FacetCounts computes CountFor over every value reachable on the dimension,
// plus the already selected values, in one pass over the survivors of the
// other predicates.
func FacetCounts(dimension Dimension, s State, products []catalog.Product) map[string]int {
	surviving := Match(s.without(dimension), products)
	selected, _ := s.set(dimension)

	counts := map[string]int{}
	// A survivor that already matches the existing selection counts toward
	// every value, that is what ToggleFilter-then-Match yields since ids
	// within a dimension are ORed.
	var matchingSelected int
	for i := range surviving {
		ids := dimensionIds(dimension, &surviving[i])
		if len(selected) > 0 && selected.Intersects(ids) {
			matchingSelected++
			continue
		}
		for _, id := range ids {
			counts[id]++
		}
	}
	if matchingSelected > 0 {
		available := IdSet{}
		for i := range surviving {
			for _, id := range dimensionIds(dimension, &surviving[i]) {
				available[id] = struct{}{}
			}
		}
		// Selected values stay countable even when no survivor carries them,
		// toggling an already selected value is a no-op for CountFor.
		for id := range selected {
			available[id] = struct{}{}
		}
		for id := range available {
			counts[id] += matchingSelected
		}
	}
	return counts
}

func dimensionIds(dimension Dimension, p *catalog.Product) []string {
	switch dimension {
	case DimensionCategory:
		return p.CategoryIds
	case DimensionType:
		return p.TypeIds
	case DimensionBrand:
		if p.BrandId == "" {
			return nil
		}
		return []string{p.BrandId}
	case DimensionCountry:
		if p.CountryId == "" {
			return nil
		}
		return []string{p.CountryId}
	}
	return nil
}
