package filter

import (
	"strings"

	"github.com/sam12-4/liquor-online/pkg/catalog"
)

// Match returns the products satisfying every active predicate, in input
// order. Dimensions are ANDed, ids within a dimension are ORed. An empty
// state is the identity filter.
func Match(s State, products []catalog.Product) []catalog.Product {
	query := normalizeQuery(s.Query)
	result := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if matches(s, query, &p) {
			result = append(result, p)
		}
	}
	return result
}

// MatchCount avoids the result slice when only the number of hits is needed.
func MatchCount(s State, products []catalog.Product) int {
	query := normalizeQuery(s.Query)
	count := 0
	for i := range products {
		if matches(s, query, &products[i]) {
			count++
		}
	}
	return count
}

func matches(s State, query string, p *catalog.Product) bool {
	if len(s.Categories) > 0 && !s.Categories.Intersects(p.CategoryIds) {
		return false
	}
	if len(s.Types) > 0 && !s.Types.Intersects(p.TypeIds) {
		return false
	}
	if len(s.Brands) > 0 && !s.Brands.Has(p.BrandId) {
		return false
	}
	if len(s.Countries) > 0 && !s.Countries.Has(p.CountryId) {
		return false
	}
	// Price filtering is on the list price even while a sale is active.
	if s.Price.Min != nil && p.Price < *s.Price.Min {
		return false
	}
	if s.Price.Max != nil && p.Price > *s.Price.Max {
		return false
	}
	if query != "" && !matchesQuery(query, p) {
		return false
	}
	return true
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func matchesQuery(query string, p *catalog.Product) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Sku), query)
}
