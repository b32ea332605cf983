package server

import (
	"sort"
	"strings"

	"github.com/sam12-4/liquor-online/pkg/catalog"
)

// ApplySort orders a matched result in place. Sorting is layered on top of
// matching, the matcher itself always preserves catalog order. Unknown sort
// keys fall back to name.
func ApplySort(products []catalog.Product, sortBy, direction string) {
	desc := direction == "desc"

	var less func(a, b *catalog.Product) bool
	switch sortBy {
	case "price":
		less = func(a, b *catalog.Product) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return nameLess(a, b)
		}
	default:
		less = nameLess
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(&products[j], &products[i])
		}
		return less(&products[i], &products[j])
	})
}

func nameLess(a, b *catalog.Product) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}
