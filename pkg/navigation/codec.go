package navigation

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/sam12-4/liquor-online/pkg/filter"
)

// The URL is the single source of truth for filter state: every decode is a
// pure function of the location and every navigation replaces the whole
// state, so browser back/forward can never drift from what is rendered.
//
// Query surface: categories (comma separated), za (type ids, with legacy
// aliases a-zzz and type accepted on decode), brand, country, min_price,
// max_price, q. Path templates: /product-category/{category}, /brand/{brand}
// and /shop for the generic listing.

const (
	ShopPath           = "/shop"
	CategoryPathPrefix = "/product-category/"
	BrandPathPrefix    = "/brand/"
)

// Location is one navigable address, path plus query.
type Location struct {
	Path  string
	Query url.Values
}

func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

type queryParams struct {
	Categories string `schema:"categories"`
	Type       string `schema:"za"`
	TypeAlias1 string `schema:"a-zzz"`
	TypeAlias2 string `schema:"type"`
	Brand      string `schema:"brand"`
	Country    string `schema:"country"`
	MinPrice   string `schema:"min_price"`
	MaxPrice   string `schema:"max_price"`
	Search     string `schema:"q"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Encode maps a filter state onto a location. A single selected category gets
// the dedicated category path, otherwise a single brand gets the brand path,
// everything else rides on the generic listing path as query parameters.
// Sort settings are not part of the URL contract.
func Encode(s filter.State) Location {
	query := url.Values{}

	path := ShopPath
	categories := sortedIds(s.Categories)
	brands := sortedIds(s.Brands)

	switch {
	case len(categories) == 1:
		path = CategoryPathPrefix + url.PathEscape(categories[0])
		categories = nil
	case len(brands) == 1:
		path = BrandPathPrefix + url.PathEscape(brands[0])
		brands = nil
	}

	if len(categories) > 0 {
		query.Set("categories", strings.Join(categories, ","))
	}
	if len(brands) > 0 {
		query.Set("brand", strings.Join(brands, ","))
	}
	if types := sortedIds(s.Types); len(types) > 0 {
		query.Set("za", strings.Join(types, ","))
	}
	if countries := sortedIds(s.Countries); len(countries) > 0 {
		query.Set("country", strings.Join(countries, ","))
	}
	if s.Price.Min != nil {
		query.Set("min_price", strconv.FormatFloat(*s.Price.Min, 'f', -1, 64))
	}
	if s.Price.Max != nil {
		query.Set("max_price", strconv.FormatFloat(*s.Price.Max, 'f', -1, 64))
	}
	if s.Query != "" {
		query.Set("q", s.Query)
	}

	return Location{Path: path, Query: query}
}

// Decode rebuilds a filter state from a location. Unknown keys are ignored,
// malformed prices are treated as absent and ids referencing entities that no
// longer exist pass through untouched, a stale bookmark must never break the
// page. Sort fields always come back as defaults.
func Decode(l Location) filter.State {
	s := filter.Reset()

	params := queryParams{}
	// Decode errors on individual fields are not fatal, whatever parsed is
	// kept and the rest stays at the zero value.
	_ = decoder.Decode(&params, l.Query)

	addIds(s.Categories, params.Categories)
	addIds(s.Brands, params.Brand)
	addIds(s.Countries, params.Country)
	addIds(s.Types, params.Type)
	if params.Type == "" {
		addIds(s.Types, params.TypeAlias1)
	}
	if params.Type == "" && params.TypeAlias1 == "" {
		addIds(s.Types, params.TypeAlias2)
	}

	if id, ok := pathId(l.Path, CategoryPathPrefix); ok {
		s.Categories[id] = struct{}{}
	}
	if id, ok := pathId(l.Path, BrandPathPrefix); ok {
		s.Brands[id] = struct{}{}
	}

	s.Price.Min = parsePrice(params.MinPrice)
	s.Price.Max = parsePrice(params.MaxPrice)
	s.Query = params.Search

	return s
}

// DecodeURL is Decode over a parsed request URL.
func DecodeURL(u *url.URL) filter.State {
	return Decode(Location{Path: u.Path, Query: u.Query()})
}

func pathId(path, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || rest == "" {
		return "", false
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	id, err := url.PathUnescape(rest)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

func addIds(set filter.IdSet, csv string) {
	for _, id := range strings.Split(csv, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
}

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func sortedIds(set filter.IdSet) []string {
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
