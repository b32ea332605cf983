package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sam12-4/liquor-online/pkg/catalog"
	"github.com/sam12-4/liquor-online/pkg/common"
	"github.com/sam12-4/liquor-online/pkg/filter"
	"github.com/sam12-4/liquor-online/pkg/navigation"
	"github.com/sam12-4/liquor-online/pkg/tracking"
)

var (
	noShopRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquoronline_shop_requests_total",
		Help: "The total number of processed shop listings",
	})
	noFacetRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquoronline_facet_requests_total",
		Help: "The total number of processed facet computations",
	})
	noProductViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquoronline_product_views_total",
		Help: "The total number of product detail views",
	})
	totalProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "liquoronline_products",
		Help: "The number of products in the catalog snapshot",
	})
)

// WebServer serves the storefront API: listing with facets, facet counts for
// an open panel and product details. All filtering state comes from the
// request URL, the server itself keeps none.
type WebServer struct {
	Snapshot *catalog.Snapshot
	Cache    *Cache
	Tracking tracking.Tracking
	CacheTtl time.Duration
}

// FacetValue is one selectable option plus its hit count. Selected values are
// always included even when no longer available so the user can deselect,
// the client decides how to render those.
type FacetValue struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected,omitempty"`
}

type FacetResult struct {
	Dimension filter.Dimension `json:"dimension"`
	Values    []FacetValue     `json:"values"`
}

type ShopResponse struct {
	Items     []catalog.Product `json:"items"`
	Facets    []FacetResult     `json:"facets"`
	TotalHits int               `json:"totalHits"`
	Location  string            `json:"location"`
}

func (ws *WebServer) buildFacets(state filter.State, products []catalog.Product) []FacetResult {
	return []FacetResult{
		ws.facetFor(filter.DimensionCategory, state, products, categoryValues(ws.Snapshot)),
		ws.facetFor(filter.DimensionType, state, products, typeValues(ws.Snapshot)),
		ws.facetFor(filter.DimensionBrand, state, products, brandValues(ws.Snapshot)),
		ws.facetFor(filter.DimensionCountry, state, products, countryValues(ws.Snapshot)),
	}
}

type taxonomyValue struct {
	id   string
	name string
	slug string
}

func categoryValues(s *catalog.Snapshot) []taxonomyValue {
	categories := s.Categories()
	out := make([]taxonomyValue, len(categories))
	for i, c := range categories {
		out[i] = taxonomyValue{c.Id, c.Name, c.Slug}
	}
	return out
}

func typeValues(s *catalog.Snapshot) []taxonomyValue {
	types := s.Types()
	out := make([]taxonomyValue, len(types))
	for i, t := range types {
		out[i] = taxonomyValue{t.Id, t.Name, t.Slug}
	}
	return out
}

func brandValues(s *catalog.Snapshot) []taxonomyValue {
	brands := s.Brands()
	out := make([]taxonomyValue, len(brands))
	for i, b := range brands {
		out[i] = taxonomyValue{b.Id, b.Name, b.Slug}
	}
	return out
}

func countryValues(s *catalog.Snapshot) []taxonomyValue {
	countries := s.Countries()
	out := make([]taxonomyValue, len(countries))
	for i, c := range countries {
		out[i] = taxonomyValue{c.Id, c.Name, c.Slug}
	}
	return out
}

func (ws *WebServer) facetFor(dimension filter.Dimension, state filter.State, products []catalog.Product, values []taxonomyValue) FacetResult {
	available := filter.AvailableValues(dimension, state, products)
	counts := filter.FacetCounts(dimension, state, products)
	selected := selectedSet(dimension, state)

	result := FacetResult{Dimension: dimension, Values: []FacetValue{}}
	for _, v := range values {
		isSelected := selected.Has(v.id)
		if !available.Has(v.id) && !isSelected {
			continue
		}
		result.Values = append(result.Values, FacetValue{
			Id:       v.id,
			Name:     v.name,
			Slug:     v.slug,
			Count:    counts[v.id],
			Selected: isSelected,
		})
	}
	return result
}

func selectedSet(dimension filter.Dimension, state filter.State) filter.IdSet {
	switch dimension {
	case filter.DimensionCategory:
		return state.Categories
	case filter.DimensionType:
		return state.Types
	case filter.DimensionBrand:
		return state.Brands
	case filter.DimensionCountry:
		return state.Countries
	}
	return filter.IdSet{}
}

func setListingHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	w.Header().Set("Age", "0")
}

// Shop handles the listing pages: /shop, /product-category/{category} and
// /brand/{brand}. The filter state is decoded from the location, matched and
// re-encoded so the client can synchronize its address bar to the canonical
// form.
func (ws *WebServer) Shop(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	noShopRequests.Inc()
	state := decodeListingState(r)
	canonical := navigation.Encode(state).String()

	if ws.Cache != nil {
		var cached ShopResponse
		if err := ws.Cache.Get(r.Context(), shopCacheKey(canonical, r.URL.Query()), &cached); err == nil {
			setListingHeaders(w)
			return enc.Encode(cached)
		}
	}

	products := ws.Snapshot.Products()
	totalProducts.Set(float64(len(products)))
	matching := filter.Match(state, products)
	ApplySort(matching, r.URL.Query().Get("sort"), r.URL.Query().Get("dir"))

	response := ShopResponse{
		Items:     matching,
		Facets:    ws.buildFacets(state, products),
		TotalHits: len(matching),
		Location:  canonical,
	}

	if ws.Tracking != nil {
		go ws.Tracking.TrackSearch(sessionId, state, response.TotalHits)
	}
	if ws.Cache != nil {
		if err := ws.Cache.Set(r.Context(), shopCacheKey(canonical, r.URL.Query()), response, ws.CacheTtl); err != nil {
			log.Printf("Failed to cache shop response: %v", err)
		}
	}

	setListingHeaders(w)
	return enc.Encode(response)
}

// decodeListingState maps the API path back onto the storefront path
// templates before decoding, /api/product-category/x carries the same state
// as /product-category/x.
func decodeListingState(r *http.Request) filter.State {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	return navigation.Decode(navigation.Location{Path: path, Query: r.URL.Query()})
}

func shopCacheKey(canonical string, query map[string][]string) string {
	key := "shop:" + canonical
	if sort, ok := query["sort"]; ok && len(sort) > 0 {
		key += ":sort=" + sort[0]
	}
	if dir, ok := query["dir"]; ok && len(dir) > 0 {
		key += ":dir=" + dir[0]
	}
	return key
}

// Facets returns only the facet panes for the current location, used by the
// storefront and the admin product filter panel while a facet is open.
func (ws *WebServer) Facets(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	noFacetRequests.Inc()
	state := decodeListingState(r)
	products := ws.Snapshot.Products()

	setListingHeaders(w)
	return enc.Encode(ws.buildFacets(state, products))
}

func (ws *WebServer) Product(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	noProductViews.Inc()
	id := r.PathValue("id")
	product, ok := ws.Snapshot.GetProduct(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return enc.Encode(map[string]string{"error": "product not found"})
	}
	if ws.Tracking != nil {
		go ws.Tracking.TrackClick(sessionId, id)
	}
	w.Header().Set("Content-Type", "application/json")
	return enc.Encode(product)
}

// Routes registers the storefront surface on the mux.
func (ws *WebServer) Routes(mux *http.ServeMux) {
	shop := common.JsonHandler(ws.Tracking, ws.Shop)
	mux.HandleFunc("GET /api/shop", shop)
	mux.HandleFunc("GET /api/product-category/{category}", shop)
	mux.HandleFunc("GET /api/brand/{brand}", shop)
	mux.HandleFunc("GET /api/facets", common.JsonHandler(ws.Tracking, ws.Facets))
	mux.HandleFunc("GET /api/product/{id}", common.JsonHandler(ws.Tracking, ws.Product))
}
