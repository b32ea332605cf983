package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sam12-4/liquor-online/pkg/catalog"
	"github.com/sam12-4/liquor-online/pkg/filter"
)

func testSnapshot() *catalog.Snapshot {
	s := catalog.NewSnapshot()
	s.Replace(
		[]catalog.Product{
			{Id: "p1", Name: "818 Tequila Blanco", Sku: "TEQ-818-B", Price: 75,
				CategoryIds: []string{"spirits"}, TypeIds: []string{"tequila"}, BrandId: "818", CountryId: "mx"},
			{Id: "p2", Name: "19 Crimes Pinot Noir", Sku: "WIN-19C-PN", Price: 19.35,
				CategoryIds: []string{"wine"}, TypeIds: []string{"red"}, BrandId: "19c", CountryId: "au"},
		},
		[]catalog.Category{
			{Id: "spirits", Name: "Spirits", Slug: "spirits"},
			{Id: "wine", Name: "Wine", Slug: "wine"},
		},
		[]catalog.Type{
			{Id: "tequila", Name: "Tequila", Slug: "tequila", CategoryIds: []string{"spirits"}},
			{Id: "red", Name: "Red Wine", Slug: "red-wine", CategoryIds: []string{"wine"}},
		},
		[]catalog.Brand{
			{Id: "818", Name: "818", Slug: "818"},
			{Id: "19c", Name: "19 Crimes", Slug: "19-crimes"},
		},
		[]catalog.Country{
			{Id: "mx", Name: "Mexico", Slug: "mexico"},
			{Id: "au", Name: "Australia", Slug: "australia"},
		},
	)
	return s
}

func shopRequest(t *testing.T, ws *WebServer, target string) ShopResponse {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	if err := ws.Shop(w, r, "test-session", json.NewEncoder(w)); err != nil {
		t.Fatalf("Shop failed: %v", err)
	}
	var response ShopResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	return response
}

func facetValues(t *testing.T, response ShopResponse, dimension filter.Dimension) map[string]FacetValue {
	t.Helper()
	for _, f := range response.Facets {
		if f.Dimension == dimension {
			out := map[string]FacetValue{}
			for _, v := range f.Values {
				out[v.Id] = v
			}
			return out
		}
	}
	t.Fatalf("No facet for dimension %s", dimension)
	return nil
}

func TestShop_UnfilteredListing(t *testing.T) {
	ws := &WebServer{Snapshot: testSnapshot()}
	response := shopRequest(t, ws, "/api/shop")
	if response.TotalHits != 2 || len(response.Items) != 2 {
		t.Fatalf("Expected the full catalog, got %d hits", response.TotalHits)
	}
	if response.Location != "/shop" {
		t.Errorf("Expected canonical /shop location, got %s", response.Location)
	}
	categories := facetValues(t, response, filter.DimensionCategory)
	if categories["spirits"].Count != 1 || categories["wine"].Count != 1 {
		t.Errorf("Unexpected category counts %+v", categories)
	}
}

func TestShop_CategoryPath(t *testing.T) {
	ws := &WebServer{Snapshot: testSnapshot()}
	response := shopRequest(t, ws, "/api/product-category/spirits")
	if response.TotalHits != 1 || response.Items[0].Id != "p1" {
		t.Fatalf("Expected only the spirit, got %+v", response.Items)
	}
	if response.Location != "/product-category/spirits" {
		t.Errorf("Expected canonical category location, got %s", response.Location)
	}

	categories := facetValues(t, response, filter.DimensionCategory)
	if !categories["spirits"].Selected {
		t.Errorf("Selected category must be flagged")
	}
	if _, ok := categories["wine"]; !ok {
		t.Errorf("Own dimension must keep its other options visible")
	}

	types := facetValues(t, response, filter.DimensionType)
	if _, ok := types["red"]; ok {
		t.Errorf("Wine types should not be available under spirits")
	}
	if types["tequila"].Count != 1 {
		t.Errorf("Expected tequila count 1, got %+v", types["tequila"])
	}
}

func TestShop_QueryFiltersAndSort(t *testing.T) {
	ws := &WebServer{Snapshot: testSnapshot()}
	response := shopRequest(t, ws, "/api/shop?q=crimes")
	if response.TotalHits != 1 || response.Items[0].Id != "p2" {
		t.Fatalf("Expected only the wine for q=crimes, got %+v", response.Items)
	}

	response = shopRequest(t, ws, "/api/shop?sort=price&dir=desc")
	if response.Items[0].Id != "p1" || response.Items[1].Id != "p2" {
		t.Errorf("Expected price desc order, got %v then %v", response.Items[0].Id, response.Items[1].Id)
	}
}

func TestProduct_NotFound(t *testing.T) {
	ws := &WebServer{Snapshot: testSnapshot()}
	r := httptest.NewRequest(http.MethodGet, "/api/product/ghost", nil)
	r.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()
	if err := ws.Product(w, r, "test-session", json.NewEncoder(w)); err != nil {
		t.Fatalf("Product failed: %v", err)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
