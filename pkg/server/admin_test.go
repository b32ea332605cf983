package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpsertProducts(t *testing.T) {
	as := &AdminServer{Snapshot: testSnapshot()}
	body := `[{"id":"p3","name":"Hendrick's Gin","price":34.99,"categoryIds":["spirits"],"typeIds":["gin"]}]`
	r := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
	w := httptest.NewRecorder()
	as.UpsertProducts(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if as.Snapshot.ProductCount() != 3 {
		t.Errorf("Expected 3 products after upsert, got %d", as.Snapshot.ProductCount())
	}
	p, ok := as.Snapshot.GetProduct("p3")
	if !ok || p.Name != "Hendrick's Gin" {
		t.Errorf("Upserted product missing, got %+v", p)
	}
}

func TestUpsertProducts_NormalizesMongoIds(t *testing.T) {
	as := &AdminServer{Snapshot: testSnapshot()}
	body := `[{"_id":"p4","name":"Espolon Blanco","price":27.5,"brandId":"espolon"}]`
	r := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
	w := httptest.NewRecorder()
	as.UpsertProducts(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	p, ok := as.Snapshot.GetProduct("p4")
	if !ok {
		t.Fatal("Expected the product under its canonical id")
	}
	if p.Name != "Espolon Blanco" {
		t.Errorf("Expected Espolon Blanco, got %s", p.Name)
	}
}

func TestDeleteProduct(t *testing.T) {
	as := &AdminServer{Snapshot: testSnapshot()}
	r := httptest.NewRequest(http.MethodDelete, "/admin/product/p1", nil)
	r.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	as.DeleteProduct(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodDelete, "/admin/product/p1", nil)
	r.SetPathValue("id", "p1")
	w = httptest.NewRecorder()
	as.DeleteProduct(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on double delete, got %d", w.Code)
	}
}

func TestUpsertCategory(t *testing.T) {
	as := &AdminServer{Snapshot: testSnapshot()}
	r := httptest.NewRequest(http.MethodPost, "/admin/category", strings.NewReader(`{"id":"beer","name":"Beer","slug":"beer"}`))
	w := httptest.NewRecorder()
	as.UpsertCategory(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(as.Snapshot.Categories()) != 3 {
		t.Errorf("Expected 3 categories, got %d", len(as.Snapshot.Categories()))
	}
}

func TestUpsertCategory_RejectsRecordWithoutId(t *testing.T) {
	as := &AdminServer{Snapshot: testSnapshot()}
	r := httptest.NewRequest(http.MethodPost, "/admin/category", strings.NewReader(`{"name":"Beer"}`))
	w := httptest.NewRecorder()
	as.UpsertCategory(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a record without any id, got %d", w.Code)
	}
	if len(as.Snapshot.Categories()) != 2 {
		t.Errorf("Expected the snapshot untouched, got %d categories", len(as.Snapshot.Categories()))
	}
}
