package catalog

import (
	"errors"
	"testing"
)

func TestDecodeProducts_CanonicalId(t *testing.T) {
	data := []byte(`[
		{"id":"p1","name":"818 Tequila Blanco","price":75},
		{"_id":"p2","name":"19 Crimes Pinot Noir","price":19.35},
		{"id":"p3","_id":"legacy3","name":"Yamazaki 12 Year","price":160},
		{"name":"no id at all","price":5}
	]`)
	products, err := DecodeProducts(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 3 {
		t.Fatalf("Expected 3 products, record without an id dropped, got %d", len(products))
	}
	if products[0].Id != "p1" || products[1].Id != "p2" {
		t.Errorf("Id normalization failed: %s %s", products[0].Id, products[1].Id)
	}
	if products[2].Id != "p3" {
		t.Errorf("id must win over _id, got %s", products[2].Id)
	}
}

func TestDecodeProducts_SinglePrimaryImage(t *testing.T) {
	data := []byte(`[{"id":"p1","name":"x","price":1,"images":[
		{"url":"a.jpg","isPrimary":true},
		{"url":"b.jpg","isPrimary":true},
		{"url":"c.jpg"}
	]}]`)
	products, err := DecodeProducts(data)
	if err != nil {
		t.Fatal(err)
	}
	primaries := 0
	for _, img := range products[0].Images {
		if img.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 || !products[0].Images[0].IsPrimary {
		t.Errorf("Expected exactly the first primary to survive, got %+v", products[0].Images)
	}
}

func TestDecodeCategories(t *testing.T) {
	data := []byte(`[{"_id":"spirits","name":"Spirits","slug":"spirits"},{"id":"wine","name":"Wine","slug":"wine","parentId":""}]`)
	categories, err := DecodeCategories(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 || categories[0].Id != "spirits" || categories[1].Id != "wine" {
		t.Errorf("Unexpected categories %+v", categories)
	}
}

func TestDecodeBrand_SingleRecord(t *testing.T) {
	b, err := DecodeBrand([]byte(`{"_id":"818","name":"818 Tequila","slug":"818"}`))
	if err != nil {
		t.Fatal(err)
	}
	if b.Id != "818" || b.Name != "818 Tequila" {
		t.Errorf("Unexpected brand %+v", b)
	}

	_, err = DecodeBrand([]byte(`{"name":"no id"}`))
	if !errors.Is(err, ErrMissingId) {
		t.Errorf("Expected ErrMissingId, got %v", err)
	}
}

func TestUnitPrice(t *testing.T) {
	p := Product{Price: 19.35, SalePrice: 15, OnSale: true}
	if p.UnitPrice() != 15 {
		t.Errorf("Expected sale price while on sale, got %v", p.UnitPrice())
	}
	p.OnSale = false
	if p.UnitPrice() != 19.35 {
		t.Errorf("Expected list price off sale, got %v", p.UnitPrice())
	}
	p = Product{Price: 10, OnSale: true}
	if p.UnitPrice() != 10 {
		t.Errorf("On sale without a sale price falls back to list price")
	}
}

func TestSnapshot_UpsertAndDelete(t *testing.T) {
	s := NewSnapshot()
	s.UpsertProduct(Product{Id: "p1", Name: "a"})
	s.UpsertProduct(Product{Id: "p2", Name: "b"})
	s.UpsertProduct(Product{Id: "p1", Name: "a2"})

	if s.ProductCount() != 2 {
		t.Fatalf("Expected 2 products, got %d", s.ProductCount())
	}
	p, ok := s.GetProduct("p1")
	if !ok || p.Name != "a2" {
		t.Errorf("Upsert did not replace, got %+v", p)
	}
	if !s.DeleteProduct("p1") || s.DeleteProduct("p1") {
		t.Errorf("Delete should report removal exactly once")
	}
	if s.ProductCount() != 1 {
		t.Errorf("Expected 1 product after delete, got %d", s.ProductCount())
	}
}

func TestSnapshot_ReplaceGuardsNil(t *testing.T) {
	s := NewSnapshot()
	s.Replace(nil, nil, nil, nil, nil)
	if s.Products() == nil {
		t.Errorf("Products must never be nil")
	}
}
