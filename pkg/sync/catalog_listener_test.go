package sync

import (
	"testing"

	"github.com/sam12-4/liquor-online/pkg/catalog"
)

func newTestListener() *CatalogListener {
	snapshot := catalog.NewSnapshot()
	snapshot.UpsertProduct(catalog.Product{Id: "p1", Name: "Reposado", Price: 55})
	return NewCatalogListener(snapshot, nil, "test")
}

func TestApplyProductUpserts_NormalizesMongoIds(t *testing.T) {
	l := newTestListener()

	err := l.applyProductUpserts([]byte(`[{"_id":"p2","name":"Anejo","price":89}]`))
	if err != nil {
		t.Fatalf("Unexpected apply error: %v", err)
	}
	p, ok := l.Snapshot.GetProduct("p2")
	if !ok {
		t.Fatal("Expected the upserted product under its canonical id")
	}
	if p.Name != "Anejo" {
		t.Errorf("Expected Anejo, got %s", p.Name)
	}
	if !l.saveNeeded.Load() {
		t.Error("Expected an upsert to schedule a snapshot save")
	}
}

func TestApplyProductUpserts_RejectsMalformedBody(t *testing.T) {
	l := newTestListener()
	if err := l.applyProductUpserts([]byte(`{broken`)); err == nil {
		t.Error("Expected an error for a malformed message body")
	}
	if l.saveNeeded.Load() {
		t.Error("A rejected message must not schedule a save")
	}
}

func TestApplyProductDelete(t *testing.T) {
	l := newTestListener()

	if err := l.applyProductDelete([]byte(`"p1"`)); err != nil {
		t.Fatalf("Unexpected apply error: %v", err)
	}
	if _, ok := l.Snapshot.GetProduct("p1"); ok {
		t.Error("Expected p1 to be gone")
	}
	if !l.saveNeeded.Load() {
		t.Error("Expected a delete to schedule a snapshot save")
	}

	l.saveNeeded.Store(false)
	if err := l.applyProductDelete([]byte(`"p1"`)); err != nil {
		t.Fatalf("Unexpected apply error: %v", err)
	}
	if l.saveNeeded.Load() {
		t.Error("Deleting an unknown product must not schedule a save")
	}
}

func TestApplyTaxonomyChange(t *testing.T) {
	l := newTestListener()

	err := l.applyTaxonomyChange([]byte(`{"kind":"brand","brand":{"id":"818","name":"818 Tequila"}}`))
	if err != nil {
		t.Fatalf("Unexpected apply error: %v", err)
	}
	brands := l.Snapshot.Brands()
	if len(brands) != 1 || brands[0].Id != "818" {
		t.Errorf("Expected the brand in the snapshot, got %v", brands)
	}

	if err := l.applyTaxonomyChange([]byte(`{"kind":"brand"}`)); err == nil {
		t.Error("Expected an error for a taxonomy change without payload")
	}
}
