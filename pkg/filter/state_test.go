package filter

import "testing"

func TestReset_IsCanonicalEmptyState(t *testing.T) {
	s := Reset()
	if len(s.Categories) != 0 || len(s.Types) != 0 || len(s.Brands) != 0 || len(s.Countries) != 0 {
		t.Errorf("Expected empty selections, got %+v", s)
	}
	if s.Price.Min != nil || s.Price.Max != nil {
		t.Errorf("Expected unbounded price range, got %+v", s.Price)
	}
	if s.Query != "" {
		t.Errorf("Expected empty query, got %q", s.Query)
	}
	if s.SortBy != "name" || s.SortDirection != "asc" {
		t.Errorf("Expected name/asc sort defaults, got %s/%s", s.SortBy, s.SortDirection)
	}
}

func TestToggleFilter_AddAndRemove(t *testing.T) {
	s := Reset()
	s2 := ToggleFilter(s, DimensionCategory, "spirits", true)
	if !s2.Categories.Has("spirits") {
		t.Errorf("Expected spirits to be selected")
	}
	if s.Categories.Has("spirits") {
		t.Errorf("ToggleFilter mutated its input")
	}

	s3 := ToggleFilter(s2, DimensionCategory, "spirits", false)
	if s3.Categories.Has("spirits") {
		t.Errorf("Expected spirits to be deselected")
	}
	if !s2.Categories.Has("spirits") {
		t.Errorf("Deselect mutated the previous state")
	}
}

func TestToggleFilter_Idempotent(t *testing.T) {
	s := ToggleFilter(Reset(), DimensionBrand, "818", true)
	again := ToggleFilter(s, DimensionBrand, "818", true)
	if len(again.Brands) != 1 {
		t.Errorf("Expected a single brand, got %d", len(again.Brands))
	}
	removed := ToggleFilter(Reset(), DimensionBrand, "818", false)
	if len(removed.Brands) != 0 {
		t.Errorf("Removing an absent id should be a no-op")
	}
}

func TestToggleFilter_UnknownDimension(t *testing.T) {
	s := ToggleFilter(Reset(), DimensionType, "tequila", true)
	same := ToggleFilter(s, Dimension("vintage"), "1998", true)
	if len(same.Types) != 1 || len(same.Categories) != 0 || len(same.Brands) != 0 || len(same.Countries) != 0 {
		t.Errorf("Unknown dimension should return the state unchanged, got %+v", same)
	}
}

func TestSetPriceRange_NoValidation(t *testing.T) {
	min, max := 100.0, 20.0
	s := SetPriceRange(Reset(), &min, &max)
	if s.Price.Min == nil || *s.Price.Min != 100 {
		t.Errorf("Expected min 100, got %v", s.Price.Min)
	}
	if s.Price.Max == nil || *s.Price.Max != 20 {
		t.Errorf("Expected max 20, got %v", s.Price.Max)
	}
}

func TestSetSearchQuery_StoredVerbatim(t *testing.T) {
	s := SetSearchQuery(Reset(), "  Crimes ")
	if s.Query != "  Crimes " {
		t.Errorf("Query should be stored verbatim, got %q", s.Query)
	}
}
