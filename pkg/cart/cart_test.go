package cart

import "testing"

func TestAddItem_MergesOnProductId(t *testing.T) {
	c := New("c1")
	c = AddItem(c, Item{ProductId: "p1", Name: "818 Tequila Blanco", Price: 75, Quantity: 1})
	c = AddItem(c, Item{ProductId: "p1", Name: "818 Tequila Blanco", Price: 75, Quantity: 2})
	if len(c.Items) != 1 {
		t.Fatalf("Expected one merged line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", c.Items[0].Quantity)
	}
	if c.ItemCount != 3 || c.TotalPrice != 225 {
		t.Errorf("Totals wrong: count %d total %v", c.ItemCount, c.TotalPrice)
	}
}

func TestAddItem_DoesNotMutateInput(t *testing.T) {
	c := AddItem(New("c1"), Item{ProductId: "p1", Price: 10, Quantity: 1})
	c2 := AddItem(c, Item{ProductId: "p1", Price: 10, Quantity: 5})
	if c.Items[0].Quantity != 1 {
		t.Errorf("AddItem mutated its input, quantity became %d", c.Items[0].Quantity)
	}
	if c2.Items[0].Quantity != 6 {
		t.Errorf("Expected merged quantity 6, got %d", c2.Items[0].Quantity)
	}
}

func TestAddItem_RejectsInvalidInput(t *testing.T) {
	c := New("c1")
	if got := AddItem(c, Item{ProductId: "", Quantity: 1}); len(got.Items) != 0 {
		t.Errorf("Item without product id should be rejected")
	}
	if got := AddItem(c, Item{ProductId: "p1", Quantity: 0}); len(got.Items) != 0 {
		t.Errorf("Item without quantity should be rejected")
	}
}

func TestChangeQuantity(t *testing.T) {
	c := AddItem(New("c1"), Item{ProductId: "p1", Price: 19.35, Quantity: 2})
	c = ChangeQuantity(c, "p1", 4)
	if c.Items[0].Quantity != 4 || c.TotalPrice != 77.4 {
		t.Errorf("Expected quantity 4 total 77.4, got %d %v", c.Items[0].Quantity, c.TotalPrice)
	}
	c = ChangeQuantity(c, "p1", 0)
	if len(c.Items) != 0 {
		t.Errorf("Zero quantity should remove the line")
	}
	same := ChangeQuantity(c, "missing", 2)
	if len(same.Items) != 0 {
		t.Errorf("Changing a missing line should be a no-op")
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	c := AddItem(New("c1"), Item{ProductId: "p1", Price: 75, Quantity: 1})
	c = AddItem(c, Item{ProductId: "p2", Price: 19.35, Quantity: 2})

	c2 := RemoveItem(c, "p1")
	if len(c2.Items) != 1 || c2.Items[0].ProductId != "p2" {
		t.Errorf("Expected only p2 to remain, got %+v", c2.Items)
	}
	if len(c.Items) != 2 {
		t.Errorf("RemoveItem mutated its input")
	}

	cleared := Clear(c)
	if cleared.Id != "c1" || len(cleared.Items) != 0 || cleared.TotalPrice != 0 {
		t.Errorf("Clear should keep the id and drop everything else, got %+v", cleared)
	}
}

func TestTotals_RoundedToCents(t *testing.T) {
	c := AddItem(New("c1"), Item{ProductId: "p1", Price: 0.1, Quantity: 3})
	if c.TotalPrice != 0.3 {
		t.Errorf("Expected 0.3, got %v", c.TotalPrice)
	}
}
