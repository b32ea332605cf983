package cart

import (
	"math"
	"slices"
)

// Cart follows the same shape as the filter state: an immutable record plus
// pure action functions. Every action returns a fresh Cart with totals
// recomputed, the input is never mutated.

type Item struct {
	ProductId string  `json:"id"`
	Name      string  `json:"name"`
	Sku       string  `json:"sku,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageUrl  string  `json:"image,omitempty"`
}

type Cart struct {
	Id         string  `json:"id"`
	Items      []Item  `json:"items"`
	ItemCount  int     `json:"itemCount"`
	TotalPrice float64 `json:"totalPrice"`
}

func New(id string) Cart {
	return Cart{Id: id, Items: []Item{}}
}

// AddItem merges on product id, an existing line gets its quantity bumped.
func AddItem(c Cart, item Item) Cart {
	if item.ProductId == "" || item.Quantity <= 0 {
		return c
	}
	items := slices.Clone(c.Items)
	merged := false
	for i := range items {
		if items[i].ProductId == item.ProductId {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	return withItems(c, items)
}

// ChangeQuantity sets the line quantity, zero or less removes the line.
func ChangeQuantity(c Cart, productId string, quantity int) Cart {
	if quantity <= 0 {
		return RemoveItem(c, productId)
	}
	items := slices.Clone(c.Items)
	for i := range items {
		if items[i].ProductId == productId {
			items[i].Quantity = quantity
			return withItems(c, items)
		}
	}
	return c
}

func RemoveItem(c Cart, productId string) Cart {
	items := slices.DeleteFunc(slices.Clone(c.Items), func(it Item) bool {
		return it.ProductId == productId
	})
	return withItems(c, items)
}

func Clear(c Cart) Cart {
	return New(c.Id)
}

func withItems(c Cart, items []Item) Cart {
	c.Items = items
	c.ItemCount = 0
	total := 0.0
	for _, it := range items {
		c.ItemCount += it.Quantity
		total += it.Price * float64(it.Quantity)
	}
	c.TotalPrice = math.Round(total*100) / 100
	return c
}
