package cart

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/sam12-4/liquor-online/pkg/catalog"
	"github.com/sam12-4/liquor-online/pkg/tracking"
)

const cartCookieName = "cid"

type Server struct {
	Storage  Storage
	Snapshot *catalog.Snapshot
	Tracking tracking.Tracking
}

type inputItem struct {
	ProductId string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// handleCartCookie returns the cart id bound to the request, creating one on
// first contact.
func handleCartCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cartCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   2592000,
	})
	return id
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (Cart, string) {
	id := handleCartCookie(w, r)
	c, err := s.Storage.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("failed to load cart %s: %v", id, err)
		}
		return New(id), id
	}
	return c, id
}

// itemFromProduct builds a cart line from the live snapshot. The unit price
// is the charged price, so sale price while a sale is active, unlike the
// price facet which filters on list price.
func (s *Server) itemFromProduct(productId string, quantity int) (Item, error) {
	p, ok := s.Snapshot.GetProduct(productId)
	if !ok {
		return Item{}, errors.New("product not found")
	}
	item := Item{
		ProductId: p.Id,
		Name:      p.Name,
		Sku:       p.Sku,
		Price:     p.UnitPrice(),
		Quantity:  quantity,
	}
	if img, ok := p.PrimaryImage(); ok {
		item.ImageUrl = img.Url
	}
	return item, nil
}

func (s *Server) respond(w http.ResponseWriter, c Cart) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	c, _ := s.load(w, r)
	s.respond(w, c)
}

func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var input inputItem
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid item", http.StatusBadRequest)
		return
	}
	item, err := s.itemFromProduct(input.ProductId, input.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	c, _ := s.load(w, r)
	c = AddItem(c, item)
	if err := s.Storage.Put(r.Context(), c); err != nil {
		http.Error(w, "error saving cart", http.StatusInternalServerError)
		return
	}
	if s.Tracking != nil {
		go s.Tracking.TrackAddToCart(c.Id, item.ProductId, item.Quantity)
	}
	s.respond(w, c)
}

func (s *Server) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var input inputItem
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid item", http.StatusBadRequest)
		return
	}
	c, _ := s.load(w, r)
	c = ChangeQuantity(c, input.ProductId, input.Quantity)
	if err := s.Storage.Put(r.Context(), c); err != nil {
		http.Error(w, "error saving cart", http.StatusInternalServerError)
		return
	}
	s.respond(w, c)
}

func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productId := r.PathValue("id")
	c, _ := s.load(w, r)
	c = RemoveItem(c, productId)
	if err := s.Storage.Put(r.Context(), c); err != nil {
		http.Error(w, "error saving cart", http.StatusInternalServerError)
		return
	}
	s.respond(w, c)
}

func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, id := s.load(w, r)
	c = Clear(c)
	if err := s.Storage.Delete(r.Context(), id); err != nil {
		http.Error(w, "error clearing cart", http.StatusInternalServerError)
		return
	}
	s.respond(w, c)
}
