package tracking

import (
	"net/http"

	"github.com/sam12-4/liquor-online/pkg/filter"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request) error
	TrackSearch(sessionId string, state filter.State, totalHits int) error
	TrackClick(sessionId string, productId string) error
	TrackAddToCart(cartId string, productId string, quantity int) error
}

// Noop satisfies Tracking when no event pipeline is configured.
type Noop struct{}

func (Noop) TrackSession(string, *http.Request) error    { return nil }
func (Noop) TrackSearch(string, filter.State, int) error { return nil }
func (Noop) TrackClick(string, string) error             { return nil }
func (Noop) TrackAddToCart(string, string, int) error    { return nil }
