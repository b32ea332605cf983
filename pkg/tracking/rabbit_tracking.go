package tracking

import (
	"encoding/json"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sam12-4/liquor-online/pkg/filter"
)

const trackingExchange = "tracking"

type event struct {
	Type      string        `json:"type"`
	SessionId string        `json:"sessionId,omitempty"`
	CartId    string        `json:"cartId,omitempty"`
	ProductId string        `json:"productId,omitempty"`
	Quantity  int           `json:"quantity,omitempty"`
	TotalHits int           `json:"totalHits,omitempty"`
	State     *filter.State `json:"state,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	Language  string        `json:"language,omitempty"`
	At        time.Time     `json:"at"`
}

// RabbitTracking publishes browsing events on a topic exchange, consumers
// downstream build popularity and recommendation data from them.
type RabbitTracking struct {
	conn *amqp.Connection
}

func NewRabbitTracking(url string) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(trackingExchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	return &RabbitTracking{conn: conn}, nil
}

func (t *RabbitTracking) publish(routingKey string, e event) error {
	e.At = time.Now()
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	ch, err := t.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return ch.Publish(trackingExchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) error {
	return t.publish("session", event{
		Type:      "session",
		SessionId: sessionId,
		UserAgent: r.UserAgent(),
		Language:  r.Header.Get("Accept-Language"),
	})
}

func (t *RabbitTracking) TrackSearch(sessionId string, state filter.State, totalHits int) error {
	return t.publish("search", event{
		Type:      "search",
		SessionId: sessionId,
		State:     &state,
		TotalHits: totalHits,
	})
}

func (t *RabbitTracking) TrackClick(sessionId string, productId string) error {
	return t.publish("click", event{
		Type:      "click",
		SessionId: sessionId,
		ProductId: productId,
	})
}

func (t *RabbitTracking) TrackAddToCart(cartId string, productId string, quantity int) error {
	return t.publish("add_to_cart", event{
		Type:      "add_to_cart",
		CartId:    cartId,
		ProductId: productId,
		Quantity:  quantity,
	})
}

func (t *RabbitTracking) Close() error {
	return t.conn.Close()
}
