package messaging

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sam12-4/liquor-online/pkg/catalog"
)

// Exchanges are named {prefix}_{topic}, one durable topic exchange per change
// stream. Messages carry the exchange name as routing key.
func exchangeName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

func declareExchange(ch *amqp.Channel, name string) error {
	err := ch.ExchangeDeclare(
		name,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", name, err)
	}
	return nil
}

// RabbitPublisher fans catalog changes out to storefront replicas.
type RabbitPublisher struct {
	Prefix string
	conn   *amqp.Connection
}

func NewRabbitPublisher(url, prefix string) (*RabbitPublisher, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	for _, topic := range []ChangeTopic{ProductsUpserted, ProductDeleted, TaxonomyChanged} {
		if err := declareExchange(ch, exchangeName(prefix, topic)); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return &RabbitPublisher{Prefix: prefix, conn: conn}, nil
}

func (p *RabbitPublisher) publish(topic ChangeTopic, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := exchangeName(p.Prefix, topic)
	return ch.Publish(
		name,
		name,
		true, // mandatory
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *RabbitPublisher) PublishProducts(products []catalog.Product) error {
	return p.publish(ProductsUpserted, products)
}

func (p *RabbitPublisher) PublishProductDeleted(id string) error {
	return p.publish(ProductDeleted, id)
}

func (p *RabbitPublisher) PublishTaxonomy(change TaxonomyChange) error {
	return p.publish(TaxonomyChanged, change)
}

func (p *RabbitPublisher) Close() error {
	return p.conn.Close()
}
