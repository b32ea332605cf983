package messaging

import (
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer receives the catalog change streams on exclusive per-process
// queues, so every storefront replica sees every message. The queues die with
// the connection, a replica that was down simply reloads the snapshot on
// startup.
type Consumer struct {
	Prefix string
	conn   *amqp.Connection
}

func NewConsumer(conn *amqp.Connection, prefix string) *Consumer {
	return &Consumer{Prefix: prefix, conn: conn}
}

// Subscribe binds a fresh exclusive queue to the topic exchange and feeds
// message bodies to handler on a dedicated goroutine. The exchange is
// declared here too so consumers can start before the publisher. A handler
// error drops that one message, the subscription stays up.
func (c *Consumer) Subscribe(topic ChangeTopic, handler func(body []byte) error) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	name := exchangeName(c.Prefix, topic)
	if err := declareExchange(ch, name); err != nil {
		ch.Close()
		return err
	}
	q, err := ch.QueueDeclare(
		"",    // broker-named
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("declare queue for %s: %w", name, err)
	}
	if err := ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("bind queue to %s: %w", name, err)
	}
	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		return err
	}

	go func() {
		defer ch.Close()
		for d := range deliveries {
			if err := handler(d.Body); err != nil {
				log.Printf("Dropping %s message: %v", topic, err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}()
	return nil
}
