package sync

import (
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sam12-4/liquor-online/pkg/catalog"
	"github.com/sam12-4/liquor-online/pkg/messaging"
	"github.com/sam12-4/liquor-online/pkg/storage"
)

// CatalogListener keeps the in-memory snapshot in step with admin changes
// published over AMQP and periodically writes the snapshot to disk after a
// change came in.
type CatalogListener struct {
	Snapshot *catalog.Snapshot
	Storage  *storage.DiskStorage
	Prefix   string

	conn *amqp.Connection
	// written by the consumer goroutines, cleared by saveLoop
	saveNeeded atomic.Bool
}

func NewCatalogListener(snapshot *catalog.Snapshot, diskStorage *storage.DiskStorage, prefix string) *CatalogListener {
	return &CatalogListener{
		Snapshot: snapshot,
		Storage:  diskStorage,
		Prefix:   prefix,
	}
}

func (l *CatalogListener) Connect(amqpUrl string) error {
	conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return err
	}
	l.conn = conn

	consumer := messaging.NewConsumer(conn, l.Prefix)
	if err := consumer.Subscribe(messaging.ProductsUpserted, l.applyProductUpserts); err != nil {
		return err
	}
	if err := consumer.Subscribe(messaging.ProductDeleted, l.applyProductDelete); err != nil {
		return err
	}
	if err := consumer.Subscribe(messaging.TaxonomyChanged, l.applyTaxonomyChange); err != nil {
		return err
	}
	log.Printf("Listening for catalog changes")

	if l.Storage != nil {
		go l.saveLoop()
	}
	return nil
}

func (l *CatalogListener) applyProductUpserts(body []byte) error {
	products, err := catalog.DecodeProducts(body)
	if err != nil {
		return fmt.Errorf("product upsert message: %w", err)
	}
	log.Printf("Got product upserts %d", len(products))
	for _, p := range products {
		l.Snapshot.UpsertProduct(p)
	}
	l.saveNeeded.Store(true)
	return nil
}

func (l *CatalogListener) applyProductDelete(body []byte) error {
	var id string
	if err := json.Unmarshal(body, &id); err != nil {
		return fmt.Errorf("product delete message: %w", err)
	}
	if l.Snapshot.DeleteProduct(id) {
		l.saveNeeded.Store(true)
	}
	return nil
}

func (l *CatalogListener) applyTaxonomyChange(body []byte) error {
	var change messaging.TaxonomyChange
	if err := json.Unmarshal(body, &change); err != nil {
		return fmt.Errorf("taxonomy change message: %w", err)
	}
	switch {
	case change.Category != nil:
		l.Snapshot.UpsertCategory(*change.Category)
	case change.Type != nil:
		l.Snapshot.UpsertType(*change.Type)
	case change.Brand != nil:
		l.Snapshot.UpsertBrand(*change.Brand)
	case change.Country != nil:
		l.Snapshot.UpsertCountry(*change.Country)
	default:
		return fmt.Errorf("taxonomy change without payload, kind %s", change.Kind)
	}
	l.saveNeeded.Store(true)
	return nil
}

func (l *CatalogListener) saveLoop() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		if !l.saveNeeded.Swap(false) {
			continue
		}
		log.Println("Saving catalog snapshot due to changes")
		if err := l.Storage.SaveSnapshot(l.Snapshot); err != nil {
			log.Printf("Failed to save catalog snapshot: %v", err)
			l.saveNeeded.Store(true)
		}
	}
}

func (l *CatalogListener) Close() error {
	if l.conn == nil {
		return nil
	}
	return l.conn.Close()
}
