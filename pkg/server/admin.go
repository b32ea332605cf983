package server

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sam12-4/liquor-online/pkg/catalog"
	"github.com/sam12-4/liquor-online/pkg/common"
	"github.com/sam12-4/liquor-online/pkg/messaging"
	"github.com/sam12-4/liquor-online/pkg/storage"
)

var (
	noUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquoronline_admin_upserts_total",
		Help: "The total number of product upserts through the admin API",
	})
	noDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "liquoronline_admin_deletes_total",
		Help: "The total number of product deletes through the admin API",
	})
)

// ChangePublisher pushes catalog changes out to the storefront replicas.
// Nil-able, a single node setup works without a broker.
type ChangePublisher interface {
	PublishProducts(products []catalog.Product) error
	PublishProductDeleted(id string) error
	PublishTaxonomy(change messaging.TaxonomyChange) error
}

// AdminServer is the back-office write surface. It mutates the local
// snapshot, persists it and fans the change out over the publisher. The
// admin product filter panel reuses the storefront facet handlers against
// the same snapshot.
type AdminServer struct {
	Snapshot  *catalog.Snapshot
	Storage   *storage.DiskStorage
	Publisher ChangePublisher
	Cache     *Cache
}

func (as *AdminServer) afterChange(ctx context.Context) {
	if as.Storage != nil {
		if err := as.Storage.SaveSnapshot(as.Snapshot); err != nil {
			log.Printf("Failed to save snapshot after admin change: %v", err)
		}
	}
	if as.Cache != nil {
		if err := as.Cache.Flush(ctx); err != nil {
			log.Printf("Failed to flush response cache: %v", err)
		}
	}
}

// UpsertProducts accepts the same record shape as the Catalog Service feed,
// so "_id" keyed payloads land under their canonical id like everywhere else.
func (as *AdminServer) UpsertProducts(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	products, err := catalog.DecodeProducts(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, p := range products {
		as.Snapshot.UpsertProduct(p)
	}
	noUpserts.Add(float64(len(products)))
	if as.Publisher != nil {
		if err := as.Publisher.PublishProducts(products); err != nil {
			log.Printf("Failed to publish product upserts: %v", err)
		}
	}
	as.afterChange(r.Context())
	w.WriteHeader(http.StatusOK)
}

func (as *AdminServer) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !as.Snapshot.DeleteProduct(id) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	noDeletes.Inc()
	if as.Publisher != nil {
		if err := as.Publisher.PublishProductDeleted(id); err != nil {
			log.Printf("Failed to publish product delete: %v", err)
		}
	}
	as.afterChange(r.Context())
	w.WriteHeader(http.StatusOK)
}

// decodeEntity runs a request body through the catalog boundary decoders, so
// taxonomy payloads get the same id normalization as product feeds.
func decodeEntity[V any](r *http.Request, decode func([]byte) (V, error)) (V, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var zero V
		return zero, err
	}
	return decode(body)
}

func (as *AdminServer) publishTaxonomy(change messaging.TaxonomyChange) {
	if as.Publisher == nil {
		return
	}
	if err := as.Publisher.PublishTaxonomy(change); err != nil {
		log.Printf("Failed to publish taxonomy change: %v", err)
	}
}

func (as *AdminServer) UpsertCategory(w http.ResponseWriter, r *http.Request) {
	c, err := decodeEntity(r, catalog.DecodeCategory)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	as.Snapshot.UpsertCategory(c)
	as.publishTaxonomy(messaging.TaxonomyChange{Kind: "category", Category: &c})
	as.afterChange(r.Context())
	common.WriteJson(w, http.StatusOK, c)
}

func (as *AdminServer) UpsertType(w http.ResponseWriter, r *http.Request) {
	t, err := decodeEntity(r, catalog.DecodeType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	as.Snapshot.UpsertType(t)
	as.publishTaxonomy(messaging.TaxonomyChange{Kind: "type", Type: &t})
	as.afterChange(r.Context())
	common.WriteJson(w, http.StatusOK, t)
}

func (as *AdminServer) UpsertBrand(w http.ResponseWriter, r *http.Request) {
	b, err := decodeEntity(r, catalog.DecodeBrand)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	as.Snapshot.UpsertBrand(b)
	as.publishTaxonomy(messaging.TaxonomyChange{Kind: "brand", Brand: &b})
	as.afterChange(r.Context())
	common.WriteJson(w, http.StatusOK, b)
}

func (as *AdminServer) UpsertCountry(w http.ResponseWriter, r *http.Request) {
	c, err := decodeEntity(r, catalog.DecodeCountry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	as.Snapshot.UpsertCountry(c)
	as.publishTaxonomy(messaging.TaxonomyChange{Kind: "country", Country: &c})
	as.afterChange(r.Context())
	common.WriteJson(w, http.StatusOK, c)
}

func (as *AdminServer) Save(w http.ResponseWriter, r *http.Request) {
	if as.Storage == nil {
		http.Error(w, "no storage configured", http.StatusNotImplemented)
		return
	}
	if err := as.Storage.SaveSnapshot(as.Snapshot); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Routes registers the admin write surface on the mux.
func (as *AdminServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /admin/products", as.UpsertProducts)
	mux.HandleFunc("DELETE /admin/product/{id}", as.DeleteProduct)
	mux.HandleFunc("POST /admin/category", as.UpsertCategory)
	mux.HandleFunc("POST /admin/type", as.UpsertType)
	mux.HandleFunc("POST /admin/brand", as.UpsertBrand)
	mux.HandleFunc("POST /admin/country", as.UpsertCountry)
	mux.HandleFunc("POST /admin/save", as.Save)
}
