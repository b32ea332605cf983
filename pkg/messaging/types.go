package messaging

import "github.com/sam12-4/liquor-online/pkg/catalog"

// ChangeTopic names one catalog change stream.
type ChangeTopic string

const (
	ProductsUpserted ChangeTopic = "products_upserted"
	ProductDeleted   ChangeTopic = "product_deleted"
	TaxonomyChanged  ChangeTopic = "taxonomy_changed"
)

// TaxonomyChange carries one taxonomy entity upsert. Exactly one of the
// entity fields is set, Kind says which.
type TaxonomyChange struct {
	Kind     string            `json:"kind"` // category, type, brand, country
	Category *catalog.Category `json:"category,omitempty"`
	Type     *catalog.Type     `json:"type,omitempty"`
	Brand    *catalog.Brand    `json:"brand,omitempty"`
	Country  *catalog.Country  `json:"country,omitempty"`
}
