package catalog

// Image is a single product image. At most one image per product carries
// IsPrimary, the normalizer enforces this on ingest.
type Image struct {
	Url       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

type Product struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Sku         string   `json:"sku,omitempty"`
	Price       float64  `json:"price"`
	SalePrice   float64  `json:"salePrice,omitempty"`
	OnSale      bool     `json:"onSale,omitempty"`
	Stock       int      `json:"stock"`
	CategoryIds []string `json:"categoryIds,omitempty"`
	TypeIds     []string `json:"typeIds,omitempty"`
	BrandId     string   `json:"brandId,omitempty"`
	CountryId   string   `json:"countryId,omitempty"`
	Images      []Image  `json:"images,omitempty"`
}

// UnitPrice is the price a unit is charged at, which is the sale price while
// a sale is active. Filtering always uses the list Price instead.
func (p *Product) UnitPrice() float64 {
	if p.OnSale && p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}

func (p *Product) PrimaryImage() (Image, bool) {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return Image{}, false
}

type Category struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentId string `json:"parentId,omitempty"`
}

// Type is a product classification below Category, a type may belong to
// several categories at once.
type Type struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	ParentId    string   `json:"parentId,omitempty"`
	CategoryIds []string `json:"categoryIds,omitempty"`
}

type Brand struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Country struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
