package catalog

import (
	"encoding/json"
	"errors"
)

// The upstream catalog mixes "id" and mongo style "_id" keys depending on
// which backend produced the record. Everything is mapped to the canonical
// Id field here, before a record reaches the filtering engine.

type rawId struct {
	Id      string `json:"id"`
	MongoId string `json:"_id"`
}

func (r *rawId) canonical() string {
	if r.Id != "" {
		return r.Id
	}
	return r.MongoId
}

type rawProduct struct {
	rawId
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sku         string   `json:"sku"`
	Price       float64  `json:"price"`
	SalePrice   float64  `json:"salePrice"`
	OnSale      bool     `json:"onSale"`
	Stock       int      `json:"stock"`
	CategoryIds []string `json:"categoryIds"`
	TypeIds     []string `json:"typeIds"`
	BrandId     string   `json:"brandId"`
	CountryId   string   `json:"countryId"`
	Images      []Image  `json:"images"`
}

type rawTaxonomy struct {
	rawId
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	ParentId    string   `json:"parentId"`
	CategoryIds []string `json:"categoryIds"`
}

func normalizeProduct(r rawProduct) Product {
	p := Product{
		Id:          r.canonical(),
		Name:        r.Name,
		Description: r.Description,
		Sku:         r.Sku,
		Price:       r.Price,
		SalePrice:   r.SalePrice,
		OnSale:      r.OnSale,
		Stock:       r.Stock,
		CategoryIds: r.CategoryIds,
		TypeIds:     r.TypeIds,
		BrandId:     r.BrandId,
		CountryId:   r.CountryId,
		Images:      normalizeImages(r.Images),
	}
	return p
}

// normalizeImages keeps at most one primary image, first wins.
func normalizeImages(images []Image) []Image {
	seenPrimary := false
	out := make([]Image, len(images))
	for i, img := range images {
		if img.IsPrimary {
			if seenPrimary {
				img.IsPrimary = false
			}
			seenPrimary = true
		}
		out[i] = img
	}
	return out
}

// ErrMissingId marks a single-record payload that carried neither an "id"
// nor an "_id" key. Bulk decoders skip such records instead.
var ErrMissingId = errors.New("record has no id")

func DecodeProducts(data []byte) ([]Product, error) {
	var raw []rawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(raw))
	for _, r := range raw {
		if r.canonical() == "" {
			continue
		}
		products = append(products, normalizeProduct(r))
	}
	return products, nil
}

func DecodeCategories(data []byte) ([]Category, error) {
	raw, err := decodeTaxonomy(data)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(raw))
	for _, r := range raw {
		out = append(out, Category{Id: r.canonical(), Name: r.Name, Slug: r.Slug, ParentId: r.ParentId})
	}
	return out, nil
}

func DecodeTypes(data []byte) ([]Type, error) {
	raw, err := decodeTaxonomy(data)
	if err != nil {
		return nil, err
	}
	out := make([]Type, 0, len(raw))
	for _, r := range raw {
		out = append(out, Type{Id: r.canonical(), Name: r.Name, Slug: r.Slug, ParentId: r.ParentId, CategoryIds: r.CategoryIds})
	}
	return out, nil
}

func DecodeBrands(data []byte) ([]Brand, error) {
	raw, err := decodeTaxonomy(data)
	if err != nil {
		return nil, err
	}
	out := make([]Brand, 0, len(raw))
	for _, r := range raw {
		out = append(out, Brand{Id: r.canonical(), Name: r.Name, Slug: r.Slug})
	}
	return out, nil
}

func DecodeCountries(data []byte) ([]Country, error) {
	raw, err := decodeTaxonomy(data)
	if err != nil {
		return nil, err
	}
	out := make([]Country, 0, len(raw))
	for _, r := range raw {
		out = append(out, Country{Id: r.canonical(), Name: r.Name, Slug: r.Slug})
	}
	return out, nil
}

func DecodeCategory(data []byte) (Category, error) {
	r, err := decodeOneTaxonomy(data)
	if err != nil {
		return Category{}, err
	}
	return Category{Id: r.canonical(), Name: r.Name, Slug: r.Slug, ParentId: r.ParentId}, nil
}

func DecodeType(data []byte) (Type, error) {
	r, err := decodeOneTaxonomy(data)
	if err != nil {
		return Type{}, err
	}
	return Type{Id: r.canonical(), Name: r.Name, Slug: r.Slug, ParentId: r.ParentId, CategoryIds: r.CategoryIds}, nil
}

func DecodeBrand(data []byte) (Brand, error) {
	r, err := decodeOneTaxonomy(data)
	if err != nil {
		return Brand{}, err
	}
	return Brand{Id: r.canonical(), Name: r.Name, Slug: r.Slug}, nil
}

func DecodeCountry(data []byte) (Country, error) {
	r, err := decodeOneTaxonomy(data)
	if err != nil {
		return Country{}, err
	}
	return Country{Id: r.canonical(), Name: r.Name, Slug: r.Slug}, nil
}

func decodeOneTaxonomy(data []byte) (rawTaxonomy, error) {
	var r rawTaxonomy
	if err := json.Unmarshal(data, &r); err != nil {
		return rawTaxonomy{}, err
	}
	if r.canonical() == "" {
		return rawTaxonomy{}, ErrMissingId
	}
	return r, nil
}

func decodeTaxonomy(data []byte) ([]rawTaxonomy, error) {
	var raw []rawTaxonomy
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	filtered := raw[:0]
	for _, r := range raw {
		if r.canonical() != "" {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
