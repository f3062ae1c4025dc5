package domain

import "github.com/shopspring/decimal"

// CatalogItem reúne os campos comuns a produtos e serviços
type CatalogItem struct {
	Name        string          `json:"name"`
	Code        *string         `json:"code,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	Zoning      *string         `json:"zoning,omitempty"`
	ProductType *string         `json:"product_type,omitempty"`
	Segment     *string         `json:"segment,omitempty"`
	Observation *string         `json:"observation,omitempty"`
}

type Product struct {
	ID int `json:"product_id"`
	CatalogItem
}

type Service struct {
	ID int `json:"service_id"`
	CatalogItem
}
