package domain

import "github.com/shopspring/decimal"

type LineItemKind string

const (
	LineItemProduct LineItemKind = "product"
	LineItemService LineItemKind = "service"
)

// LineItem referencia exatamente um produto ou um serviço do catálogo.
// Price nil e Quantity 0 significam "não informado".
type LineItem struct {
	Kind     LineItemKind
	RefID    int
	Price    *decimal.Decimal
	Quantity int
	Zoning   *string
}

func (i LineItem) IsProduct() bool {
	return i.Kind == LineItemProduct
}

func (i LineItem) IsService() bool {
	return i.Kind == LineItemService
}
