package handler

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

var (
	errAmbiguousItem = errors.New("item deve informar product_id ou service_id, nunca ambos")
	errMissingItemID = errors.New("item sem product_id e sem service_id")
	errListItemKind  = errors.New("itens de produtos exigem product_id e itens de servicos exigem service_id")
)

// CreateSaleRequest aceita os formatos de pedido usados pelos clientes da API:
// a lista única "products" (product_id ou service_id por item) e as listas
// separadas "produtos" e "servicos".
type CreateSaleRequest struct {
	SellerID      int               `json:"seller_id"`
	CustomerID    int               `json:"customer_id"`
	SaleType      string            `json:"sale_type"`
	PaymentMethod *string           `json:"payment_method"`
	Observation   *string           `json:"observation"`
	Date          *time.Time        `json:"date"`
	Products      []LineItemRequest `json:"products"`
	Produtos      []LineItemRequest `json:"produtos"`
	Servicos      []LineItemRequest `json:"servicos"`
}

type LineItemRequest struct {
	ProductID    *int             `json:"product_id"`
	ServiceID    *int             `json:"service_id"`
	Price        *decimal.Decimal `json:"price"`
	ProductPrice *decimal.Decimal `json:"product_price"`
	ServicePrice *decimal.Decimal `json:"service_price"`
	Quantity     int              `json:"quantity"`
	Zoning       *string          `json:"zoning"`
}

func (r LineItemRequest) price() *decimal.Decimal {
	switch {
	case r.Price != nil:
		return r.Price
	case r.ProductPrice != nil:
		return r.ProductPrice
	default:
		return r.ServicePrice
	}
}

func (r LineItemRequest) toLineItem() (domain.LineItem, error) {
	item := domain.LineItem{
		Price:    r.price(),
		Quantity: r.Quantity,
		Zoning:   r.Zoning,
	}

	switch {
	case r.ProductID != nil && r.ServiceID != nil:
		return domain.LineItem{}, errAmbiguousItem
	case r.ProductID != nil:
		item.Kind = domain.LineItemProduct
		item.RefID = *r.ProductID
	case r.ServiceID != nil:
		item.Kind = domain.LineItemService
		item.RefID = *r.ServiceID
	default:
		return domain.LineItem{}, errMissingItemID
	}

	return item, nil
}

// toDomain normaliza todos os formatos em uma única lista de itens
func (r *CreateSaleRequest) toDomain() (*domain.CreateSaleRequest, error) {
	req := &domain.CreateSaleRequest{
		SellerID:      r.SellerID,
		CustomerID:    r.CustomerID,
		SaleType:      r.SaleType,
		PaymentMethod: r.PaymentMethod,
		Observation:   r.Observation,
		Date:          r.Date,
		Items:         make([]domain.LineItem, 0, len(r.Products)+len(r.Produtos)+len(r.Servicos)),
	}

	for _, p := range r.Products {
		item, err := p.toLineItem()
		if err != nil {
			return nil, err
		}
		req.Items = append(req.Items, item)
	}

	for _, p := range r.Produtos {
		if p.ProductID == nil || p.ServiceID != nil {
			return nil, errListItemKind
		}
		item, _ := p.toLineItem()
		req.Items = append(req.Items, item)
	}

	for _, s := range r.Servicos {
		if s.ServiceID == nil || s.ProductID != nil {
			return nil, errListItemKind
		}
		item, _ := s.toLineItem()
		req.Items = append(req.Items, item)
	}

	return req, nil
}
