package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleTypeCash é o tipo assumido quando o pedido não informa sale_type
const SaleTypeCash = "cash"

type Sale struct {
	ID            int              `json:"sale_id"`
	Code          string           `json:"code"`
	Amount        decimal.Decimal  `json:"amount"`
	SaleType      string           `json:"sale_type"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	Observation   *string          `json:"observation,omitempty"`
	Date          time.Time        `json:"date"`
	SellerID      int              `json:"seller_id"`
	CustomerID    int              `json:"customer_id"`
	Customer      *CustomerSummary `json:"customer,omitempty"`
	Seller        *SellerSummary   `json:"seller,omitempty"`
	Products      []*ProductSale   `json:"products"`
	Services      []*ServiceSale   `json:"services"`
}

type ProductSale struct {
	ID           int                 `json:"product_sale_id"`
	SaleID       int                 `json:"sale_id"`
	ProductID    int                 `json:"product_id"`
	ProductPrice decimal.Decimal     `json:"product_price"`
	Quantity     int                 `json:"quantity"`
	Total        decimal.Decimal     `json:"total"`
	Zoning       *string             `json:"zoning,omitempty"`
	Product      *CatalogItemSummary `json:"product,omitempty"`
}

type ServiceSale struct {
	ID           int                 `json:"service_sale_id"`
	SaleID       int                 `json:"sale_id"`
	ServiceID    int                 `json:"service_id"`
	ServicePrice decimal.Decimal     `json:"service_price"`
	Quantity     int                 `json:"quantity"`
	Total        decimal.Decimal     `json:"total"`
	Zoning       *string             `json:"zoning,omitempty"`
	Service      *CatalogItemSummary `json:"service,omitempty"`
}

// CustomerSummary é a projeção do cliente devolvida junto com a venda
type CustomerSummary struct {
	ID      int     `json:"customer_id"`
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Contact *string `json:"contact,omitempty"`
}

// SellerSummary é a projeção do vendedor devolvida junto com a venda
type SellerSummary struct {
	ID     int          `json:"seller_id"`
	UserID int          `json:"user_id"`
	User   *UserSummary `json:"user,omitempty"`
}

type UserSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CatalogItemSummary struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Code *string `json:"code,omitempty"`
}

// CreateSaleRequest é a entrada já normalizada do fluxo de criação de venda
type CreateSaleRequest struct {
	SellerID      int
	CustomerID    int
	Items         []LineItem
	SaleType      string
	PaymentMethod *string
	Observation   *string
	Date          *time.Time
}

// SalePatch contém apenas os campos de cabeçalho que podem ser alterados.
// Itens de venda são imutáveis após a criação.
type SalePatch struct {
	SaleType      *string    `json:"sale_type"`
	PaymentMethod *string    `json:"payment_method"`
	Observation   *string    `json:"observation"`
	Date          *time.Time `json:"date"`
}

func (p *SalePatch) IsEmpty() bool {
	return p == nil ||
		(p.SaleType == nil && p.PaymentMethod == nil && p.Observation == nil && p.Date == nil)
}
