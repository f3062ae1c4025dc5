package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Salesperson struct {
	ID             int              `json:"seller_id"`
	UserID         int              `json:"user_id"`
	Sales          decimal.Decimal  `json:"sales"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	CategoryID     *int             `json:"category_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}
