package utils

import "github.com/shopspring/decimal"

// Casas decimais usadas em preços, totais e valor da venda
const moneyPlaces = 2

// RoundMoney arredonda para centavos, metade para longe do zero
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	return d.Round(moneyPlaces)
}
