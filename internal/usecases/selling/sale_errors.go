package selling

import (
	"errors"
	"fmt"
)

// Erros do fluxo de vendas
var (
	// Recursos inexistentes
	ErrSellerNotFound   = errors.New("seller not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrUserNotFound     = errors.New("user not found")

	// Referências de catálogo
	ErrInvalidReferences = errors.New("one or more products/services are invalid")

	// Erros de validação
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrInvalidSaleID   = errors.New("invalid sale id")
	ErrInvalidLineItem = errors.New("invalid line item")
	ErrPriceMismatch   = errors.New("line item price differs from catalog price")
	ErrEmptyPatch      = errors.New("no fields to update")

	// Conflitos
	ErrSellerConflict = errors.New("seller provisioning conflict")
	ErrCodeConflict   = errors.New("sale code already in use")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateCode      = errors.New("error generating sale code")
)

// InvalidReferences lista os ids de catálogo que não foram encontrados
type InvalidReferences struct {
	Products []int `json:"products,omitempty"`
	Services []int `json:"services,omitempty"`
}

func (r *InvalidReferences) Empty() bool {
	return r == nil || (len(r.Products) == 0 && len(r.Services) == 0)
}

// SaleError é um erro com contexto adicional para vendas
type SaleError struct {
	Err        error              // Erro base
	Code       string             // Código de erro para API
	Details    string             // Detalhes adicionais
	References *InvalidReferences // Ids inválidos, quando aplicável
}

// Error implementa a interface error
func (e *SaleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SaleError) Unwrap() error {
	return e.Err
}

// NewSaleError cria um novo SaleError
func NewSaleError(err error, code string, details string) *SaleError {
	return &SaleError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// IsNotFound verifica se o erro indica um recurso inexistente
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSellerNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrSaleNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
