package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrConflict indica violação de unicidade no banco
var ErrConflict = errors.New("repository: registro duplicado")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
