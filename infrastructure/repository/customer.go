package repository

//go:generate mockgen -source=customer.go -destination=mocks/customer.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

const customersTable = "customers"

type CustomerRepository interface {
	FindByID(ctx context.Context, customerID int) (*domain.Customer, error)
}

type customerRepository struct {
	conn *postgres.Connection
}

func NewCustomerRepository(conn *postgres.Connection) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) FindByID(ctx context.Context, customerID int) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select("customer_id", "name", "email", "contact", "observation", "address", "postal_code").
		From(customersTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var customer domain.Customer
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Contact,
		&customer.Observation,
		&customer.Address,
		&customer.PostalCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return &customer, nil
}
