package repository

//go:generate mockgen -source=salesperson.go -destination=mocks/salesperson.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

const salespersonsTable = "salespersons"

type SalespersonRepository interface {
	FindByID(ctx context.Context, sellerID int) (*domain.Salesperson, error)
	FindByUserID(ctx context.Context, userID int) (*domain.Salesperson, error)
	Create(ctx context.Context, seller *domain.Salesperson) (*domain.Salesperson, error)
	RecalculateSales(ctx context.Context) (int64, error)
}

type salespersonRepository struct {
	conn *postgres.Connection
}

func NewSalespersonRepository(conn *postgres.Connection) SalespersonRepository {
	return &salespersonRepository{
		conn: conn,
	}
}

func (r *salespersonRepository) FindByID(ctx context.Context, sellerID int) (*domain.Salesperson, error) {
	return r.find(ctx, squirrel.Eq{"seller_id": sellerID})
}

func (r *salespersonRepository) FindByUserID(ctx context.Context, userID int) (*domain.Salesperson, error) {
	return r.find(ctx, squirrel.Eq{"user_id": userID})
}

func (r *salespersonRepository) find(ctx context.Context, where squirrel.Eq) (*domain.Salesperson, error) {
	query, args, err := squirrel.
		Select("seller_id", "user_id", "sales", "commission_rate", "category_id", "created_at").
		From(salespersonsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		seller     domain.Salesperson
		commission decimal.NullDecimal
		categoryID sql.NullInt64
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&seller.ID,
		&seller.UserID,
		&seller.Sales,
		&commission,
		&categoryID,
		&seller.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendedor: %w", err)
	}

	if commission.Valid {
		seller.CommissionRate = &commission.Decimal
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		seller.CategoryID = &id
	}

	return &seller, nil
}

// Create insere um vendedor. Violação do índice único em user_id vira ErrConflict.
func (r *salespersonRepository) Create(ctx context.Context, seller *domain.Salesperson) (*domain.Salesperson, error) {
	query, args, err := squirrel.
		Insert(salespersonsTable).
		Columns("user_id", "sales", "commission_rate", "category_id").
		Values(seller.UserID, seller.Sales, seller.CommissionRate, seller.CategoryID).
		Suffix("RETURNING seller_id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&seller.ID, &seller.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("erro ao criar vendedor: %w", err)
	}

	return seller, nil
}

// RecalculateSales reescreve a coluna sales de cada vendedor com a soma de suas vendas
func (r *salespersonRepository) RecalculateSales(ctx context.Context) (int64, error) {
	query, args, err := squirrel.
		Update(salespersonsTable+" sp").
		Set("sales", squirrel.Expr("COALESCE((SELECT SUM(s.amount) FROM sales s WHERE s.seller_id = sp.seller_id), 0)")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao recalcular vendas dos vendedores: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return affected, nil
}
