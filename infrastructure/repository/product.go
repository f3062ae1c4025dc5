package repository

//go:generate mockgen -source=product.go -destination=mocks/product.go -package=mocks

import (
	"context"

	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

type ProductRepository interface {
	FindAllByIDs(ctx context.Context, ids []int) ([]*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) FindAllByIDs(ctx context.Context, ids []int) ([]*domain.Product, error) {
	rows, err := findCatalogItems(ctx, r.conn, productsTable, "product_id", ids)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, &domain.Product{ID: row.id, CatalogItem: row.item})
	}

	return products, nil
}
