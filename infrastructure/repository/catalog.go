package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

const (
	productsTable = "products"
	servicesTable = "services"
)

var catalogColumns = []string{"name", "code", "price", "description", "zoning", "product_type", "segment", "observation"}

type catalogRow struct {
	id   int
	item domain.CatalogItem
}

// findCatalogItems busca itens de products ou services pelo conjunto de ids.
// Ids inexistentes simplesmente não aparecem no resultado.
func findCatalogItems(ctx context.Context, conn postgres.Queryer, table, idColumn string, ids []int) ([]catalogRow, error) {
	if len(ids) == 0 {
		return []catalogRow{}, nil
	}

	query, args, err := squirrel.
		Select(append([]string{idColumn}, catalogColumns...)...).
		From(table).
		Where(squirrel.Eq{idColumn: ids}).
		OrderBy(idColumn).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar %s: %w", table, err)
	}
	defer rows.Close()

	result := []catalogRow{}
	for rows.Next() {
		var row catalogRow
		if err := rows.Scan(
			&row.id,
			&row.item.Name,
			&row.item.Code,
			&row.item.Price,
			&row.item.Description,
			&row.item.Zoning,
			&row.item.ProductType,
			&row.item.Segment,
			&row.item.Observation,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear %s: %w", table, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}
