package repository

//go:generate mockgen -source=service_catalog.go -destination=mocks/service_catalog.go -package=mocks

import (
	"context"

	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

type ServiceRepository interface {
	FindAllByIDs(ctx context.Context, ids []int) ([]*domain.Service, error)
}

type serviceRepository struct {
	conn *postgres.Connection
}

func NewServiceRepository(conn *postgres.Connection) ServiceRepository {
	return &serviceRepository{
		conn: conn,
	}
}

func (r *serviceRepository) FindAllByIDs(ctx context.Context, ids []int) ([]*domain.Service, error) {
	rows, err := findCatalogItems(ctx, r.conn, servicesTable, "service_id", ids)
	if err != nil {
		return nil, err
	}

	services := make([]*domain.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, &domain.Service{ID: row.id, CatalogItem: row.item})
	}

	return services, nil
}
