package repository

//go:generate mockgen -source=sale.go -destination=mocks/sale.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

const (
	salesTable        = "sales"
	productSalesTable = "product_sales"
	serviceSalesTable = "service_sales"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	FindAll(ctx context.Context) ([]*domain.Sale, error)
	FindByID(ctx context.Context, saleID int) (*domain.Sale, error)
	FindBySellerID(ctx context.Context, sellerID int) ([]*domain.Sale, error)
	Update(ctx context.Context, saleID int, patch *domain.SalePatch) error
	Delete(ctx context.Context, saleID int) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// Create grava o cabeçalho e todos os itens numa única transação.
// Se qualquer insert falhar nada fica persistido.
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := r.insertHeader(ctx, tx, sale); err != nil {
			return err
		}

		if err := r.insertProductSales(ctx, tx, sale.ID, sale.Products); err != nil {
			return err
		}

		return r.insertServiceSales(ctx, tx, sale.ID, sale.Services)
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (r *saleRepository) insertHeader(ctx context.Context, tx postgres.Queryer, sale *domain.Sale) error {
	var date interface{} = sale.Date
	if sale.Date.IsZero() {
		date = squirrel.Expr("NOW()")
	}

	query, args, err := squirrel.
		Insert(salesTable).
		Columns("code", "amount", "sale_type", "payment_method", "observation", "date", "seller_id", "customer_id").
		Values(sale.Code, sale.Amount, sale.SaleType, sale.PaymentMethod, sale.Observation, date, sale.SellerID, sale.CustomerID).
		Suffix("RETURNING sale_id, date").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := tx.QueryRowContext(ctx, query, args...).Scan(&sale.ID, &sale.Date); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("erro ao inserir venda: %w", err)
	}

	return nil
}

func (r *saleRepository) insertProductSales(ctx context.Context, tx postgres.Queryer, saleID int, items []*domain.ProductSale) error {
	if len(items) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(productSalesTable).
		Columns("sale_id", "product_id", "product_price", "quantity", "total", "zoning").
		Suffix("RETURNING product_sale_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range items {
		item.SaleID = saleID
		builder = builder.Values(saleID, item.ProductID, item.ProductPrice, item.Quantity, item.Total, item.Zoning)
	}

	ids, err := insertReturningIDs(ctx, tx, builder)
	if err != nil {
		return fmt.Errorf("erro ao inserir produtos da venda: %w", err)
	}

	for i := range ids {
		if i < len(items) {
			items[i].ID = ids[i]
		}
	}

	return nil
}

func (r *saleRepository) insertServiceSales(ctx context.Context, tx postgres.Queryer, saleID int, items []*domain.ServiceSale) error {
	if len(items) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(serviceSalesTable).
		Columns("sale_id", "service_id", "service_price", "quantity", "total", "zoning").
		Suffix("RETURNING service_sale_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range items {
		item.SaleID = saleID
		builder = builder.Values(saleID, item.ServiceID, item.ServicePrice, item.Quantity, item.Total, item.Zoning)
	}

	ids, err := insertReturningIDs(ctx, tx, builder)
	if err != nil {
		return fmt.Errorf("erro ao inserir serviços da venda: %w", err)
	}

	for i := range ids {
		if i < len(items) {
			items[i].ID = ids[i]
		}
	}

	return nil
}

func insertReturningIDs(ctx context.Context, q postgres.Queryer, builder squirrel.InsertBuilder) ([]int, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *saleRepository) FindAll(ctx context.Context) ([]*domain.Sale, error) {
	return r.findSales(ctx, nil)
}

func (r *saleRepository) FindByID(ctx context.Context, saleID int) (*domain.Sale, error) {
	sales, err := r.findSales(ctx, squirrel.Eq{"s.sale_id": saleID})
	if err != nil {
		return nil, err
	}

	if len(sales) == 0 {
		return nil, nil
	}

	return sales[0], nil
}

func (r *saleRepository) FindBySellerID(ctx context.Context, sellerID int) ([]*domain.Sale, error) {
	return r.findSales(ctx, squirrel.Eq{"s.seller_id": sellerID})
}

// findSales carrega os cabeçalhos com cliente e vendedor e depois os itens de todas
// as vendas encontradas, uma consulta por tabela de itens.
func (r *saleRepository) findSales(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Sale, error) {
	builder := squirrel.
		Select(
			"s.sale_id", "s.code", "s.amount", "s.sale_type", "s.payment_method", "s.observation",
			"s.date", "s.seller_id", "s.customer_id",
			"c.name", "c.email", "c.contact",
			"sp.user_id", "u.id", "u.name", "u.email",
		).
		From(salesTable + " s").
		Join("customers c ON c.customer_id = s.customer_id").
		LeftJoin("salespersons sp ON sp.seller_id = s.seller_id").
		LeftJoin("users u ON u.id = sp.user_id").
		OrderBy("s.date DESC", "s.sale_id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if len(sales) == 0 {
		return sales, nil
	}

	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}

	return sales, nil
}

func scanSale(rows *sql.Rows) (*domain.Sale, error) {
	var (
		sale      domain.Sale
		customer  domain.CustomerSummary
		spUserID  sql.NullInt64
		userID    sql.NullInt64
		userName  sql.NullString
		userEmail sql.NullString
	)

	if err := rows.Scan(
		&sale.ID,
		&sale.Code,
		&sale.Amount,
		&sale.SaleType,
		&sale.PaymentMethod,
		&sale.Observation,
		&sale.Date,
		&sale.SellerID,
		&sale.CustomerID,
		&customer.Name,
		&customer.Email,
		&customer.Contact,
		&spUserID,
		&userID,
		&userName,
		&userEmail,
	); err != nil {
		return nil, err
	}

	customer.ID = sale.CustomerID
	sale.Customer = &customer

	if spUserID.Valid {
		sale.Seller = &domain.SellerSummary{
			ID:     sale.SellerID,
			UserID: int(spUserID.Int64),
		}
		if userID.Valid {
			sale.Seller.User = &domain.UserSummary{
				ID:    int(userID.Int64),
				Name:  userName.String,
				Email: userEmail.String,
			}
		}
	}

	sale.Products = []*domain.ProductSale{}
	sale.Services = []*domain.ServiceSale{}

	return &sale, nil
}

func (r *saleRepository) loadItems(ctx context.Context, sales []*domain.Sale) error {
	byID := make(map[int]*domain.Sale, len(sales))
	ids := make([]int, 0, len(sales))
	for _, sale := range sales {
		byID[sale.ID] = sale
		ids = append(ids, sale.ID)
	}

	if err := r.loadProductSales(ctx, ids, byID); err != nil {
		return err
	}

	return r.loadServiceSales(ctx, ids, byID)
}

func (r *saleRepository) loadProductSales(ctx context.Context, saleIDs []int, byID map[int]*domain.Sale) error {
	query, args, err := squirrel.
		Select("ps.product_sale_id", "ps.sale_id", "ps.product_id", "ps.product_price", "ps.quantity", "ps.total", "ps.zoning", "p.name", "p.code").
		From(productSalesTable + " ps").
		LeftJoin("products p ON p.product_id = ps.product_id").
		Where(squirrel.Eq{"ps.sale_id": saleIDs}).
		OrderBy("ps.product_sale_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao consultar produtos das vendas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item domain.ProductSale
			name sql.NullString
			code sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductPrice, &item.Quantity, &item.Total, &item.Zoning, &name, &code); err != nil {
			return fmt.Errorf("erro ao escanear produto da venda: %w", err)
		}

		item.Product = catalogSummary(item.ProductID, name, code)

		if sale, ok := byID[item.SaleID]; ok {
			sale.Products = append(sale.Products, &item)
		}
	}

	return rows.Err()
}

func (r *saleRepository) loadServiceSales(ctx context.Context, saleIDs []int, byID map[int]*domain.Sale) error {
	query, args, err := squirrel.
		Select("ss.service_sale_id", "ss.sale_id", "ss.service_id", "ss.service_price", "ss.quantity", "ss.total", "ss.zoning", "sv.name", "sv.code").
		From(serviceSalesTable + " ss").
		LeftJoin("services sv ON sv.service_id = ss.service_id").
		Where(squirrel.Eq{"ss.sale_id": saleIDs}).
		OrderBy("ss.service_sale_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao consultar serviços das vendas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item domain.ServiceSale
			name sql.NullString
			code sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ServiceID, &item.ServicePrice, &item.Quantity, &item.Total, &item.Zoning, &name, &code); err != nil {
			return fmt.Errorf("erro ao escanear serviço da venda: %w", err)
		}

		item.Service = catalogSummary(item.ServiceID, name, code)

		if sale, ok := byID[item.SaleID]; ok {
			sale.Services = append(sale.Services, &item)
		}
	}

	return rows.Err()
}

func catalogSummary(id int, name, code sql.NullString) *domain.CatalogItemSummary {
	if !name.Valid {
		return nil
	}

	summary := &domain.CatalogItemSummary{ID: id, Name: name.String}
	if code.Valid {
		summary.Code = &code.String
	}

	return summary
}

// Update altera apenas colunas do cabeçalho
func (r *saleRepository) Update(ctx context.Context, saleID int, patch *domain.SalePatch) error {
	if patch.IsEmpty() {
		return nil
	}

	builder := squirrel.
		Update(salesTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		PlaceholderFormat(squirrel.Dollar)

	if patch.SaleType != nil {
		builder = builder.Set("sale_type", *patch.SaleType)
	}

	if patch.PaymentMethod != nil {
		builder = builder.Set("payment_method", *patch.PaymentMethod)
	}

	if patch.Observation != nil {
		builder = builder.Set("observation", *patch.Observation)
	}

	if patch.Date != nil {
		builder = builder.Set("date", *patch.Date)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar venda: %w", err)
	}

	return nil
}

// Delete remove os itens antes do cabeçalho, tudo na mesma transação
func (r *saleRepository) Delete(ctx context.Context, saleID int) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{productSalesTable, serviceSalesTable, salesTable} {
			query, args, err := squirrel.
				Delete(table).
				Where(squirrel.Eq{"sale_id": saleID}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("erro ao remover registros de %s: %w", table, err)
			}
		}

		return nil
	})
}
