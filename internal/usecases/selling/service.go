package selling

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-manager-api/infrastructure/repository"
	"github.com/vfg2006/sales-manager-api/internal/config"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sales-manager-api/pkg/log"
	"github.com/vfg2006/sales-manager-api/pkg/utils"
)

// Tentativas de gerar um código público ainda não usado
const maxCodeAttempts = 3

type SaleService interface {
	CreateSale(ctx context.Context, req *domain.CreateSaleRequest) (*domain.Sale, error)
	GetSales(ctx context.Context) ([]*domain.Sale, error)
	GetSaleByID(ctx context.Context, saleID int) (*domain.Sale, error)
	UpdateSale(ctx context.Context, saleID int, patch *domain.SalePatch) (*domain.Sale, error)
	DeleteSale(ctx context.Context, saleID int) error
	GetSalesByCurrentUserID(ctx context.Context, userID string) ([]*domain.Sale, error)
}

type Service struct {
	saleRepo     repository.SaleRepository
	sellerRepo   repository.SalespersonRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	serviceRepo  repository.ServiceRepository
	userRepo     repository.UserRepository
	cfg          config.Sale
	generateCode func(length int) (string, error)
}

func NewService(
	saleRepo repository.SaleRepository,
	sellerRepo repository.SalespersonRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	userRepo repository.UserRepository,
	cfg *config.Config,
) SaleService {
	return &Service{
		saleRepo:     saleRepo,
		sellerRepo:   sellerRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		userRepo:     userRepo,
		cfg:          cfg.Sale,
		generateCode: utils.GenerateCode,
	}
}

// CreateSale valida vendedor, cliente e itens, aplica a política de preço e
// persiste cabeçalho e itens de forma atômica.
func (s *Service) CreateSale(ctx context.Context, req *domain.CreateSaleRequest) (*domain.Sale, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"seller_id":   req.SellerID,
		"customer_id": req.CustomerID,
	})

	seller, err := s.sellerRepo.FindByID(ctx, req.SellerID)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar vendedor")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar vendedor")
	}
	if seller == nil {
		return nil, NewSaleError(ErrSellerNotFound, apiErrors.ErrResourceNotFound, "Vendedor não encontrado")
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar cliente")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar cliente")
	}
	if customer == nil {
		return nil, NewSaleError(ErrCustomerNotFound, apiErrors.ErrResourceNotFound, "Cliente não encontrado")
	}

	productItems, serviceItems, err := partitionItems(req.Items)
	if err != nil {
		return nil, err
	}

	productPrices, servicePrices, err := s.resolveCatalog(ctx, productItems, serviceItems)
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		SaleType:      strings.TrimSpace(req.SaleType),
		PaymentMethod: req.PaymentMethod,
		Observation:   req.Observation,
		SellerID:      seller.ID,
		CustomerID:    customer.ID,
		Amount:        decimal.Zero,
		Products:      make([]*domain.ProductSale, 0, len(productItems)),
		Services:      make([]*domain.ServiceSale, 0, len(serviceItems)),
	}
	if sale.SaleType == "" {
		sale.SaleType = domain.SaleTypeCash
	}
	if req.Date != nil {
		sale.Date = *req.Date
	}

	for _, item := range productItems {
		price, err := s.resolvePrice(item, productPrices[item.RefID])
		if err != nil {
			return nil, err
		}

		quantity, total := lineTotal(price, item.Quantity)
		sale.Amount = sale.Amount.Add(total)
		sale.Products = append(sale.Products, &domain.ProductSale{
			ProductID:    item.RefID,
			ProductPrice: price,
			Quantity:     quantity,
			Total:        total,
			Zoning:       item.Zoning,
		})
	}

	for _, item := range serviceItems {
		price, err := s.resolvePrice(item, servicePrices[item.RefID])
		if err != nil {
			return nil, err
		}

		quantity, total := lineTotal(price, item.Quantity)
		sale.Amount = sale.Amount.Add(total)
		sale.Services = append(sale.Services, &domain.ServiceSale{
			ServiceID:    item.RefID,
			ServicePrice: price,
			Quantity:     quantity,
			Total:        total,
			Zoning:       item.Zoning,
		})
	}

	created, err := s.persist(ctx, sale)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"sale_id": created.ID,
		"amount":  created.Amount.StringFixed(2),
	}).Info("Venda criada")

	return created, nil
}

// persist grava a venda gerando um novo código público a cada conflito de unicidade
func (s *Service) persist(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	logger := log.ForContext(ctx)

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.generateCode(s.cfg.CodeLength)
		if err != nil {
			logger.WithError(err).Error("Erro ao gerar código da venda")
			return nil, NewSaleError(ErrGenerateCode, apiErrors.ErrInternalServer, "Falha ao gerar código da venda")
		}
		sale.Code = code

		created, err := s.saleRepo.Create(ctx, sale)
		if err == nil {
			return created, nil
		}

		if !errors.Is(err, repository.ErrConflict) {
			logger.WithError(err).Error("Erro ao persistir venda")
			return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao registrar venda")
		}

		logger.Warnf("Código de venda %s já existe, tentativa %d de %d", code, attempt, maxCodeAttempts)
	}

	return nil, NewSaleError(ErrCodeConflict, apiErrors.ErrResourceConflict, "Não foi possível gerar um código de venda único")
}

// partitionItems separa os itens por tipo e rejeita itens malformados
func partitionItems(items []domain.LineItem) ([]domain.LineItem, []domain.LineItem, error) {
	products := make([]domain.LineItem, 0, len(items))
	services := make([]domain.LineItem, 0, len(items))

	for i, item := range items {
		if item.RefID <= 0 {
			return nil, nil, NewSaleError(ErrInvalidLineItem, apiErrors.ErrInvalidRequest, fmt.Sprintf("Item %d sem produto ou serviço válido", i))
		}
		if item.Quantity < 0 {
			return nil, nil, NewSaleError(ErrInvalidLineItem, apiErrors.ErrInvalidRequest, fmt.Sprintf("Item %d com quantidade negativa", i))
		}
		if item.Price != nil && item.Price.IsNegative() {
			return nil, nil, NewSaleError(ErrInvalidLineItem, apiErrors.ErrInvalidRequest, fmt.Sprintf("Item %d com preço negativo", i))
		}

		switch item.Kind {
		case domain.LineItemProduct:
			products = append(products, item)
		case domain.LineItemService:
			services = append(services, item)
		default:
			return nil, nil, NewSaleError(ErrInvalidLineItem, apiErrors.ErrInvalidRequest, fmt.Sprintf("Item %d com tipo desconhecido", i))
		}
	}

	return products, services, nil
}

// resolveCatalog confere que todos os ids existem e devolve o preço atual de cada um
func (s *Service) resolveCatalog(ctx context.Context, productItems, serviceItems []domain.LineItem) (map[int]decimal.Decimal, map[int]decimal.Decimal, error) {
	logger := log.ForContext(ctx)

	productPrices := make(map[int]decimal.Decimal)
	servicePrices := make(map[int]decimal.Decimal)
	refs := &InvalidReferences{}

	if ids := distinctIDs(productItems); len(ids) > 0 {
		products, err := s.productRepo.FindAllByIDs(ctx, ids)
		if err != nil {
			logger.WithError(err).Error("Erro ao buscar produtos")
			return nil, nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar produtos")
		}
		for _, p := range products {
			productPrices[p.ID] = p.Price
		}
		refs.Products = missingIDs(ids, productPrices)
	}

	if ids := distinctIDs(serviceItems); len(ids) > 0 {
		services, err := s.serviceRepo.FindAllByIDs(ctx, ids)
		if err != nil {
			logger.WithError(err).Error("Erro ao buscar serviços")
			return nil, nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar serviços")
		}
		for _, sv := range services {
			servicePrices[sv.ID] = sv.Price
		}
		refs.Services = missingIDs(ids, servicePrices)
	}

	if !refs.Empty() {
		return nil, nil, &SaleError{
			Err:        ErrInvalidReferences,
			Code:       apiErrors.ErrInvalidReference,
			Details:    "Um ou mais produtos/serviços são inválidos",
			References: refs,
		}
	}

	return productPrices, servicePrices, nil
}

// resolvePrice aplica a política de preço configurada
func (s *Service) resolvePrice(item domain.LineItem, catalogPrice decimal.Decimal) (decimal.Decimal, error) {
	switch s.cfg.PricingPolicy {
	case config.PricingPolicyCatalog:
		return utils.RoundMoney(catalogPrice), nil
	case config.PricingPolicyEnforce:
		if item.Price != nil && !item.Price.Equal(catalogPrice) {
			return decimal.Zero, NewSaleError(ErrPriceMismatch, apiErrors.ErrInvalidRequest,
				fmt.Sprintf("Preço %s difere do catálogo (%s) para o item %d", item.Price.StringFixed(2), catalogPrice.StringFixed(2), item.RefID))
		}
		return utils.RoundMoney(catalogPrice), nil
	default:
		if item.Price != nil {
			return utils.RoundMoney(*item.Price), nil
		}
		return utils.RoundMoney(catalogPrice), nil
	}
}

// lineTotal devolve a quantidade efetiva e o total da linha arredondado em 2 casas
func lineTotal(price decimal.Decimal, quantity int) (int, decimal.Decimal) {
	if quantity == 0 {
		quantity = 1
	}
	return quantity, utils.RoundMoney(price.Mul(decimal.NewFromInt(int64(quantity))))
}

func distinctIDs(items []domain.LineItem) []int {
	seen := make(map[int]struct{}, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.RefID]; ok {
			continue
		}
		seen[item.RefID] = struct{}{}
		ids = append(ids, item.RefID)
	}
	sort.Ints(ids)
	return ids
}

func missingIDs(requested []int, found map[int]decimal.Decimal) []int {
	var missing []int
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func (s *Service) GetSales(ctx context.Context) ([]*domain.Sale, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar vendas")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar vendas")
	}

	if sales == nil {
		sales = []*domain.Sale{}
	}

	return sales, nil
}

func (s *Service) GetSaleByID(ctx context.Context, saleID int) (*domain.Sale, error) {
	if saleID <= 0 {
		return nil, NewSaleError(ErrInvalidSaleID, apiErrors.ErrInvalidFormat, "ID da venda deve ser um inteiro positivo")
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("sale_id", saleID).Error("Erro ao buscar venda")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar venda")
	}
	if sale == nil {
		return nil, NewSaleError(ErrSaleNotFound, apiErrors.ErrResourceNotFound, "Venda não encontrada")
	}

	return sale, nil
}

// UpdateSale altera campos de cabeçalho e devolve a venda relida do banco
func (s *Service) UpdateSale(ctx context.Context, saleID int, patch *domain.SalePatch) (*domain.Sale, error) {
	if patch.IsEmpty() {
		return nil, NewSaleError(ErrEmptyPatch, apiErrors.ErrMissingRequiredData, "Nenhum campo para atualizar")
	}

	if _, err := s.GetSaleByID(ctx, saleID); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Update(ctx, saleID, patch); err != nil {
		log.ForContext(ctx).WithError(err).WithField("sale_id", saleID).Error("Erro ao atualizar venda")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar venda")
	}

	return s.GetSaleByID(ctx, saleID)
}

func (s *Service) DeleteSale(ctx context.Context, saleID int) error {
	if _, err := s.GetSaleByID(ctx, saleID); err != nil {
		return err
	}

	if err := s.saleRepo.Delete(ctx, saleID); err != nil {
		log.ForContext(ctx).WithError(err).WithField("sale_id", saleID).Error("Erro ao remover venda")
		return NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover venda")
	}

	return nil
}

// GetSalesByCurrentUserID resolve o vendedor do usuário autenticado e lista suas vendas.
// Administradores e vendedores sem cadastro de vendedor recebem um automaticamente.
func (s *Service) GetSalesByCurrentUserID(ctx context.Context, userID string) ([]*domain.Sale, error) {
	id, err := strconv.Atoi(strings.TrimSpace(userID))
	if err != nil || id <= 0 {
		return nil, NewSaleError(ErrInvalidUserID, apiErrors.ErrInvalidFormat, fmt.Sprintf("ID de usuário inválido: %q", userID))
	}

	seller, err := s.resolveSeller(ctx, id)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.FindBySellerID(ctx, seller.ID)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("seller_id", seller.ID).Error("Erro ao listar vendas do vendedor")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar vendas do vendedor")
	}

	if sales == nil {
		sales = []*domain.Sale{}
	}

	return sales, nil
}

func (s *Service) resolveSeller(ctx context.Context, userID int) (*domain.Salesperson, error) {
	logger := log.ForContext(ctx).WithField("user_id", userID)

	seller, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar vendedor do usuário")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar vendedor")
	}
	if seller != nil {
		return seller, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar usuário")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário")
	}
	if user == nil {
		return nil, NewSaleError(ErrUserNotFound, apiErrors.ErrResourceNotFound, "Usuário não encontrado")
	}

	if !user.CanSell() {
		return nil, NewSaleError(ErrSellerNotFound, apiErrors.ErrResourceNotFound, "Vendedor não encontrado")
	}

	seller, err = s.sellerRepo.Create(ctx, &domain.Salesperson{UserID: userID, Sales: decimal.Zero})
	if err == nil {
		logger.WithField("seller_id", seller.ID).Info("Vendedor criado automaticamente para o usuário")
		return seller, nil
	}

	if !errors.Is(err, repository.ErrConflict) {
		logger.WithError(err).Error("Erro ao criar vendedor")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar vendedor")
	}

	// Outra requisição criou o vendedor primeiro
	seller, err = s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar vendedor após conflito")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar vendedor")
	}
	if seller == nil {
		return nil, NewSaleError(ErrSellerConflict, apiErrors.ErrResourceConflict, "Conflito ao criar vendedor")
	}

	return seller, nil
}
