package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-manager-api/internal/api/handler/router"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/internal/usecases/selling"
	"github.com/vfg2006/sales-manager-api/internal/usecases/selling/mocks"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
	"github.com/vfg2006/sales-manager-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

// withRole simula o AuthMiddleware gravando as claims no contexto
func withRole(next http.Handler, userID int, role string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role != "" {
			r = r.WithContext(middleware.WithClaims(r.Context(), &domain.Claims{UserID: userID, UserRole: role}))
		}
		next.ServeHTTP(w, r)
	})
}

func newSalesRouter(service selling.SaleService, userID int, role string) http.Handler {
	return withRole(router.New(router.WithRoutes(Sales(service)...)), userID, role)
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestCreateSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockSaleService(ctrl)
	handler := newSalesRouter(service, 11, domain.RoleSalesperson)

	created := &domain.Sale{
		ID:       42,
		Code:     "AbC123xY",
		Amount:   decimal.RequireFromString("200.00"),
		SaleType: domain.SaleTypeCash,
		Date:     time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		SellerID: 3,
	}

	tests := []struct {
		name     string
		body     string
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Lista única products com produto e serviço",
			body: `{"seller_id":3,"customer_id":7,"products":[
				{"product_id":10,"product_price":50.0,"quantity":2},
				{"service_id":20,"product_price":"100.00","quantity":1,"zoning":"A1"}]}`,
			setup: func() {
				service.EXPECT().CreateSale(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req *domain.CreateSaleRequest) (*domain.Sale, error) {
						require.Len(t, req.Items, 2)
						assert.Equal(t, 3, req.SellerID)
						assert.Equal(t, 7, req.CustomerID)
						assert.Equal(t, domain.LineItemProduct, req.Items[0].Kind)
						assert.Equal(t, 10, req.Items[0].RefID)
						assert.True(t, decimal.NewFromInt(50).Equal(*req.Items[0].Price))
						assert.Equal(t, domain.LineItemService, req.Items[1].Kind)
						assert.Equal(t, "A1", *req.Items[1].Zoning)
						return created, nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusCreated, rec.Code)
				assert.Contains(t, rec.Body.String(), `"sale_id":42`)
				assert.Contains(t, rec.Body.String(), `"amount":"200"`)
			},
		},
		{
			name: "Listas separadas produtos e servicos",
			body: `{"seller_id":3,"customer_id":7,
				"produtos":[{"product_id":10,"price":"5.50"}],
				"servicos":[{"service_id":20,"quantity":3}]}`,
			setup: func() {
				service.EXPECT().CreateSale(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req *domain.CreateSaleRequest) (*domain.Sale, error) {
						require.Len(t, req.Items, 2)
						assert.True(t, req.Items[0].IsProduct())
						assert.True(t, req.Items[1].IsService())
						assert.Nil(t, req.Items[1].Price)
						assert.Equal(t, 3, req.Items[1].Quantity)
						return created, nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusCreated, rec.Code)
			},
		},
		{
			name:  "Item com produto e serviço ao mesmo tempo",
			body:  `{"seller_id":3,"customer_id":7,"products":[{"product_id":10,"service_id":20}]}`,
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:  "Item sem referência",
			body:  `{"seller_id":3,"customer_id":7,"products":[{"quantity":1}]}`,
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:  "Serviço dentro da lista produtos",
			body:  `{"seller_id":3,"customer_id":7,"produtos":[{"service_id":20}]}`,
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:  "JSON malformado",
			body:  `{"seller_id":`,
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
			},
		},
		{
			name: "Referências inválidas viram 422 com os ids",
			body: `{"seller_id":3,"customer_id":7,"products":[{"product_id":999}]}`,
			setup: func() {
				saleErr := selling.NewSaleError(selling.ErrInvalidReferences, apiErrors.ErrInvalidReference, "")
				saleErr.References = &selling.InvalidReferences{Products: []int{999}}
				service.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(nil, saleErr)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, "one or more products/services are invalid", apiErr.Message)
				assert.Contains(t, rec.Body.String(), `"products":[999]`)
			},
		},
		{
			name: "Vendedor inexistente vira 404",
			body: `{"seller_id":99,"customer_id":7}`,
			setup: func() {
				service.EXPECT().CreateSale(gomock.Any(), gomock.Any()).
					Return(nil, selling.NewSaleError(selling.ErrSellerNotFound, apiErrors.ErrResourceNotFound, "Vendedor não encontrado"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, "seller not found", decodeAPIError(t, rec).Message)
			},
		},
		{
			name: "Erro inesperado vira 500",
			body: `{"seller_id":3,"customer_id":7}`,
			setup: func() {
				service.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}

func TestSaleQueryHandlers(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		role     string
		setup    func(service *mocks.MockSaleService)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Lista vazia serializa como []",
			method: http.MethodGet,
			path:   "/v1/sales",
			role:   domain.RoleViewer,
			setup: func(service *mocks.MockSaleService) {
				service.EXPECT().GetSales(gomock.Any()).Return([]*domain.Sale{}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `[]`, rec.Body.String())
			},
		},
		{
			name:   "Busca por id",
			method: http.MethodGet,
			path:   "/v1/sales/42",
			role:   domain.RoleAdmin,
			setup: func(service *mocks.MockSaleService) {
				service.EXPECT().GetSaleByID(gomock.Any(), 42).Return(&domain.Sale{ID: 42}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"sale_id":42`)
			},
		},
		{
			name:   "Id não numérico não chega ao serviço",
			method: http.MethodGet,
			path:   "/v1/sales/abc",
			role:   domain.RoleAdmin,
			setup:  func(*mocks.MockSaleService) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "Venda inexistente",
			method: http.MethodGet,
			path:   "/v1/sales/7",
			role:   domain.RoleAdmin,
			setup: func(service *mocks.MockSaleService) {
				service.EXPECT().GetSaleByID(gomock.Any(), 7).
					Return(nil, selling.NewSaleError(selling.ErrSaleNotFound, apiErrors.ErrResourceNotFound, ""))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
			},
		},
		{
			name:   "Atualização parcial devolve a venda",
			method: http.MethodPut,
			path:   "/v1/sales/42",
			body:   `{"observation":"entregue"}`,
			role:   domain.RoleSalesperson,
			setup: func(service *mocks.MockSaleService) {
				service.EXPECT().UpdateSale(gomock.Any(), 42, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ int, patch *domain.SalePatch) (*domain.Sale, error) {
						require.NotNil(t, patch.Observation)
						assert.Equal(t, "entregue", *patch.Observation)
						assert.Nil(t, patch.SaleType)
						return &domain.Sale{ID: 42, Observation: patch.Observation}, nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"observation":"entregue"`)
			},
		},
		{
			name:   "Visualizador não pode atualizar",
			method: http.MethodPut,
			path:   "/v1/sales/42",
			body:   `{"observation":"x"}`,
			role:   domain.RoleViewer,
			setup:  func(*mocks.MockSaleService) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusForbidden, rec.Code)
			},
		},
		{
			name:   "Remoção devolve 204",
			method: http.MethodDelete,
			path:   "/v1/sales/42",
			role:   domain.RoleAdmin,
			setup: func(service *mocks.MockSaleService) {
				service.EXPECT().DeleteSale(gomock.Any(), 42).Return(nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNoContent, rec.Code)
				assert.Empty(t, rec.Body.String())
			},
		},
		{
			name:   "Vendedor não pode remover",
			method: http.MethodDelete,
			path:   "/v1/sales/42",
			role:   domain.RoleSalesperson,
			setup:  func(*mocks.MockSaleService) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusForbidden, rec.Code)
			},
		},
		{
			name:   "Minhas vendas usa o id do token",
			method: http.MethodGet,
			path:   "/v1/me/sales",
			role:   domain.RoleSalesperson,
			setup: func(service *mocks.MockSaleService) {
				service.EXPECT().GetSalesByCurrentUserID(gomock.Any(), "11").Return([]*domain.Sale{}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `[]`, rec.Body.String())
			},
		},
		{
			name:   "Vendas de outro usuário repassa o id da rota",
			method: http.MethodGet,
			path:   "/v1/users/abc/sales",
			role:   domain.RoleAdmin,
			setup: func(service *mocks.MockSaleService) {
				service.EXPECT().GetSalesByCurrentUserID(gomock.Any(), "abc").
					Return(nil, selling.NewSaleError(selling.ErrInvalidUserID, apiErrors.ErrInvalidFormat, ""))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, "invalid user id", decodeAPIError(t, rec).Message)
			},
		},
		{
			name:   "Usuário bloqueado é recusado",
			method: http.MethodGet,
			path:   "/v1/sales",
			role:   domain.RoleBlocked,
			setup:  func(*mocks.MockSaleService) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusForbidden, rec.Code)
			},
		},
		{
			name:   "Sem claims no contexto",
			method: http.MethodGet,
			path:   "/v1/sales",
			role:   "",
			setup:  func(*mocks.MockSaleService) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockSaleService(ctrl)
			tt.setup(service)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newSalesRouter(service, 11, tt.role).ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}
