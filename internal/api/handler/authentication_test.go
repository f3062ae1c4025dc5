package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-manager-api/internal/api/handler/router"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-manager-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(service *mocks.MockAuthenticator)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Login com sucesso",
			body: `{"email":"admin@loja.com","password":"segredo"}`,
			setup: func(service *mocks.MockAuthenticator) {
				service.EXPECT().LoginUser(gomock.Any(), "admin@loja.com", "segredo").Return("jwt-token", nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `{"token":"jwt-token"}`, rec.Body.String())
			},
		},
		{
			name: "Senha incorreta devolve código do AuthError",
			body: `{"email":"admin@loja.com","password":"errada"}`,
			setup: func(service *mocks.MockAuthenticator) {
				service.EXPECT().LoginUser(gomock.Any(), "admin@loja.com", "errada").
					Return("", authenticating.NewUserAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, 1, "Senha incorreta"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, apiErrors.ErrInvalidCredentials, apiErr.Code)
			},
		},
		{
			name: "Erro sem contexto vira 500",
			body: `{"email":"admin@loja.com","password":"x"}`,
			setup: func(service *mocks.MockAuthenticator) {
				service.EXPECT().LoginUser(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("boom"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
			},
		},
		{
			name:  "Corpo inválido",
			body:  `email=admin`,
			setup: func(*mocks.MockAuthenticator) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockAuthenticator(ctrl)
			tt.setup(service)

			req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.New(router.WithRoutes(Authentication(service)...)).ServeHTTP(rec, req)

			tt.validate(t, rec)
		})
	}
}

func TestGetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockAuthenticator(ctrl)
	rt := router.New(router.WithRoutes(Authentication(service)...))

	t.Run("Devolve o perfil do token", func(t *testing.T) {
		service.EXPECT().GetUserProfile(gomock.Any(), 11).Return(&domain.User{ID: 11, Name: "João", Role: domain.RoleViewer}, nil)

		rec := httptest.NewRecorder()
		withRole(rt, 11, domain.RoleViewer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"João"`)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("Usuário removido após emissão do token", func(t *testing.T) {
		service.EXPECT().GetUserProfile(gomock.Any(), 12).Return(nil, authenticating.ErrUserNotFound)

		rec := httptest.NewRecorder()
		withRole(rt, 12, domain.RoleAdmin).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
