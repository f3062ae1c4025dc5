package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-manager-api/internal/config"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "segredo-de-teste"

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, &config.Config{SecretKey: testSecret})

	tests := []struct {
		name     string
		email    string
		password string
		setup    func()
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Login com sucesso gera token com o perfil",
			email:    "  Vendedor@Loja.com ",
			password: "Senha@123",
			setup: func() {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "vendedor@loja.com").Return(&domain.User{
					ID:           11,
					Name:         "João",
					Email:        "vendedor@loja.com",
					Role:         domain.RoleSalesperson,
					PasswordHash: hashPassword(t, "Senha@123"),
				}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				require.NoError(t, err)

				claims, err := service.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, 11, claims.UserID)
				assert.Equal(t, domain.RoleSalesperson, claims.UserRole)
			},
		},
		{
			name:     "Email ou senha ausentes",
			email:    "",
			password: "x",
			setup:    func() {},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name:     "Usuário inexistente",
			email:    "ninguem@loja.com",
			password: "x",
			setup: func() {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ninguem@loja.com").Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
			},
		},
		{
			name:     "Usuário bloqueado",
			email:    "bloqueado@loja.com",
			password: "x",
			setup: func() {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "bloqueado@loja.com").Return(&domain.User{ID: 3, Role: domain.RoleBlocked}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "Senha incorreta",
			email:    "admin@loja.com",
			password: "errada",
			setup: func() {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "admin@loja.com").Return(&domain.User{
					ID:           1,
					Role:         domain.RoleAdmin,
					PasswordHash: hashPassword(t, "certa"),
				}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, 1, authErr.UserID)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			},
		},
		{
			name:     "Erro de banco",
			email:    "admin@loja.com",
			password: "x",
			setup: func() {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "admin@loja.com").Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			token, err := service.LoginUser(context.Background(), tt.email, tt.password)

			tt.validate(t, token, err)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(nil, &config.Config{SecretKey: testSecret})

	sign := func(secret string, expiresAt time.Time) string {
		claims := domain.Claims{
			UserID:   5,
			UserRole: domain.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	t.Run("Token expirado", func(t *testing.T) {
		_, err := service.ValidateToken(sign(testSecret, time.Now().Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Assinatura com outro segredo", func(t *testing.T) {
		_, err := service.ValidateToken(sign("outro", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token válido", func(t *testing.T) {
		claims, err := service.ValidateToken(sign(testSecret, time.Now().Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, 5, claims.UserID)
	})
}

func TestService_GetUserProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, &config.Config{SecretKey: testSecret})

	userRepo.EXPECT().GetUserByID(gomock.Any(), 11).Return(&domain.User{ID: 11, PasswordHash: "hash"}, nil)
	userRepo.EXPECT().GetUserByID(gomock.Any(), 12).Return(nil, nil)

	user, err := service.GetUserProfile(context.Background(), 11)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = service.GetUserProfile(context.Background(), 12)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
