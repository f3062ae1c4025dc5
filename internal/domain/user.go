package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso
const (
	RoleAdmin       = "admin"
	RoleViewer      = "viewer"
	RoleBlocked     = "blocked"
	RoleSalesperson = "salesperson"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanSell indica se o usuário pode ter um cadastro de vendedor criado automaticamente
func (u *User) CanSell() bool {
	return u.Role == RoleAdmin || u.Role == RoleSalesperson
}

type Claims struct {
	UserID    int
	UserName  string
	UserEmail string
	UserRole  string
	jwt.RegisteredClaims
}
