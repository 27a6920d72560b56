package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User é um operador do dashboard
type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	RoleID       int        `json:"role_id"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// UpdateUserRequest carrega as alterações parciais de um usuário
type UpdateUserRequest struct {
	ID     int     `json:"id"`
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	RoleID *int    `json:"role_id,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Claims são as claims do token JWT emitido no login
type Claims struct {
	UserID     int    `json:"user_id"`
	UserRoleID int    `json:"user_role_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}
