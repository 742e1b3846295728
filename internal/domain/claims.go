package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin   = "admin"
	RoleService = "service"
	RoleViewer  = "viewer"
)

// Claims do token emitido pelo dashboard ou pelo agendador externo
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
