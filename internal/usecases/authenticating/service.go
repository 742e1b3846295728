package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/creator-cpm-sync/internal/config"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
)

// Authenticator valida os tokens emitidos para o dashboard e para o agendador externo
type Authenticator interface {
	GenerateToken(userID, role string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg config.Auth
}

func NewService(cfg config.Auth) Authenticator {
	return &Service{
		cfg: cfg,
	}
}

func (s *Service) GenerateToken(userID, role string, ttl time.Duration) (string, error) {
	if s.cfg.Secret == "" {
		return "", ErrMissingSecret
	}

	claims := domain.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if s.cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, "TOKEN_EXPIRED", "")
		}
		return nil, NewAuthError(ErrInvalidToken, "INVALID_TOKEN", err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, "INVALID_TOKEN", "")
	}

	switch claims.Role {
	case domain.RoleAdmin, domain.RoleService, domain.RoleViewer:
		return claims, nil
	default:
		return nil, NewAuthError(ErrInsufficientPrivilege, "INVALID_ROLE", claims.Role)
	}
}
