package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"plataforma-pedidos/internal/config"
	apperrors "plataforma-pedidos/internal/errors"
)

const RoleAdmin = "admin"

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service authenticates the single configured admin. Login is disabled while
// no password hash is configured.
type Service struct {
	secret       []byte
	adminUser    string
	passwordHash []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewService(cfg config.AuthConfig) *Service {
	return &Service{
		secret:       []byte(cfg.JWTSecret),
		adminUser:    cfg.AdminUser,
		passwordHash: []byte(cfg.AdminPasswordHash),
		ttl:          cfg.SessionTTL,
		now:          time.Now,
	}
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(username, password string) (string, *User, error) {
	if len(s.passwordHash) == 0 || username != s.adminUser {
		return "", nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	now := s.now()
	claims := &Claims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, apperrors.NewInternalError("signing session token", err)
	}

	return token, &User{Username: username, Role: RoleAdmin}, nil
}

// Verify returns the user a session token belongs to.
func (s *Service) Verify(token string) (*User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, apperrors.NewUnauthorizedError(fmt.Sprintf("invalid session: %v", err))
	}

	return &User{Username: claims.Username, Role: claims.Role}, nil
}
