package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

type sessionClaims struct {
	UserID int64       `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. The signing secret
// and lifetime are injected once at startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken signs a token carrying userID, email and role.
func (s *TokenService) IssueToken(userID int64, email string, role domain.Role) (string, error) {
	if len(s.secret) == 0 || s.ttl <= 0 {
		return "", domain.ErrConfiguration
	}
	if userID <= 0 || email == "" || !role.Valid() {
		return "", fmt.Errorf("%w: token subject is incomplete", domain.ErrValidation)
	}

	now := s.now()
	claims := sessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenGeneration, err)
	}
	return signed, nil
}

// Verify parses an "Authorization: Bearer <token>" header value.
func (s *TokenService) Verify(authorizationHeader string) (*domain.Identity, error) {
	if len(s.secret) == 0 {
		return nil, domain.ErrConfiguration
	}
	header := strings.TrimSpace(authorizationHeader)
	if header == "" {
		return nil, domain.ErrTokenMissing
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, domain.ErrTokenMalformed
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, domain.ErrTokenMalformed
	default:
		return nil, domain.ErrTokenInvalid
	}

	if claims.UserID <= 0 || claims.Email == "" || !claims.Role.Valid() {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
