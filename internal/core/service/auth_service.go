package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
	"github.com/shopwarehouse/warehouse-api/internal/core/ports"
)

const passwordHashCost = 8

// dummyHash is compared against when the email is unknown so that both login
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), passwordHashCost)

// AuthService implements registration, login and account lookup.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Register validates and stores a new account with the given role.
func (s *AuthService) Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if minLen := role.MinPasswordLength(); len(password) < minLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", string(role)).Msg("user registered")
	return created, nil
}

// RegisterCustomer is the self-service path: it creates a customer account
// and returns a session token for it.
func (s *AuthService) RegisterCustomer(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.Register(ctx, email, password, domain.RoleCustomer)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateStaffAccount creates an employee or admin account on behalf of actor,
// who must be an admin. No token is issued for the new account.
func (s *AuthService) CreateStaffAccount(ctx context.Context, actor *domain.Identity, email, password string, role domain.Role) (*domain.User, error) {
	if role != domain.RoleEmployee && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidRole
	}
	if !domain.Authorize(actor, domain.AccessAdminOnly) {
		return nil, domain.ErrForbidden
	}
	return s.Register(ctx, email, password, role)
}

// Login checks credentials and issues a fresh token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Verify(authorizationHeader string) (*domain.Identity, error) {
	return s.tokens.Verify(authorizationHeader)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already registered.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if _, err := s.Register(ctx, email, password, domain.RoleAdmin); err != nil && !errors.Is(err, domain.ErrUserExists) {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	return nil
}
