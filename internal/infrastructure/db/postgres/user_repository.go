package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopwarehouse/warehouse-api/internal/core/domain"
)

const userColumns = "id, email, password_hash, role, created_at"

// UserRepository is the relational credential store.
type UserRepository struct {
	db *Database
}

func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create relies on the unique index on email; a violation surfaces as
// domain.ErrUserExists. The row is read back so created_at carries the
// store's own representation.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var id int64
	query := r.db.Rebind(`
		INSERT INTO users (email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
