package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors (400).
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotANumber          = fmt.Errorf("%w: invalid ID or quantity - must be numbers", ErrValidation)
	ErrNonPositiveQuantity = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrNegativeQuantity    = fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	ErrQuantityTooLarge    = fmt.Errorf("%w: quantity must not exceed %d", ErrValidation, MaxStockQuantity)
	ErrStockLimitExceeded  = fmt.Errorf("%w: stock would exceed %d units", ErrValidation, MaxStockQuantity)
	ErrInvalidProductID    = fmt.Errorf("%w: invalid or missing ID parameter", ErrValidation)
	ErrInvalidThreshold    = fmt.Errorf("%w: threshold must be a positive number", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("%w: unknown role", ErrValidation)
	ErrNothingToUpdate     = fmt.Errorf("%w: no fields to update", ErrValidation)
)

// Authentication errors (401). Every token failure wraps ErrUnauthenticated.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrTokenMissing       = fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	ErrTokenMalformed     = fmt.Errorf("%w: invalid token format", ErrUnauthenticated)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrTokenInvalid       = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
)

var ErrForbidden = errors.New("access forbidden")

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)

// Conflicts (409).
var (
	ErrUserExists       = errors.New("user already exists")
	ErrSKUExists        = errors.New("SKU already exists")
	ErrDuplicateRequest = errors.New("request with this idempotency key was already processed")
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Token issuing failures; these surface as 500.
var (
	ErrConfiguration   = errors.New("token configuration missing")
	ErrTokenGeneration = errors.New("token generation failed")
)

// InsufficientStockError reports how much was on hand when a pick was
// rejected.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock. Available: %d, Requested: %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ValidationMessage returns the reason after the "validation failed: "
// marker, dropping any operation context wrapped around it.
func ValidationMessage(err error) string {
	msg := err.Error()
	if _, reason, ok := strings.Cut(msg, ErrValidation.Error()+": "); ok {
		return reason
	}
	return msg
}
