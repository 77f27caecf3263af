package domain

import (
	"math"
	"strconv"
	"strings"
)

// MaxStockQuantity is the largest value stock_quantity can hold.
const MaxStockQuantity = math.MaxInt32

// StockOperation names the three kinds of stock mutation.
type StockOperation string

const (
	OpReceive StockOperation = "receive"
	OpPick    StockOperation = "pick"
	OpAdjust  StockOperation = "adjust"
)

// StockChange is a single requested mutation against one product. ActorID
// is the user id of the authenticated caller, zero when there is none.
type StockChange struct {
	ProductID      int64
	Quantity       int
	IdempotencyKey string
	ActorID        int64
}

// ParseStockParams parses the raw id and quantity query parameters.
func ParseStockParams(rawID, rawQuantity string) (int64, int, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return 0, 0, ErrNotANumber
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rawQuantity))
	if err != nil {
		return 0, 0, ErrNotANumber
	}
	if id <= 0 {
		return 0, 0, ErrInvalidProductID
	}
	return id, qty, nil
}

// ParseProductID parses a product id query parameter.
func ParseProductID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidProductID
	}
	return id, nil
}

// Validate checks the quantity against the rules of op. Receive and pick need
// a strictly positive quantity; adjust sets an absolute value and accepts zero.
func (c StockChange) Validate(op StockOperation) error {
	if c.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if c.Quantity > MaxStockQuantity {
		return ErrQuantityTooLarge
	}
	if op == OpAdjust {
		if c.Quantity < 0 {
			return ErrNegativeQuantity
		}
		return nil
	}
	if c.Quantity <= 0 {
		return ErrNonPositiveQuantity
	}
	return nil
}

// ParseThreshold parses an optional low-stock threshold. An empty value
// yields 0, which callers treat as "use the configured default".
func ParseThreshold(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, ErrInvalidThreshold
	}
	return n, nil
}
