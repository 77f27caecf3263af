package domain

import (
	"errors"
	"testing"
)

func TestParseStockParams(t *testing.T) {
	id, qty, err := ParseStockParams("12", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 12 || qty != 5 {
		t.Fatalf("got id=%d qty=%d", id, qty)
	}

	for _, raw := range [][2]string{{"abc", "5"}, {"1", "five"}, {"", "1"}, {"1", ""}, {"1.5", "2"}} {
		if _, _, err := ParseStockParams(raw[0], raw[1]); !errors.Is(err, ErrNotANumber) {
			t.Errorf("ParseStockParams(%q, %q): expected ErrNotANumber, got %v", raw[0], raw[1], err)
		}
	}

	if _, _, err := ParseStockParams("0", "1"); !errors.Is(err, ErrInvalidProductID) {
		t.Errorf("expected ErrInvalidProductID for id 0, got %v", err)
	}
}

func TestStockChange_Validate(t *testing.T) {
	over := MaxStockQuantity
	over++

	cases := []struct {
		name string
		op   StockOperation
		qty  int
		want error
	}{
		{"receive positive", OpReceive, 5, nil},
		{"receive zero", OpReceive, 0, ErrNonPositiveQuantity},
		{"pick negative", OpPick, -3, ErrNonPositiveQuantity},
		{"pick positive", OpPick, 1, nil},
		{"adjust zero allowed", OpAdjust, 0, nil},
		{"adjust negative", OpAdjust, -1, ErrNegativeQuantity},
		{"receive at limit", OpReceive, MaxStockQuantity, nil},
		{"receive over limit", OpReceive, over, ErrQuantityTooLarge},
		{"adjust over limit", OpAdjust, over, ErrQuantityTooLarge},
		{"pick over limit", OpPick, over, ErrQuantityTooLarge},
	}

	for _, tc := range cases {
		err := StockChange{ProductID: 1, Quantity: tc.qty}.Validate(tc.op)
		if !errors.Is(err, tc.want) && !(err == nil && tc.want == nil) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestValidationErrorsAreGrouped(t *testing.T) {
	for _, err := range []error{ErrNotANumber, ErrNonPositiveQuantity, ErrNegativeQuantity, ErrInvalidProductID, ErrInvalidRole} {
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%v must wrap ErrValidation", err)
		}
	}
	if got := ValidationMessage(ErrNonPositiveQuantity); got != "quantity must be positive" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestInsufficientStockError(t *testing.T) {
	var err error = &InsufficientStockError{Available: 10, Requested: 15}
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("InsufficientStockError must match ErrInsufficientStock")
	}
	if err.Error() != "insufficient stock. Available: 10, Requested: 15" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestParseThreshold(t *testing.T) {
	if n, err := ParseThreshold(""); err != nil || n != 0 {
		t.Fatalf("empty threshold: got %d, %v", n, err)
	}
	if n, err := ParseThreshold("15"); err != nil || n != 15 {
		t.Fatalf("got %d, %v", n, err)
	}
	for _, raw := range []string{"0", "-4", "abc"} {
		if _, err := ParseThreshold(raw); !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("ParseThreshold(%q): expected ErrInvalidThreshold, got %v", raw, err)
		}
	}
}
