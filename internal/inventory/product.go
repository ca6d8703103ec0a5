package inventory

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const DefaultThreshold = 5

var (
	ErrDuplicateID     = errors.New("product id already exists")
	ErrDuplicateName   = errors.New("product name already exists")
	ErrNotFound        = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrOutOfStock      = errors.New("product out of stock")
	ErrInvalidName     = errors.New("invalid product name")
	ErrInvalidPrice    = errors.New("invalid price")
)

type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Purchase describes the effect of a single Buy.
type Purchase struct {
	Product Product // state after the purchase; the last known state when Removed
	Sold    int
	Removed bool
}

func (p Purchase) Total() decimal.Decimal {
	return p.Product.Price.Mul(decimal.NewFromInt(int64(p.Sold)))
}

func validate(p Product) error {
	if p.Name == "" || strings.IndexFunc(p.Name, unicode.IsSpace) >= 0 {
		return ErrInvalidName
	}
	if p.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
