// Package catalog defines the product model and its repository contract.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase.
type Product struct {
	ID            string
	Name          string
	NameNepali    string
	Category      string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Unit          string
	Variations    []string
	Image         string
	Description   string
	Stock         int
	Featured      bool
}

// Repository defines access to the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
