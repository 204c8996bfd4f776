package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents the product entity
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
}

// NewProduct builds a product that has not been persisted yet.
// The ID is left empty; the repository assigns it on Save.
func NewProduct(name, description string, price decimal.Decimal) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
	}
}

// IsPersisted reports whether the storage layer has assigned an ID
func (p *Product) IsPersisted() bool {
	return p.ID != ""
}
