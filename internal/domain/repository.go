package domain

import (
	"context"
	"errors"
)

var (
	ErrStorageUnavailable = errors.New("product storage unavailable")
)

// ProductRepository defines the contract for product storage
type ProductRepository interface {
	// Save persists a new product and returns a copy carrying the generated ID.
	Save(ctx context.Context, product *Product) (*Product, error)
	// FindAll returns every stored product in store order.
	FindAll(ctx context.Context) ([]*Product, error)
	Ping(ctx context.Context) error
}
