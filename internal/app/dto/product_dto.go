package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/namastenepal/product-service/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidPrice = errors.New("price must be a JSON number")
)

// Prices must fit a BSON Decimal128: at most 34 significant digits and an
// exponent in [-6176, 6111].
const (
	maxPriceDigits   = 34
	minPriceExponent = -6176
	maxPriceExponent = 6111
)

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UnmarshalJSON requires all three fields and a numeric price.
// Any "id" key in the body is ignored.
func (r *CreateProductRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        *string         `json:"name"`
		Description *string         `json:"description"`
		Price       json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Name == nil:
		return fmt.Errorf("%w: name", ErrMissingField)
	case raw.Description == nil:
		return fmt.Errorf("%w: description", ErrMissingField)
	case len(raw.Price) == 0 || bytes.Equal(raw.Price, []byte("null")):
		return fmt.Errorf("%w: price", ErrMissingField)
	}

	price, err := parsePrice(raw.Price)
	if err != nil {
		return err
	}

	r.Name = *raw.Name
	r.Description = *raw.Description
	r.Price = price
	return nil
}

func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	// json.Number would also accept a quoted number; only bare literals pass here
	if raw[0] == '"' {
		return decimal.Decimal{}, fmt.Errorf("%w, got %s", ErrInvalidPrice, raw)
	}
	price, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w, got %s", ErrInvalidPrice, raw)
	}
	// Checked before anything calls String, which expands the exponent into digits
	if exp := price.Exponent(); exp < minPriceExponent || exp > maxPriceExponent {
		return decimal.Decimal{}, fmt.Errorf("%w: exponent %d out of range", ErrInvalidPrice, exp)
	}
	if price.NumDigits() > maxPriceDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: more than %d significant digits", ErrInvalidPrice, maxPriceDigits)
	}
	return price, nil
}

// ProductResponse represents the product response.
// Price is written as a bare JSON number carrying the exact decimal text.
type ProductResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
}

// ToProduct converts a create request into an unsaved domain Product
func ToProduct(req *CreateProductRequest) *domain.Product {
	return domain.NewProduct(req.Name, req.Description, req.Price)
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       json.Number(p.Price.String()),
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
