package dto

import (
	"encoding/json"
	"testing"

	"github.com/namastenepal/product-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductRequest_Unmarshal(t *testing.T) {
	body := `{"name":"iPhone 15","description":"iPhone 15 is a smartphone from Apple","price":1000}`

	var req CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, "iPhone 15", req.Name)
	assert.Equal(t, "iPhone 15 is a smartphone from Apple", req.Description)
	assert.True(t, req.Price.Equal(decimal.NewFromInt(1000)))
}

func TestCreateProductRequest_KeepsDecimalPrecision(t *testing.T) {
	var req CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"a","description":"b","price":0.1000000000000000055511151231257827}`), &req))

	assert.Equal(t, "0.1000000000000000055511151231257827", req.Price.String())
}

func TestCreateProductRequest_IgnoresID(t *testing.T) {
	var req CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","name":"a","description":"b","price":1}`), &req))

	p := ToProduct(&req)
	assert.Empty(t, p.ID)
}

func TestCreateProductRequest_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"missing name", `{"description":"b","price":1}`, ErrMissingField},
		{"missing description", `{"name":"a","price":1}`, ErrMissingField},
		{"missing price", `{"name":"a","description":"b"}`, ErrMissingField},
		{"null price", `{"name":"a","description":"b","price":null}`, ErrMissingField},
		{"non-numeric price", `{"name":"a","description":"b","price":"abc"}`, ErrInvalidPrice},
		{"quoted numeric price", `{"name":"a","description":"b","price":"1000"}`, ErrInvalidPrice},
		{"boolean price", `{"name":"a","description":"b","price":true}`, ErrInvalidPrice},
		{"huge exponent", `{"name":"a","description":"b","price":1e2000000000}`, ErrInvalidPrice},
		{"exponent above decimal128", `{"name":"a","description":"b","price":1e6112}`, ErrInvalidPrice},
		{"exponent below decimal128", `{"name":"a","description":"b","price":1e-6177}`, ErrInvalidPrice},
		{"too many digits", `{"name":"a","description":"b","price":12345678901234567890123456789012345}`, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateProductRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateProductRequest_RejectsWrongTypes(t *testing.T) {
	var req CreateProductRequest
	assert.Error(t, json.Unmarshal([]byte(`{"name":42,"description":"b","price":1}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &req))
}

func TestToProductResponse(t *testing.T) {
	p := &domain.Product{
		ID:          "65f1c0ffee0000000000abcd",
		Name:        "Mouse",
		Description: "Wireless mouse",
		Price:       decimal.RequireFromString("19.99"),
	}

	out, err := json.Marshal(ToProductResponse(p))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"id":"65f1c0ffee0000000000abcd","name":"Mouse","description":"Wireless mouse","price":19.99}`,
		string(out),
	)
}

func TestToProductResponseList_Empty(t *testing.T) {
	out, err := json.Marshal(ToProductResponseList(nil))
	require.NoError(t, err)

	assert.Equal(t, "[]", string(out))
}

func TestCreateProductRequest_AcceptsDecimal128Bounds(t *testing.T) {
	for _, price := range []string{"1e6111", "1e-6176", "1234567890123456789012345678901234"} {
		var req CreateProductRequest
		body := `{"name":"a","description":"b","price":` + price + `}`
		require.NoError(t, json.Unmarshal([]byte(body), &req), price)
	}
}
