package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/namastenepal/product-service/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository.
// Products are kept in insertion order.
type ProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		tracer: tracer,
		logger: logger,
	}
}

// Save stores a copy of product under a fresh UUID
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Save")
	defer span.End()

	stored := *product
	stored.ID = uuid.NewString()

	span.SetAttributes(
		attribute.String("product.id", stored.ID),
		attribute.String("product.name", stored.Name),
	)

	r.mu.Lock()
	r.products = append(r.products, stored)
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "Product saved in memory",
		slog.String("product_id", stored.ID),
		slog.String("product_name", stored.Name),
	)

	span.SetStatus(codes.Ok, "Product saved")
	return &stored, nil
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, len(r.products))
	for i := range r.products {
		p := r.products[i]
		products[i] = &p
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from memory",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved")
	return products, nil
}

// Ping always succeeds
func (r *ProductRepository) Ping(ctx context.Context) error {
	return nil
}
