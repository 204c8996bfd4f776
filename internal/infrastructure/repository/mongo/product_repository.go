package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/namastenepal/product-service/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CollectionName is the fixed collection holding product documents
const CollectionName = "product"

// productDocument is the stored shape of a product
type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
}

// ProductRepository is a MongoDB implementation of domain.ProductRepository
type ProductRepository struct {
	collection *mongo.Collection
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewProductRepository creates a repository over the product collection of db
func NewProductRepository(db *mongo.Database, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(CollectionName),
		tracer:     tracer,
		logger:     logger,
	}
}

// Save inserts product under a new ObjectID and returns the stored copy
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Save",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.collection.name", CollectionName),
			attribute.String("db.operation.name", "insert"),
		),
	)
	defer span.End()

	doc, err := toDocument(product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode product")
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		r.logger.ErrorContext(ctx, "Mongo insert failed",
			slog.String("collection", CollectionName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: insert product: %w", domain.ErrStorageUnavailable, err)
	}

	stored, err := fromDocument(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode product")
		return nil, err
	}

	span.SetAttributes(attribute.String("product.id", stored.ID))
	r.logger.DebugContext(ctx, "Product inserted",
		slog.String("product_id", stored.ID),
	)

	span.SetStatus(codes.Ok, "Product inserted")
	return stored, nil
}

// FindAll returns every document in the collection in natural order
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.collection.name", CollectionName),
			attribute.String("db.operation.name", "find"),
		),
	)
	defer span.End()

	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Find failed")
		r.logger.ErrorContext(ctx, "Mongo find failed",
			slog.String("collection", CollectionName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: find products: %w", domain.ErrStorageUnavailable, err)
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Cursor failed")
		return nil, fmt.Errorf("%w: read products: %w", domain.ErrStorageUnavailable, err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		p, err := fromDocument(&docs[i])
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to decode product")
			return nil, err
		}
		products = append(products, p)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	r.logger.DebugContext(ctx, "Products retrieved from mongo",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved")
	return products, nil
}

// Ping checks that the deployment answers
func (r *ProductRepository) Ping(ctx context.Context) error {
	if err := r.collection.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func toDocument(p *domain.Product) (*productDocument, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return nil, fmt.Errorf("price %s does not fit decimal128: %w", p.Price, err)
	}
	return &productDocument{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
	}, nil
}

func fromDocument(doc *productDocument) (*domain.Product, error) {
	price, err := decimal.NewFromString(doc.Price.String())
	if err != nil {
		return nil, fmt.Errorf("product %s has invalid price %s: %w", doc.ID.Hex(), doc.Price, err)
	}
	return &domain.Product{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		Price:       price,
	}, nil
}
