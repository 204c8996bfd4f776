package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/namastenepal/product-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRepository() *ProductRepository {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewProductRepository(noop.NewTracerProvider().Tracer("test"), logger)
}

func TestSave_AssignsIDWithoutMutatingInput(t *testing.T) {
	repo := newTestRepository()
	in := domain.NewProduct("Keyboard", "Mechanical", decimal.RequireFromString("49.90"))

	saved, err := repo.Save(context.Background(), in)
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Empty(t, in.ID)
	assert.Equal(t, "Keyboard", saved.Name)
	assert.True(t, saved.Price.Equal(in.Price))
}

func TestSave_DistinctIDsForIdenticalInput(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	first, err := repo.Save(ctx, domain.NewProduct("a", "b", decimal.NewFromInt(1)))
	require.NoError(t, err)
	second, err := repo.Save(ctx, domain.NewProduct("a", "b", decimal.NewFromInt(1)))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestFindAll_InsertionOrder(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	empty, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var ids []string
	for _, name := range []string{"one", "two", "three"} {
		p, err := repo.Save(ctx, domain.NewProduct(name, "desc", decimal.NewFromInt(1)))
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, p := range all {
		assert.Equal(t, ids[i], p.ID)
	}
}

func TestFindAll_ReturnsCopies(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, domain.NewProduct("a", "b", decimal.NewFromInt(1)))
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	all[0].Name = "changed"

	again, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Name)
}

func TestSave_Concurrent(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Save(ctx, domain.NewProduct("p", "d", decimal.NewFromInt(1)))
		}()
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
