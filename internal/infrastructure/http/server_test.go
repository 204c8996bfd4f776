package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/namastenepal/product-service/internal/app/service"
	"github.com/namastenepal/product-service/internal/infrastructure/config"
	"github.com/namastenepal/product-service/internal/infrastructure/http/handler"
	"github.com/namastenepal/product-service/internal/infrastructure/repository/memory"
	"github.com/namastenepal/product-service/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	telem, err := telemetry.NewNoOpTelemetry(&config.OTLPConfig{ServiceName: "product-service", Environment: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = telem.Shutdown(context.Background()) })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	tracer := telem.TracerProvider.Tracer("test")
	repo := memory.NewProductRepository(tracer, logger)
	svc := service.NewProductService(repo, tracer, telem.MeterProvider.Meter("test"), logger)

	s := NewServer(&config.ServerConfig{
		Host:               "127.0.0.1",
		Port:               "0",
		CORSAllowedOrigins: []string{"https://shop.example"},
	}, handler.NewProductHandler(svc, logger), logger, telem)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_CreateAndList(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/products", "application/json",
		strings.NewReader(`{"name":"iPhone 15","description":"iPhone 15 is a smartphone from Apple","price":1000}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	list, err := http.Get(ts.URL + "/api/products")
	require.NoError(t, err)
	defer list.Body.Close()
	assert.Equal(t, http.StatusOK, list.StatusCode)

	body, err := io.ReadAll(list.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"name":"iPhone 15"`)
	assert.Contains(t, string(body), `"price":1000`)
}

func TestServer_RejectsNonJSONContentType(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/products", "text/plain", strings.NewReader(`name=iPhone`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestServer_AcceptsJSONWithCharset(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/products", "application/json; charset=utf-8",
		strings.NewReader(`{"name":"a","description":"b","price":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/products", "application/json",
		strings.NewReader(`{"name":"a","description":"b","price":1}`))
	require.NoError(t, err)
	resp.Body.Close()

	metrics, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)

	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "products_created")
}

func TestServer_CORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/products", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://shop.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/products/123")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
