package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/namastenepal/product-service/internal/app/dto"
	"github.com/namastenepal/product-service/internal/app/service"
	"github.com/namastenepal/product-service/internal/domain"
	"github.com/namastenepal/product-service/internal/infrastructure/http/response"
)

// maxBodyBytes caps the create payload
const maxBodyBytes = 1 << 16

var errStorage = errors.New("failed to access product storage")

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		h.storageError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, product)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.storageError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// Ready handles GET /ready
func (h *ProductHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ready(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "Readiness check failed",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusServiceUnavailable, errors.New("product storage not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// storageError writes a 500 without the driver's message
func (h *ProductHandler) storageError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		response.Error(w, http.StatusInternalServerError, errStorage)
		return
	}
	response.Error(w, http.StatusInternalServerError, errors.New("internal error"))
}
