package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/restockwatch/restockwatch/internal/domain"
	"github.com/restockwatch/restockwatch/internal/pkg/httputil"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrProductNotFound, Status: http.StatusNotFound, Message: "Product not found"},
	{Error: ErrProductAlreadyExists, Status: http.StatusConflict, Message: "Product with this productId already exists"},
}

// Handler handles HTTP requests for the catalog module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterPublicRoutes registers read-only product routes.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/{productID}", h.GetProduct)
}

// RegisterOperatorRoutes registers routes that mutate the catalog.
func (h *Handler) RegisterOperatorRoutes(r chi.Router) {
	r.Post("/products", h.CreateProduct)
	r.Patch("/products/{productID}/stock", h.UpdateStock)
	r.Delete("/products/{productID}", h.DeleteProduct)
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	ProductID string `json:"productId" validate:"required,min=1,max=128"`
	Name      string `json:"name" validate:"required,min=1,max=255"`
	URL       string `json:"url" validate:"omitempty,url"`
	InStock   bool   `json:"inStock"`
}

// ToDomain converts the request to a domain model.
func (r *CreateProductRequest) ToDomain() *domain.Product {
	return &domain.Product{
		ProductID: r.ProductID,
		Name:      r.Name,
		URL:       r.URL,
		InStock:   r.InStock,
	}
}

// UpdateStockRequest represents the request body for a stock update.
type UpdateStockRequest struct {
	InStock *bool `json:"inStock" validate:"required"`
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "productId and name are required")
		return
	}

	product := req.ToDomain()
	if err := h.service.CreateProduct(r.Context(), product); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.OKData(w, http.StatusCreated, product)
}

// GetProduct handles GET /products/{productID}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.OKData(w, http.StatusOK, product)
}

// ListProducts handles GET /products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		InStockOnly: r.URL.Query().Get("in_stock") == "true",
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	if products == nil {
		products = make([]domain.Product, 0)
	}

	httputil.OKData(w, http.StatusOK, products)
}

// UpdateStock handles PATCH /products/{productID}/stock.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req UpdateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "inStock is required")
		return
	}

	product, err := h.service.UpdateStock(r.Context(), productID, *req.InStock)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.OKData(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{productID}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
