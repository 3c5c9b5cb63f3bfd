package adaptor

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/usecase"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadSize caps multipart parsing at 10 MiB
const maxUploadSize = 10 << 20

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// GetProducts handles GET /api/products/get-all-products (public)
// Supports ?search=, ?category=, ?sort_by=price, ?order=desc and pagination.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	listQuery := usecase.ProductListQuery{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		SortBy:   query.Get("sort_by"),
		SortDesc: query.Get("order") == "desc",
		Page: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 12),
		},
	}

	products, err := h.service.ListProducts(r.Context(), listQuery)
	if err != nil {
		handleServiceError(w, h.log, err, "get products")
		return
	}

	utils.ResponseSuccess(w, "success", products)
}

// GetProductByID handles GET /api/products/{id} (public)
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ParseObjectID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		handleServiceError(w, h.log, err, "get product by ID")
		return
	}

	utils.ResponseSuccess(w, "success", product)
}

// AddReview handles POST /api/products/{id}/review (protected)
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	productID, err := utils.ParseObjectID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	var req request.AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	product, err := h.service.AddReview(r.Context(), productID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add review")
		return
	}

	utils.ResponseCreated(w, "Review added", product)
}

// ==================== ADMIN METHODS ====================

// CreateProduct handles POST /api/products/add-product (admin only, multipart)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid price", nil)
		return
	}

	req := request.CreateProductRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Quantity:    utils.ParseInt(r.FormValue("quantity"), 0),
		Category:    r.FormValue("category"),
	}

	image, imageName := formImage(r)
	if image != nil {
		defer image.Close()
	}

	product, err := h.service.CreateProduct(r.Context(), &req, readerOrNil(image), imageName)
	if err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created", product)
}

// UpdateProduct handles PUT /api/products/update-product/{id} (admin only, multipart)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ParseObjectID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := request.UpdateProductRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid price", nil)
			return
		}
		req.Price = &price
	}

	if raw := r.FormValue("quantity"); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil || quantity < 0 {
			utils.ResponseBadRequest(w, "Invalid quantity", nil)
			return
		}
		req.Quantity = &quantity
	}

	image, imageName := formImage(r)
	if image != nil {
		defer image.Close()
	}

	product, err := h.service.UpdateProduct(r.Context(), productID, &req, readerOrNil(image), imageName)
	if err != nil {
		handleServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated", product)
}

// DeleteProduct handles DELETE /api/products/delete-product/{id} (admin only)
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ParseObjectID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid product ID", nil)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		handleServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted", nil)
}

// formImage pulls the optional "image" file out of a parsed multipart form
func formImage(r *http.Request) (multipart.File, string) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, ""
	}
	return file, header.Filename
}

// readerOrNil keeps a typed-nil multipart.File from sneaking into an
// io.Reader interface value
func readerOrNil(file multipart.File) io.Reader {
	if file == nil {
		return nil
	}
	return file
}
