package adaptor

import (
	"encoding/json"
	"net/http"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/usecase"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /api/order/create-order (protected)
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Order placed", order)
}

// GetOrderByID handles GET /api/order/{orderId} (protected; owner or admin)
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID, err := utils.ParseObjectID(chi.URLParam(r, "orderId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())

	order, err := h.service.GetOrder(r.Context(), userID, entity.UserRole(role), orderID)
	if err != nil {
		handleServiceError(w, h.log, err, "get order by ID")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// ==================== ADMIN METHODS ====================

// GetAllOrders handles GET /api/order/get-all-orders (admin only)
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAllOrders(r.Context(), parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get all orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// UpdateOrderStatus handles PUT /api/order/update-status/{orderId} (admin only)
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseObjectID(chi.URLParam(r, "orderId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", order)
}
