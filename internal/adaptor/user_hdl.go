package adaptor

import (
	"encoding/json"
	"net/http"

	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/usecase"
	"naturehatch-backend/pkg/utils"

	"go.uber.org/zap"
)

// UserHandler serves the authenticated account surface: profile, delivery
// info, the embedded cart, and the caller's own order history.
type UserHandler struct {
	userService  usecase.UserService
	cartService  usecase.CartService
	orderService usecase.OrderService
	log          *zap.Logger
}

func NewUserHandler(userService usecase.UserService, cartService usecase.CartService, orderService usecase.OrderService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService:  userService,
		cartService:  cartService,
		orderService: orderService,
		log:          log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/user/profile (protected)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// UpdateProfile handles PUT /api/user/profile (protected)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", profile)
}

// UpdateDeliveryInfo handles POST /api/user/update-delivery-info (protected)
func (h *UserHandler) UpdateDeliveryInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateDeliveryInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.userService.UpdateDeliveryInfo(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update delivery info")
		return
	}

	utils.ResponseSuccess(w, "Delivery info saved", profile)
}

// ==================== CART METHODS ====================

// GetCart handles GET /api/user/cart (protected)
func (h *UserHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// AddToCart handles POST /api/user/add-to-cart (protected)
func (h *UserHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.cartService.AddToCart(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to cart")
		return
	}

	utils.ResponseSuccess(w, "Product added to cart", cart)
}

// UpdateCart handles POST /api/user/update-cart (protected)
func (h *UserHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.cartService.UpdateCart(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cart")
		return
	}

	utils.ResponseSuccess(w, "Cart updated", cart)
}

// ClearCartItem handles POST /api/user/clear-item (protected)
func (h *UserHandler) ClearCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ClearItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.cartService.ClearItem(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "clear cart item")
		return
	}

	utils.ResponseSuccess(w, "Item removed from cart", cart)
}

// ClearCart handles POST /api/user/clear-cart (protected)
func (h *UserHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.cartService.ClearCart(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "clear cart")
		return
	}

	utils.ResponseSuccess(w, "Cart cleared", nil)
}

// ==================== ORDER METHODS ====================

// GetMyOrders handles GET /api/user/my-orders (protected)
func (h *UserHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orders, err := h.orderService.ListUserOrders(r.Context(), userID, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}
