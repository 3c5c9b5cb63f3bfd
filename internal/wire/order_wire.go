package wire

import (
	"naturehatch-backend/internal/adaptor"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/pkg/middleware"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(config, log)).Post("/api/order/create-order", orderHandler.CreateOrder)
	r.With(middleware.Auth(config, log)).Get("/api/order/{orderId}", orderHandler.GetOrderByID)

	// ==================== ADMIN ROUTES ====================
	// Order listing and fulfilment are admin-only
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/api/order/get-all-orders", orderHandler.GetAllOrders)
		r.Put("/api/order/update-status/{orderId}", orderHandler.UpdateOrderStatus)
	})
}
