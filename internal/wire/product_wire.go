package wire

import (
	"naturehatch-backend/internal/adaptor"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/pkg/middleware"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/products/get-all-products", productHandler.GetProducts)
	r.Get("/api/products/{id}", productHandler.GetProductByID)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(config, log)).Post("/api/products/{id}/review", productHandler.AddReview)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/api/products/add-product", productHandler.CreateProduct)
		r.Put("/api/products/update-product/{id}", productHandler.UpdateProduct)
		r.Delete("/api/products/delete-product/{id}", productHandler.DeleteProduct)
	})
}
