package wire

import (
	"naturehatch-backend/internal/adaptor"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/pkg/middleware"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Everything under the account surface needs a valid token
	r.Route("/api/user", func(r chi.Router) {
		r.Use(middleware.Auth(config, log))

		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)
		r.Post("/update-delivery-info", userHandler.UpdateDeliveryInfo)

		// Cart lives embedded on the user document
		r.Get("/cart", userHandler.GetCart)
		r.Post("/add-to-cart", userHandler.AddToCart)
		r.Post("/update-cart", userHandler.UpdateCart)
		r.Post("/clear-item", userHandler.ClearCartItem)
		r.Post("/clear-cart", userHandler.ClearCart)

		// Order history for the logged-in user
		r.Get("/my-orders", userHandler.GetMyOrders)
	})
}
