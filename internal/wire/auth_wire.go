package wire

import (
	"naturehatch-backend/internal/adaptor"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/pkg/middleware"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/user/sign-up", authHandler.SignUp)
	r.Post("/api/user/login", authHandler.Login)
	r.Get("/api/user/verify-email", authHandler.VerifyEmail)
	r.Post("/api/user/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/user/reset-password", authHandler.ResetPassword)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(config, log)).Post("/api/user/logout", authHandler.Logout)
}
