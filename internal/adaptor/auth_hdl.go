package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/usecase"
	"naturehatch-backend/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignUp handles POST /api/user/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "sign up")
		return
	}

	h.setTokenCookie(w, response.Token, response.ExpiresAt)
	utils.ResponseCreated(w, "Registration successful. Check your email to verify your account.", response)
}

// VerifyEmail handles GET /api/user/verify-email?token=...
// It is opened from an email client, so on success it redirects to the
// storefront login page instead of answering JSON.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "verify email")
		return
	}

	if h.config.App.FrontendURL != "" {
		http.Redirect(w, r, h.config.App.FrontendURL+"/login", http.StatusFound)
		return
	}

	utils.ResponseSuccess(w, "Email verified successfully", nil)
}

// Login handles POST /api/user/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	h.setTokenCookie(w, response.Token, response.ExpiresAt)
	utils.ResponseSuccess(w, "Login successful", response)
}

// Logout handles POST /api/user/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout just expires the cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	utils.ResponseSuccess(w, "Logged out", nil)
}

// ForgotPassword handles POST /api/user/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ForgotPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, "OTP sent to your email", nil)
}

// ResetPassword handles POST /api/user/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password reset successful", nil)
}

// setTokenCookie mirrors the token into an httpOnly cookie so browser
// clients do not have to store it themselves
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.config.App.Env == "production",
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
}
