package adaptor

import (
	"errors"
	"net/http"

	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/usecase"
	"naturehatch-backend/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Order   *OrderHandler
	Product *ProductHandler
	Blog    *BlogHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, config, log),
		User:    NewUserHandler(service.User, service.Cart, service.Order, log),
		Order:   NewOrderHandler(service.Order, log),
		Product: NewProductHandler(service.Product, log),
		Blog:    NewBlogHandler(service.Blog, log),
	}
}

// handleServiceError maps the service sentinel errors onto HTTP status
// codes; everything unrecognized answers 500 without leaking internals
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" failed - validation",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrUpstream):
		log.Error(operation+" failed - upstream",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "A dependent service failed, please try again later")

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// parsePagination reads ?page and ?per_page with sane defaults
func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
