package adaptor

import (
	"net/http"

	"naturehatch-backend/internal/dto/request"
	"naturehatch-backend/internal/usecase"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BlogHandler struct {
	service usecase.BlogService
	log     *zap.Logger
}

func NewBlogHandler(service usecase.BlogService, log *zap.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		log:     log.With(zap.String("handler", "blog")),
	}
}

// GetBlogs handles GET /api/blog/getblogs (public)
func (h *BlogHandler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.ListBlogs(r.Context(), parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get blogs")
		return
	}

	utils.ResponseSuccess(w, "success", blogs)
}

// GetBlogByID handles GET /api/blog/getblog/{id} (public)
func (h *BlogHandler) GetBlogByID(w http.ResponseWriter, r *http.Request) {
	blogID, err := utils.ParseObjectID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid blog ID", nil)
		return
	}

	blog, err := h.service.GetBlog(r.Context(), blogID)
	if err != nil {
		handleServiceError(w, h.log, err, "get blog by ID")
		return
	}

	utils.ResponseSuccess(w, "success", blog)
}

// ==================== ADMIN METHODS ====================

// CreateBlog handles POST /api/blog/add-blog (admin only, multipart)
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := request.CreateBlogRequest{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	image, imageName := formImage(r)
	if image != nil {
		defer image.Close()
	}

	blog, err := h.service.CreateBlog(r.Context(), &req, readerOrNil(image), imageName)
	if err != nil {
		handleServiceError(w, h.log, err, "create blog")
		return
	}

	utils.ResponseCreated(w, "Blog created", blog)
}

// UpdateBlog handles PUT /api/blog/updateblog/{id} (admin only, multipart)
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := utils.ParseObjectID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid blog ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := request.UpdateBlogRequest{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	image, imageName := formImage(r)
	if image != nil {
		defer image.Close()
	}

	blog, err := h.service.UpdateBlog(r.Context(), blogID, &req, readerOrNil(image), imageName)
	if err != nil {
		handleServiceError(w, h.log, err, "update blog")
		return
	}

	utils.ResponseSuccess(w, "Blog updated", blog)
}

// DeleteBlog handles DELETE /api/blog/deleteblog/{id} (admin only)
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := utils.ParseObjectID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid blog ID", nil)
		return
	}

	if err := h.service.DeleteBlog(r.Context(), blogID); err != nil {
		handleServiceError(w, h.log, err, "delete blog")
		return
	}

	utils.ResponseSuccess(w, "Blog deleted", nil)
}
