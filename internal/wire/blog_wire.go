package wire

import (
	"naturehatch-backend/internal/adaptor"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/pkg/middleware"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBlog(
	r chi.Router,
	blogHandler *adaptor.BlogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/blog/getblogs", blogHandler.GetBlogs)
	r.Get("/api/blog/getblog/{id}", blogHandler.GetBlogByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/api/blog/add-blog", blogHandler.CreateBlog)
		r.Put("/api/blog/updateblog/{id}", blogHandler.UpdateBlog)
		r.Delete("/api/blog/deleteblog/{id}", blogHandler.DeleteBlog)
	})
}
