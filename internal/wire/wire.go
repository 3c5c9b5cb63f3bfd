package wire

import (
	"net/http"

	"naturehatch-backend/internal/adaptor"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/internal/usecase"
	"naturehatch-backend/pkg/mailer"
	"naturehatch-backend/pkg/middleware"
	"naturehatch-backend/pkg/storage"
	"naturehatch-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds everything the server needs to run
type App struct {
	Router *chi.Mux
}

// Wiring builds the service and handler graph on top of the repositories
func Wiring(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, store storage.Storage, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, mail, store, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireOrder(r, handler.Order, repo, config, logger)
	wireProduct(r, handler.Product, repo, config, logger)
	wireBlog(r, handler.Blog, repo, config, logger)

	// Uploaded images are served straight off disk
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.App.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
